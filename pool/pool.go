// Package pool provides a process-wide, concurrency-safe cache of decoded
// ACE nuclides, keyed by identifier, with at-most-one decode per identifier
// even under concurrent callers.
package pool

import (
	"fmt"
	"sync"

	"github.com/spaolacci/murmur3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/sohnishi/acexs/ace/dispatch"
)

const numShards = 32

type shard struct {
	mu      sync.Mutex
	entries map[string]*dispatch.Nuclide
}

// NuclidePool caches decoded nuclides across concurrent callers. The
// mapping is split across fixed, murmur3-hashed shards so that decodes of
// different identifiers don't contend on a single lock; a singleflight
// group still ensures that concurrent callers requesting the *same*
// identifier before it's cached collapse into exactly one decode.
type NuclidePool struct {
	shards [numShards]shard
	group  singleflight.Group
}

// New returns an empty, ready-to-use NuclidePool.
func New() *NuclidePool {
	p := &NuclidePool{}
	for i := range p.shards {
		p.shards[i].entries = make(map[string]*dispatch.Nuclide)
	}
	return p
}

func (p *NuclidePool) shardFor(id string) *shard {
	h := murmur3.Sum32([]byte(id))
	return &p.shards[h%numShards]
}

// GetOrDecode returns the cached nuclide for id, decoding it from path (via
// ace/dispatch) on a cache miss. Concurrent calls for the same id that miss
// at the same time collapse into a single decode; all of them receive the
// same *dispatch.Nuclide.
func (p *NuclidePool) GetOrDecode(path, id string, startLine int) (*dispatch.Nuclide, error) {
	s := p.shardFor(id)

	s.mu.Lock()
	if n, ok := s.entries[id]; ok {
		s.mu.Unlock()
		return n, nil
	}
	s.mu.Unlock()

	v, err, _ := p.group.Do(id, func() (any, error) {
		// Re-check under the singleflight key: another goroutine may have
		// populated the cache between our unlock above and this call
		// acquiring the group's per-key execution slot.
		s.mu.Lock()
		if n, ok := s.entries[id]; ok {
			s.mu.Unlock()
			return n, nil
		}
		s.mu.Unlock()

		n, err := dispatch.Decode(path, id, startLine)
		if err != nil {
			return nil, fmt.Errorf("decoding %s: %w", id, err)
		}

		s.mu.Lock()
		s.entries[id] = n
		s.mu.Unlock()
		return n, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dispatch.Nuclide), nil
}

// Request is one GetOrDecodeAll input: a file to read id from, starting at
// an optional line hint.
type Request struct {
	Path      string
	ID        string
	StartLine int
}

// GetOrDecodeAll resolves every request concurrently and returns the
// decoded nuclides in the same order as reqs. If any request fails, the
// first error encountered is returned and the rest of the results are
// discarded.
func (p *NuclidePool) GetOrDecodeAll(reqs []Request) ([]*dispatch.Nuclide, error) {
	results := make([]*dispatch.Nuclide, len(reqs))

	var g errgroup.Group
	for i, req := range reqs {
		i, req := i, req
		g.Go(func() error {
			n, err := p.GetOrDecode(req.Path, req.ID, req.StartLine)
			if err != nil {
				return err
			}
			results[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
