// Package warn provides a once-per-cause warning logger. Several ACE decoding
// situations are not fatal (an unknown MT number, an MT folded by the IRDF
// MT>1000 rule, a dosimetry SIG block with a non-zero interpolation-region
// count) but are worth a single log line rather than either silence or a
// flood of repeated lines for every occurrence.
package warn

import (
	"log"
	"sync"
)

// Logger deduplicates warnings by an arbitrary comparable cause key.
type Logger struct {
	mu   sync.Mutex
	seen map[any]bool
}

// NewLogger returns a ready-to-use Logger.
func NewLogger() *Logger {
	return &Logger{seen: make(map[any]bool)}
}

// Once logs msg the first time it is called with a given cause; subsequent
// calls with the same cause are silently dropped.
func (l *Logger) Once(cause any, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.seen[cause] {
		return
	}
	l.seen[cause] = true
	log.Printf("acexs: %s", msg)
}

// Default is the package-wide warning logger used by decoders that have no
// caller-supplied Logger.
var Default = NewLogger()
