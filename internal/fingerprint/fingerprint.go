// Package fingerprint computes a content hash for ACE/XSDIR file bytes or
// decoded XSS payloads, with a selectable hash algorithm. It backs the
// xsdir cache's staleness check and the acexs fingerprint subcommand.
package fingerprint

import (
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Algorithm selects which hash function Sum uses.
type Algorithm int

const (
	BLAKE3 Algorithm = iota
	BLAKE2b
	BLAKE2s
	SHA3_256
	RIPEMD160
)

func (a Algorithm) String() string {
	switch a {
	case BLAKE3:
		return "blake3"
	case BLAKE2b:
		return "blake2b"
	case BLAKE2s:
		return "blake2s"
	case SHA3_256:
		return "sha3-256"
	case RIPEMD160:
		return "ripemd160"
	default:
		return "unknown"
	}
}

// ParseAlgorithm maps a CLI-facing algorithm name to its Algorithm value.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch strings.ToLower(name) {
	case "blake3", "":
		return BLAKE3, nil
	case "blake2b":
		return BLAKE2b, nil
	case "blake2s":
		return BLAKE2s, nil
	case "sha3-256", "sha3":
		return SHA3_256, nil
	case "ripemd160":
		return RIPEMD160, nil
	default:
		return 0, &UnsupportedAlgorithmError{Name: name}
	}
}

// UnsupportedAlgorithmError is returned for an unrecognized algorithm name.
type UnsupportedAlgorithmError struct{ Name string }

func (e *UnsupportedAlgorithmError) Error() string {
	return fmt.Sprintf("%q is not a supported fingerprint algorithm", e.Name)
}

func newHasher(a Algorithm) (hash.Hash, error) {
	switch a {
	case BLAKE3:
		return blake3.New(32, nil), nil
	case BLAKE2b:
		return blake2b.New256(nil)
	case BLAKE2s:
		return blake2s.New256(nil)
	case SHA3_256:
		return sha3.New256(), nil
	case RIPEMD160:
		return ripemd160.New(), nil
	default:
		return nil, &UnsupportedAlgorithmError{Name: a.String()}
	}
}

// Sum hashes r's entire contents with algo and returns the digest as a hex
// string.
func Sum(r io.Reader, algo Algorithm) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(h, r); err != nil {
		return "", fmt.Errorf("hashing input: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumTokens hashes a decoded token stream's raw tokens, space-joined, with
// algo. Used to fingerprint an already-parsed XSS payload without rereading
// the source file.
func SumTokens(tokens []string, algo Algorithm) (string, error) {
	return Sum(strings.NewReader(strings.Join(tokens, " ")), algo)
}

// SumBytes hashes data directly with algo.
func SumBytes(data []byte, algo Algorithm) (string, error) {
	h, err := newHasher(algo)
	if err != nil {
		return "", err
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
