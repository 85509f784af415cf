package core

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// StateHash folds snapshot fields into one xxhash value. Two runs that
// reach the same state produce the same hash.
type StateHash struct {
	d   *xxhash.Digest
	buf [8]byte
}

// NewStateHash returns an empty hash.
func NewStateHash() *StateHash {
	return &StateHash{d: xxhash.New()}
}

func (h *StateHash) word(v uint64) *StateHash {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:]) //nolint:errcheck // never fails
	return h
}

// Int adds an integer field.
func (h *StateHash) Int(v int) *StateHash {
	return h.word(uint64(v)) //#nosec G115 -- hash computation
}

// Float adds a float field by its bit pattern.
func (h *StateHash) Float(v float64) *StateHash {
	return h.word(math.Float64bits(v))
}

// Bool adds a flag.
func (h *StateHash) Bool(v bool) *StateHash {
	if v {
		return h.word(1)
	}
	return h.word(0)
}

// String adds a string field, length-prefixed so adjacent strings cannot
// run together.
func (h *StateHash) String(s string) *StateHash {
	h.Int(len(s))
	h.d.WriteString(s) //nolint:errcheck // never fails
	return h
}

// Sum returns the hash of everything added so far.
func (h *StateHash) Sum() uint64 {
	return h.d.Sum64()
}
