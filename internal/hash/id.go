// Package hash computes the xxHash64 fingerprints used as cache keys.
//
// Tables are fingerprinted by content and settings are fingerprinted by the
// exact subset of fields a stage depends on. Floats are hashed by their IEEE-754
// bit pattern, so -0 and +0 differ and NaN payloads are distinguished.
package hash

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// ID computes the xxHash64 of the given string.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Hasher accumulates typed values into an xxHash64 digest.
//
// Every variable-length value is prefixed with its length so that adjacent
// values cannot alias each other.
type Hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

// New returns an empty Hasher.
func New() *Hasher {
	return &Hasher{d: xxhash.New()}
}

// Uint64 writes v.
func (h *Hasher) Uint64(v uint64) *Hasher {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	_, _ = h.d.Write(h.buf[:])

	return h
}

// Int writes v.
func (h *Hasher) Int(v int) *Hasher {
	return h.Uint64(uint64(v)) //nolint:gosec
}

// Float64 writes the bit pattern of v.
func (h *Hasher) Float64(v float64) *Hasher {
	return h.Uint64(math.Float64bits(v))
}

// Bool writes v as a single byte.
func (h *Hasher) Bool(v bool) *Hasher {
	if v {
		return h.Byte(1)
	}

	return h.Byte(0)
}

// Byte writes a single byte.
func (h *Hasher) Byte(v byte) *Hasher {
	h.buf[0] = v
	_, _ = h.d.Write(h.buf[:1])

	return h
}

// Bytes writes a length prefixed byte slice.
func (h *Hasher) Bytes(v []byte) *Hasher {
	h.Int(len(v))
	_, _ = h.d.Write(v)

	return h
}

// String writes a length prefixed string.
func (h *Hasher) String(v string) *Hasher {
	h.Int(len(v))
	_, _ = h.d.WriteString(v)

	return h
}

// Float64s writes a length prefixed float64 slice.
func (h *Hasher) Float64s(v []float64) *Hasher {
	h.Int(len(v))
	for _, f := range v {
		h.Float64(f)
	}

	return h
}

// Sum64 returns the current digest.
func (h *Hasher) Sum64() uint64 {
	return h.d.Sum64()
}
