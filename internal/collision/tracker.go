// Package collision tracks the column names of a snapshot directory.
//
// Names are indexed by their xxHash64 so lookups avoid string comparisons in
// the common case. Distinct names that share a hash are still told apart.
package collision

import (
	"fmt"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/internal/hash"
)

// Tracker records column names in insertion order.
type Tracker struct {
	byHash       map[uint64][]int // hash -> positions in names
	names        []string
	hasCollision bool
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		byHash: make(map[uint64][]int),
	}
}

// Track records name and returns its position. Empty and repeated names are
// rejected.
func (t *Tracker) Track(name string) (int, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: empty column name", errs.ErrCorruptedColumn)
	}

	id := hash.ID(name)
	for _, pos := range t.byHash[id] {
		if t.names[pos] == name {
			return 0, errs.NewSchemaError(name, errs.ErrDuplicateColumn)
		}
		t.hasCollision = true
	}

	pos := len(t.names)
	t.byHash[id] = append(t.byHash[id], pos)
	t.names = append(t.names, name)

	return pos, nil
}

// Lookup returns the position of name.
func (t *Tracker) Lookup(name string) (int, bool) {
	for _, pos := range t.byHash[hash.ID(name)] {
		if t.names[pos] == name {
			return pos, true
		}
	}

	return 0, false
}

// HasCollision reports whether two distinct names shared a hash.
func (t *Tracker) HasCollision() bool {
	return t.hasCollision
}

// Names returns the tracked names in insertion order.
func (t *Tracker) Names() []string {
	return t.names
}

// Count returns the number of tracked names.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears the tracker, keeping allocated capacity.
func (t *Tracker) Reset() {
	clear(t.byHash)
	t.names = t.names[:0]
	t.hasCollision = false
}
