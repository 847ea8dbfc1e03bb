package table

import "github.com/arloliu/fame/internal/hash"

// Hashable is a row that can feed its content into a fingerprint.
type Hashable interface {
	AppendHash(h *hash.Hasher)
}

// Frame is an immutable table of rows together with its content fingerprint.
//
// Stages never mutate the rows of a Frame they receive, and a Frame returned
// by a stage is never mutated afterwards.
type Frame[R Hashable] struct {
	Rows        []R
	Fingerprint uint64
}

// NewFrame wraps rows and computes their fingerprint.
func NewFrame[R Hashable](rows []R) Frame[R] {
	return Frame[R]{Rows: rows, Fingerprint: Fingerprint(rows)}
}

// Fingerprint returns the xxHash64 of the row count followed by every row.
func Fingerprint[R Hashable](rows []R) uint64 {
	h := hash.New().Int(len(rows))
	for _, r := range rows {
		r.AppendHash(h)
	}

	return h.Sum64()
}

// Len returns the number of rows.
func (f Frame[R]) Len() int { return len(f.Rows) }
