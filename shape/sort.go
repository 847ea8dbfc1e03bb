package shape

import (
	"fmt"
	"slices"

	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/table"
)

// Schema adapts a row type to the shim.
type Schema[R any] struct {
	// Mode returns the row's mode.
	Mode func(R) table.Mode
	// FattyAcids returns every fatty acid the filter must check.
	FattyAcids func(R) []fattyacid.FattyAcid
	// CompareKey orders rows by their natural key, mode first.
	CompareKey func(a, b R) int
	// Metric returns the value of m for the row. ok is false when the row
	// type has no such metric.
	Metric func(r R, m format.Metric) (v column.Float, ok bool)
}

// Sort selects how rows are ordered.
type Sort struct {
	By          format.SortBy      `yaml:"by"`
	Aggregation format.Aggregation `yaml:"aggregation"`
	Metric      format.Metric      `yaml:"metric"`
	Order       format.Order       `yaml:"order"`
}

// DefaultSort orders by key, ascending. Value sorting defaults to the median
// of |Alpha|.
func DefaultSort() Sort {
	return Sort{
		By:          format.ByKey,
		Aggregation: format.Median,
		Metric:      format.MetricAlpha,
		Order:       format.Ascending,
	}
}

// AppendHash feeds s into h. Aggregation and metric only matter for value
// sorting and are left out of key sorts.
func (s Sort) AppendHash(h *hash.Hasher) {
	h.Byte(byte(s.By)).Byte(byte(s.Order))
	if s.By == format.ByValue {
		h.Byte(byte(s.Aggregation)).Byte(byte(s.Metric))
	}
}

// Validate checks that every enum holds a known value.
func (s Sort) Validate() error {
	switch {
	case s.By != format.ByKey && s.By != format.ByValue:
		return fmt.Errorf("%w: sort by %d", errs.ErrInvalidSettings, s.By)
	case s.Order != format.Ascending && s.Order != format.Descending:
		return fmt.Errorf("%w: order %d", errs.ErrInvalidSettings, s.Order)
	case s.By == format.ByValue && (s.Aggregation < format.Minimum || s.Aggregation > format.Maximum):
		return fmt.Errorf("%w: aggregation %d", errs.ErrInvalidSettings, s.Aggregation)
	}

	return nil
}

// Aggregate reduces values with the chosen aggregation.
func Aggregate(values []column.Float, a format.Aggregation) column.Float {
	switch a {
	case format.Minimum:
		return column.Min(values)
	case format.Maximum:
		return column.Max(values)
	default:
		return column.Median(values)
	}
}

// Order returns rows ordered by s. The sort is stable and never modifies the
// input slice.
//
// Key sorting orders by schema.CompareKey. Value sorting orders by the
// aggregate of |metric| over each row's mode, then by key. Descending inverts
// every key; rows whose aggregate is null come last either way.
func Order[R any](rows []R, schema Schema[R], s Sort) ([]R, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	out := slices.Clone(rows)
	descending := s.Order.Descending()

	if s.By == format.ByKey {
		slices.SortStableFunc(out, func(a, b R) int {
			if descending {
				return schema.CompareKey(b, a)
			}

			return schema.CompareKey(a, b)
		})

		return out, nil
	}

	aggregates, err := aggregateByMode(out, schema, s)
	if err != nil {
		return nil, err
	}
	slices.SortStableFunc(out, func(a, b R) int {
		va, vb := aggregates[schema.Mode(a).Key()], aggregates[schema.Mode(b).Key()]
		if c := column.CompareOrdered(va, vb, descending); c != 0 {
			return c
		}
		if descending {
			return schema.CompareKey(b, a)
		}

		return schema.CompareKey(a, b)
	})

	return out, nil
}

func aggregateByMode[R any](rows []R, schema Schema[R], s Sort) (map[table.ModeKey]column.Float, error) {
	groups := column.Groups(len(rows), func(i int) table.ModeKey { return schema.Mode(rows[i]).Key() })
	out := make(map[table.ModeKey]column.Float, len(groups))
	for _, group := range groups {
		values := make([]column.Float, len(group))
		for i, r := range group {
			v, ok := schema.Metric(rows[r], s.Metric)
			if !ok {
				return nil, fmt.Errorf("%w: metric %s is not available", errs.ErrInvalidSettings, s.Metric)
			}
			values[i] = v.Abs()
		}
		out[schema.Mode(rows[group[0]]).Key()] = Aggregate(values, s.Aggregation)
	}

	return out, nil
}

// Apply excludes rows with f and orders the rest with s.
func Apply[R any](rows []R, schema Schema[R], f Filter, s Sort) ([]R, error) {
	return Order(Exclude(rows, schema, f), schema, s)
}
