package format

import (
	"fmt"
	"strings"
)

type (
	// Order is the sort direction.
	Order uint8
	// SourceSort selects the Source table sort key.
	SourceSort uint8
	// SortBy selects between key order and aggregated value order.
	SortBy uint8
	// Aggregation reduces a metric over a Mode.
	Aggregation uint8
	// Metric names a numeric column the shim can aggregate.
	Metric uint8
	// Axis names a column a plot can project onto.
	Axis uint8
)

const (
	Ascending  Order = 0x1
	Descending Order = 0x2

	SortFattyAcid SourceSort = 0x1 // SortFattyAcid orders by (Mode, FattyAcid).
	SortTime      SourceSort = 0x2 // SortTime orders modes, then (ECL, Mean) within each mode.

	ByKey   SortBy = 0x1
	ByValue SortBy = 0x2

	Minimum Aggregation = 0x1
	Median  Aggregation = 0x2
	Maximum Aggregation = 0x3

	MetricAlpha              Metric = 0x1
	MetricRetentionTimeDelta Metric = 0x2
	MetricECLDelta           Metric = 0x3
	MetricEuclidean          Metric = 0x4
	MetricRetentionTime      Metric = 0x5
	MetricECL                Metric = 0x6

	AxisRetentionTime      Axis = 0x1
	AxisECL                Axis = 0x2
	AxisOnsetTemperature   Axis = 0x3
	AxisTemperatureStep    Axis = 0x4
	AxisAlpha              Axis = 0x5
	AxisRetentionTimeDelta Axis = 0x6
	AxisECLDelta           Axis = 0x7
	AxisEuclidean          Axis = 0x8
)

var (
	orderNames       = []string{Ascending: "ascending", Descending: "descending"}
	sourceSortNames  = []string{SortFattyAcid: "fatty_acid", SortTime: "time"}
	sortByNames      = []string{ByKey: "key", ByValue: "value"}
	aggregationNames = []string{Minimum: "minimum", Median: "median", Maximum: "maximum"}
	metricNames      = []string{
		MetricAlpha:              "alpha",
		MetricRetentionTimeDelta: "retention_time_delta",
		MetricECLDelta:           "ecl_delta",
		MetricEuclidean:          "euclidean",
		MetricRetentionTime:      "retention_time",
		MetricECL:                "ecl",
	}
	axisNames = []string{
		AxisRetentionTime:      "retention_time",
		AxisECL:                "ecl",
		AxisOnsetTemperature:   "onset_temperature",
		AxisTemperatureStep:    "temperature_step",
		AxisAlpha:              "alpha",
		AxisRetentionTimeDelta: "retention_time_delta",
		AxisECLDelta:           "ecl_delta",
		AxisEuclidean:          "euclidean",
	}
)

func name[T ~uint8](names []string, v T) string {
	if int(v) < len(names) && names[v] != "" {
		return names[v]
	}

	return "unknown"
}

func parse[T ~uint8](names []string, kind string, text []byte) (T, error) {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, n := range names {
		if n != "" && n == s {
			return T(i), nil
		}
	}

	return 0, fmt.Errorf("unknown %s %q", kind, text)
}

func (o Order) String() string                { return name(orderNames, o) }
func (o Order) MarshalText() ([]byte, error) { return []byte(o.String()), nil }

func (o *Order) UnmarshalText(text []byte) (err error) {
	*o, err = parse[Order](orderNames, "order", text)
	return err
}

// Descending reports whether o reverses the natural order.
func (o Order) Descending() bool { return o == Descending }

func (s SourceSort) String() string                { return name(sourceSortNames, s) }
func (s SourceSort) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *SourceSort) UnmarshalText(text []byte) (err error) {
	*s, err = parse[SourceSort](sourceSortNames, "source sort", text)
	return err
}

func (b SortBy) String() string                { return name(sortByNames, b) }
func (b SortBy) MarshalText() ([]byte, error) { return []byte(b.String()), nil }

func (b *SortBy) UnmarshalText(text []byte) (err error) {
	*b, err = parse[SortBy](sortByNames, "sort by", text)
	return err
}

func (a Aggregation) String() string                { return name(aggregationNames, a) }
func (a Aggregation) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Aggregation) UnmarshalText(text []byte) (err error) {
	*a, err = parse[Aggregation](aggregationNames, "aggregation", text)
	return err
}

func (m Metric) String() string                { return name(metricNames, m) }
func (m Metric) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Metric) UnmarshalText(text []byte) (err error) {
	*m, err = parse[Metric](metricNames, "metric", text)
	return err
}

func (a Axis) String() string                { return name(axisNames, a) }
func (a Axis) MarshalText() ([]byte, error) { return []byte(a.String()), nil }

func (a *Axis) UnmarshalText(text []byte) (err error) {
	*a, err = parse[Axis](axisNames, "axis", text)
	return err
}
