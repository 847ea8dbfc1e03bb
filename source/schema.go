package source

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/shape"
	"github.com/arloliu/fame/table"
)

// Schema plugs Source rows into the shape shim. Rows are keyed by
// (Mode, FattyAcid) and expose the RetentionTime and ECL metrics.
var Schema = shape.Schema[Row]{
	Mode:       func(r Row) table.Mode { return r.Mode },
	FattyAcids: func(r Row) []fattyacid.FattyAcid { return []fattyacid.FattyAcid{r.FattyAcid} },
	CompareKey: func(a, b Row) int {
		if c := table.CompareModes(a.Mode, b.Mode); c != 0 {
			return c
		}

		return fattyacid.Compare(a.FattyAcid, b.FattyAcid)
	},
	Metric: func(r Row, m format.Metric) (column.Float, bool) {
		switch m {
		case format.MetricRetentionTime:
			return r.RetentionTime.Absolute.Mean, true
		case format.MetricECL:
			return r.ChainLength.ECL, true
		default:
			return column.Null(), false
		}
	},
}
