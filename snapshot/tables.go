package snapshot

import (
	"github.com/arloliu/fame/column"
	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

func writeMeasurements(w *columnWriter, rows []table.Measurement) {
	w.mode(table.ColumnMode, func(i int) table.Mode { return rows[i].Mode })
	w.fattyAcid(table.ColumnFattyAcid, func(i int) fattyacid.FattyAcid { return rows[i].FattyAcid })
	w.float64(table.ColumnDeadTime, func(i int) float64 { return rows[i].DeadTime })
	w.float64List(table.ColumnRetentionTime, func(i int) []float64 { return rows[i].RetentionTime })
}

func readMeasurements(r *columnReader) ([]table.Measurement, error) {
	rows := make([]table.Measurement, r.rows)
	r.mode(table.ColumnMode, func(i int) *table.Mode { return &rows[i].Mode })
	r.fattyAcid(table.ColumnFattyAcid, func(i int) *fattyacid.FattyAcid { return &rows[i].FattyAcid })
	r.float64(table.ColumnDeadTime, func(i int, v float64) { rows[i].DeadTime = v })
	r.float64List(table.ColumnRetentionTime, func(i int, v []float64) { rows[i].RetentionTime = v })
	if r.err != nil {
		return nil, r.err
	}

	err := validateFattyAcids(table.ColumnFattyAcid, len(rows), func(i int) fattyacid.FattyAcid {
		return rows[i].FattyAcid
	})

	return rows, err
}

func writeSource(w *columnWriter, rows []source.Row) {
	w.mode(table.ColumnMode, func(i int) table.Mode { return rows[i].Mode })
	w.fattyAcid(table.ColumnFattyAcid, func(i int) fattyacid.FattyAcid { return rows[i].FattyAcid })
	w.float64(table.ColumnDeadTime, func(i int) float64 { return rows[i].DeadTime })
	w.nullable("RetentionTime.Absolute.Mean", func(i int) column.Float {
		return rows[i].RetentionTime.Absolute.Mean
	})
	w.nullable("RetentionTime.Absolute.StandardDeviation", func(i int) column.Float {
		return rows[i].RetentionTime.Absolute.StandardDeviation
	})
	w.float64List("RetentionTime.Absolute.Values", func(i int) []float64 {
		return rows[i].RetentionTime.Absolute.Values
	})
	w.nullable("RetentionTime.Relative", func(i int) column.Float { return rows[i].RetentionTime.Relative })
	w.nullable("RetentionTime.Delta", func(i int) column.Float { return rows[i].RetentionTime.Delta })
	w.nullable("Temperature", func(i int) column.Float { return rows[i].Temperature })
	w.nullable("ChainLength.ECL", func(i int) column.Float { return rows[i].ChainLength.ECL })
	w.nullable("ChainLength.FCL", func(i int) column.Float { return rows[i].ChainLength.FCL })
	w.float64("ChainLength.ECN", func(i int) float64 { return float64(rows[i].ChainLength.ECN) })
	w.float64("Mass.RCO", func(i int) float64 { return rows[i].Mass.RCO })
	w.float64("Mass.RCOO", func(i int) float64 { return rows[i].Mass.RCOO })
	w.float64("Mass.RCOOH", func(i int) float64 { return rows[i].Mass.RCOOH })
	w.float64("Mass.RCOOCH3", func(i int) float64 { return rows[i].Mass.RCOOCH3 })
	w.nullable("Derivative.Slope", func(i int) column.Float { return rows[i].Derivative.Slope })
	w.nullable("Derivative.Angle", func(i int) column.Float { return rows[i].Derivative.Angle })
}

func readSource(r *columnReader) ([]source.Row, error) {
	rows := make([]source.Row, r.rows)
	r.mode(table.ColumnMode, func(i int) *table.Mode { return &rows[i].Mode })
	r.fattyAcid(table.ColumnFattyAcid, func(i int) *fattyacid.FattyAcid { return &rows[i].FattyAcid })
	r.float64(table.ColumnDeadTime, func(i int, v float64) { rows[i].DeadTime = v })
	r.nullable("RetentionTime.Absolute.Mean", func(i int, v column.Float) {
		rows[i].RetentionTime.Absolute.Mean = v
	})
	r.nullable("RetentionTime.Absolute.StandardDeviation", func(i int, v column.Float) {
		rows[i].RetentionTime.Absolute.StandardDeviation = v
	})
	r.float64List("RetentionTime.Absolute.Values", func(i int, v []float64) {
		rows[i].RetentionTime.Absolute.Values = v
	})
	r.nullable("RetentionTime.Relative", func(i int, v column.Float) { rows[i].RetentionTime.Relative = v })
	r.nullable("RetentionTime.Delta", func(i int, v column.Float) { rows[i].RetentionTime.Delta = v })
	r.nullable("Temperature", func(i int, v column.Float) { rows[i].Temperature = v })
	r.nullable("ChainLength.ECL", func(i int, v column.Float) { rows[i].ChainLength.ECL = v })
	r.nullable("ChainLength.FCL", func(i int, v column.Float) { rows[i].ChainLength.FCL = v })
	r.float64("ChainLength.ECN", func(i int, v float64) { rows[i].ChainLength.ECN = int(v) })
	r.float64("Mass.RCO", func(i int, v float64) { rows[i].Mass.RCO = v })
	r.float64("Mass.RCOO", func(i int, v float64) { rows[i].Mass.RCOO = v })
	r.float64("Mass.RCOOH", func(i int, v float64) { rows[i].Mass.RCOOH = v })
	r.float64("Mass.RCOOCH3", func(i int, v float64) { rows[i].Mass.RCOOCH3 = v })
	r.nullable("Derivative.Slope", func(i int, v column.Float) { rows[i].Derivative.Slope = v })
	r.nullable("Derivative.Angle", func(i int, v column.Float) { rows[i].Derivative.Angle = v })
	if r.err != nil {
		return nil, r.err
	}

	err := validateFattyAcids(table.ColumnFattyAcid, len(rows), func(i int) fattyacid.FattyAcid {
		return rows[i].FattyAcid
	})

	return rows, err
}

func writeSpan(w *columnWriter, prefix string, get func(i int) distance.Span) {
	w.nullable(prefix+".From", func(i int) column.Float { return get(i).From })
	w.nullable(prefix+".To", func(i int) column.Float { return get(i).To })
	w.nullable(prefix+".Delta", func(i int) column.Float { return get(i).Delta })
}

func readSpan(r *columnReader, prefix string, get func(i int) *distance.Span) {
	r.nullable(prefix+".From", func(i int, v column.Float) { get(i).From = v })
	r.nullable(prefix+".To", func(i int, v column.Float) { get(i).To = v })
	r.nullable(prefix+".Delta", func(i int, v column.Float) { get(i).Delta = v })
}

func writeDistance(w *columnWriter, rows []distance.Row) {
	w.mode(table.ColumnMode, func(i int) table.Mode { return rows[i].Mode })
	w.float64(table.ColumnDeadTime, func(i int) float64 { return rows[i].DeadTime })
	w.fattyAcid("FattyAcid.From", func(i int) fattyacid.FattyAcid { return rows[i].FattyAcid.From })
	w.fattyAcid("FattyAcid.To", func(i int) fattyacid.FattyAcid { return rows[i].FattyAcid.To })
	writeSpan(w, "RetentionTime", func(i int) distance.Span { return rows[i].RetentionTime })
	writeSpan(w, "EquivalentChainLength", func(i int) distance.Span { return rows[i].EquivalentChainLength })
	w.nullable("Alpha", func(i int) column.Float { return rows[i].Alpha })
	w.nullable("EuclideanDistance", func(i int) column.Float { return rows[i].EuclideanDistance })
}

func readDistance(r *columnReader) ([]distance.Row, error) {
	rows := make([]distance.Row, r.rows)
	r.mode(table.ColumnMode, func(i int) *table.Mode { return &rows[i].Mode })
	r.float64(table.ColumnDeadTime, func(i int, v float64) { rows[i].DeadTime = v })
	r.fattyAcid("FattyAcid.From", func(i int) *fattyacid.FattyAcid { return &rows[i].FattyAcid.From })
	r.fattyAcid("FattyAcid.To", func(i int) *fattyacid.FattyAcid { return &rows[i].FattyAcid.To })
	readSpan(r, "RetentionTime", func(i int) *distance.Span { return &rows[i].RetentionTime })
	readSpan(r, "EquivalentChainLength", func(i int) *distance.Span { return &rows[i].EquivalentChainLength })
	r.nullable("Alpha", func(i int, v column.Float) { rows[i].Alpha = v })
	r.nullable("EuclideanDistance", func(i int, v column.Float) { rows[i].EuclideanDistance = v })
	if r.err != nil {
		return nil, r.err
	}

	for i := range rows {
		if err := rows[i].FattyAcid.From.Validate(); err != nil {
			return nil, errs.NewDataError(i, distance.FieldFrom, err)
		}
		if err := rows[i].FattyAcid.To.Validate(); err != nil {
			return nil, errs.NewDataError(i, distance.FieldTo, err)
		}
	}

	return rows, nil
}
