package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/fattyacid"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/plot"
)

const sample = `
source:
  ddof: 0
  logarithmic: true
  relative: C16:0
  filter:
    onset_temperatures: [150]
    fatty_acids: ["C18:1Δ9c", C20:0]
  sort: time
  order: descending
distance:
  sort:
    by: value
    aggregation: maximum
    metric: euclidean
  interpolation:
    onset_temperature: 140
distance_plot:
  axes: {x: ecl_delta, y: alpha}
cache:
  capacity: 16
snapshot:
  compression: lz4
logging:
  level: debug
  format: json
`

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 1, cfg.Source.Ddof)
	require.Equal(t, format.CompressionZstd, cfg.Snapshot.Compression)
	require.Equal(t, plot.StepAlphaAxes, cfg.DistancePlot.Axes)
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	require.NoError(t, err)

	require.Equal(t, 0, cfg.Source.Ddof)
	require.True(t, cfg.Source.Logarithmic)
	require.NotNil(t, cfg.Source.Relative)
	require.True(t, cfg.Source.Relative.Equal(fattyacid.MustParse("C16:0")))
	require.Equal(t, []float64{150}, cfg.Source.Filter.OnsetTemperatures)
	require.Len(t, cfg.Source.Filter.FattyAcids, 2)
	require.True(t, cfg.Source.Filter.FattyAcids[0].Equal(fattyacid.MustParse("C18:1Δ9c")))
	require.Equal(t, format.SortTime, cfg.Source.Sort)
	require.Equal(t, format.Descending, cfg.Source.Order)

	require.Equal(t, format.ByValue, cfg.Distance.Sort.By)
	require.Equal(t, format.Maximum, cfg.Distance.Sort.Aggregation)
	require.Equal(t, format.MetricEuclidean, cfg.Distance.Sort.Metric)
	// Keys not present keep their defaults.
	require.Equal(t, format.Ascending, cfg.Distance.Sort.Order)
	require.Equal(t, 140.0, cfg.Distance.Interpolation.OnsetTemperature)

	require.Equal(t, plot.ECLDeltaAlphaAxes, cfg.DistancePlot.Axes)
	require.Equal(t, plot.DefaultSourceSettings(), cfg.SourcePlot)
	require.Equal(t, 16, cfg.Cache.Capacity)
	require.Equal(t, format.CompressionLZ4, cfg.Snapshot.Compression)
	require.Equal(t, slog.LevelDebug, cfg.Logging.Level)
	require.Equal(t, FormatJSON, cfg.Logging.Format)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"ddof", "source: {ddof: 3}", errs.ErrInvalidDdof},
		{"unknown key", "cache: {size: 3}", errs.ErrInvalidSettings},
		{"unknown enum", "source: {sort: mass}", errs.ErrInvalidSettings},
		{"fatty acid", "source: {relative: C18:2Δ9c}", errs.ErrInvalidSettings},
		{"capacity", "cache: {capacity: 0}", errs.ErrInvalidCapacity},
		{"axes", "distance_plot: {axes: {x: retention_time, y: ecl}}", errs.ErrUnimplementedAxes},
		{"source axes", "source_plot: {axes: {x: alpha, y: ecl}}", errs.ErrUnimplementedAxes},
		{"compression", "snapshot: {compression: brotli}", errs.ErrInvalidSettings},
		{"log format", "logging: {format: xml}", errs.ErrInvalidSettings},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fame.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 16, cfg.Cache.Capacity)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Source.Sort = format.SortTime
	cfg.Source.Filter.OnsetTemperatures = []float64{150, 170}
	cfg.Distance.Sort.By = format.ByValue
	cfg.DistancePlot.Axes = plot.ECLDeltaAlphaAxes
	cfg.Snapshot.Compression = format.CompressionS2
	cfg.Logging.Level = slog.LevelDebug

	data, err := cfg.Marshal()
	require.NoError(t, err)

	again, err := Parse(data)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := Logging{Level: slog.LevelWarn, Format: FormatJSON}.NewLogger(&buf)
	logger.Info("dropped")
	logger.Warn("kept", "stage", "source")

	out := buf.String()
	require.NotContains(t, out, "dropped")
	require.True(t, strings.HasPrefix(out, "{"))
	require.Contains(t, out, `"stage":"source"`)
}
