// Package fame is the analytics engine of a gas chromatography workbench for
// fatty acid methyl esters.
//
// A Workbench wires the stages together and memoizes each of them:
//
//	measurements ─▶ Source ─▶ Distance ─▶ ShapeDistance ─▶ DistancePlot
//	                   └─────▶ SourcePlot
//
// Every stage output is cached under the fingerprint of its input table and
// the hash of the settings fields the stage depends on, so repeated calls
// with unchanged inputs return the stored value without recomputing it.
//
// # Basic Usage
//
//	wb, _ := fame.New(fame.WithCapacity(16))
//
//	src, _ := wb.Source(measurements, source.DefaultSettings())
//	dist, _ := wb.Distance(src)
//	shaped, _ := wb.ShapeDistance(dist, distance.DefaultSettings())
//	points, _ := wb.DistancePlot(dist, distance.DefaultSettings(), plot.DefaultDistanceSettings())
//
// Snapshots of the stage outputs are written with the configured compression:
//
//	_ = wb.SaveSource(file, snapshot.Metadata{Name: "oils"}, src)
package fame

import (
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/arloliu/fame/config"
	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/hash"
	"github.com/arloliu/fame/internal/options"
	"github.com/arloliu/fame/memo"
	"github.com/arloliu/fame/plot"
	"github.com/arloliu/fame/snapshot"
	"github.com/arloliu/fame/source"
	"github.com/arloliu/fame/table"
)

// Stage names used for cache logs and metric labels.
const (
	StageSource        = "source"
	StageSourcePlot    = "source_plot"
	StageDistance      = "distance"
	StageDistanceShape = "distance_shape"
	StageDistancePlot  = "distance_plot"
)

type workbenchConfig struct {
	logger      *slog.Logger
	capacity    int
	registerer  prometheus.Registerer
	compression format.CompressionType
	bigEndian   bool
}

// Option configures a Workbench.
type Option = options.Option[*workbenchConfig]

// WithLogger sets the logger of the workbench and its caches.
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *workbenchConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithCapacity sets the number of entries each stage cache keeps.
func WithCapacity(capacity int) Option {
	return options.NoError(func(c *workbenchConfig) {
		c.capacity = capacity
	})
}

// WithRegisterer registers the cache metrics with reg. Without it the
// metrics are collected but not exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return options.NoError(func(c *workbenchConfig) {
		c.registerer = reg
	})
}

// WithCompression selects the codec of snapshots written by the workbench.
func WithCompression(compression format.CompressionType) Option {
	return options.NoError(func(c *workbenchConfig) {
		c.compression = compression
	})
}

// WithBigEndian writes snapshots in big-endian byte order.
func WithBigEndian(enabled bool) Option {
	return options.NoError(func(c *workbenchConfig) {
		c.bigEndian = enabled
	})
}

// Workbench computes and memoizes the stages of the pipeline. It is safe for
// concurrent use.
type Workbench struct {
	logger    *slog.Logger
	snapshots []snapshot.Option

	sources       *memo.Cache[memo.Key, table.Frame[source.Row]]
	sourcePlots   *memo.Cache[memo.Key, plot.Value]
	distances     *memo.Cache[memo.Key, table.Frame[distance.Row]]
	shapes        *memo.Cache[memo.Key, table.Frame[distance.Row]]
	distancePlots *memo.Cache[memo.Key, plot.Value]
	caches        map[string]stageCache
}

type stageCache interface {
	Len() int
	Purge()
}

// New creates a workbench.
func New(opts ...Option) (*Workbench, error) {
	cfg := &workbenchConfig{
		logger:      slog.Default(),
		capacity:    memo.DefaultCapacity,
		compression: snapshot.DefaultCompression,
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	cacheOpts := []memo.Option{
		memo.WithCapacity(cfg.capacity),
		memo.WithLogger(cfg.logger),
		memo.WithMetrics(memo.NewMetrics(cfg.registerer)),
	}

	wb := &Workbench{
		logger:    cfg.logger,
		snapshots: []snapshot.Option{snapshot.WithCompression(cfg.compression), snapshot.WithLogger(cfg.logger)},
		caches:    make(map[string]stageCache),
	}
	if cfg.bigEndian {
		wb.snapshots = append(wb.snapshots, snapshot.WithBigEndian())
	}

	var err error
	if wb.sources, err = newCache[table.Frame[source.Row]](wb, StageSource, cacheOpts); err != nil {
		return nil, err
	}
	if wb.sourcePlots, err = newCache[plot.Value](wb, StageSourcePlot, cacheOpts); err != nil {
		return nil, err
	}
	if wb.distances, err = newCache[table.Frame[distance.Row]](wb, StageDistance, cacheOpts); err != nil {
		return nil, err
	}
	if wb.shapes, err = newCache[table.Frame[distance.Row]](wb, StageDistanceShape, cacheOpts); err != nil {
		return nil, err
	}
	if wb.distancePlots, err = newCache[plot.Value](wb, StageDistancePlot, cacheOpts); err != nil {
		return nil, err
	}

	return wb, nil
}

// NewFromConfig creates a workbench from the cache and snapshot sections of
// cfg. opts are applied after them.
func NewFromConfig(cfg config.Config, opts ...Option) (*Workbench, error) {
	base := []Option{
		WithCapacity(cfg.Cache.Capacity),
		WithCompression(cfg.Snapshot.Compression),
		WithBigEndian(cfg.Snapshot.BigEndian),
	}

	return New(append(base, opts...)...)
}

func newCache[V any](wb *Workbench, stage string, opts []memo.Option) (*memo.Cache[memo.Key, V], error) {
	c, err := memo.New[memo.Key, V](stage, opts...)
	if err != nil {
		return nil, err
	}
	wb.caches[stage] = c

	return c, nil
}

// Source enriches measurements. The key covers every Source setting.
func (wb *Workbench) Source(input table.Frame[table.Measurement], settings source.Settings) (table.Frame[source.Row], error) {
	key := memo.Key{Input: input.Fingerprint, Settings: settings.Hash()}

	return wb.sources.Get(key, func() (table.Frame[source.Row], error) {
		out, err := source.Compute(input, settings)
		if err == nil {
			wb.logger.Debug("source computed", "input_rows", input.Len(), "rows", out.Len())
		}

		return out, err
	})
}

// SourcePlot projects the Source table of input. The key covers ddof,
// interpolation, filter, axes and point radius; sort order, the relative
// reference, legend and precision do not change the projection.
func (wb *Workbench) SourcePlot(
	input table.Frame[table.Measurement],
	settings source.Settings,
	plotSettings plot.Settings,
) (plot.Value, error) {
	h := hash.New().Int(settings.Ddof).Bool(settings.Logarithmic)
	settings.Filter.AppendHash(h)
	plotSettings.AppendHash(h)
	key := memo.Key{Input: input.Fingerprint, Settings: h.Sum64()}

	return wb.sourcePlots.Get(key, func() (plot.Value, error) {
		canonical := source.DefaultSettings()
		canonical.Ddof = settings.Ddof
		canonical.Logarithmic = settings.Logarithmic
		canonical.Filter = settings.Filter

		src, err := wb.Source(input, canonical)
		if err != nil {
			return plot.Value{}, err
		}

		return plot.Source(src, plotSettings)
	})
}

// Distance pairs the rows of a Source table. The key is the Source
// fingerprint alone.
func (wb *Workbench) Distance(input table.Frame[source.Row]) (table.Frame[distance.Row], error) {
	key := memo.Key{Input: input.Fingerprint}

	return wb.distances.Get(key, func() (table.Frame[distance.Row], error) {
		out, err := distance.Compute(input)
		if err == nil {
			wb.logger.Debug("distance computed", "input_rows", input.Len(), "rows", out.Len())
		}

		return out, err
	})
}

// ShapeDistance filters and orders a Distance table. The key covers the
// filter and the sort.
func (wb *Workbench) ShapeDistance(input table.Frame[distance.Row], settings distance.Settings) (table.Frame[distance.Row], error) {
	key := memo.Key{Input: input.Fingerprint, Settings: settings.Hash()}

	return wb.shapes.Get(key, func() (table.Frame[distance.Row], error) {
		if err := settings.Validate(); err != nil {
			return table.Frame[distance.Row]{}, err
		}
		out, err := distance.Shape(input, settings)
		if err == nil {
			wb.logger.Debug("distance shaped", "input_rows", input.Len(), "rows", out.Len())
		}

		return out, err
	})
}

// DistancePlot shapes and projects a Distance table. The key covers the
// filter, the sort, the axes and the point radius.
func (wb *Workbench) DistancePlot(
	input table.Frame[distance.Row],
	settings distance.Settings,
	plotSettings plot.Settings,
) (plot.Value, error) {
	h := hash.New().Uint64(settings.Hash())
	plotSettings.AppendHash(h)
	key := memo.Key{Input: input.Fingerprint, Settings: h.Sum64()}

	return wb.distancePlots.Get(key, func() (plot.Value, error) {
		shaped, err := wb.ShapeDistance(input, settings)
		if err != nil {
			return plot.Value{}, err
		}

		return plot.Distance(shaped, plotSettings)
	})
}

// Result holds every stage output of Analyze.
type Result struct {
	Source       table.Frame[source.Row]
	Distance     table.Frame[distance.Row]
	Shaped       table.Frame[distance.Row]
	SourcePlot   plot.Value
	DistancePlot plot.Value
}

// Analyze runs the whole pipeline over input with the stage settings of cfg.
func (wb *Workbench) Analyze(input table.Frame[table.Measurement], cfg config.Config) (Result, error) {
	var (
		res Result
		err error
	)
	if res.Source, err = wb.Source(input, cfg.Source); err != nil {
		return Result{}, err
	}
	if res.SourcePlot, err = wb.SourcePlot(input, cfg.Source, cfg.SourcePlot); err != nil {
		return Result{}, err
	}
	if res.Distance, err = wb.Distance(res.Source); err != nil {
		return Result{}, err
	}
	if res.Shaped, err = wb.ShapeDistance(res.Distance, cfg.Distance); err != nil {
		return Result{}, err
	}
	if res.DistancePlot, err = wb.DistancePlot(res.Distance, cfg.Distance, cfg.DistancePlot); err != nil {
		return Result{}, err
	}

	return res, nil
}

// LoadMeasurements reads a measurement snapshot.
func (wb *Workbench) LoadMeasurements(r io.Reader) (table.Frame[table.Measurement], snapshot.Metadata, error) {
	return snapshot.ReadMeasurements(r, snapshot.WithLogger(wb.logger))
}

// SaveMeasurements writes a measurement snapshot.
func (wb *Workbench) SaveMeasurements(w io.Writer, meta snapshot.Metadata, frame table.Frame[table.Measurement]) error {
	return snapshot.WriteMeasurements(w, meta, frame, wb.snapshots...)
}

// SaveSource writes a Source snapshot.
func (wb *Workbench) SaveSource(w io.Writer, meta snapshot.Metadata, frame table.Frame[source.Row]) error {
	return snapshot.WriteSource(w, meta, frame, wb.snapshots...)
}

// SaveDistance writes a Distance snapshot.
func (wb *Workbench) SaveDistance(w io.Writer, meta snapshot.Metadata, frame table.Frame[distance.Row]) error {
	return snapshot.WriteDistance(w, meta, frame, wb.snapshots...)
}

// Len returns the number of outputs cached for stage, or zero for an
// unknown stage.
func (wb *Workbench) Len(stage string) int {
	if c, ok := wb.caches[stage]; ok {
		return c.Len()
	}

	return 0
}

// Purge drops every cached stage output.
func (wb *Workbench) Purge() {
	for _, c := range wb.caches {
		c.Purge()
	}
}
