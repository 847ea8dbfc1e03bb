// Package config loads the YAML configuration of the workbench: the settings
// of every stage, the cache, the snapshot writer and logging.
//
// Missing keys keep their defaults, so a file only needs to list what it
// changes:
//
//	source:
//	  ddof: 0
//	  relative: C16:0
//	  sort: time
//	distance:
//	  sort:
//	    by: value
//	    aggregation: maximum
//	    metric: alpha
//	distance_plot:
//	  axes: {x: ecl_delta, y: alpha}
//	cache:
//	  capacity: 16
//	snapshot:
//	  compression: lz4
//	logging:
//	  level: debug
//	  format: json
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arloliu/fame/distance"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/memo"
	"github.com/arloliu/fame/plot"
	"github.com/arloliu/fame/snapshot"
	"github.com/arloliu/fame/source"
)

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config is the complete workbench configuration.
type Config struct {
	Source       source.Settings   `yaml:"source"`
	Distance     distance.Settings `yaml:"distance"`
	SourcePlot   plot.Settings     `yaml:"source_plot"`
	DistancePlot plot.Settings     `yaml:"distance_plot"`
	Cache        Cache             `yaml:"cache"`
	Snapshot     Snapshot          `yaml:"snapshot"`
	Logging      Logging           `yaml:"logging"`
}

// Cache configures the per-stage memo caches.
type Cache struct {
	// Capacity is the number of entries each stage keeps.
	Capacity int `yaml:"capacity"`
}

// Snapshot configures the snapshot writer.
type Snapshot struct {
	Compression format.CompressionType `yaml:"compression"`
	BigEndian   bool                   `yaml:"big_endian"`
}

// Options returns the writer options described by s.
func (s Snapshot) Options() []snapshot.Option {
	opts := []snapshot.Option{snapshot.WithCompression(s.Compression)}
	if s.BigEndian {
		opts = append(opts, snapshot.WithBigEndian())
	}

	return opts
}

// Logging configures the logger built by NewLogger.
type Logging struct {
	Level  slog.Level `yaml:"level"`
	Format string     `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Source:       source.DefaultSettings(),
		Distance:     distance.DefaultSettings(),
		SourcePlot:   plot.DefaultSourceSettings(),
		DistancePlot: plot.DefaultDistanceSettings(),
		Cache:        Cache{Capacity: memo.DefaultCapacity},
		Snapshot:     Snapshot{Compression: snapshot.DefaultCompression},
		Logging:      Logging{Level: slog.LevelInfo, Format: FormatText},
	}
}

// Load reads and validates the configuration file at path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}

	return cfg, nil
}

// Parse decodes YAML over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(data []byte) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("%w: %w", errs.ErrInvalidSettings, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := c.Distance.Validate(); err != nil {
		return fmt.Errorf("distance: %w", err)
	}
	if c.SourcePlot.Axes != plot.SourceAxes {
		return fmt.Errorf("source_plot: %w: %s", errs.ErrUnimplementedAxes, c.SourcePlot.Axes)
	}
	if c.DistancePlot.Axes != plot.StepAlphaAxes && c.DistancePlot.Axes != plot.ECLDeltaAlphaAxes {
		return fmt.Errorf("distance_plot: %w: %s", errs.ErrUnimplementedAxes, c.DistancePlot.Axes)
	}
	if c.Cache.Capacity <= 0 {
		return fmt.Errorf("cache: %w: %d", errs.ErrInvalidCapacity, c.Cache.Capacity)
	}
	switch c.Snapshot.Compression {
	case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
	default:
		return fmt.Errorf("snapshot: %w: %d", errs.ErrInvalidCompression, c.Snapshot.Compression)
	}
	if c.Logging.Format != FormatText && c.Logging.Format != FormatJSON {
		return fmt.Errorf("logging: %w: format %q", errs.ErrInvalidSettings, c.Logging.Format)
	}

	return nil
}

// NewLogger builds a logger writing to w with the configured level and format.
func (l Logging) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: l.Level}
	if l.Format == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}

	return slog.New(slog.NewTextHandler(w, opts))
}

// Marshal encodes c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
