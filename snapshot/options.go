package snapshot

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/fame/endian"
	"github.com/arloliu/fame/errs"
	"github.com/arloliu/fame/format"
	"github.com/arloliu/fame/internal/options"
)

// DefaultCompression is the payload codec used when none is configured.
const DefaultCompression = format.CompressionZstd

type config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	logger      *slog.Logger
}

// Option configures a snapshot reader or writer. Readers only honour
// WithLogger; the other settings are taken from the snapshot header.
type Option = options.Option[*config]

func newConfig(opts []Option) (*config, error) {
	cfg := &config{
		compression: DefaultCompression,
		engine:      endian.GetLittleEndianEngine(),
		logger:      slog.Default(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithCompression selects the payload codec.
func WithCompression(compression format.CompressionType) Option {
	return options.New(func(c *config) error {
		switch compression {
		case format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4:
			c.compression = compression
			return nil
		default:
			return fmt.Errorf("%w: %d", errs.ErrInvalidCompression, compression)
		}
	})
}

// WithBigEndian writes the payload in big-endian byte order.
func WithBigEndian() Option {
	return options.NoError(func(c *config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return options.NoError(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}
