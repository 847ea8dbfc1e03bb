package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type cacheConfig struct {
	capacity int
	stage    string
}

func withCapacity(n int) Option[*cacheConfig] {
	return New(func(c *cacheConfig) error {
		if n <= 0 {
			return errors.New("capacity must be positive")
		}
		c.capacity = n

		return nil
	})
}

func withStage(stage string) Option[*cacheConfig] {
	return NoError(func(c *cacheConfig) {
		c.stage = stage
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &cacheConfig{}
		err := Apply(cfg, withCapacity(4), withStage("source"), withCapacity(8))
		require.NoError(t, err)
		require.Equal(t, 8, cfg.capacity)
		require.Equal(t, "source", cfg.stage)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &cacheConfig{}
		err := Apply(cfg, withCapacity(0), withStage("distance"))
		require.Error(t, err)
		require.Empty(t, cfg.stage)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &cacheConfig{}
		require.NoError(t, Apply[*cacheConfig](cfg, nil, withStage("plot")))
		require.Equal(t, "plot", cfg.stage)
	})

	t.Run("no options", func(t *testing.T) {
		require.NoError(t, Apply(&cacheConfig{}))
	})
}
