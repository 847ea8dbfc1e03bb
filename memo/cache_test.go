package memo

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/fame/errs"
)

func TestCache_ComputesOnce(t *testing.T) {
	c, err := New[Key, string]("source")
	require.NoError(t, err)

	var calls int
	compute := func() (string, error) {
		calls++
		return "value", nil
	}

	key := Key{Input: 1, Settings: 2}
	first, err := c.Get(key, compute)
	require.NoError(t, err)
	second, err := c.Get(key, compute)
	require.NoError(t, err)

	require.Equal(t, 1, calls)
	require.Equal(t, first, second)
	require.True(t, c.Contains(key))
	require.Equal(t, "source", c.Stage())
}

func TestCache_ConcurrentGet(t *testing.T) {
	c, err := New[Key, int]("distance")
	require.NoError(t, err)

	const workers = 16

	// compute stays blocked until every worker has reached Get, so the
	// lookups overlap with the running computation.
	var arrived sync.WaitGroup
	arrived.Add(workers)

	var calls atomic.Int32
	compute := func() (int, error) {
		calls.Add(1)
		arrived.Wait()
		time.Sleep(10 * time.Millisecond)

		return 42, nil
	}

	var wg sync.WaitGroup
	results := make([]int, workers)
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			arrived.Done()
			v, err := c.Get(Key{Input: 7}, compute)
			if err == nil {
				results[i] = v
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int32(1), calls.Load())
	for _, v := range results {
		require.Equal(t, 42, v)
	}
}

func TestCache_ErrorsNotStored(t *testing.T) {
	c, err := New[Key, int]("plot")
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = c.Get(Key{}, func() (int, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	require.False(t, c.Contains(Key{}))

	v, err := c.Get(Key{}, func() (int, error) { return 3, nil })
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestCache_Eviction(t *testing.T) {
	c, err := New[Key, int]("source", WithCapacity(2))
	require.NoError(t, err)

	for i := range 3 {
		_, err := c.Get(Key{Input: uint64(i)}, func() (int, error) { return i, nil })
		require.NoError(t, err)
	}
	require.Equal(t, 2, c.Len())
	require.False(t, c.Contains(Key{Input: 0}))

	v, ok := c.Peek(Key{Input: 2})
	require.True(t, ok)
	require.Equal(t, 2, v)

	require.True(t, c.Remove(Key{Input: 2}))
	c.Purge()
	require.Zero(t, c.Len())
}

func TestCache_InvalidCapacity(t *testing.T) {
	_, err := New[Key, int]("source", WithCapacity(0))
	require.ErrorIs(t, err, errs.ErrInvalidCapacity)
}

func TestCache_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	source, err := New[Key, int]("source", WithMetrics(m), WithLogger(nil))
	require.NoError(t, err)
	distance, err := New[Key, int]("distance", WithMetrics(m))
	require.NoError(t, err)

	ok := func() (int, error) { return 1, nil }
	fail := func() (int, error) { return 0, errors.New("fail") }

	_, _ = source.Get(Key{Input: 1}, ok)
	_, _ = source.Get(Key{Input: 1}, ok)
	_, _ = source.Get(Key{Input: 1}, ok)
	_, _ = distance.Get(Key{Input: 1}, fail)

	require.InDelta(t, 2, counter(t, reg, "fame_cache_hits_total", "source"), 0)
	require.InDelta(t, 1, counter(t, reg, "fame_cache_misses_total", "source"), 0)
	require.InDelta(t, 1, counter(t, reg, "fame_cache_misses_total", "distance"), 0)
	require.InDelta(t, 1, counter(t, reg, "fame_cache_compute_errors_total", "distance"), 0)
	require.InDelta(t, 0, counter(t, reg, "fame_cache_compute_errors_total", "source"), 0)
	require.Equal(t, uint64(1), histogramCount(t, reg, "fame_cache_compute_seconds", "source"))
}

func TestKey_String(t *testing.T) {
	require.Equal(t, "0000000000000001:00000000000000ff", Key{Input: 1, Settings: 255}.String())
}

func counter(t *testing.T, reg *prometheus.Registry, name, stage string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "stage" && label.GetValue() == stage {
					return m.GetCounter().GetValue()
				}
			}
		}
	}

	return 0
}

func histogramCount(t *testing.T, reg *prometheus.Registry, name, stage string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, label := range m.GetLabel() {
				if label.GetName() == "stage" && label.GetValue() == stage {
					return m.GetHistogram().GetSampleCount()
				}
			}
		}
	}

	return 0
}
