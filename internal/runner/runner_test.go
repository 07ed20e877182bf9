package runner

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockstat/internal/stats"
	"stockstat/pkg/contracts/domain"
)

// randomSeries builds a plausible multi-decade daily price series with a
// fixed seed so every test run sees the same data.
func randomSeries(n int, seed int64) []domain.DailyRecord {
	rng := rand.New(rand.NewSource(seed))
	records := make([]domain.DailyRecord, n)
	day := time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 50.0
	for i := 0; i < n; i++ {
		price *= 1 + 0.03*(rng.Float64()-0.5)
		low := price * (1 - 0.01*rng.Float64())
		high := price * (1 + 0.01*rng.Float64())
		records[i] = domain.DailyRecord{
			Date:   day,
			Open:   price,
			High:   high,
			Low:    low,
			Close:  price,
			Volume: float64(rng.Intn(1_000_000)),
		}
		day = day.AddDate(0, 0, 1)
		if i%200 == 199 {
			day = day.AddDate(1, 0, 0) // occasional gap across years
		}
	}
	return records
}

func TestNewFactory(t *testing.T) {
	for _, name := range []string{BackendSerial, BackendParallel, BackendScatter} {
		r, err := New(name, Options{})
		require.NoError(t, err)
		assert.Equal(t, name, r.Name())
	}

	_, err := New("mpi", Options{})
	assert.Error(t, err)
}

// TestBackendEquivalence is the partitioning-invariance property: every
// backend, at several worker counts, must agree with the serial baseline
// to floating point tolerance.
func TestBackendEquivalence(t *testing.T) {
	records := randomSeries(5000, 11)
	ctx := context.Background()

	baseline, err := Summarize(ctx, NewSerial(Options{}), records)
	require.NoError(t, err)
	require.Equal(t, int64(5000), baseline.RecordCount)
	require.Equal(t, int64(4999), baseline.ReturnCount)

	for _, workers := range []int{0, 1, 2, 3, 7, 16} {
		for _, backend := range []string{BackendParallel, BackendScatter} {
			r, err := New(backend, Options{Workers: workers})
			require.NoError(t, err)

			got, err := Summarize(ctx, r, records)
			require.NoError(t, err, "%s workers=%d", backend, workers)

			assert.Equal(t, baseline.RecordCount, got.RecordCount, "%s workers=%d", backend, workers)
			assert.Equal(t, baseline.ReturnCount, got.ReturnCount, "%s workers=%d", backend, workers)
			assert.InEpsilon(t, baseline.MeanPrice, got.MeanPrice, 1e-9, "%s workers=%d", backend, workers)
			assert.InDelta(t, baseline.MeanReturn, got.MeanReturn, 1e-9, "%s workers=%d", backend, workers)
			assert.InDelta(t, baseline.Volatility, got.Volatility, 1e-9, "%s workers=%d", backend, workers)
		}
	}
}

func TestBackendEquivalenceBuckets(t *testing.T) {
	records := randomSeries(3000, 23)
	ctx := context.Background()
	opts := Options{Filter: stats.DefaultFilter(), TrackAllYears: true}

	base, err := NewSerial(opts).AccumulateBuckets(ctx, records)
	require.NoError(t, err)
	baseSummaries := base.Finalize()
	require.NotEmpty(t, baseSummaries)

	for _, workers := range []int{1, 4, 9} {
		for _, backend := range []string{BackendParallel, BackendScatter} {
			o := opts
			o.Workers = workers
			r, err := New(backend, o)
			require.NoError(t, err)

			got, err := r.AccumulateBuckets(ctx, records)
			require.NoError(t, err)

			gotSummaries := got.Finalize()
			require.Equal(t, len(baseSummaries), len(gotSummaries), "%s workers=%d", backend, workers)

			gotMin, gotMax, ok := got.YearRange()
			require.True(t, ok)
			baseMin, baseMax, _ := base.YearRange()
			assert.Equal(t, baseMin, gotMin)
			assert.Equal(t, baseMax, gotMax)

			for start, want := range baseSummaries {
				s, ok := gotSummaries[start]
				require.True(t, ok, "%s workers=%d decade=%d", backend, workers, start)
				assert.Equal(t, want.RecordCount, s.RecordCount, "decade=%d", start)
				assert.Equal(t, want.ReturnCount, s.ReturnCount, "decade=%d", start)
				assert.InDelta(t, want.MeanPrice, s.MeanPrice, 1e-9)
				assert.InDelta(t, want.Volatility, s.Volatility, 1e-9)
			}
		}
	}
}

func TestEmptyAndTinyInputs(t *testing.T) {
	ctx := context.Background()
	for _, backend := range []string{BackendSerial, BackendParallel, BackendScatter} {
		r, err := New(backend, Options{Workers: 4})
		require.NoError(t, err)

		t.Run(backend+"/empty", func(t *testing.T) {
			s, err := Summarize(ctx, r, nil)
			require.NoError(t, err)
			assert.True(t, s.Insufficient())
			assert.False(t, s.HasPrices)
		})

		t.Run(backend+"/single record", func(t *testing.T) {
			s, err := Summarize(ctx, r, randomSeries(1, 5))
			require.NoError(t, err)
			assert.True(t, s.Insufficient())
			assert.True(t, s.HasPrices)
			assert.False(t, s.HasReturns)
		})
	}
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := randomSeries(100, 3)
	for _, backend := range []string{BackendSerial, BackendParallel, BackendScatter} {
		r, err := New(backend, Options{})
		require.NoError(t, err)
		_, err = r.Accumulate(ctx, records)
		assert.Error(t, err, backend)
	}
}

func TestSplitRows(t *testing.T) {
	tests := []struct {
		n, w     int
		expected []assignment
	}{
		{10, 2, []assignment{{0, 0, 5}, {1, 5, 10}}},
		{10, 3, []assignment{{0, 0, 4}, {1, 4, 7}, {2, 7, 10}}},
		{1, 1, []assignment{{0, 0, 1}}},
		{0, 1, []assignment{{0, 0, 0}}},
	}
	for _, tt := range tests {
		got := splitRows(tt.n, tt.w)
		assert.Equal(t, tt.expected, got, "n=%d w=%d", tt.n, tt.w)

		// Ranges must tile [0, n) exactly.
		lo := 0
		for _, a := range got {
			assert.Equal(t, lo, a.lo)
			lo = a.hi
		}
		assert.Equal(t, tt.n, lo)
	}
}
