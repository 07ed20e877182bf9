package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockstat/pkg/contracts/domain"
)

func TestDecadeStart(t *testing.T) {
	tests := []struct {
		year     int
		expected int
	}{
		{1975, 1970},
		{1900, 1900},
		{1909, 1900},
		{1910, 1910},
		{2010, 2010},
		{2019, 2010},
		{2100, 2100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, DecadeStart(tt.year), "year=%d", tt.year)
	}
}

func TestDecadeLabel(t *testing.T) {
	assert.Equal(t, "1970-1979", DecadeLabel(1970, false))
	assert.Equal(t, "2010-2019", DecadeLabel(2010, false))
	// Compat mode reproduces the historical long final decade.
	assert.Equal(t, "2010-2020", DecadeLabel(2010, true))
	assert.Equal(t, "1970-1979", DecadeLabel(1970, true))
}

func TestBucketSetPartitioning(t *testing.T) {
	records := []domain.DailyRecord{
		bar(1975, 3, 1, 10, 12, 9, 11),
		bar(1975, 3, 2, 11, 13, 10, 12),
		bar(1986, 7, 1, 20, 22, 19, 21),
		bar(1986, 7, 2, 21, 23, 20, 22),
	}

	b := NewBucketSet(nil, true)
	b.AccumulateRange(records, 0, len(records))
	summaries := b.Finalize()

	require.Len(t, summaries, 2)
	assert.Contains(t, summaries, 1970)
	assert.Contains(t, summaries, 1980)

	assert.Equal(t, int64(2), summaries[1970].RecordCount)
	assert.Equal(t, int64(2), summaries[1980].RecordCount)

	// The 1975->1986 boundary pair is keyed by the earlier record's
	// year, so its return lands in the 1970s bucket.
	assert.Equal(t, int64(2), summaries[1970].ReturnCount)
	assert.Equal(t, int64(1), summaries[1980].ReturnCount)
}

func TestBucketSetYearRangeTracking(t *testing.T) {
	records := []domain.DailyRecord{
		bar(1850, 1, 1, 10, 10, 10, 10), // outside [1900, 2100]
		bar(1975, 1, 2, 10, 10, 10, 10),
		bar(1975, 1, 3, 10, 10, 10, 11),
	}

	t.Run("unconditional tracking includes dropped years", func(t *testing.T) {
		b := NewBucketSet(nil, true)
		b.AccumulateRange(records, 0, len(records))

		min, max, ok := b.YearRange()
		require.True(t, ok)
		assert.Equal(t, 1850, min)
		assert.Equal(t, 1975, max)

		// The 1850 record still contributes to no bucket.
		summaries := b.Finalize()
		require.Len(t, summaries, 1)
		assert.Equal(t, int64(2), summaries[1970].RecordCount)
	})

	t.Run("filtered tracking ignores dropped years", func(t *testing.T) {
		b := NewBucketSet(nil, false)
		b.AccumulateRange(records, 0, len(records))

		min, max, ok := b.YearRange()
		require.True(t, ok)
		assert.Equal(t, 1975, min)
		assert.Equal(t, 1975, max)
	})
}

func TestBucketSetOutOfRangeReturnsDropped(t *testing.T) {
	// The pair starting at an out-of-range year contributes no return,
	// even though the second record is in range.
	records := []domain.DailyRecord{
		bar(1899, 12, 31, 10, 10, 10, 10),
		bar(1900, 1, 1, 10, 10, 10, 12),
		bar(1900, 1, 2, 12, 12, 12, 13),
	}
	b := NewBucketSet(nil, true)
	b.AccumulateRange(records, 0, len(records))
	summaries := b.Finalize()

	require.Contains(t, summaries, 1900)
	assert.Equal(t, int64(1), summaries[1900].ReturnCount)
	assert.NotContains(t, summaries, 1890)
}

func TestBucketSetMergeMatchesUnsplit(t *testing.T) {
	var records []domain.DailyRecord
	day := time.Date(1962, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 25.0
	for i := 0; i < 600; i++ {
		price *= 1 + 0.001*float64(i%7-3)
		records = append(records, domain.DailyRecord{
			Date: day, Open: price, High: price * 1.01, Low: price * 0.99, Close: price,
		})
		day = day.AddDate(0, 1, 0) // monthly spacing crosses several decades
	}

	whole := NewBucketSet(nil, true)
	whole.AccumulateRange(records, 0, len(records))
	wholeSummaries := whole.Finalize()

	for _, cuts := range [][]int{{0, 300, 600}, {0, 7, 450, 600}} {
		merged := NewBucketSet(nil, true)
		for i := 0; i+1 < len(cuts); i++ {
			part := NewBucketSet(nil, true)
			part.AccumulateRange(records, cuts[i], cuts[i+1])
			merged.Merge(part)
		}

		mergedSummaries := merged.Finalize()
		require.Equal(t, len(wholeSummaries), len(mergedSummaries), "cuts=%v", cuts)
		for start, want := range wholeSummaries {
			got, ok := mergedSummaries[start]
			require.True(t, ok, "missing decade %d", start)
			assert.Equal(t, want.RecordCount, got.RecordCount)
			assert.Equal(t, want.ReturnCount, got.ReturnCount)
			assert.InDelta(t, want.MeanPrice, got.MeanPrice, 1e-9)
			assert.InDelta(t, want.Volatility, got.Volatility, 1e-9)
		}
	}
}

func TestBucketSetDecadesSorted(t *testing.T) {
	records := []domain.DailyRecord{
		bar(2015, 1, 1, 10, 10, 10, 10),
		bar(1955, 1, 1, 10, 10, 10, 10),
		bar(1985, 1, 1, 10, 10, 10, 10),
	}
	b := NewBucketSet(nil, true)
	b.AccumulateRange(records, 0, len(records))
	assert.Equal(t, []int{1950, 1980, 2010}, b.Decades())
}
