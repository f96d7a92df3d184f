package statistics

import (
	"math"
	"testing"

	"github.com/lox/showdown/poker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatisticsEmpty(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}

	assert.Zero(t, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Zero(t, stats.StdDev())
	assert.Zero(t, stats.StdError())
	assert.Zero(t, stats.Median())
	assert.Zero(t, stats.Percentile(0.5))
	assert.Error(t, stats.Validate(), "no hands")
}

func TestStatisticsSingleValue(t *testing.T) {
	t.Parallel()
	stats := &Statistics{BigBlind: 2}

	stats.Add(HandResult{
		NetBB:          2.5,
		Position:       3,
		WentToShowdown: true,
		FinalPotSize:   20,
		Category:       poker.CategoryFlush,
	})

	assert.Equal(t, 1, stats.Hands)
	assert.Equal(t, 2.5, stats.Mean())
	assert.Zero(t, stats.Variance())
	assert.Equal(t, 2.5, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Zero(t, stats.NonShowdownWins)
	assert.Equal(t, 1, stats.Categories[poker.CategoryFlush])
	assert.Equal(t, 1, stats.ShowdownCount())
	assert.True(t, stats.IsLedgerBalanced())
	assert.NoError(t, stats.Validate())
}

func TestStatisticsMultipleValues(t *testing.T) {
	t.Parallel()
	stats := &Statistics{BigBlind: 2}

	results := []HandResult{
		{NetBB: 1.0, Position: 1, WentToShowdown: false, FinalPotSize: 4},
		{NetBB: -2.0, Position: 2, WentToShowdown: true, FinalPotSize: 8},
		{NetBB: 3.0, Position: 3, WentToShowdown: true, FinalPotSize: 12},
		{NetBB: 0.0, Position: 1, WentToShowdown: false, FinalPotSize: 2},
		{NetBB: -1.0, Position: 2, WentToShowdown: false, FinalPotSize: 6},
	}
	for _, r := range results {
		stats.Add(r)
	}

	assert.Equal(t, 5, stats.Hands)
	assert.InDelta(t, 0.2, stats.Mean(), 1e-9)
	assert.Equal(t, 0.0, stats.Median())
	assert.Equal(t, 1, stats.ShowdownWins)
	assert.Equal(t, 1, stats.NonShowdownWins)
	assert.InDelta(t, 1.0, stats.ShowdownBB, 1e-9)
	assert.InDelta(t, 0.0, stats.NonShowdownBB, 1e-9)
	assert.Equal(t, 2, stats.PositionResults[1].Hands)
	assert.Equal(t, 2, stats.PositionResults[2].Hands)
	assert.Equal(t, 1, stats.PositionResults[3].Hands)
	assert.Equal(t, 12, stats.MaxPotChips)
	assert.Equal(t, 6.0, stats.MaxPotBB)
	assert.NoError(t, stats.Validate())
}

func TestStatisticsPercentiles(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for i := 1; i <= 11; i++ {
		stats.Add(HandResult{NetBB: float64(i)})
	}

	assert.Equal(t, 1.0, stats.Percentile(0))
	assert.Equal(t, 6.0, stats.Percentile(0.5))
	assert.Equal(t, 11.0, stats.Percentile(1))
	assert.InDelta(t, 3.5, stats.Percentile(0.25), 1e-9)
}

func TestStatisticsConfidenceInterval(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	for _, v := range []float64{2, 4, 4, 4, 5, 5, 7, 9} {
		stats.Add(HandResult{NetBB: v})
	}

	assert.Equal(t, 5.0, stats.Mean())
	assert.InDelta(t, 32.0/7, stats.Variance(), 1e-9)

	low, high := stats.ConfidenceInterval95()
	margin := 1.96 * math.Sqrt(32.0/7) / math.Sqrt(8)
	assert.InDelta(t, 5-margin, low, 1e-9)
	assert.InDelta(t, 5+margin, high, 1e-9)
}

func TestStatisticsPositionMean(t *testing.T) {
	t.Parallel()
	stats := &Statistics{}
	stats.Add(HandResult{NetBB: 2.0, Position: 1})
	stats.Add(HandResult{NetBB: 3.0, Position: 1})
	stats.Add(HandResult{NetBB: -1.0, Position: 0})
	stats.Add(HandResult{NetBB: 1.0, Position: 0})

	assert.Equal(t, 2.5, stats.PositionMean(1))
	assert.Equal(t, 0.0, stats.PositionMean(0))
	assert.Zero(t, stats.PositionMean(-1))
	assert.Zero(t, stats.PositionMean(len(stats.PositionResults)))
}

func TestStatisticsBigPots(t *testing.T) {
	t.Parallel()
	stats := &Statistics{BigBlind: 50}

	stats.Add(HandResult{NetBB: 1.0, FinalPotSize: 500})  // 10bb
	stats.Add(HandResult{NetBB: 5.0, FinalPotSize: 5000}) // 100bb
	stats.Add(HandResult{NetBB: -1.0, FinalPotSize: 100}) // 2bb

	assert.Equal(t, 5000, stats.MaxPotChips)
	assert.Equal(t, 100.0, stats.MaxPotBB)
	assert.Equal(t, 1, stats.BigPots)
	assert.Equal(t, 5.0, stats.BigPotsBB)
}

func TestStatisticsValidateFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(s *Statistics)
		want   string
	}{
		{
			name:   "ledger mismatch",
			mutate: func(s *Statistics) { s.AllBB += 1 },
			want:   "ledger mismatch",
		},
		{
			name:   "values mismatch",
			mutate: func(s *Statistics) { s.Values = s.Values[:1] },
			want:   "values array length",
		},
		{
			name:   "too many wins",
			mutate: func(s *Statistics) { s.ShowdownWins = 5 },
			want:   "exceeds total hands",
		},
		{
			name:   "position mismatch",
			mutate: func(s *Statistics) { s.PositionResults[4].Hands++ },
			want:   "position hands total",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			stats := &Statistics{}
			stats.Add(HandResult{NetBB: 1.0, Position: 1})
			stats.Add(HandResult{NetBB: -1.0, Position: 2, WentToShowdown: true})
			require.NoError(t, stats.Validate())

			tt.mutate(stats)
			assert.ErrorContains(t, stats.Validate(), tt.want)
		})
	}
}
