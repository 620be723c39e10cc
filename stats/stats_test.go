package stats_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/backtrade/history"
	"github.com/aristath/backtrade/stats"
)

func snapshot(dt time.Time, value float64) history.Snapshot {
	return history.Snapshot{Datetime: dt, Values: map[string]any{"Portfolio": value}}
}

func TestReturns(t *testing.T) {
	snapshots := []history.Snapshot{
		snapshot(time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), 100),
		snapshot(time.Date(2020, 9, 2, 0, 0, 0, 0, time.UTC), 110),
		snapshot(time.Date(2020, 9, 3, 0, 0, 0, 0, time.UTC), 99),
	}
	returns, err := stats.Returns(snapshots, "Portfolio")
	require.NoError(t, err)
	require.Len(t, returns, 2)
	assert.InDelta(t, 0.10, returns[0], 1e-9)
	assert.InDelta(t, -0.10, returns[1], 1e-9)
}

func TestReturnsRequiresTwoSnapshots(t *testing.T) {
	_, err := stats.Returns([]history.Snapshot{snapshot(time.Now(), 100)}, "Portfolio")
	assert.Error(t, err)
}

func TestReturnsRejectsMissingCode(t *testing.T) {
	snapshots := []history.Snapshot{
		snapshot(time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), 100),
		snapshot(time.Date(2020, 9, 2, 0, 0, 0, 0, time.UTC), 110),
	}
	_, err := stats.Returns(snapshots, "Benchmark")
	assert.Error(t, err)
}

func TestSummarize(t *testing.T) {
	snapshots := []history.Snapshot{
		snapshot(time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), 100),
		snapshot(time.Date(2020, 9, 2, 0, 0, 0, 0, time.UTC), 110),
		snapshot(time.Date(2020, 9, 3, 0, 0, 0, 0, time.UTC), 121),
	}
	summary, err := stats.Summarize(snapshots, "Portfolio", 0)
	require.NoError(t, err)
	assert.InDelta(t, 0.10, summary.Mean, 1e-9)
	assert.InDelta(t, 0, summary.StdDev, 1e-9)
	assert.True(t, math.IsNaN(summary.Sharpe))
}
