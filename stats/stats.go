// Package stats summarizes a recorded backtest run's performance, reading
// the portfolio value series a history.History accumulates. Grounded on
// original_source/pytrading/history.py as the reporting layer this data
// would otherwise feed (pandas/numpy there; gonum/stat here, a teacher
// go.mod dependency that had no home until now).
package stats

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/history"
)

func valueOf(snap history.Snapshot, code string) (float64, error) {
	raw, ok := snap.Values[code]
	if !ok {
		return 0, fmt.Errorf("%w: no value recorded for %q", backtraderr.ErrMissingResource, code)
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("%w: value for %q is not numeric", backtraderr.ErrTypeMismatch, code)
	}
	return v, nil
}

// Returns computes the simple period-over-period returns of portfolioCode's
// recorded value across snapshots, one element fewer than snapshots.
func Returns(snapshots []history.Snapshot, portfolioCode string) ([]float64, error) {
	if len(snapshots) < 2 {
		return nil, fmt.Errorf("%w: need at least two snapshots to compute a return", backtraderr.ErrMissingResource)
	}
	prev, err := valueOf(snapshots[0], portfolioCode)
	if err != nil {
		return nil, err
	}
	returns := make([]float64, 0, len(snapshots)-1)
	for _, snap := range snapshots[1:] {
		v, err := valueOf(snap, portfolioCode)
		if err != nil {
			return nil, err
		}
		if prev == 0 {
			return nil, fmt.Errorf("%w: portfolio value was zero", backtraderr.ErrDomainViolation)
		}
		returns = append(returns, (v-prev)/prev)
		prev = v
	}
	return returns, nil
}

// Summary is a portfolio's headline performance statistics over a run.
type Summary struct {
	Mean   float64
	StdDev float64
	Sharpe float64
}

// Summarize computes the mean, standard deviation and Sharpe ratio of
// portfolioCode's returns over snapshots, each return first reduced by
// riskFreeRate. Sharpe is NaN when returns have zero variance.
func Summarize(snapshots []history.Snapshot, portfolioCode string, riskFreeRate float64) (Summary, error) {
	returns, err := Returns(snapshots, portfolioCode)
	if err != nil {
		return Summary{}, err
	}
	excess := make([]float64, len(returns))
	for i, r := range returns {
		excess[i] = r - riskFreeRate
	}
	mean := stat.Mean(excess, nil)
	std := stat.StdDev(excess, nil)
	sharpe := math.NaN()
	if std != 0 {
		sharpe = mean / std
	}
	return Summary{Mean: mean, StdDev: std, Sharpe: sharpe}, nil
}
