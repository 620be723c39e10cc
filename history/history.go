// Package history records, at each backtest timestamp, a snapshot of every
// tracked asset's local value, every fx rate, every watched portfolio's
// value and holdings, and whatever indicators a backtest has computed.
// Grounded on original_source/pytrading/history.py.
package history

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

// IndicatorProvider supplies the indicators a backtest has computed, so a
// snapshot can fold them in alongside asset/fx/portfolio rows. backtest.
// Backtest satisfies this structurally; declaring it here (instead of
// importing backtest) avoids a history<->backtest import cycle.
type IndicatorProvider interface {
	Indicators() map[string]any
}

// Row is one named value a Visitor contributes to a snapshot.
type Row struct {
	Name  string
	Value any
}

// Snapshot is one timestamp's recorded values, keyed by the same names
// pytrading/history.py uses as its DataFrame column labels.
type Snapshot struct {
	Datetime time.Time      `msgpack:"datetime"`
	Values   map[string]any `msgpack:"values"`
}

// History accumulates a Snapshot per call to TakeSnapshot, implementing
// backtest.Recorder.
type History struct {
	world            *world.World
	portfolios       []*portfolio.Portfolio
	indicatorSource  IndicatorProvider
	assetVisitor     AssetVisitor
	fxRateVisitor    FxRateVisitor
	portfolioVisitor PortfolioVisitor
	snapshots        []Snapshot
}

// Option customises New.
type Option func(*History)

// WithIndicatorProvider folds a backtest's indicators into every snapshot.
func WithIndicatorProvider(p IndicatorProvider) Option {
	return func(h *History) { h.indicatorSource = p }
}

// New returns a History tracking portfolios. At least one portfolio is
// required; pytrading/history.py accepts a single Portfolio or a list, a
// union Go's static typing collapses into always taking a slice.
func New(w *world.World, portfolios []*portfolio.Portfolio, opts ...Option) (*History, error) {
	if len(portfolios) == 0 {
		return nil, fmt.Errorf("%w: expecting at least one Portfolio instance", backtraderr.ErrTypeMismatch)
	}
	for _, p := range portfolios {
		if p == nil {
			return nil, fmt.Errorf("%w: expecting a Portfolio instance", backtraderr.ErrTypeMismatch)
		}
	}
	h := &History{
		world:            w,
		portfolios:       portfolios,
		portfolioVisitor: PortfolioVisitor{world: w},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// VisitorFor picks the Visitor that knows how to record instance, matching
// pytrading/history.py's _get_visitor dispatch.
func (h *History) VisitorFor(instance any) (Visitor, error) {
	switch instance.(type) {
	case assets.Asset:
		return h.assetVisitor, nil
	case *assets.FxRate:
		return h.fxRateVisitor, nil
	case *portfolio.Portfolio:
		return h.portfolioVisitor, nil
	default:
		return nil, fmt.Errorf("%w: unable to record history for %T", backtraderr.ErrTypeMismatch, instance)
	}
}

// TakeSnapshot records the current state of every tracked asset, fx rate
// and portfolio, plus any indicators, under datetime.
func (h *History) TakeSnapshot(datetime time.Time) {
	values := make(map[string]any)

	for _, asset := range assets.GetInstances(h.world) {
		for _, row := range h.assetVisitor.Visit(asset) {
			values[row.Name] = row.Value
		}
	}
	for _, fx := range assets.GetFxInstances(h.world) {
		for _, row := range h.fxRateVisitor.Visit(fx) {
			values[row.Name] = row.Value
		}
	}
	for _, p := range h.portfolios {
		for _, row := range h.portfolioVisitor.Visit(p) {
			values[row.Name] = row.Value
		}
	}
	if h.indicatorSource != nil {
		for name, value := range h.indicatorSource.Indicators() {
			values[name] = value
		}
	}

	h.snapshots = append(h.snapshots, Snapshot{Datetime: datetime, Values: values})
}

// Snapshots returns a copy of every snapshot recorded so far, oldest first.
func (h *History) Snapshots() []Snapshot {
	out := make([]Snapshot, len(h.snapshots))
	copy(out, h.snapshots)
	return out
}
