// Package trade defines a proposed trade and the chain-of-responsibility
// pipeline (compliance check, then execution) it passes through before it
// affects a portfolio. Grounded on original_source/pytrading/assets/
// portfolio.py (Trade fields), pytrade/trade/trade.py, pxtrade/trade/
// trade.py and pytrade/trade/state.py.
package trade

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/codes"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

// State is a trade's position in its lifecycle.
type State int

const (
	StateProposed State = iota
	StateFailedCompliance
	StatePassedCompliance
	StateSentForExecution
	StatePartiallyFilled
	StateFilled
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateProposed:
		return "Proposed"
	case StateFailedCompliance:
		return "FailedCompliance"
	case StatePassedCompliance:
		return "PassedCompliance"
	case StateSentForExecution:
		return "SentForExecution"
	case StatePartiallyFilled:
		return "PartiallyFilled"
	case StateFilled:
		return "Filled"
	case StateCancelled:
		return "Cancelled"
	default:
		return "Unknown"
	}
}

// Trade is a proposed change in units of some asset held by a portfolio. It
// implements portfolio.TradeExecutor so brokers, charges and execution
// strategies can act on it without importing this package.
type Trade struct {
	id               string
	portfolio        *portfolio.Portfolio
	asset            assets.Asset
	assetCode        codes.Code
	units            int
	done             int
	status           State
	passedCompliance bool
}

// New proposes a trade of units in asset against p.
func New(p *portfolio.Portfolio, asset assets.Asset, units int) (*Trade, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: expecting a Portfolio instance", backtraderr.ErrTypeMismatch)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: expecting an Asset instance or asset code", backtraderr.ErrTypeMismatch)
	}
	return &Trade{
		id:        uuid.NewString(),
		portfolio: p,
		asset:     asset,
		assetCode: asset.Code(),
		units:     units,
		status:    StateProposed,
	}, nil
}

// ID returns the trade's unique identifier, stable for its lifetime.
func (t *Trade) ID() string { return t.id }

// NewFromCode resolves assetCode to an Asset registered in w before
// proposing the trade, matching Trade's support for a bare asset code.
func NewFromCode(w *world.World, p *portfolio.Portfolio, assetCode string, units int) (*Trade, error) {
	asset := assets.GetAssetForCode(w, assetCode)
	if asset == nil {
		return nil, fmt.Errorf("%w: asset code %q doesn't exist", backtraderr.ErrMissingResource, assetCode)
	}
	return New(p, asset, units)
}

// Portfolio returns the trade's target portfolio.
func (t *Trade) Portfolio() *portfolio.Portfolio { return t.portfolio }

// Asset returns the asset being traded.
func (t *Trade) Asset() assets.Asset { return t.asset }

// AssetCode returns the asset's code, captured at proposal time.
func (t *Trade) AssetCode() codes.Code { return t.assetCode }

// Units returns the proposed unit change as a float64, satisfying
// portfolio.TradeExecutor; the trade itself always stores a whole number.
func (t *Trade) Units() float64 { return float64(t.units) }

// Done returns how many units have been filled so far. A custom Execution
// strategy modelling partial fills should update this via SetDone.
func (t *Trade) Done() int { return t.done }

// SetDone records partial-fill progress and advances Status accordingly.
func (t *Trade) SetDone(done int) {
	t.done = done
	switch {
	case done == 0:
	case done == t.units:
		t.status = StateFilled
	default:
		t.status = StatePartiallyFilled
	}
}

// Status returns the trade's current lifecycle state.
func (t *Trade) Status() State { return t.status }

// PassedCompliance reports whether the compliance check has passed.
func (t *Trade) PassedCompliance() bool { return t.passedCompliance }

// Execute sends the trade directly to the portfolio's broker, bypassing the
// compliance pipeline. Most callers should use DefaultPipeline.Run instead.
func (t *Trade) Execute() error {
	return t.portfolio.Broker().Execute(t)
}

func (t *Trade) String() string {
	return fmt.Sprintf("Trade(Portfolio('%s'), '%s', %d)", t.portfolio.BaseCurrencyCode(), t.assetCode, t.units)
}

// ProposedTrade is a lighter-weight trade proposal carried by
// ProposedTradeEvent, representing a strategy's intent before it is turned
// into a Trade. Grounded on pytrade/trade/trade.py's ProposedTrade.
type ProposedTrade struct {
	Portfolio *portfolio.Portfolio
	AssetCode codes.Code
	Units     int
}

// NewProposedTrade constructs a ProposedTrade for asset.
func NewProposedTrade(p *portfolio.Portfolio, asset assets.Asset, units int) (*ProposedTrade, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: expecting a Portfolio instance", backtraderr.ErrTypeMismatch)
	}
	if asset == nil {
		return nil, fmt.Errorf("%w: expecting an Asset instance", backtraderr.ErrTypeMismatch)
	}
	return &ProposedTrade{Portfolio: p, AssetCode: asset.Code(), Units: units}, nil
}

func (pt *ProposedTrade) String() string {
	return fmt.Sprintf("ProposedTrade(Portfolio('%s'), '%s', %d)", pt.Portfolio.BaseCurrencyCode(), pt.AssetCode, pt.Units)
}
