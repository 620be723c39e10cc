// Package broker implements trade execution and charging as strategy
// patterns: an Execution strategy decides how a trade moves units and cash,
// a Charges strategy decides what fee (if any) is deducted. Grounded on
// original_source/pytrade/broker/{execution,charges}.py and
// pytrading/broker/broker.py.
package broker

import (
	"fmt"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/portfolio"
)

// Execution decides how a trade settles against the portfolio.
type Execution interface {
	Execute(t portfolio.TradeExecutor) error
}

// FillAtLast executes the trade at the asset's current local value with no
// slippage: simply calls Portfolio.Trade(asset, units, nil).
type FillAtLast struct{}

func (FillAtLast) Execute(t portfolio.TradeExecutor) error {
	return t.Portfolio().Trade(t.Asset(), t.Units(), nil)
}

// FillAtLastWithSlippage fills at the asset's local value adjusted by a
// slippage fraction: sellers receive less, buyers pay more.
type FillAtLastWithSlippage struct {
	slippage float64
}

// NewFillAtLastWithSlippage returns a FillAtLastWithSlippage strategy.
// slippage must be in [0, 1).
func NewFillAtLastWithSlippage(slippage float64) (*FillAtLastWithSlippage, error) {
	if slippage < 0 || slippage >= 1 {
		return nil, fmt.Errorf("%w: expecting slippage between 0 and 1", backtraderr.ErrDomainViolation)
	}
	return &FillAtLastWithSlippage{slippage: slippage}, nil
}

func (f *FillAtLastWithSlippage) Execute(t portfolio.TradeExecutor) error {
	asset := t.Asset()
	units := t.Units()
	lv := asset.LocalValue()
	if lv == nil {
		return fmt.Errorf("%w: asset local value is unavailable", backtraderr.ErrDomainViolation)
	}
	consideration := *lv * -units
	switch {
	case consideration > 0:
		consideration *= 1 - f.slippage
	case consideration < 0:
		consideration *= 1 + f.slippage
	}
	return t.Portfolio().Trade(asset, units, &consideration)
}
