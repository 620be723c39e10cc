package broker

import (
	"fmt"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/config"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

// Money is a charge amount in a given currency, returned by Charges for
// logging/testing purposes. It never becomes part of persisted state.
type Money struct {
	Currency string
	Amount   float64
}

// Charges decides what fee, if any, a trade incurs and transfers it out of
// the portfolio's cash.
type Charges interface {
	Charge(w *world.World, t portfolio.TradeExecutor) (Money, error)
}

// NoCharges applies no fee.
type NoCharges struct{}

func (NoCharges) Charge(*world.World, portfolio.TradeExecutor) (Money, error) {
	return Money{}, nil
}

// FixedRatePlusPercentage charges a fixed amount plus a percentage of the
// traded local value, converted into its own currency.
type FixedRatePlusPercentage struct {
	fixedAmount  float64
	percentage   float64
	currencyCode string
}

// NewFixedRatePlusPercentage returns a FixedRatePlusPercentage strategy.
// currencyCode defaults to the module's configured default currency when
// empty.
func NewFixedRatePlusPercentage(fixedAmount, percentage float64, currencyCode string) (*FixedRatePlusPercentage, error) {
	if fixedAmount < 0 {
		return nil, fmt.Errorf("%w: charge amount should be >= 0", backtraderr.ErrDomainViolation)
	}
	if percentage < 0 {
		return nil, fmt.Errorf("%w: percentage charge should be >= 0", backtraderr.ErrDomainViolation)
	}
	if currencyCode == "" {
		currencyCode = string(config.DefaultCurrencyCode())
	}
	return &FixedRatePlusPercentage{fixedAmount: fixedAmount, percentage: percentage, currencyCode: currencyCode}, nil
}

func (f *FixedRatePlusPercentage) Charge(w *world.World, t portfolio.TradeExecutor) (Money, error) {
	asset := t.Asset()
	units := t.Units()
	assetCurrencyCode := asset.CurrencyCode()

	chargeCash, err := assets.GetCash(w, f.currencyCode)
	if err != nil {
		return Money{}, err
	}
	lv := asset.LocalValue()
	if lv == nil {
		return Money{}, fmt.Errorf("%w: asset local value is unavailable", backtraderr.ErrDomainViolation)
	}
	localValueTraded := abs(*lv * units)
	percentageChargeLocal := abs(f.percentage * localValueTraded)
	fxRate, err := assets.Get(w, string(assetCurrencyCode)+f.currencyCode)
	if err != nil {
		return Money{}, err
	}
	percentageCharge := percentageChargeLocal * fxRate
	totalCharge := f.fixedAmount + percentageCharge

	if err := t.Portfolio().Transfer(chargeCash, -totalCharge); err != nil {
		return Money{}, err
	}
	return Money{Currency: f.currencyCode, Amount: -totalCharge}, nil
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
