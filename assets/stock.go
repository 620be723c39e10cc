package assets

import (
	"github.com/aristath/backtrade/config"
	"github.com/aristath/backtrade/observable"
	"github.com/aristath/backtrade/world"
)

// Stock is a variable-priced instrument whose observers (typically
// Portfolio holdings) are notified whenever its price changes.
type Stock struct {
	assetCore
	observable.Observable
	price *float64
}

// StockOption customises NewStock beyond its required code and price.
type StockOption func(*stockOptions)

type stockOptions struct {
	currencyCode string
	multiplier   float64
}

// WithCurrencyCode sets the stock's quote currency. Defaults to the
// module's configured default currency code.
func WithCurrencyCode(currencyCode string) StockOption {
	return func(o *stockOptions) { o.currencyCode = currencyCode }
}

// WithMultiplier sets the stock's price multiplier (e.g. contract size).
// Defaults to 1.0.
func WithMultiplier(multiplier float64) StockOption {
	return func(o *stockOptions) { o.multiplier = multiplier }
}

// NewStock registers and returns a Stock asset. price may be nil, matching
// the Python default of price=None.
func NewStock(w *world.World, code string, price *float64, opts ...StockOption) (*Stock, error) {
	options := stockOptions{
		currencyCode: string(config.DefaultCurrencyCode()),
		multiplier:   1.0,
	}
	for _, opt := range opts {
		opt(&options)
	}

	stock := &Stock{price: price}
	stock.Observable.Init(stock)
	core, err := initCore(w, code, options.currencyCode, options.multiplier, stock)
	if err != nil {
		return nil, err
	}
	stock.assetCore = core
	return stock, nil
}

func (s *Stock) Price() *float64 {
	return s.price
}

// SetPrice updates the stock's price (nil clears it) and notifies
// observers, matching VariablePriceAsset.price's setter.
func (s *Stock) SetPrice(price *float64) {
	s.price = price
	s.NotifyObservers()
}

func (s *Stock) LocalValue() *float64 {
	return localValue(s.price, s.multiplier)
}

func (s *Stock) String() string {
	return assetString(s, "Stock")
}
