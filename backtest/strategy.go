package backtest

import "github.com/aristath/backtrade/trade"

// Strategy generates the trades a backtest should attempt at the current
// datetime. GenerateTrades may return a nil or empty slice when it has
// nothing to propose; pytrade/strategy.py's generate_trades returns either
// None, a single Trade, or a list, a union this interface collapses into
// one shape.
type Strategy interface {
	GenerateTrades() []*trade.Trade
}
