package broker

import (
	"fmt"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

// Broker applies a charges strategy then an execution strategy to a trade.
// It implements portfolio.Broker.
type Broker struct {
	world      *world.World
	execution  Execution
	charges    Charges
	lastCharge Money
}

// Option customises New beyond its required World.
type Option func(*Broker)

// WithExecution overrides the default FillAtLast execution strategy.
func WithExecution(e Execution) Option {
	return func(b *Broker) { b.execution = e }
}

// WithCharges overrides the default NoCharges charging strategy.
func WithCharges(c Charges) Option {
	return func(b *Broker) { b.charges = c }
}

// New returns a Broker defaulting to FillAtLast execution and no charges.
func New(w *world.World, opts ...Option) *Broker {
	b := &Broker{world: w, execution: FillAtLast{}, charges: NoCharges{}}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Execute applies the broker's charges strategy, then its execution
// strategy, to t.
func (b *Broker) Execute(t portfolio.TradeExecutor) error {
	if t == nil {
		return fmt.Errorf("%w: expecting a trade", backtraderr.ErrTypeMismatch)
	}
	charge, err := b.charges.Charge(b.world, t)
	if err != nil {
		return err
	}
	b.lastCharge = charge
	return b.execution.Execute(t)
}

// LastCharge returns the Money charged by the most recent Execute call, for
// logging/testing.
func (b *Broker) LastCharge() Money {
	return b.lastCharge
}
