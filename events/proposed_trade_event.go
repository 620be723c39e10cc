package events

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/trade"
)

// ProposedTradeEvent carries a strategy's trade intent through the queue. It
// does nothing on Process beyond marking itself processed; turning a
// ProposedTrade into a real Trade that runs the pipeline is a strategy's
// responsibility once it observes the event.
type ProposedTradeEvent struct {
	baseEvent
	proposedTrade *trade.ProposedTrade
}

// NewProposedTradeEvent wraps a ProposedTrade for queueing.
func NewProposedTradeEvent(datetime time.Time, proposedTrade *trade.ProposedTrade) (*ProposedTradeEvent, error) {
	if proposedTrade == nil {
		return nil, fmt.Errorf("%w: expecting a ProposedTrade instance", backtraderr.ErrTypeMismatch)
	}
	return &ProposedTradeEvent{baseEvent: newBaseEvent(datetime, proposedTrade), proposedTrade: proposedTrade}, nil
}

// ProposedTrade returns the wrapped trade intent.
func (e *ProposedTradeEvent) ProposedTrade() *trade.ProposedTrade { return e.proposedTrade }

func (e *ProposedTradeEvent) Process() error {
	return processOnce(&e.processed, func() error { return nil })
}

func (e *ProposedTradeEvent) String() string {
	return fmt.Sprintf("ProposedTradeEvent(%s, %s)", e.datetime.Format(timeLayout), e.proposedTrade)
}
