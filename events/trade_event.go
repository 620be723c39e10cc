package events

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/trade"
)

// TradeEvent sends a Trade through the trade pipeline when processed.
type TradeEvent struct {
	baseEvent
	trade *trade.Trade
}

// NewTradeEvent wraps t for queueing.
func NewTradeEvent(datetime time.Time, t *trade.Trade) (*TradeEvent, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: expecting a Trade instance", backtraderr.ErrTypeMismatch)
	}
	return &TradeEvent{baseEvent: newBaseEvent(datetime, t), trade: t}, nil
}

// Trade returns the wrapped trade.
func (e *TradeEvent) Trade() *trade.Trade { return e.trade }

func (e *TradeEvent) Process() error {
	return processOnce(&e.processed, func() error {
		return trade.DefaultPipeline.Run(e.trade)
	})
}

func (e *TradeEvent) String() string {
	return fmt.Sprintf("TradeEvent(%s, %s)", e.datetime.Format(timeLayout), e.trade)
}
