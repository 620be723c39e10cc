// Package events defines the individual event types a backtest drains from
// its queue: asset price changes, fx rate changes, proposed trades, trades
// and indicator updates. Grounded on original_source/pytrade/events/{base,
// asset_price_event,fx_rate_event,proposed_trade_event,trade_event,
// indicator_event}.py.
package events

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/backtraderr"
)

const timeLayout = "2006-01-02 15:04:05"

// Event is anything a backtest can queue and later process exactly once.
type Event interface {
	Datetime() time.Time
	EventValue() any
	Processed() bool
	Process() error
	String() string
}

// baseEvent carries the fields and process-once guard shared by every
// concrete event type, mirroring AbstractEvent.
type baseEvent struct {
	datetime   time.Time
	eventValue any
	processed  bool
}

func newBaseEvent(datetime time.Time, eventValue any) baseEvent {
	return baseEvent{datetime: datetime, eventValue: eventValue}
}

func (b *baseEvent) Datetime() time.Time { return b.datetime }
func (b *baseEvent) EventValue() any     { return b.eventValue }
func (b *baseEvent) Processed() bool     { return b.processed }

// processOnce runs do exactly once, rejecting a second call the way
// AbstractEvent.process raises ValueError on a repeat.
func processOnce(processed *bool, do func() error) error {
	if *processed {
		return fmt.Errorf("%w: event has already been processed", backtraderr.ErrLifecycleViolation)
	}
	if err := do(); err != nil {
		return err
	}
	*processed = true
	return nil
}

func checkPositive(value float64) error {
	if value <= 0 {
		return fmt.Errorf("%w: expecting a positive value", backtraderr.ErrDomainViolation)
	}
	return nil
}
