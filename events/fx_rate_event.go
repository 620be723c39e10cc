package events

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
)

// FxRateEvent applies a new rate to an FxRate when processed.
type FxRateEvent struct {
	baseEvent
	fxRate *assets.FxRate
	value  float64
}

// NewFxRateEvent proposes a rate change for fxRate. value must be strictly
// positive.
func NewFxRateEvent(fxRate *assets.FxRate, datetime time.Time, value float64) (*FxRateEvent, error) {
	if fxRate == nil {
		return nil, fmt.Errorf("%w: expecting an FxRate instance", backtraderr.ErrTypeMismatch)
	}
	if err := checkPositive(value); err != nil {
		return nil, err
	}
	return &FxRateEvent{baseEvent: newBaseEvent(datetime, value), fxRate: fxRate, value: value}, nil
}

// FxRate returns the rate this event updates.
func (e *FxRateEvent) FxRate() *assets.FxRate { return e.fxRate }

func (e *FxRateEvent) Process() error {
	return processOnce(&e.processed, func() error {
		return e.fxRate.SetRate(e.value)
	})
}

func (e *FxRateEvent) String() string {
	return fmt.Sprintf("FxRateEvent('%s', %s, %v)", e.fxRate.Pair(), e.datetime.Format(timeLayout), e.value)
}
