package events

import (
	"fmt"
	"time"
)

// IndicatorSink receives a named indicator value, implemented by backtest.
// Backtest. It is declared here rather than having events import backtest,
// avoiding an events<->backtest import cycle.
type IndicatorSink interface {
	SetIndicator(name string, value any)
}

// IndicatorEvent records a computed indicator value against an optional
// sink, with an optional validation function run at construction time.
type IndicatorEvent struct {
	baseEvent
	name     string
	sink     IndicatorSink
	validate func(any) error
}

// IndicatorOption customises NewIndicatorEvent.
type IndicatorOption func(*IndicatorEvent)

// WithValidationFunc rejects event values that fail validate.
func WithValidationFunc(validate func(any) error) IndicatorOption {
	return func(e *IndicatorEvent) { e.validate = validate }
}

// WithSink routes the indicator value to sink when the event is processed.
func WithSink(sink IndicatorSink) IndicatorOption {
	return func(e *IndicatorEvent) { e.sink = sink }
}

// NewIndicatorEvent names an indicator value recorded at datetime.
func NewIndicatorEvent(name string, datetime time.Time, value any, opts ...IndicatorOption) (*IndicatorEvent, error) {
	e := &IndicatorEvent{name: name}
	for _, opt := range opts {
		opt(e)
	}
	if e.validate != nil {
		if err := e.validate(value); err != nil {
			return nil, err
		}
	}
	e.baseEvent = newBaseEvent(datetime, value)
	return e, nil
}

// IndicatorName returns the indicator's name.
func (e *IndicatorEvent) IndicatorName() string { return e.name }

func (e *IndicatorEvent) Process() error {
	return processOnce(&e.processed, func() error {
		if e.sink != nil {
			e.sink.SetIndicator(e.name, e.eventValue)
		}
		return nil
	})
}

func (e *IndicatorEvent) String() string {
	return fmt.Sprintf("IndicatorEvent('%s', %s, %v)", e.name, e.datetime.Format(timeLayout), e.eventValue)
}
