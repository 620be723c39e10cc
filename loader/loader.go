// Package loader turns a column of timestamped values from an external
// data feed into queued backtest events. Grounded on original_source/
// pytrading/events/load_frame_events.py, generalized: Python's
// load_frame_events takes an event_class and instantiates it reflectively
// per row; Go has no equivalent runtime class reflection, and its static
// typing already rules out most of that function's TypeError checks
// (wrong instance, non-callable class, non-Event class), so this is a
// generic function taking a typed EventFactory closure instead.
package loader

import (
	"fmt"
	"time"

	"github.com/relvacode/iso8601"

	"github.com/aristath/backtrade/backtest"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/events"
)

// Row is one (timestamp, value) pair ready to become an event.
type Row[V any] struct {
	Datetime time.Time
	Value    V
}

// StringRow is a Row whose timestamp hasn't been parsed yet, the shape most
// CSV/JSON data feeds hand back.
type StringRow[V any] struct {
	Datetime string
	Value    V
}

// ParseRows parses every row's ISO-8601 timestamp, mirroring
// pandas.to_datetime's coercion of a frame's index in
// load_frame_events.py.
func ParseRows[V any](raw []StringRow[V]) ([]Row[V], error) {
	rows := make([]Row[V], 0, len(raw))
	for _, r := range raw {
		dt, err := iso8601.ParseString(r.Datetime)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid timestamp %q: %v", backtraderr.ErrTypeMismatch, r.Datetime, err)
		}
		rows = append(rows, Row[V]{Datetime: dt, Value: r.Value})
	}
	return rows, nil
}

// EventFactory builds the Event for one row's (datetime, value) pair,
// capturing whatever instance (asset, fx rate, indicator name) the caller
// is loading events for.
type EventFactory[V any] func(datetime time.Time, value V) (events.Event, error)

// LoadFrameEvents queues one event per row into bt, built by factory.
// Returns the number of events loaded, matching load_frame_events'
// int-returning contract. An empty rows slice loads nothing and returns 0,
// matching the original's early return on an empty DataFrame.
func LoadFrameEvents[V any](bt *backtest.Backtest, rows []Row[V], factory EventFactory[V]) (int, error) {
	if bt == nil {
		return 0, fmt.Errorf("%w: expecting a Backtest instance", backtraderr.ErrTypeMismatch)
	}
	loaded := 0
	for _, row := range rows {
		event, err := factory(row.Datetime, row.Value)
		if err != nil {
			return loaded, err
		}
		if err := bt.LoadEvent(event); err != nil {
			return loaded, err
		}
		loaded++
	}
	return loaded, nil
}
