// Package indicators computes technical indicators over a series of prices
// and publishes them as events.IndicatorEvent values, so a strategy can read
// them back through events.IndicatorSink without coupling to how they were
// computed. Grounded on original_source/pytrade/events/indicator_event.py
// as the consumer; the teacher's go.mod already carries go-talib as an
// unwired dependency, which this package exercises.
package indicators

import (
	"fmt"
	"time"

	talib "github.com/markcheno/go-talib"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/events"
)

// SMA returns the simple moving average of values over period, 0 for
// points before the window is full.
func SMA(values []float64, period int) []float64 {
	return talib.Sma(values, period)
}

// EMA returns the exponential moving average of values over period.
func EMA(values []float64, period int) []float64 {
	return talib.Ema(values, period)
}

// RSI returns the relative strength index of values over period.
func RSI(values []float64, period int) []float64 {
	return talib.Rsi(values, period)
}

// BollingerBands is the upper, middle and lower band series produced by
// Bollinger.
type BollingerBands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// Bollinger returns Bollinger bands of values over period, devUp/devDown
// standard deviations wide.
func Bollinger(values []float64, period int, devUp, devDown float64) BollingerBands {
	upper, middle, lower := talib.BBands(values, period, devUp, devDown, talib.SMA)
	return BollingerBands{Upper: upper, Middle: middle, Lower: lower}
}

// Series publishes a name, building one events.IndicatorEvent per
// (datetime, value) point. datetimes and values must be the same length;
// NaN values are skipped rather than published. Warm-up points are not
// detected: go-talib fills them with 0, and those are published like any
// other value.
func Series(name string, datetimes []time.Time, values []float64, sink events.IndicatorSink) ([]*events.IndicatorEvent, error) {
	if len(datetimes) != len(values) {
		return nil, fmt.Errorf("%w: %d datetimes but %d values", backtraderr.ErrTypeMismatch, len(datetimes), len(values))
	}
	out := make([]*events.IndicatorEvent, 0, len(values))
	for i, v := range values {
		if v != v { // NaN point, nothing to publish
			continue
		}
		event, err := events.NewIndicatorEvent(name, datetimes[i], v, events.WithSink(sink))
		if err != nil {
			return nil, err
		}
		out = append(out, event)
	}
	return out, nil
}
