package events_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/events"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/trade"
	"github.com/aristath/backtrade/world"
)

func price(v float64) *float64 { return &v }

func TestAssetPriceEvent(t *testing.T) {
	w := world.New()
	stock, err := assets.NewStock(w, "XYZ AU", price(2.50), assets.WithCurrencyCode("AUD"))
	require.NoError(t, err)
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)

	ev, err := events.NewAssetPriceEvent(stock, dt, 2.60)
	require.NoError(t, err)
	assert.Equal(t, "AssetPriceEvent(Stock('XYZ AU'), 2020-09-01 12:30:00, 2.6)", ev.String())
	assert.Same(t, stock, ev.Asset())
	assert.Equal(t, dt, ev.Datetime())
	assert.Equal(t, 2.60, ev.EventValue())

	_, err = events.NewAssetPriceEvent(stock, dt, -2.0)
	assert.ErrorIs(t, err, backtraderr.ErrDomainViolation)

	assert.Equal(t, 2.50, *stock.Price())
	assert.False(t, ev.Processed())
	require.NoError(t, ev.Process())
	assert.True(t, ev.Processed())
	assert.Equal(t, 2.60, *stock.Price())

	err = ev.Process()
	assert.ErrorIs(t, err, backtraderr.ErrLifecycleViolation)
}

func TestFxRateEvent(t *testing.T) {
	w := world.New()
	fxRate, err := assets.NewFxRate(w, "AUDNZD", nil)
	require.NoError(t, err)
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)

	ev, err := events.NewFxRateEvent(fxRate, dt, 1.10)
	require.NoError(t, err)
	assert.Equal(t, "FxRateEvent('AUDNZD', 2020-09-01 12:30:00, 1.1)", ev.String())
	assert.Same(t, fxRate, ev.FxRate())

	_, err = events.NewFxRateEvent(nil, dt, 1.10)
	assert.ErrorIs(t, err, backtraderr.ErrTypeMismatch)

	assert.False(t, ev.Processed())
	require.NoError(t, ev.Process())
	assert.True(t, ev.Processed())
	require.NotNil(t, fxRate.Rate())
	assert.Equal(t, 1.10, *fxRate.Rate())

	err = ev.Process()
	assert.ErrorIs(t, err, backtraderr.ErrLifecycleViolation)
}

func TestProposedTradeEvent(t *testing.T) {
	w := world.New()
	p, err := portfolio.New(w, "USD")
	require.NoError(t, err)
	goog, err := assets.NewStock(w, "GOOG US", price(1500), assets.WithCurrencyCode("USD"))
	require.NoError(t, err)
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)

	pt, err := trade.NewProposedTrade(p, goog, 100)
	require.NoError(t, err)
	ev, err := events.NewProposedTradeEvent(dt, pt)
	require.NoError(t, err)
	assert.Equal(t, "ProposedTradeEvent(2020-09-01 12:30:00, ProposedTrade(Portfolio('USD'), 'GOOG US', 100))", ev.String())
	assert.Same(t, pt, ev.ProposedTrade())

	_, err = events.NewProposedTradeEvent(dt, nil)
	assert.ErrorIs(t, err, backtraderr.ErrTypeMismatch)
}

func TestIndicatorEvent(t *testing.T) {
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)
	ev, err := events.NewIndicatorEvent("some_name", dt, "some_value")
	require.NoError(t, err)
	assert.Equal(t, "IndicatorEvent('some_name', 2020-09-01 12:30:00, some_value)", ev.String())
	assert.Equal(t, "some_name", ev.IndicatorName())
	assert.Equal(t, "some_value", ev.EventValue())
}

func TestIndicatorEventValidation(t *testing.T) {
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)
	validate := func(v any) error {
		if _, ok := v.(string); !ok {
			return errors.New("expecting string")
		}
		return nil
	}

	ev, err := events.NewIndicatorEvent("IndicatorName", dt, "IndicatorValue", events.WithValidationFunc(validate))
	require.NoError(t, err)
	assert.Equal(t, "IndicatorValue", ev.EventValue())

	_, err = events.NewIndicatorEvent("IndicatorName", dt, 123, events.WithValidationFunc(validate))
	assert.Error(t, err)
}

type recordingSink struct {
	name  string
	value any
}

func (s *recordingSink) SetIndicator(name string, value any) {
	s.name = name
	s.value = value
}

func TestIndicatorEventProcessWritesToSink(t *testing.T) {
	dt := time.Date(2020, 9, 1, 12, 30, 0, 0, time.UTC)
	sink := &recordingSink{}
	ev, err := events.NewIndicatorEvent("sma20", dt, 101.5, events.WithSink(sink))
	require.NoError(t, err)

	require.NoError(t, ev.Process())
	assert.Equal(t, "sma20", sink.name)
	assert.Equal(t, 101.5, sink.value)
}
