package queue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/events"
	"github.com/aristath/backtrade/queue"
	"github.com/aristath/backtrade/world"
)

func price(v float64) *float64 { return &v }

func TestQueueOrder(t *testing.T) {
	w := world.New()
	stock, err := assets.NewStock(w, "ZZZ", price(2.50))
	require.NoError(t, err)

	event1, err := events.NewAssetPriceEvent(stock, time.Date(2020, 9, 3, 0, 0, 0, 0, time.UTC), 2.65)
	require.NoError(t, err)
	event2, err := events.NewAssetPriceEvent(stock, time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC), 2.55)
	require.NoError(t, err)
	event3, err := events.NewAssetPriceEvent(stock, time.Date(2020, 9, 2, 0, 0, 0, 0, time.UTC), 2.60)
	require.NoError(t, err)

	q := queue.New()
	require.NoError(t, q.Put(event1))
	require.NoError(t, q.Put(event2))
	require.NoError(t, q.Put(event3))
	assert.Equal(t, 3, q.Len())

	first, err := q.Get()
	require.NoError(t, err)
	second, err := q.Get()
	require.NoError(t, err)
	third, err := q.Get()
	require.NoError(t, err)
	assert.Equal(t, 0, q.Len())

	assert.Same(t, event2, first)
	assert.Same(t, event3, second)
	assert.Same(t, event1, third)
}

func TestQueueRejectsNilEvent(t *testing.T) {
	q := queue.New()
	assert.Error(t, q.Put(nil))
	assert.Equal(t, 0, q.Len())
}

func TestQueueGetOnEmpty(t *testing.T) {
	q := queue.New()
	_, err := q.Get()
	assert.ErrorIs(t, err, queue.ErrEmpty)
}

func TestQueueStableOrderForEqualTimestamps(t *testing.T) {
	w := world.New()
	stock, err := assets.NewStock(w, "ZZZ", price(2.50))
	require.NoError(t, err)
	dt := time.Date(2020, 9, 1, 0, 0, 0, 0, time.UTC)

	event1, err := events.NewAssetPriceEvent(stock, dt, 2.55)
	require.NoError(t, err)
	event2, err := events.NewAssetPriceEvent(stock, dt, 2.60)
	require.NoError(t, err)

	q := queue.New()
	require.NoError(t, q.Put(event1))
	require.NoError(t, q.Put(event2))

	first, err := q.Get()
	require.NoError(t, err)
	second, err := q.Get()
	require.NoError(t, err)
	assert.Same(t, event1, first)
	assert.Same(t, event2, second)
}
