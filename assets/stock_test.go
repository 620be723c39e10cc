package assets

import (
	"testing"

	"github.com/aristath/backtrade/observable"
	"github.com/aristath/backtrade/world"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockString(t *testing.T) {
	w := world.New()
	price := 2.55
	zzb, err := NewStock(w, "ZZB AU", &price, WithCurrencyCode("AUD"))
	require.NoError(t, err)
	assert.Equal(t, "Stock('ZZB AU', 2.55, currency_code='AUD')", zzb.String())
}

type priceWatcher struct {
	lastLocalValue *float64
}

func (p *priceWatcher) ObservableUpdate(o any) {
	s := o.(*Stock)
	p.lastLocalValue = s.LocalValue()
}

func TestStockNotifiesOnPriceChange(t *testing.T) {
	w := world.New()
	price := 2.0
	stock, err := NewStock(w, "ZZB AU", &price, WithCurrencyCode("AUD"))
	require.NoError(t, err)

	watcher := &priceWatcher{}
	stock.AddObserver(observable.Ref(watcher))

	newPrice := 3.0
	stock.SetPrice(&newPrice)
	require.NotNil(t, watcher.lastLocalValue)
	assert.Equal(t, 3.0, *watcher.lastLocalValue)
}

func TestStockPriceNilLocalValue(t *testing.T) {
	w := world.New()
	stock, err := NewStock(w, "ZZB AU", nil, WithCurrencyCode("AUD"))
	require.NoError(t, err)
	assert.Nil(t, stock.LocalValue())
}
