package trade_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/compliance"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/trade"
	"github.com/aristath/backtrade/world"
)

type customHandler struct {
	next    trade.Handler
	handled bool
}

func (h *customHandler) SetNext(next trade.Handler) trade.Handler {
	h.next = next
	return next
}

func (h *customHandler) Run(t *trade.Trade) error {
	h.handled = true
	if h.next != nil {
		return h.next.Run(t)
	}
	return nil
}

func TestCreatePipeline(t *testing.T) {
	w := world.New()
	p, err := portfolio.New(w, "AUD")
	require.NoError(t, err)
	stock, err := assets.NewStock(w, "ZZB AU", price(2.50), assets.WithCurrencyCode("AUD"))
	require.NoError(t, err)
	tr, err := trade.New(p, stock, 100)
	require.NoError(t, err)

	h1, h2, h3 := &customHandler{}, &customHandler{}, &customHandler{}
	h1.SetNext(h2).SetNext(h3)
	assert.False(t, h1.handled)
	assert.False(t, h2.handled)
	assert.False(t, h3.handled)

	require.NoError(t, h1.Run(tr))
	assert.True(t, h1.handled)
	assert.True(t, h2.handled)
	assert.True(t, h3.handled)
}

func TestPipelineExecutesWhenCompliancePasses(t *testing.T) {
	w := world.New()
	p, err := portfolio.New(w, "AUD")
	require.NoError(t, err)
	require.NoError(t, p.Transfer(mustCash(t, w, "AUD"), 1000))
	stock, err := assets.NewStock(w, "ZZB AU", price(2.50), assets.WithCurrencyCode("AUD"))
	require.NoError(t, err)

	rule := compliance.NewUnitLimit(stock, 200)
	c := compliance.New()
	require.NoError(t, c.AddRule(rule))
	require.NoError(t, p.SetCompliance(c))

	tr, err := trade.New(p, stock, 100)
	require.NoError(t, err)

	require.NoError(t, trade.NewPipeline().Run(tr))
	assert.True(t, tr.PassedCompliance())
	assert.Equal(t, trade.StateFilled, tr.Status())
	assert.Equal(t, 100.0, p.GetHoldingUnits("ZZB AU"))
	assert.Equal(t, 750.0, p.GetHoldingUnits("AUD"))
}

func TestPipelineRollsBackWhenComplianceFails(t *testing.T) {
	w := world.New()
	p, err := portfolio.New(w, "AUD")
	require.NoError(t, err)
	require.NoError(t, p.Transfer(mustCash(t, w, "AUD"), 1000))
	stock, err := assets.NewStock(w, "ZZB AU", price(2.50), assets.WithCurrencyCode("AUD"))
	require.NoError(t, err)

	rule := compliance.NewUnitLimit(stock, 50)
	c := compliance.New()
	require.NoError(t, c.AddRule(rule))
	require.NoError(t, p.SetCompliance(c))

	tr, err := trade.New(p, stock, 100)
	require.NoError(t, err)

	require.NoError(t, trade.NewPipeline().Run(tr))
	assert.False(t, tr.PassedCompliance())
	assert.Equal(t, trade.StateFailedCompliance, tr.Status())
	assert.Equal(t, 0.0, p.GetHoldingUnits("ZZB AU"))
	assert.Equal(t, 1000.0, p.GetHoldingUnits("AUD"))

	// the trial execution subscribed p to stock's price Observable while it
	// held a non-zero position; rollback must have undone that along with
	// the holding itself.
	assert.Equal(t, 0, stock.Len())
}

func TestDefaultPipelineIsSharedAndReusable(t *testing.T) {
	w := world.New()
	p, err := portfolio.New(w, "AUD")
	require.NoError(t, err)
	require.NoError(t, p.Transfer(mustCash(t, w, "AUD"), 1000))
	stock, err := assets.NewStock(w, "ZZB AU", price(2.50), assets.WithCurrencyCode("AUD"))
	require.NoError(t, err)

	tr, err := trade.New(p, stock, 40)
	require.NoError(t, err)
	require.NoError(t, trade.DefaultPipeline.Run(tr))
	assert.Equal(t, 40.0, p.GetHoldingUnits("ZZB AU"))

	tr2, err := trade.New(p, stock, 10)
	require.NoError(t, err)
	require.NoError(t, trade.DefaultPipeline.Run(tr2))
	assert.Equal(t, 50.0, p.GetHoldingUnits("ZZB AU"))
}

func mustCash(t *testing.T, w *world.World, currencyCode string) assets.Asset {
	t.Helper()
	cash, err := assets.GetCash(w, currencyCode)
	require.NoError(t, err)
	return cash
}
