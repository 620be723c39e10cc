package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

func setup(t *testing.T) (*world.World, *portfolio.Portfolio, assets.Asset, assets.Asset) {
	t.Helper()
	w := world.New()
	stock1, err := assets.NewStock(w, "BBB US", ptrFloat(2.00), assets.WithCurrencyCode("USD"))
	require.NoError(t, err)
	stock2, err := assets.NewStock(w, "CCC US", ptrFloat(2.00), assets.WithCurrencyCode("USD"))
	require.NoError(t, err)
	p, err := portfolio.New(w, "USD")
	require.NoError(t, err)
	require.NoError(t, p.Transfer(stock1, 200))
	require.NoError(t, p.Transfer(stock2, 200))
	return w, p, stock1, stock2
}

func ptrFloat(v float64) *float64 { return &v }

func TestComplianceRejectsNilRuleAndPortfolio(t *testing.T) {
	_, p, _, _ := setup(t)
	c := New()
	err := c.AddRule(nil)
	assert.Error(t, err)

	ok, err := c.Passes(nil)
	assert.Error(t, err)
	assert.False(t, ok)
	_ = p
}

func TestUnitLimit(t *testing.T) {
	_, p, stock1, _ := setup(t)
	rule := NewUnitLimit(stock1, 200)
	c := New()
	require.NoError(t, c.AddRule(rule))

	ok, err := c.Passes(p)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.Transfer(stock1, 1))
	ok, err = c.Passes(p)
	require.NoError(t, err)
	assert.False(t, ok)

	c.RemoveRule(rule)
	ok, err = c.Passes(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnitLimitString(t *testing.T) {
	_, _, stock1, _ := setup(t)
	rule := NewUnitLimit(stock1, 200)
	assert.Equal(t, "UnitLimit('BBB US', 200)", rule.String())
	rule2 := NewUnitLimit(stock1, 1000)
	assert.Equal(t, "UnitLimit('BBB US', 1,000)", rule2.String())
}

func TestWeightLimit(t *testing.T) {
	_, p, _, stock2 := setup(t)
	rule := NewWeightLimit(stock2, 0.50)
	c := New()
	require.NoError(t, c.AddRule(rule))

	ok, err := c.Passes(p)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.Transfer(stock2, 1))
	ok, err = c.Passes(p)
	require.NoError(t, err)
	assert.False(t, ok)

	c.RemoveRule(rule)
	ok, err = c.Passes(p)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestWeightLimitString(t *testing.T) {
	_, _, _, stock2 := setup(t)
	rule := NewWeightLimit(stock2, 0.50)
	assert.Equal(t, "WeightLimit('CCC US', 0.50)", rule.String())
}
