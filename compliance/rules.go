package compliance

import (
	"fmt"
	"math"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/portfolio"
)

// UnitLimit passes while the portfolio's absolute holding in asset stays at
// or below limit units.
type UnitLimit struct {
	asset assets.Asset
	limit int
}

// NewUnitLimit returns a UnitLimit for asset. limit is stored as its
// absolute value, matching position_limits.py.
func NewUnitLimit(asset assets.Asset, limit int) *UnitLimit {
	if limit < 0 {
		limit = -limit
	}
	return &UnitLimit{asset: asset, limit: limit}
}

func (u *UnitLimit) Passes(p *portfolio.Portfolio) (bool, error) {
	position := p.GetHoldingUnits(string(u.asset.Code()))
	return math.Abs(position) <= float64(u.limit), nil
}

func (u *UnitLimit) String() string {
	return fmt.Sprintf("UnitLimit('%s', %s)", u.asset.Code(), groupThousands(u.limit))
}

// WeightLimit passes while the portfolio's absolute holding weight in asset
// stays at or below limit.
type WeightLimit struct {
	asset assets.Asset
	limit float64
}

// NewWeightLimit returns a WeightLimit for asset. limit is stored as its
// absolute value.
func NewWeightLimit(asset assets.Asset, limit float64) *WeightLimit {
	return &WeightLimit{asset: asset, limit: math.Abs(limit)}
}

func (w *WeightLimit) Passes(p *portfolio.Portfolio) (bool, error) {
	weight := p.GetHoldingWeight(string(w.asset.Code()))
	return math.Abs(weight) <= w.limit, nil
}

func (w *WeightLimit) String() string {
	return fmt.Sprintf("WeightLimit('%s', %.2f)", w.asset.Code(), w.limit)
}

func groupThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	var out []byte
	for i, c := range []byte(s) {
		if i != 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, c)
	}
	return string(out)
}
