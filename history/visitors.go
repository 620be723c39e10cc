package history

import (
	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/portfolio"
	"github.com/aristath/backtrade/world"
)

// Visitor records whatever rows instance should contribute to a snapshot.
type Visitor interface {
	Visit(instance any) []Row
}

// AssetVisitor records an asset's code and local value.
type AssetVisitor struct{}

func (AssetVisitor) Visit(instance any) []Row {
	asset := instance.(assets.Asset)
	var value any
	if lv := asset.LocalValue(); lv != nil {
		value = *lv
	}
	return []Row{{Name: string(asset.Code()), Value: value}}
}

// FxRateVisitor records an fx pair's code and rate.
type FxRateVisitor struct{}

func (FxRateVisitor) Visit(instance any) []Row {
	fx := instance.(*assets.FxRate)
	var value any
	if r := fx.Rate(); r != nil {
		value = *r
	}
	return []Row{{Name: string(fx.Pair()), Value: value}}
}

// PortfolioVisitor records a portfolio's total value plus, per known asset,
// a "<portfolio code>_<asset code>" row of that asset's holding units.
type PortfolioVisitor struct {
	world *world.World
}

func (v PortfolioVisitor) Visit(instance any) []Row {
	p := instance.(*portfolio.Portfolio)
	rows := []Row{{Name: string(p.Code()), Value: p.Value()}}
	for _, asset := range assets.GetInstances(v.world) {
		code := string(asset.Code())
		rows = append(rows, Row{
			Name:  string(p.Code()) + "_" + code,
			Value: p.GetHoldingUnits(code),
		})
	}
	return rows
}
