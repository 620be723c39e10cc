// Package assets implements the asset catalog: the Asset interface, its
// Cash and Stock implementations, and the FxRate catalog used to convert
// between them. It is grounded on pxtrade/assets/asset.go (Asset,
// StaticPriceAsset, VariablePriceAsset), pytrade/assets/cash.go (Cash,
// get_cash) and pytrading/assets/stock.py (Stock).
package assets

import (
	"fmt"

	"github.com/aristath/backtrade/codes"
	"github.com/aristath/backtrade/world"
)

// Asset is implemented by every tradeable instrument: cash in some currency,
// or a variable-priced instrument such as a stock.
type Asset interface {
	Code() codes.Code
	CurrencyCode() codes.Code
	Multiplier() float64
	// Price returns the asset's current quoted price, or nil if unset.
	Price() *float64
	// LocalValue returns price*multiplier in the asset's own currency, or
	// nil if the price is unset.
	LocalValue() *float64
	String() string
}

// assetCore is embedded by every concrete asset type; it carries the
// read-only-after-construction fields and the asset's registration.
type assetCore struct {
	code         codes.Code
	currencyCode codes.Code
	multiplier   float64
	registration *any
}

func (a *assetCore) Code() codes.Code         { return a.code }
func (a *assetCore) CurrencyCode() codes.Code { return a.currencyCode }
func (a *assetCore) Multiplier() float64      { return a.multiplier }

func initCore(w *world.World, code string, currencyCode string, multiplier float64, asset Asset) (assetCore, error) {
	assetCode := codes.Check(code)
	ccyCode, err := codes.CheckCurrencyCode(currencyCode)
	if err != nil {
		return assetCore{}, err
	}
	ref := codes.Ref[any](asset)
	if err := w.AssetCodes.Register(assetCode, ref); err != nil {
		return assetCore{}, err
	}
	return assetCore{code: assetCode, currencyCode: ccyCode, multiplier: multiplier, registration: ref}, nil
}

// GetAssetForCode returns the asset registered under code in w, or nil if
// none is registered (or it has been garbage collected).
func GetAssetForCode(w *world.World, code string) Asset {
	obj := w.AssetCodes.GetObjectForCode(codes.Check(code))
	if obj == nil {
		return nil
	}
	asset, _ := (*obj).(Asset)
	return asset
}

// GetInstances returns every currently-registered asset in w.
func GetInstances(w *world.World) []Asset {
	objs := w.AssetCodes.GetInstances()
	out := make([]Asset, 0, len(objs))
	for _, obj := range objs {
		if asset, ok := (*obj).(Asset); ok {
			out = append(out, asset)
		}
	}
	return out
}

func localValue(price *float64, multiplier float64) *float64 {
	if price == nil {
		return nil
	}
	v := *price * multiplier
	return &v
}

func assetString(asset Asset, className string) string {
	price := "<nil>"
	if p := asset.Price(); p != nil {
		price = trimFloat(*p)
	}
	return fmt.Sprintf("%s('%s', %s, currency_code='%s')", className, asset.Code(), price, asset.CurrencyCode())
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%g", v)
	return s
}
