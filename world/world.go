// Package world replaces the module-level mutable state the original
// implementation kept as WeakValueDictionary class attributes (Asset._codes,
// Portfolio._codes, FxRate._instances) with an explicit value callers
// construct and thread through. Resetting the backtesting state between runs
// is then just constructing a fresh World instead of calling classmethod
// reset() hooks.
//
// World intentionally knows nothing about Asset, Portfolio or FxRate types:
// it only stores `any` behind three weak registries. Typed helpers for
// registering and looking up domain objects live in the packages that own
// those types (assets, portfolio) to avoid an import cycle between world and
// those packages.
package world

import "github.com/aristath/backtrade/codes"

// World holds every registry that used to be a package-level global:
// registered asset codes, registered portfolio codes, and the fx rate
// catalog (keyed by currency pair).
type World struct {
	AssetCodes     *codes.Registry[any]
	PortfolioCodes *codes.Registry[any]
	FX             *codes.Registry[any]
}

// New returns an empty World.
func New() *World {
	return &World{
		AssetCodes:     codes.NewRegistry[any](),
		PortfolioCodes: codes.NewRegistry[any](),
		FX:             codes.NewRegistry[any](),
	}
}

// Reset clears every registry, equivalent to constructing a fresh World but
// useful when callers already hold a *World they want to keep reusing.
func (w *World) Reset() {
	w.AssetCodes.Reset()
	w.PortfolioCodes.Reset()
	w.FX.Reset()
}

var defaultWorld = New()

// Default returns a package-level World for callers that don't need
// isolated backtesting universes. Nothing in this module reaches for it
// implicitly; every constructor takes a *World explicitly.
func Default() *World {
	return defaultWorld
}
