package events

import (
	"fmt"
	"time"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
)

// AssetPriceEvent applies a new price to a Stock when processed.
type AssetPriceEvent struct {
	baseEvent
	asset *assets.Stock
	value float64
}

// NewAssetPriceEvent proposes a price change for asset. value must be
// strictly positive.
func NewAssetPriceEvent(asset *assets.Stock, datetime time.Time, value float64) (*AssetPriceEvent, error) {
	if asset == nil {
		return nil, fmt.Errorf("%w: expecting a Stock instance", backtraderr.ErrTypeMismatch)
	}
	if err := checkPositive(value); err != nil {
		return nil, err
	}
	return &AssetPriceEvent{baseEvent: newBaseEvent(datetime, value), asset: asset, value: value}, nil
}

// Asset returns the stock this event updates.
func (e *AssetPriceEvent) Asset() *assets.Stock { return e.asset }

func (e *AssetPriceEvent) Process() error {
	return processOnce(&e.processed, func() error {
		e.asset.SetPrice(&e.value)
		return nil
	})
}

func (e *AssetPriceEvent) String() string {
	return fmt.Sprintf("AssetPriceEvent(Stock('%s'), %s, %v)", e.asset.Code(), e.datetime.Format(timeLayout), e.value)
}
