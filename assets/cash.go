package assets

import (
	"fmt"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/codes"
	"github.com/aristath/backtrade/world"
)

// Cash represents a holding of some currency. Its price is always 1.0 in
// its own currency and cannot be changed after construction.
type Cash struct {
	assetCore
}

// NewCash registers and returns a Cash asset for the given currency code.
func NewCash(w *world.World, currencyCode string) (*Cash, error) {
	code, err := codes.CheckCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	cash := &Cash{}
	core, err := initCore(w, string(code), string(code), 1.0, cash)
	if err != nil {
		return nil, err
	}
	cash.assetCore = core
	return cash, nil
}

// GetCash returns the Cash asset registered for currencyCode in w, creating
// it if no asset is yet registered under that code. It returns
// ErrDomainViolation if the code is already in use by a non-Cash asset, the
// Go analogue of the currency code being "reserved for cash".
func GetCash(w *world.World, currencyCode string) (*Cash, error) {
	code, err := codes.CheckCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	if existing := GetAssetForCode(w, string(code)); existing != nil {
		cash, ok := existing.(*Cash)
		if !ok {
			return nil, fmt.Errorf("%w: currency code %q is reserved for cash", backtraderr.ErrDomainViolation, string(code))
		}
		return cash, nil
	}
	return NewCash(w, string(code))
}

func (c *Cash) Price() *float64 {
	v := 1.0
	return &v
}

func (c *Cash) LocalValue() *float64 {
	v := c.multiplier
	return &v
}

func (c *Cash) String() string {
	return assetString(c, "Cash")
}
