package assets

import (
	"fmt"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/codes"
	"github.com/aristath/backtrade/observable"
	"github.com/aristath/backtrade/world"
)

// FxRate tracks the exchange rate for a currency pair (e.g. "AUDUSD") and
// notifies observers (typically Portfolio holdings in that currency)
// whenever the rate changes. Grounded on pytrade/assets/fx_rates.py.
type FxRate struct {
	observable.Observable
	pair codes.Code
	rate *float64
}

// ValidatePair normalises and validates a 6-character currency pair code.
func ValidatePair(pair string) (codes.Code, error) {
	code := codes.Check(pair)
	if len(code) != 6 {
		return "", fmt.Errorf("%w: expected a 6 character currency pair, got %q", backtraderr.ErrDomainViolation, string(code))
	}
	return code, nil
}

// SplitPair splits a validated pair into its two currency codes.
func SplitPair(pair codes.Code) (codes.Code, codes.Code) {
	return pair[:3], pair[3:]
}

// IsEquivalentPair reports whether pair quotes a currency against itself
// (e.g. "AUDAUD"), for which the rate is always 1.0.
func IsEquivalentPair(pair codes.Code) bool {
	a, b := SplitPair(pair)
	return a == b
}

// InversePair returns the inverse of pair, e.g. "AUDUSD" -> "USDAUD".
func InversePair(pair codes.Code) codes.Code {
	a, b := SplitPair(pair)
	return b + a
}

// NewFxRate registers and returns a new FxRate for pair. It fails if pair or
// its inverse has already been registered, since a pair and its inverse
// describe the same rate and must not diverge.
func NewFxRate(w *world.World, pair string, rate *float64) (*FxRate, error) {
	code, err := ValidatePair(pair)
	if err != nil {
		return nil, err
	}
	if w.FX.CodeInUse(code) {
		return nil, fmt.Errorf("%w: %s already created", backtraderr.ErrNameConflict, string(code))
	}
	inverse := InversePair(code)
	if w.FX.CodeInUse(inverse) {
		return nil, fmt.Errorf("%w: %s inverse pair already created", backtraderr.ErrNameConflict, string(inverse))
	}

	fx := &FxRate{pair: code, rate: rate}
	fx.Observable.Init(fx)
	if err := w.FX.Register(code, codes.Ref[any](fx)); err != nil {
		return nil, err
	}
	return fx, nil
}

// Pair returns the fx rate's currency pair. Read only after construction.
func (f *FxRate) Pair() codes.Code {
	return f.pair
}

// Rate returns the current rate, or nil if unset.
func (f *FxRate) Rate() *float64 {
	return f.rate
}

// SetRate updates the rate (must be > 0) and notifies observers.
func (f *FxRate) SetRate(rate float64) error {
	if rate <= 0 {
		return fmt.Errorf("%w: fx rate must be > 0", backtraderr.ErrDomainViolation)
	}
	f.rate = &rate
	f.NotifyObservers()
	return nil
}

func (f *FxRate) String() string {
	rate := "<nil>"
	if f.rate != nil {
		rate = trimFloat(*f.rate)
	}
	return fmt.Sprintf("FxRate('%s', %s)", f.pair, rate)
}

// Get returns the rate for pair, computing it from the inverse if needed.
// Equivalent pairs (e.g. "AUDAUD") always return 1.0.
func Get(w *world.World, pair string) (float64, error) {
	code, err := ValidatePair(pair)
	if err != nil {
		return 0, err
	}
	if IsEquivalentPair(code) {
		return 1.0, nil
	}
	if obj := w.FX.GetObjectForCode(code); obj != nil {
		if fx, ok := (*obj).(*FxRate); ok && fx.rate != nil {
			return *fx.rate, nil
		}
	}
	inverse := InversePair(code)
	if obj := w.FX.GetObjectForCode(inverse); obj != nil {
		if fx, ok := (*obj).(*FxRate); ok && fx.rate != nil {
			return 1 / *fx.rate, nil
		}
	}
	return 0, fmt.Errorf("%w: %s rate not available", backtraderr.ErrMissingResource, string(code))
}

// GetInstance returns the FxRate registered for the exact pair (not its
// inverse), or ErrMissingResource.
func GetInstance(w *world.World, pair string) (*FxRate, error) {
	code, err := ValidatePair(pair)
	if err != nil {
		return nil, err
	}
	obj := w.FX.GetObjectForCode(code)
	if obj == nil {
		return nil, fmt.Errorf("%w: %s instance doesn't exist", backtraderr.ErrMissingResource, string(code))
	}
	fx, _ := (*obj).(*FxRate)
	return fx, nil
}

// GetObservableInstance returns the FxRate registered for pair or its
// inverse, so callers can subscribe to rate changes regardless of which
// direction was originally created.
func GetObservableInstance(w *world.World, pair string) (*FxRate, error) {
	code, err := ValidatePair(pair)
	if err != nil {
		return nil, err
	}
	if obj := w.FX.GetObjectForCode(code); obj != nil {
		if fx, ok := (*obj).(*FxRate); ok {
			return fx, nil
		}
	}
	inverse := InversePair(code)
	if obj := w.FX.GetObjectForCode(inverse); obj != nil {
		if fx, ok := (*obj).(*FxRate); ok {
			return fx, nil
		}
	}
	return nil, fmt.Errorf("%w: %s instance doesn't exist", backtraderr.ErrMissingResource, string(code))
}

// GetFxInstances returns every currently-registered FxRate in w.
func GetFxInstances(w *world.World) []*FxRate {
	objs := w.FX.GetInstances()
	out := make([]*FxRate, 0, len(objs))
	for _, obj := range objs {
		if fx, ok := (*obj).(*FxRate); ok {
			out = append(out, fx)
		}
	}
	return out
}
