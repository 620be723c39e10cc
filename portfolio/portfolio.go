// Package portfolio implements the Portfolio type: a collection of asset
// holdings valued in a base currency, revalued whenever a held asset's
// price or relevant fx rate changes. Grounded on
// original_source/pytrading/assets/portfolio.py.
//
// Broker, Compliance and TradeExecutor are declared here, not in the broker/
// compliance/trade packages, so that Portfolio can hold them as fields
// without importing packages that in turn need to import Portfolio. The
// broker and compliance packages implement these interfaces structurally.
package portfolio

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aristath/backtrade/assets"
	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/codes"
	"github.com/aristath/backtrade/config"
	"github.com/aristath/backtrade/observable"
	"github.com/aristath/backtrade/world"
)

// TradeExecutor is the minimal view of a proposed trade that Broker,
// Compliance and their strategies need: which asset, how many units, and
// against which portfolio.
type TradeExecutor interface {
	Asset() assets.Asset
	Units() float64
	Portfolio() *Portfolio
}

// Broker executes a trade against a portfolio, applying whatever charge and
// execution strategy it is configured with.
type Broker interface {
	Execute(t TradeExecutor) error
}

// Compliance reports whether a portfolio satisfies every configured rule.
type Compliance interface {
	Passes(p *Portfolio) (bool, error)
}

// defaultBroker fills a trade at the asset's current local value with no
// charges, equivalent to the Python default of FillAtLast + NoCharges.
type defaultBroker struct{}

func (defaultBroker) Execute(t TradeExecutor) error {
	return t.Portfolio().Trade(t.Asset(), t.Units(), nil)
}

// defaultCompliance has no rules, so it always passes, matching an empty
// Compliance() instance.
type defaultCompliance struct{}

func (defaultCompliance) Passes(*Portfolio) (bool, error) { return true, nil }

// Portfolio holds asset quantities and revalues itself in its base
// currency whenever a held asset or relevant fx rate changes.
type Portfolio struct {
	world            *world.World
	code             codes.Code
	baseCurrencyCode codes.Code
	holdings         map[assets.Asset]float64
	value            float64
	compliance       Compliance
	broker           Broker
	log              zerolog.Logger

	// observerRef is the boxed identity the portfolio subscribes through on
	// every asset/fx Observable it holds a position in. It is created once
	// and reused for every subscription, mirroring assetCore.registration:
	// the portfolio itself pins the box, so Observable's weak subscriber
	// set correctly tracks the portfolio's own liveness.
	observerRef *observable.Observer
}

// Option customises New beyond its required base currency.
type Option func(*options)

type options struct {
	code string
	log  zerolog.Logger
}

// WithCode assigns a portfolio code other than the default "Portfolio".
// Portfolio codes must be unique within a World.
func WithCode(code string) Option {
	return func(o *options) { o.code = code }
}

// WithLogger attaches a structured logger. Defaults to zerolog.Nop().
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// New constructs a Portfolio. baseCurrencyCode defaults to the module's
// configured default currency when empty.
func New(w *world.World, baseCurrencyCode string, opts ...Option) (*Portfolio, error) {
	options := options{code: "Portfolio", log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}
	if baseCurrencyCode == "" {
		baseCurrencyCode = string(config.DefaultCurrencyCode())
	}
	base, err := codes.CheckCurrencyCode(baseCurrencyCode)
	if err != nil {
		return nil, err
	}

	p := &Portfolio{
		world:            w,
		code:             codes.Check(options.code),
		baseCurrencyCode: base,
		holdings:         make(map[assets.Asset]float64),
		compliance:       defaultCompliance{},
		broker:           defaultBroker{},
		log:              options.log.With().Str("component", "portfolio").Logger(),
	}
	p.observerRef = observable.Ref(p)
	if err := w.PortfolioCodes.Register(p.code, codes.Ref[any](p)); err != nil {
		return nil, err
	}
	return p, nil
}

// Value returns the portfolio's current value in its base currency.
func (p *Portfolio) Value() float64 { return p.value }

// Code returns the portfolio's registered code.
func (p *Portfolio) Code() codes.Code { return p.code }

// BaseCurrencyCode returns the portfolio's base currency. Read only after
// construction.
func (p *Portfolio) BaseCurrencyCode() codes.Code { return p.baseCurrencyCode }

// Compliance returns the portfolio's current compliance rule set.
func (p *Portfolio) Compliance() Compliance { return p.compliance }

// SetCompliance replaces the portfolio's compliance rule set.
func (p *Portfolio) SetCompliance(c Compliance) error {
	if c == nil {
		return fmt.Errorf("%w: expecting a Compliance instance", backtraderr.ErrTypeMismatch)
	}
	p.compliance = c
	return nil
}

// Broker returns the portfolio's current broker.
func (p *Portfolio) Broker() Broker { return p.broker }

// SetBroker replaces the portfolio's broker.
func (p *Portfolio) SetBroker(b Broker) error {
	if b == nil {
		return fmt.Errorf("%w: expecting a Broker instance", backtraderr.ErrTypeMismatch)
	}
	p.broker = b
	return nil
}

// Transfer adjusts a holding by units with no consideration leg, the
// degenerate case of Trade used to fund a portfolio.
func (p *Portfolio) Transfer(asset assets.Asset, units float64) error {
	zero := 0.0
	return p.Trade(asset, units, &zero)
}

// Trade adjusts the asset holding by units, settling the counter-leg in
// cash. If consideration is nil it is computed as asset.LocalValue()*-units;
// non-cash assets must trade in whole units.
func (p *Portfolio) Trade(asset assets.Asset, units float64, consideration *float64) error {
	if asset == nil {
		return fmt.Errorf("%w: expecting an Asset instance", backtraderr.ErrTypeMismatch)
	}
	_, isCash := asset.(*assets.Cash)
	if !isCash && math.Trunc(units) != units {
		return fmt.Errorf("%w: expecting an integer number of units", backtraderr.ErrTypeMismatch)
	}

	var considerationValue float64
	if consideration == nil {
		lv := asset.LocalValue()
		if lv == nil {
			return fmt.Errorf("%w: asset local value is unavailable", backtraderr.ErrDomainViolation)
		}
		considerationValue = *lv * -units
	} else {
		considerationValue = *consideration
	}

	assetCurrencyCode := asset.CurrencyCode()
	cash, err := assets.GetCash(p.world, string(assetCurrencyCode))
	if err != nil {
		return err
	}
	if isCash {
		cash, err = assets.GetCash(p.world, string(p.baseCurrencyCode))
		if err != nil {
			return err
		}
		rate, err := assets.Get(p.world, string(p.baseCurrencyCode)+string(assetCurrencyCode))
		if err != nil {
			return err
		}
		considerationValue /= rate
	}

	p.holdings[asset] += units
	p.holdings[cash] += considerationValue
	if err := p.reconcileObservers(map[assets.Asset]struct{}{asset: {}, cash: {}}); err != nil {
		return err
	}
	return p.revalue()
}

// reconcileObservers subscribes or unsubscribes the portfolio from each
// candidate asset's price Observable and fx rate Observable so that
// membership matches the portfolio's current holdings: subscribed once a
// non-zero holding exists (in the asset itself, for a Stock; in any asset
// sharing the currency, for fx), unsubscribed once none remain. Assets not
// in candidates are left untouched.
//
// Called after every real Trade with the touched asset and its cash leg as
// candidates, and after Restore with the union of pre- and post-restore
// holdings keys, so that subscriptions a rolled-back trial added or removed
// are reconciled back to the restored state rather than left dangling.
func (p *Portfolio) reconcileObservers(candidates map[assets.Asset]struct{}) error {
	seenCurrency := make(map[codes.Code]bool, len(candidates))
	for asset := range candidates {
		if stock, ok := asset.(*assets.Stock); ok {
			if p.holdings[stock] != 0 {
				stock.AddObserver(p.observerRef)
			} else {
				stock.RemoveObserver(p.observerRef)
			}
		}

		currency := asset.CurrencyCode()
		if seenCurrency[currency] {
			continue
		}
		seenCurrency[currency] = true

		fxPair := string(p.baseCurrencyCode) + string(currency)
		if assets.IsEquivalentPair(codes.Code(fxPair)) {
			continue
		}
		fxObservable, err := assets.GetObservableInstance(p.world, fxPair)
		if err != nil {
			continue
		}
		if p.currencyHeld(currency) {
			fxObservable.AddObserver(p.observerRef)
		} else {
			fxObservable.RemoveObserver(p.observerRef)
		}
	}
	return nil
}

// currencyHeld reports whether any current holding denominated in currency
// is non-zero.
func (p *Portfolio) currencyHeld(currency codes.Code) bool {
	for asset, units := range p.holdings {
		if units != 0 && asset.CurrencyCode() == currency {
			return true
		}
	}
	return false
}

// ObservableUpdate implements observable.Observer: any subscribed asset
// price or fx rate change triggers a full revaluation. Errors here (a
// dangling registration whose fx rate disappeared) are logged rather than
// propagated, since the observer callback has no error return.
func (p *Portfolio) ObservableUpdate(any) {
	if err := p.revalue(); err != nil {
		p.log.Error().Err(err).Msg("revalue failed on observed update")
	}
}

func (p *Portfolio) revalue() error {
	value := 0.0
	for asset, units := range p.holdings {
		fxPair := string(p.baseCurrencyCode) + string(asset.CurrencyCode())
		rate, err := assets.Get(p.world, fxPair)
		if err != nil {
			return err
		}
		lv := asset.LocalValue()
		if lv == nil {
			continue
		}
		value += *lv / rate * units
	}
	p.value = value
	return nil
}

// Snapshot is a memento of a portfolio's holdings and value, used by the
// trade pipeline to try a trade against the real broker and compliance
// rules and then roll back, without a deep copy of the portfolio itself.
type Snapshot struct {
	holdings map[assets.Asset]float64
	value    float64
}

// Snapshot captures the portfolio's current holdings and value.
func (p *Portfolio) Snapshot() Snapshot {
	holdings := make(map[assets.Asset]float64, len(p.holdings))
	for asset, units := range p.holdings {
		holdings[asset] = units
	}
	return Snapshot{holdings: holdings, value: p.value}
}

// Restore puts the portfolio's holdings, value and observer subscriptions
// back to a prior Snapshot. Any asset whose holding key appeared or
// disappeared between the snapshot and now (the trial traded something for
// the first time, or nothing at all) is reconciled along with every asset
// present in either state, so a trial's subscription side effects are
// undone exactly as its holding changes are.
func (p *Portfolio) Restore(s Snapshot) error {
	candidates := make(map[assets.Asset]struct{}, len(p.holdings)+len(s.holdings))
	for asset := range p.holdings {
		candidates[asset] = struct{}{}
	}
	for asset := range s.holdings {
		candidates[asset] = struct{}{}
	}
	p.holdings = s.holdings
	p.value = s.value
	return p.reconcileObservers(candidates)
}

// GetHoldingUnits returns the raw stored unit count for assetCode, or 0 if
// nothing is held.
func (p *Portfolio) GetHoldingUnits(assetCode string) float64 {
	code := codes.Check(assetCode)
	for asset, units := range p.holdings {
		if asset.Code() == code {
			return units
		}
	}
	return 0
}

// GetHoldingWeight returns the holding's fraction of total portfolio value,
// or 0 if nothing is held.
func (p *Portfolio) GetHoldingWeight(assetCode string) float64 {
	code := codes.Check(assetCode)
	for asset, units := range p.holdings {
		if asset.Code() == code {
			fxPair := string(p.baseCurrencyCode) + string(asset.CurrencyCode())
			rate, err := assets.Get(p.world, fxPair)
			if err != nil {
				return 0
			}
			lv := asset.LocalValue()
			if lv == nil {
				return 0
			}
			assetValue := *lv / rate * units
			if p.value == 0 {
				return 0
			}
			return assetValue / p.value
		}
	}
	return 0
}

func (p *Portfolio) String() string {
	header := fmt.Sprintf("Portfolio('%s')", p.baseCurrencyCode)

	type holding struct {
		asset assets.Asset
		units float64
	}
	var held []holding
	for asset, units := range p.holdings {
		if units != 0 {
			held = append(held, holding{asset, units})
		}
	}
	if len(held) == 0 {
		return header
	}
	sort.Slice(held, func(i, j int) bool { return held[i].asset.Code() < held[j].asset.Code() })

	lines := make([]string, 0, len(held))
	for _, h := range held {
		lines = append(lines, fmt.Sprintf("%s: %s", h.asset, formatUnits(h.units)))
	}
	return header + ":\n" + strings.Join(lines, "\n")
}

func formatUnits(units float64) string {
	sign := ""
	if units < 0 {
		sign = "-"
		units = -units
	}
	whole := int64(units)
	s := fmt.Sprintf("%d", whole)
	var grouped strings.Builder
	for i, r := range s {
		if i != 0 && (len(s)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(r)
	}
	return sign + grouped.String()
}
