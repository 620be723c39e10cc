// Package config holds the module's ambient, non-domain settings: currently
// just the default currency code new portfolios and assets fall back to
// when the caller doesn't name one explicitly. This mirrors
// pxtrade.settings, which keeps a single ConfigParser-backed "default
// currency" setting independent of any particular backtest run.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/aristath/backtrade/codes"
)

const defaultCurrencyEnvVar = "CURRENCY_DEFAULT"
const fallbackCurrency = codes.Code("USD")

// Config is the module's settings surface. The zero value is not valid;
// use Load or New.
type Config struct {
	defaultCurrency codes.Code
}

// New returns a Config with the given default currency code, validated as a
// 3-letter currency code.
func New(defaultCurrency string) (*Config, error) {
	code, err := codes.CheckCurrencyCode(defaultCurrency)
	if err != nil {
		return nil, err
	}
	return &Config{defaultCurrency: code}, nil
}

// Option customises Load beyond its environment-driven defaults.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger attaches a structured logger Load reports its environment
// handling through. Defaults to zerolog.Nop(), matching every other
// constructor in this module (portfolio.WithLogger, backtest.WithLogger):
// the engine stays silent unless a caller opts in.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Load reads CURRENCY_DEFAULT from the environment, first attempting to
// populate the environment from a ".env" file via godotenv (a missing file
// is not an error). It falls back to "USD" if the variable is unset or
// invalid.
func Load(opts ...Option) *Config {
	options := options{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(&options)
	}
	log := options.log.With().Str("component", "config").Logger()

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Debug().Err(err).Msg("config: .env not loaded")
	}

	value := os.Getenv(defaultCurrencyEnvVar)
	if value == "" {
		return &Config{defaultCurrency: fallbackCurrency}
	}
	code, err := codes.CheckCurrencyCode(value)
	if err != nil {
		log.Warn().Err(err).Str("value", value).Msg("config: ignoring invalid CURRENCY_DEFAULT")
		return &Config{defaultCurrency: fallbackCurrency}
	}
	return &Config{defaultCurrency: code}
}

// DefaultCurrency returns the configured default currency code.
func (c *Config) DefaultCurrency() codes.Code {
	return c.defaultCurrency
}

// SetDefaultCurrency replaces the default currency code.
func (c *Config) SetDefaultCurrency(currency string) error {
	code, err := codes.CheckCurrencyCode(currency)
	if err != nil {
		return err
	}
	c.defaultCurrency = code
	return nil
}

var global = &Config{defaultCurrency: fallbackCurrency}

// DefaultCurrencyCode returns the package-level default currency code, used
// by asset and portfolio constructors that aren't given an explicit
// currency. Matches pxtrade.settings.get_default_currency_code().
func DefaultCurrencyCode() codes.Code {
	return global.DefaultCurrency()
}

// SetDefaultCurrencyCode replaces the package-level default currency code.
// Matches pxtrade.settings.set_default_currency_code().
func SetDefaultCurrencyCode(currency string) error {
	code, err := codes.CheckCurrencyCode(currency)
	if err != nil {
		return err
	}
	global.defaultCurrency = code
	return nil
}
