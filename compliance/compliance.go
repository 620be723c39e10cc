// Package compliance implements position-limit rules arranged with a
// composite pattern: a Compliance instance passes only if every rule it
// holds passes. Grounded on
// original_source/pytrade/compliance/{base,position_limits}.py.
package compliance

import (
	"fmt"

	"github.com/aristath/backtrade/backtraderr"
	"github.com/aristath/backtrade/portfolio"
)

// Rule is a single compliance check against a portfolio.
type Rule interface {
	Passes(p *portfolio.Portfolio) (bool, error)
	String() string
}

// Compliance is the AND of every rule it holds. It implements
// portfolio.Compliance; it has no String method, so it is not itself a Rule.
type Compliance struct {
	rules map[Rule]struct{}
}

// New returns an empty Compliance, which trivially passes until rules are
// added.
func New() *Compliance {
	return &Compliance{rules: make(map[Rule]struct{})}
}

// AddRule adds rule to the set. Adding the same rule twice is a no-op.
func (c *Compliance) AddRule(rule Rule) error {
	if rule == nil {
		return fmt.Errorf("%w: expecting a Rule instance", backtraderr.ErrTypeMismatch)
	}
	c.rules[rule] = struct{}{}
	return nil
}

// RemoveRule removes rule, if present.
func (c *Compliance) RemoveRule(rule Rule) {
	delete(c.rules, rule)
}

// Passes reports whether every rule passes for p.
func (c *Compliance) Passes(p *portfolio.Portfolio) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("%w: expecting a Portfolio instance", backtraderr.ErrTypeMismatch)
	}
	for rule := range c.rules {
		ok, err := rule.Passes(p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
