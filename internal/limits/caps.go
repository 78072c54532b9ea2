// Package limits enforces annual caps on pretax contributions. Validators
// are pure: callers read Usage from the ledger, check, and only then post.
package limits

import (
	"errors"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// ErrNoCaps is returned for a year with no configured caps.
var ErrNoCaps = errors.New("no contribution caps configured")

// Caps are one year's contribution ceilings.
type Caps struct {
	RetirementTotal    decimal.Decimal // employee + employer across retirement plans
	RetirementEmployee decimal.Decimal // elective deferrals across all plans
	DependentCare      decimal.Decimal
	MatchPercent       decimal.Decimal // employer match ceiling, percent of gross
}

// DefaultCaps returns the built-in caps keyed by year.
func DefaultCaps() map[int]Caps {
	return map[int]Caps{
		2020: {
			RetirementTotal:    decimal.NewFromInt(57000),
			RetirementEmployee: decimal.NewFromInt(19500),
			DependentCare:      decimal.NewFromInt(5000),
			MatchPercent:       decimal.NewFromInt(25),
		},
		2021: {
			RetirementTotal:    decimal.NewFromInt(58000),
			RetirementEmployee: decimal.NewFromInt(19500),
			DependentCare:      decimal.NewFromInt(10500),
			MatchPercent:       decimal.NewFromInt(25),
		},
	}
}

// Table maps years to caps. It is read-only after construction.
type Table struct {
	caps map[int]Caps
}

// NewTable copies caps into a table.
func NewTable(caps map[int]Caps) *Table {
	t := &Table{caps: make(map[int]Caps, len(caps))}
	for year, c := range caps {
		t.caps[year] = c
	}
	return t
}

// DefaultTable is NewTable(DefaultCaps()).
func DefaultTable() *Table {
	return NewTable(DefaultCaps())
}

// Caps returns the caps for year.
func (t *Table) Caps(year int) (Caps, error) {
	c, ok := t.caps[year]
	if !ok {
		return Caps{}, fmt.Errorf("%w: %d", ErrNoCaps, year)
	}
	return c, nil
}

// Years lists configured years in ascending order.
func (t *Table) Years() []int {
	years := make([]int, 0, len(t.caps))
	for year := range t.caps {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

// Enforcer returns an enforcer bound to year's caps.
func (t *Table) Enforcer(year int) (*Enforcer, error) {
	c, err := t.Caps(year)
	if err != nil {
		return nil, err
	}
	return NewEnforcer(c), nil
}
