// Package tax computes marginal tax on an increment of income, given how
// much of the period's income has already been taxed under the same table.
package tax

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/rates"
)

// ErrNegativeAmount is returned for a negative increment or already-taxed amount.
var ErrNegativeAmount = errors.New("negative taxable amount")

var oneHundred = decimal.NewFromInt(100)

// Slice is the part of a window that falls into one bracket.
type Slice struct {
	Bracket rates.Bracket
	Taxable decimal.Decimal
	Tax     decimal.Decimal
}

// Apply returns the tax due on increment when alreadyTaxed of the period's
// income has been taxed under s before.
func Apply(s *rates.Schedule, increment, alreadyTaxed decimal.Decimal) (decimal.Decimal, error) {
	return ApplyBrackets(s.Brackets(), increment, alreadyTaxed)
}

// ApplyBrackets is Apply over a raw bracket table, which is validated first.
func ApplyBrackets(brackets []rates.Bracket, increment, alreadyTaxed decimal.Decimal) (decimal.Decimal, error) {
	slices, err := ApportionBrackets(brackets, increment, alreadyTaxed)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, sl := range slices {
		total = total.Add(sl.Tax)
	}
	return total, nil
}

// Apportion splits the window [alreadyTaxed, alreadyTaxed+increment) across
// the brackets of s. Brackets the window does not touch are omitted.
func Apportion(s *rates.Schedule, increment, alreadyTaxed decimal.Decimal) ([]Slice, error) {
	return ApportionBrackets(s.Brackets(), increment, alreadyTaxed)
}

// ApportionBrackets is Apportion over a raw bracket table.
func ApportionBrackets(brackets []rates.Bracket, increment, alreadyTaxed decimal.Decimal) ([]Slice, error) {
	if err := rates.Validate(brackets); err != nil {
		return nil, err
	}
	if increment.IsNegative() {
		return nil, fmt.Errorf("%w: increment %s", ErrNegativeAmount, increment)
	}
	if alreadyTaxed.IsNegative() {
		return nil, fmt.Errorf("%w: already taxed %s", ErrNegativeAmount, alreadyTaxed)
	}

	start := alreadyTaxed
	end := alreadyTaxed.Add(increment)

	var slices []Slice
	for i, b := range brackets {
		upper := b.Upper
		if i == len(brackets)-1 && upper.LessThan(end) {
			// The top bracket's bound is a sentinel.
			upper = end
		}
		lo := decimal.Max(b.Lower, start)
		hi := decimal.Min(upper, end)
		if !lo.LessThan(hi) {
			continue
		}
		taxable := hi.Sub(lo)
		slices = append(slices, Slice{
			Bracket: b,
			Taxable: taxable,
			Tax:     taxable.Mul(b.Rate).Div(oneHundred),
		})
	}
	return slices, nil
}

// Calculator resolves schedules from a shared book.
type Calculator struct {
	book *rates.Book
}

// NewCalculator binds a calculator to book.
func NewCalculator(book *rates.Book) *Calculator {
	return &Calculator{book: book}
}

// Book returns the calculator's rate tables.
func (c *Calculator) Book() *rates.Book { return c.book }

// Due looks up the schedule for key and applies it.
func (c *Calculator) Due(key rates.Key, increment, alreadyTaxed decimal.Decimal) (decimal.Decimal, error) {
	s, err := c.book.Schedule(key)
	if err != nil {
		return decimal.Zero, err
	}
	return Apply(s, increment, alreadyTaxed)
}
