// Package rates holds progressive bracket tables keyed by jurisdiction,
// category, filing status and year.
package rates

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/model"
)

// Unbounded is the sentinel upper bound of a table's top bracket.
var Unbounded = decimal.NewFromInt(999_999_999)

var (
	// ErrInvalidSchedule matches every *InvalidScheduleError.
	ErrInvalidSchedule = errors.New("invalid rate schedule")
	// ErrUnknownJurisdiction matches every *UnknownJurisdictionError.
	ErrUnknownJurisdiction = errors.New("unknown jurisdiction")
)

// Bracket is one marginal band [Lower, Upper) taxed at Rate percent.
type Bracket struct {
	Lower decimal.Decimal
	Upper decimal.Decimal
	Rate  decimal.Decimal
}

// NewBracket builds a bracket from integer bounds and a percent rate.
func NewBracket(lower, upper int64, rate float64) Bracket {
	return Bracket{
		Lower: decimal.NewFromInt(lower),
		Upper: decimal.NewFromInt(upper),
		Rate:  decimal.NewFromFloat(rate),
	}
}

// Key identifies one table.
type Key struct {
	Jurisdiction string
	Category     model.Category
	Status       model.FilingStatus
	Year         int
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s/%d", k.Jurisdiction, k.Category, k.Status, k.Year)
}

// InvalidScheduleError describes the first malformed bracket found.
type InvalidScheduleError struct {
	Key    Key
	Index  int
	Reason string
}

func (e *InvalidScheduleError) Error() string {
	return fmt.Sprintf("schedule %s bracket %d: %s", e.Key, e.Index, e.Reason)
}

// Is reports ErrInvalidSchedule.
func (e *InvalidScheduleError) Is(target error) bool {
	return target == ErrInvalidSchedule
}

// UnknownJurisdictionError reports a lookup with no table behind it.
type UnknownJurisdictionError struct {
	Key Key
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("no rate table for %s", e.Key)
}

// Is reports ErrUnknownJurisdiction.
func (e *UnknownJurisdictionError) Is(target error) bool {
	return target == ErrUnknownJurisdiction
}

// Schedule is an immutable, validated bracket table.
type Schedule struct {
	key      Key
	brackets []Bracket
}

// NewSchedule validates brackets and stores a private copy.
func NewSchedule(key Key, brackets []Bracket) (*Schedule, error) {
	if err := Validate(brackets); err != nil {
		var ise *InvalidScheduleError
		if errors.As(err, &ise) {
			ise.Key = key
		}
		return nil, err
	}
	return &Schedule{key: key, brackets: append([]Bracket(nil), brackets...)}, nil
}

// Key returns the table's identity.
func (s *Schedule) Key() Key { return s.key }

// Brackets returns a copy of the ordered brackets.
func (s *Schedule) Brackets() []Bracket {
	return append([]Bracket(nil), s.brackets...)
}

// Validate checks that brackets start at zero, ascend, abut without gaps
// and carry non-negative rates.
func Validate(brackets []Bracket) error {
	if len(brackets) == 0 {
		return &InvalidScheduleError{Index: -1, Reason: "no brackets"}
	}
	if !brackets[0].Lower.IsZero() {
		return &InvalidScheduleError{Index: 0, Reason: fmt.Sprintf("first lower bound %s is not zero", brackets[0].Lower)}
	}
	for i, b := range brackets {
		if b.Rate.IsNegative() {
			return &InvalidScheduleError{Index: i, Reason: fmt.Sprintf("negative rate %s", b.Rate)}
		}
		if !b.Lower.LessThan(b.Upper) {
			return &InvalidScheduleError{Index: i, Reason: fmt.Sprintf("lower bound %s not below upper bound %s", b.Lower, b.Upper)}
		}
		if i > 0 && !brackets[i-1].Upper.Equal(b.Lower) {
			return &InvalidScheduleError{Index: i, Reason: fmt.Sprintf("lower bound %s does not abut previous upper bound %s", b.Lower, brackets[i-1].Upper)}
		}
	}
	return nil
}
