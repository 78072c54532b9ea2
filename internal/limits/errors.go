package limits

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrExceedsGrossPay        = errors.New("pretax contributions exceed gross pay")
	ErrExceedsRetirementSpace = errors.New("retirement contribution exceeds remaining space")
	ErrExceedsMatchCap        = errors.New("employer match exceeds cap")
	ErrExceedsChildCareCap    = errors.New("dependent care contribution exceeds remaining cap")
)

// LimitError reports a rejected contribution. Rule is one of the Err* values above.
type LimitError struct {
	Rule      error
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("%v: requested %s, available %s", e.Rule, e.Requested.StringFixed(2), e.Available.StringFixed(2))
}

func (e *LimitError) Unwrap() error {
	return e.Rule
}

func check(rule error, requested, available decimal.Decimal) error {
	if requested.GreaterThan(available) {
		return &LimitError{Rule: rule, Requested: requested, Available: available}
	}
	return nil
}
