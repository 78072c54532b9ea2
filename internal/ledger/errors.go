package ledger

import (
	"errors"
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// ErrMalformedTransfer is returned for transfers the engine cannot post:
// non-finite or negative amounts, unknown accounts, missing descriptions.
var ErrMalformedTransfer = errors.New("malformed transfer")

// AmountFromFloat converts a float amount, rejecting NaN and infinities.
func AmountFromFloat(f float64) (decimal.Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, fmt.Errorf("%w: amount %v is not finite", ErrMalformedTransfer, f)
	}
	return decimal.NewFromFloat(f), nil
}
