package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/model"
)

// Account is an append-only record of entries for one owner.
type Account struct {
	model.Account
	entries []model.Entry
}

// post appends an entry. Only Ledger.Transfer calls it.
func (a *Account) post(e model.Entry) error {
	if e.AccountID != a.ID {
		return fmt.Errorf("%w: entry for account %d posted to account %d", ErrMalformedTransfer, e.AccountID, a.ID)
	}
	a.entries = append(a.entries, e)
	return nil
}

// Entries returns a copy of the posted entries in arrival order.
func (a *Account) Entries() []model.Entry {
	return append([]model.Entry(nil), a.entries...)
}

// Len returns the number of posted entries.
func (a *Account) Len() int { return len(a.entries) }

// Value is the sum of all entry amounts.
func (a *Account) Value() decimal.Decimal {
	return a.FilteredSum(nil)
}

// Highwater is the sum of absolute amounts posted under description for
// beneficiary: how much has already been processed in that category.
func (a *Account) Highwater(description string, beneficiary model.OwnerID) decimal.Decimal {
	return a.FilteredAbsSum(All(ByDescription(description), ForBeneficiary(beneficiary)))
}

// HighwaterIn is Highwater restricted to one period.
func (a *Account) HighwaterIn(description string, beneficiary model.OwnerID, period int) decimal.Decimal {
	return a.FilteredAbsSum(All(ByDescription(description), ForBeneficiary(beneficiary), InPeriod(period)))
}

// FilteredSum sums the signed amounts of entries matching f. A nil filter matches all.
func (a *Account) FilteredSum(f Filter) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range a.entries {
		if f == nil || f(e) {
			sum = sum.Add(e.Amount)
		}
	}
	return sum
}

// FilteredAbsSum sums the absolute amounts of entries matching f.
func (a *Account) FilteredAbsSum(f Filter) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range a.entries {
		if f == nil || f(e) {
			sum = sum.Add(e.Amount.Abs())
		}
	}
	return sum
}

// SumAccounts adds FilteredSum across accounts.
func SumAccounts(accounts []*Account, f Filter) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range accounts {
		sum = sum.Add(a.FilteredSum(f))
	}
	return sum
}
