package ledger

import "github.com/taxit-dev/taxit/internal/model"

// Filter selects entries for aggregate queries.
type Filter func(model.Entry) bool

// ByDescription matches entries posted under one category label.
func ByDescription(description string) Filter {
	return func(e model.Entry) bool { return e.Description == description }
}

// ForBeneficiary matches entries made for the benefit of one person.
func ForBeneficiary(beneficiary model.OwnerID) Filter {
	return func(e model.Entry) bool { return e.Beneficiary == beneficiary }
}

// InPeriod matches entries of one tax year.
func InPeriod(period int) Filter {
	return func(e model.Entry) bool { return e.Period == period }
}

// Credits matches entries that increased the account.
func Credits() Filter {
	return func(e model.Entry) bool { return e.Amount.IsPositive() }
}

// All matches entries accepted by every filter.
func All(filters ...Filter) Filter {
	return func(e model.Entry) bool {
		for _, f := range filters {
			if !f(e) {
				return false
			}
		}
		return true
	}
}
