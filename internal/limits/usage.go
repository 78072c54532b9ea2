package limits

import (
	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/model"
)

// Usage is what a person has already contributed this period.
type Usage struct {
	Primary         decimal.Decimal // credits to primary-plan accounts, employee and employer
	Secondary       decimal.Decimal // credits to secondary-plan accounts, employee and employer
	Deferrals       decimal.Decimal // employee credits across all retirement plans
	DependentCare   decimal.Decimal
	SecondaryActive bool // a secondary-plan account holds a positive balance
}

// ReadUsage aggregates period credits for beneficiary across accounts.
// Accounts that carry no contribution tag are ignored.
func ReadUsage(accounts []*ledger.Account, beneficiary model.OwnerID, period int) Usage {
	credits := ledger.All(ledger.Credits(), ledger.InPeriod(period), ledger.ForBeneficiary(beneficiary))
	deferrals := ledger.All(credits, ledger.ByDescription(model.DescRetirement))

	u := Usage{
		Primary:       decimal.Zero,
		Secondary:     decimal.Zero,
		Deferrals:     decimal.Zero,
		DependentCare: decimal.Zero,
	}
	for _, a := range accounts {
		switch {
		case a.HasTag(model.Tag403b):
			u.Secondary = u.Secondary.Add(a.FilteredSum(credits))
			u.Deferrals = u.Deferrals.Add(a.FilteredSum(deferrals))
			if a.Value().IsPositive() {
				u.SecondaryActive = true
			}
		case a.HasTag(model.TagRetirement):
			u.Primary = u.Primary.Add(a.FilteredSum(credits))
			u.Deferrals = u.Deferrals.Add(a.FilteredSum(deferrals))
		case a.HasTag(model.TagChildCare):
			u.DependentCare = u.DependentCare.Add(a.FilteredSum(credits))
		}
	}
	return u
}

// Plus returns u with a planned contribution to plan added, so checks later in
// the same payroll event see it.
func (u Usage) Plus(plan model.Plan, employee, match decimal.Decimal) Usage {
	switch plan {
	case model.PlanSecondary:
		u.Secondary = u.Secondary.Add(employee).Add(match)
		u.Deferrals = u.Deferrals.Add(employee)
		if employee.Add(match).IsPositive() {
			u.SecondaryActive = true
		}
	case model.PlanPrimary:
		u.Primary = u.Primary.Add(employee).Add(match)
		u.Deferrals = u.Deferrals.Add(employee)
	case model.PlanDependentCare:
		u.DependentCare = u.DependentCare.Add(employee).Add(match)
	}
	return u
}
