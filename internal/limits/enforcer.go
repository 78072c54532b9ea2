package limits

import (
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// Enforcer computes remaining space under one year's caps.
type Enforcer struct {
	caps Caps
}

// NewEnforcer binds caps.
func NewEnforcer(caps Caps) *Enforcer {
	return &Enforcer{caps: caps}
}

// Caps returns the bound caps.
func (e *Enforcer) Caps() Caps { return e.caps }

// RetirementSpace is the room left for a primary-plan contribution plus match.
// Once a secondary-plan account is active, both plans share one total.
func (e *Enforcer) RetirementSpace(u Usage) decimal.Decimal {
	used := u.Primary
	if u.SecondaryActive {
		used = used.Add(u.Secondary)
	}
	return clamp(e.caps.RetirementTotal.Sub(used))
}

// SecondarySpace is the room left for a secondary-plan contribution plus match.
func (e *Enforcer) SecondarySpace(u Usage) decimal.Decimal {
	return clamp(e.caps.RetirementTotal.Sub(u.Secondary))
}

// DeferralSpace is the room left for employee deferrals across all plans.
func (e *Enforcer) DeferralSpace(u Usage) decimal.Decimal {
	return clamp(e.caps.RetirementEmployee.Sub(u.Deferrals))
}

// ChildCareSpace is the room left for dependent care contributions.
func (e *Enforcer) ChildCareSpace(u Usage) decimal.Decimal {
	return clamp(e.caps.DependentCare.Sub(u.DependentCare))
}

// MatchCap is the largest employer match allowed on gross.
func (e *Enforcer) MatchCap(gross decimal.Decimal) decimal.Decimal {
	return gross.Mul(e.caps.MatchPercent).Div(oneHundred)
}

// ValidateEmployerMatch checks match against MatchCap(gross).
func (e *Enforcer) ValidateEmployerMatch(match, gross decimal.Decimal) error {
	return ValidateEmployerMatch(match, gross, e.caps.MatchPercent)
}

// ValidatePretaxTotal fails when the pretax diversions exceed gross pay.
func ValidatePretaxTotal(requested, gross decimal.Decimal) error {
	return check(ErrExceedsGrossPay, requested, gross)
}

// ValidateRetirement fails when employee plus match exceeds space.
func ValidateRetirement(requested, space decimal.Decimal) error {
	return check(ErrExceedsRetirementSpace, requested, space)
}

// ValidateDeferral fails when the employee part alone exceeds the deferral space.
func ValidateDeferral(requested, space decimal.Decimal) error {
	return check(ErrExceedsRetirementSpace, requested, space)
}

// ValidateEmployerMatch fails when match exceeds percent of gross.
func ValidateEmployerMatch(match, gross, percent decimal.Decimal) error {
	return check(ErrExceedsMatchCap, match, gross.Mul(percent).Div(oneHundred))
}

// ValidateChildCare fails when requested exceeds the remaining cap.
func ValidateChildCare(requested, remaining decimal.Decimal) error {
	return check(ErrExceedsChildCareCap, requested, remaining)
}

func clamp(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
