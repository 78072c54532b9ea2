package model

import (
	"fmt"
	"strings"
)

// FilingStatus selects which bracket tables apply to a taxpayer.
type FilingStatus int

const (
	Single FilingStatus = iota + 1
	Married
)

func (s FilingStatus) String() string {
	switch s {
	case Single:
		return "single"
	case Married:
		return "married"
	default:
		return "unknown"
	}
}

// ParseFilingStatus resolves a filing status name once, at the input boundary.
func ParseFilingStatus(s string) (FilingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "married", "married_joint", "mfj":
		return Married, nil
	}
	return 0, fmt.Errorf("unknown filing status %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s FilingStatus) MarshalText() ([]byte, error) {
	if s != Single && s != Married {
		return nil, fmt.Errorf("invalid filing status %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *FilingStatus) UnmarshalText(text []byte) error {
	parsed, err := ParseFilingStatus(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Category names a rate table and, for taxes, the ledger description of the payment.
type Category string

const (
	CategoryIncome           Category = "income"
	CategorySSIEmployer      Category = "ssi_employer"
	CategorySSIEmployee      Category = "ssi_employee"
	CategoryMedicareEmployer Category = "medicare_employer"
	CategoryMedicareEmployee Category = "medicare_employee"
	CategoryCapGainsLong     Category = "cap_gains_long"
)

// Categories lists every known category in a stable order.
func Categories() []Category {
	return []Category{
		CategoryIncome,
		CategorySSIEmployer,
		CategorySSIEmployee,
		CategoryMedicareEmployer,
		CategoryMedicareEmployee,
		CategoryCapGainsLong,
	}
}

// ParseCategory validates a category name.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories() {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown tax category %q", s)
}

// EmployerSide reports whether the employer bears the tax.
func (c Category) EmployerSide() bool {
	return c == CategorySSIEmployer || c == CategoryMedicareEmployer
}

// Plan is a pretax benefit an employer may offer.
type Plan string

const (
	PlanPrimary       Plan = "401k"
	PlanSecondary     Plan = "403b"
	PlanDependentCare Plan = "child_care"
)

// ParsePlan validates a plan name.
func ParsePlan(s string) (Plan, error) {
	switch p := Plan(strings.ToLower(strings.TrimSpace(s))); p {
	case PlanPrimary, PlanSecondary, PlanDependentCare:
		return p, nil
	}
	return "", fmt.Errorf("unknown benefit plan %q", s)
}

// Tags returns the account tags for a plan's accounts.
func (p Plan) Tags() []Tag {
	switch p {
	case PlanPrimary:
		return []Tag{TagRetirement, Tag401k}
	case PlanSecondary:
		return []Tag{TagRetirement, Tag403b}
	case PlanDependentCare:
		return []Tag{TagChildCare}
	}
	return nil
}

// Tag returns the distinguishing tag of the plan.
func (p Plan) Tag() Tag {
	return Tag(p)
}
