// Package entity holds the people, companies and jurisdictions that call into
// payroll. They are plain values; accounts live in the ledger and are found
// through the owner IDs these types derive.
package entity

import (
	"slices"
	"sort"

	"github.com/taxit-dev/taxit/internal/model"
)

// Jurisdiction is a taxing authority and the categories it levies.
type Jurisdiction struct {
	Name   string
	Levies []model.Category
}

func (j Jurisdiction) ID() model.OwnerID {
	return model.NewOwnerID(model.OwnerJurisdiction, j.Name)
}

// Taxes reports whether j levies category c.
func (j Jurisdiction) Taxes(c model.Category) bool {
	return slices.Contains(j.Levies, c)
}

// Person is a natural person and the jurisdictions that tax them, in order.
type Person struct {
	Name          string
	Status        model.FilingStatus
	Jurisdictions []Jurisdiction
}

func (p Person) ID() model.OwnerID {
	return model.NewOwnerID(model.OwnerPerson, p.Name)
}

// Company pays wages. Its jurisdictions levy the employer side of payroll taxes.
type Company struct {
	Name          string
	Jurisdictions []Jurisdiction
}

func (c Company) ID() model.OwnerID {
	return model.NewOwnerID(model.OwnerCompany, c.Name)
}

// Employment binds an employee to an employer and the plans offered to them.
type Employment struct {
	Employer Company
	Employee Person
	benefits map[model.Plan]bool
}

// NewEmployment copies benefits; later changes to the caller's map are not seen.
func NewEmployment(employer Company, employee Person, benefits map[model.Plan]bool) Employment {
	own := make(map[model.Plan]bool, len(benefits))
	for plan, offered := range benefits {
		if offered {
			own[plan] = true
		}
	}
	return Employment{Employer: employer, Employee: employee, benefits: own}
}

// Offers reports whether plan is part of this employment.
func (e Employment) Offers(plan model.Plan) bool {
	return e.benefits[plan]
}

// Plans lists offered plans in name order.
func (e Employment) Plans() []model.Plan {
	plans := make([]model.Plan, 0, len(e.benefits))
	for plan := range e.benefits {
		plans = append(plans, plan)
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i] < plans[j] })
	return plans
}

// Levying returns the jurisdictions in js that levy c, preserving order.
func Levying(js []Jurisdiction, c model.Category) []Jurisdiction {
	var out []Jurisdiction
	for _, j := range js {
		if j.Taxes(c) {
			out = append(out, j)
		}
	}
	return out
}
