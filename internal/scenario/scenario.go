// Package scenario loads a YAML description of people, companies and a
// sequence of money events, and runs it through payroll on a fresh ledger.
package scenario

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxit-dev/taxit/internal/entity"
	"github.com/taxit-dev/taxit/internal/model"
	"github.com/taxit-dev/taxit/internal/rates"
)

// Event kinds.
const (
	KindSalary      = "salary"
	KindContract    = "contract"
	KindCapitalGain = "capital_gain"
	KindPeriod      = "period"
)

// Scenario is the parsed scenario file.
type Scenario struct {
	Year          int                `yaml:"year"`
	Jurisdictions []JurisdictionSpec `yaml:"jurisdictions,omitempty"`
	People        []PersonSpec       `yaml:"people"`
	Companies     []CompanySpec      `yaml:"companies,omitempty"`
	Events        []Event            `yaml:"events"`
}

// JurisdictionSpec names a taxing authority. Empty levies means every category.
type JurisdictionSpec struct {
	Name   string           `yaml:"name"`
	Levies []model.Category `yaml:"levies,omitempty"`
}

// PersonSpec describes a person. Empty jurisdictions means all of them.
type PersonSpec struct {
	Name          string             `yaml:"name"`
	Status        model.FilingStatus `yaml:"status"`
	Jurisdictions []string           `yaml:"jurisdictions,omitempty"`
}

// CompanySpec describes an employer and its employees.
type CompanySpec struct {
	Name          string         `yaml:"name"`
	Jurisdictions []string       `yaml:"jurisdictions,omitempty"`
	Employees     []EmployeeSpec `yaml:"employees,omitempty"`
}

// EmployeeSpec lists the plans a company offers one employee.
type EmployeeSpec struct {
	Name     string       `yaml:"name"`
	Benefits []model.Plan `yaml:"benefits,omitempty"`
}

// Event is one step of a scenario. Which fields apply depends on Kind.
type Event struct {
	Kind string `yaml:"kind"`

	// salary
	Employer           string          `yaml:"employer,omitempty"`
	Employee           string          `yaml:"employee,omitempty"`
	Gross              decimal.Decimal `yaml:"gross,omitempty"`
	RetirementEmployee decimal.Decimal `yaml:"retirement_employee,omitempty"`
	RetirementMatch    decimal.Decimal `yaml:"retirement_match,omitempty"`
	SecondaryEmployee  decimal.Decimal `yaml:"secondary_employee,omitempty"`
	SecondaryMatch     decimal.Decimal `yaml:"secondary_match,omitempty"`
	DependentCare      decimal.Decimal `yaml:"dependent_care,omitempty"`

	// contract
	Payer string `yaml:"payer,omitempty"`
	Payee string `yaml:"payee,omitempty"`

	// capital_gain
	Person string `yaml:"person,omitempty"`

	// contract and capital_gain
	Amount decimal.Decimal `yaml:"amount,omitempty"`

	// period
	Year int `yaml:"year,omitempty"`
}

func (e Event) String() string {
	switch e.Kind {
	case KindSalary:
		return fmt.Sprintf("salary %s -> %s %s", e.Employer, e.Employee, e.Gross.StringFixed(2))
	case KindContract:
		return fmt.Sprintf("contract %s -> %s %s", e.Payer, e.Payee, e.Amount.StringFixed(2))
	case KindCapitalGain:
		return fmt.Sprintf("capital gain %s %s", e.Person, e.Amount.StringFixed(2))
	case KindPeriod:
		return fmt.Sprintf("period %d", e.Year)
	}
	return e.Kind
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if _, err := sc.world(); err != nil {
		return nil, err
	}
	return &sc, nil
}

type world struct {
	people      map[string]entity.Person
	companies   map[string]entity.Company
	employments map[[2]string]entity.Employment // [company, person]
	order       []entity.Employment
}

func key(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// world resolves names into entities and checks every event reference.
func (sc *Scenario) world() (*world, error) {
	var errs []error

	specs := sc.Jurisdictions
	if len(specs) == 0 {
		specs = []JurisdictionSpec{{Name: rates.Federal}}
	}
	jurisdictions := make(map[string]entity.Jurisdiction, len(specs))
	var all []entity.Jurisdiction
	for _, js := range specs {
		levies := js.Levies
		if len(levies) == 0 {
			levies = model.Categories()
		}
		for _, c := range levies {
			if _, err := model.ParseCategory(string(c)); err != nil {
				errs = append(errs, fmt.Errorf("jurisdiction %s: %w", js.Name, err))
			}
		}
		j := entity.Jurisdiction{Name: js.Name, Levies: levies}
		jurisdictions[key(js.Name)] = j
		all = append(all, j)
	}
	resolve := func(owner string, names []string) []entity.Jurisdiction {
		if len(names) == 0 {
			return all
		}
		var out []entity.Jurisdiction
		for _, n := range names {
			j, ok := jurisdictions[key(n)]
			if !ok {
				errs = append(errs, fmt.Errorf("%s: unknown jurisdiction %q", owner, n))
				continue
			}
			out = append(out, j)
		}
		return out
	}

	w := &world{
		people:      make(map[string]entity.Person),
		companies:   make(map[string]entity.Company),
		employments: make(map[[2]string]entity.Employment),
	}
	for _, ps := range sc.People {
		if ps.Status == 0 {
			errs = append(errs, fmt.Errorf("person %s: filing status is required", ps.Name))
		}
		if _, dup := w.people[key(ps.Name)]; dup {
			errs = append(errs, fmt.Errorf("person %s defined twice", ps.Name))
		}
		w.people[key(ps.Name)] = entity.Person{
			Name:          ps.Name,
			Status:        ps.Status,
			Jurisdictions: resolve("person "+ps.Name, ps.Jurisdictions),
		}
	}
	for _, cs := range sc.Companies {
		if _, dup := w.companies[key(cs.Name)]; dup {
			errs = append(errs, fmt.Errorf("company %s defined twice", cs.Name))
		}
		company := entity.Company{Name: cs.Name, Jurisdictions: resolve("company "+cs.Name, cs.Jurisdictions)}
		w.companies[key(cs.Name)] = company
		for _, es := range cs.Employees {
			person, ok := w.people[key(es.Name)]
			if !ok {
				errs = append(errs, fmt.Errorf("company %s: unknown employee %q", cs.Name, es.Name))
				continue
			}
			benefits := make(map[model.Plan]bool, len(es.Benefits))
			for _, b := range es.Benefits {
				plan, err := model.ParsePlan(string(b))
				if err != nil {
					errs = append(errs, fmt.Errorf("company %s employee %s: %w", cs.Name, es.Name, err))
					continue
				}
				benefits[plan] = true
			}
			e := entity.NewEmployment(company, person, benefits)
			w.employments[[2]string{key(cs.Name), key(es.Name)}] = e
			w.order = append(w.order, e)
		}
	}

	for i, ev := range sc.Events {
		if err := w.check(ev); err != nil {
			errs = append(errs, fmt.Errorf("event %d: %w", i+1, err))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return w, nil
}

func (w *world) check(ev Event) error {
	switch ev.Kind {
	case KindSalary:
		if _, ok := w.employments[[2]string{key(ev.Employer), key(ev.Employee)}]; !ok {
			return fmt.Errorf("%s does not employ %s", ev.Employer, ev.Employee)
		}
	case KindContract:
		if _, ok := w.companies[key(ev.Payer)]; !ok {
			return fmt.Errorf("unknown payer %q", ev.Payer)
		}
		if _, ok := w.people[key(ev.Payee)]; !ok {
			return fmt.Errorf("unknown payee %q", ev.Payee)
		}
	case KindCapitalGain:
		if _, ok := w.people[key(ev.Person)]; !ok {
			return fmt.Errorf("unknown person %q", ev.Person)
		}
	case KindPeriod:
		if ev.Year <= 0 {
			return fmt.Errorf("period needs a positive year, got %d", ev.Year)
		}
	default:
		return fmt.Errorf("unknown event kind %q", ev.Kind)
	}
	return nil
}
