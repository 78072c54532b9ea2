package payroll

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taxit-dev/taxit/internal/entity"
	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/limits"
	"github.com/taxit-dev/taxit/internal/model"
)

// Contributions are the pretax diversions requested for one paycheck.
// Employee amounts come out of gross; matches are paid by the employer.
type Contributions struct {
	RetirementEmployee decimal.Decimal // primary plan
	RetirementMatch    decimal.Decimal
	SecondaryEmployee  decimal.Decimal // secondary plan
	SecondaryMatch     decimal.Decimal
	DependentCare      decimal.Decimal
}

// Pretax is the part of gross diverted before income tax.
func (c Contributions) Pretax() decimal.Decimal {
	return c.RetirementEmployee.Add(c.SecondaryEmployee).Add(c.DependentCare)
}

func (c Contributions) validate() error {
	for _, f := range []struct {
		name  string
		value decimal.Decimal
	}{
		{"retirement employee", c.RetirementEmployee},
		{"retirement match", c.RetirementMatch},
		{"secondary employee", c.SecondaryEmployee},
		{"secondary match", c.SecondaryMatch},
		{"dependent care", c.DependentCare},
	} {
		if f.value.IsNegative() {
			return fmt.Errorf("%w: negative %s contribution %s", ledger.ErrMalformedTransfer, f.name, f.value)
		}
	}
	return nil
}

func (c Contributions) amounts(plan model.Plan) (employee, match decimal.Decimal) {
	switch plan {
	case model.PlanPrimary:
		return c.RetirementEmployee, c.RetirementMatch
	case model.PlanSecondary:
		return c.SecondaryEmployee, c.SecondaryMatch
	case model.PlanDependentCare:
		return c.DependentCare, decimal.Zero
	}
	return decimal.Zero, decimal.Zero
}

// TaxLine is one tax posted for a payroll event.
type TaxLine struct {
	Jurisdiction string
	Category     model.Category
	Taxable      decimal.Decimal
	Amount       decimal.Decimal
}

// Receipt summarizes a posted payroll event.
type Receipt struct {
	BatchID  string
	Period   int
	Gross    decimal.Decimal
	Taxes    []TaxLine
	Pretax   decimal.Decimal // employee diversions
	Match    decimal.Decimal // employer contributions on top of gross
	Net      decimal.Decimal // gross less employee taxes and diversions
	EntryIDs []string
}

// Tax sums the lines of one category.
func (r *Receipt) Tax(c model.Category) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range r.Taxes {
		if line.Category == c {
			sum = sum.Add(line.Amount)
		}
	}
	return sum
}

// EmployeeTaxes sums every line withheld from the employee.
func (r *Receipt) EmployeeTaxes() decimal.Decimal {
	sum := decimal.Zero
	for _, line := range r.Taxes {
		if !line.Category.EmployerSide() {
			sum = sum.Add(line.Amount)
		}
	}
	return sum
}

// employeeCategories are withheld in this order after the employer side.
var employeeCategories = []model.Category{
	model.CategorySSIEmployee,
	model.CategoryMedicareEmployee,
	model.CategoryIncome,
}

var employerCategories = []model.Category{
	model.CategorySSIEmployer,
	model.CategoryMedicareEmployer,
}

// PaySalary pays gross to the employee of e with withholding and the
// requested pretax contributions.
//
// Every tax and limit is computed from the ledger before the first transfer
// posts, so a rejected paycheck leaves the ledger unchanged. Transfers post
// in this order: employer payroll taxes, employee payroll and income taxes,
// the gross wage deposit, then secondary plan, primary plan and dependent
// care contributions.
func (p *Processor) PaySalary(e entity.Employment, gross decimal.Decimal, c Contributions) (*Receipt, error) {
	employee := e.Employee.ID()
	logger := p.logger.With(
		zap.String("employer", string(e.Employer.ID())),
		zap.String("employee", string(employee)),
		zap.Int("period", p.period),
		zap.Stringer("gross", gross))

	batch, err := p.planSalary(e, gross, c)
	if err != nil {
		logger.Warn("salary rejected", zap.Error(err))
		return nil, fmt.Errorf("paying %s: %w", e.Employee.Name, err)
	}

	receipt := batch.receipt
	for _, t := range batch.transfers {
		entryID, err := p.ledger.Transfer(t)
		if err != nil {
			// Only malformed arguments fail here, and planning rules those out.
			logger.Error("salary posting failed", zap.String("description", t.Description), zap.Error(err))
			return nil, fmt.Errorf("posting %s for %s: %w", t.Description, e.Employee.Name, err)
		}
		receipt.EntryIDs = append(receipt.EntryIDs, entryID)
		logger.Debug("posted",
			zap.String("entry", entryID),
			zap.String("description", t.Description),
			zap.Stringer("amount", t.Amount))
	}

	logger.Info("salary paid",
		zap.String("batch", receipt.BatchID),
		zap.Stringer("employee_taxes", receipt.EmployeeTaxes()),
		zap.Stringer("pretax", receipt.Pretax),
		zap.Stringer("net", receipt.Net))
	return receipt, nil
}

type salaryBatch struct {
	receipt   *Receipt
	transfers []ledger.TransferParams
}

func (p *Processor) planSalary(e entity.Employment, gross decimal.Decimal, c Contributions) (*salaryBatch, error) {
	if gross.IsNegative() {
		return nil, fmt.Errorf("%w: negative gross %s", ledger.ErrMalformedTransfer, gross)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	for _, plan := range []model.Plan{model.PlanPrimary, model.PlanSecondary, model.PlanDependentCare} {
		employee, match := c.amounts(plan)
		if employee.Add(match).IsPositive() && !e.Offers(plan) {
			return nil, fmt.Errorf("%w: %s is not offered by %s", ledger.ErrMalformedTransfer, plan, e.Employer.Name)
		}
	}
	enforcer, err := p.caps.Enforcer(p.period)
	if err != nil {
		return nil, err
	}

	employee := e.Employee.ID()
	employerAcct := p.ledger.General(e.Employer.ID())
	employeeAcct := p.ledger.General(employee)

	// History is read once, before anything of this event posts.
	usage := limits.ReadUsage(p.ledger.Owned(employee), employee, p.period)
	wages := employeeAcct.HighwaterIn(model.DescSalary, employee, p.period)
	taxedIncome := wages.
		Sub(employeeAcct.HighwaterIn(model.DescRetirement, employee, p.period)).
		Sub(employeeAcct.HighwaterIn(model.DescDependentCare, employee, p.period))
	if taxedIncome.IsNegative() {
		taxedIncome = decimal.Zero
	}

	if err := p.checkLimits(enforcer, usage, gross, c); err != nil {
		return nil, err
	}

	b := &salaryBatch{receipt: &Receipt{
		BatchID: uuid.NewString(),
		Period:  p.period,
		Gross:   gross,
		Pretax:  c.Pretax(),
		Match:   c.RetirementMatch.Add(c.SecondaryMatch),
	}}
	add := func(from, to *ledger.Account, amount decimal.Decimal, description string) {
		if !amount.IsPositive() {
			return
		}
		b.transfers = append(b.transfers, ledger.TransferParams{
			From:        from.ID,
			To:          to.ID,
			Amount:      amount,
			Description: description,
			Beneficiary: employee,
			Period:      p.period,
			BatchID:     b.receipt.BatchID,
		})
	}
	levy := func(from *ledger.Account, js []entity.Jurisdiction, cat model.Category, taxable, already decimal.Decimal) error {
		for _, j := range entity.Levying(js, cat) {
			amount, err := p.due(j, cat, e.Employee.Status, taxable, already)
			if err != nil {
				return fmt.Errorf("%s: %w", j.Name, err)
			}
			b.receipt.Taxes = append(b.receipt.Taxes, TaxLine{Jurisdiction: j.Name, Category: cat, Taxable: taxable, Amount: amount})
			add(from, p.ledger.General(j.ID()), amount, string(cat))
		}
		return nil
	}

	for _, cat := range employerCategories {
		if err := levy(employerAcct, e.Employer.Jurisdictions, cat, gross, wages); err != nil {
			return nil, err
		}
	}
	for _, cat := range employeeCategories {
		taxable, already := gross, wages
		if cat == model.CategoryIncome {
			taxable, already = gross.Sub(c.Pretax()), taxedIncome
		}
		if err := levy(employeeAcct, e.Employee.Jurisdictions, cat, taxable, already); err != nil {
			return nil, err
		}
	}

	add(employerAcct, employeeAcct, gross, model.DescSalary)

	for _, plan := range []model.Plan{model.PlanSecondary, model.PlanPrimary, model.PlanDependentCare} {
		employeeAmt, match := c.amounts(plan)
		if !employeeAmt.Add(match).IsPositive() {
			continue
		}
		acct := p.benefitAccount(e, plan)
		if plan == model.PlanDependentCare {
			add(employeeAcct, acct, employeeAmt, model.DescDependentCare)
			continue
		}
		add(employeeAcct, acct, employeeAmt, model.DescRetirement)
		add(employerAcct, acct, match, model.DescRetirementMatch)
	}

	b.receipt.Net = gross.Sub(b.receipt.EmployeeTaxes()).Sub(b.receipt.Pretax)
	return b, nil
}

// checkLimits validates every requested diversion against usage. A planned
// secondary contribution counts toward the primary plan's space.
func (p *Processor) checkLimits(e *limits.Enforcer, u limits.Usage, gross decimal.Decimal, c Contributions) error {
	if err := limits.ValidatePretaxTotal(c.Pretax(), gross); err != nil {
		return err
	}

	for _, plan := range []model.Plan{model.PlanSecondary, model.PlanPrimary} {
		employee, match := c.amounts(plan)
		if !employee.Add(match).IsPositive() {
			continue
		}
		if err := e.ValidateEmployerMatch(match, gross); err != nil {
			return fmt.Errorf("%s: %w", plan, err)
		}
		space := e.RetirementSpace(u)
		if plan == model.PlanSecondary {
			space = e.SecondarySpace(u)
		}
		if err := limits.ValidateRetirement(employee.Add(match), space); err != nil {
			return fmt.Errorf("%s: %w", plan, err)
		}
		if err := limits.ValidateDeferral(employee, e.DeferralSpace(u)); err != nil {
			return fmt.Errorf("%s deferral: %w", plan, err)
		}
		u = u.Plus(plan, employee, match)
	}

	if c.DependentCare.IsPositive() {
		if err := limits.ValidateChildCare(c.DependentCare, e.ChildCareSpace(u)); err != nil {
			return err
		}
	}
	return nil
}
