// Package payroll applies payroll policy on top of the ledger: it computes
// withholding from prior history, checks contribution limits, and only then
// posts the transfers of an event.
//
// A Processor is not safe for concurrent use. Every event reads ledger
// history and posts against it; two concurrent events for the same person
// could both pass the same limit check.
package payroll

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taxit-dev/taxit/internal/entity"
	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/limits"
	"github.com/taxit-dev/taxit/internal/model"
	"github.com/taxit-dev/taxit/internal/rates"
	"github.com/taxit-dev/taxit/internal/tax"
)

// ErrNotImplemented is returned by declared but unsupported payment kinds.
var ErrNotImplemented = errors.New("not implemented")

// Processor runs payroll events against one ledger.
type Processor struct {
	ledger *ledger.Ledger
	calc   *tax.Calculator
	caps   *limits.Table
	period int
	logger *zap.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Processor) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewProcessor binds a processor to its ledger, rate tables and caps, starting in period.
func NewProcessor(l *ledger.Ledger, calc *tax.Calculator, caps *limits.Table, period int, opts ...Option) *Processor {
	p := &Processor{
		ledger: l,
		calc:   calc,
		caps:   caps,
		period: period,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ledger returns the ledger the processor posts to.
func (p *Processor) Ledger() *ledger.Ledger { return p.ledger }

// Period returns the current tax year.
func (p *Processor) Period() int { return p.period }

// SetPeriod moves to another tax year. Highwaters are read per period, so
// amounts already taxed start again from zero.
func (p *Processor) SetPeriod(year int) error {
	if year <= 0 {
		return fmt.Errorf("invalid period %d", year)
	}
	if year != p.period {
		p.logger.Info("period changed", zap.Int("from", p.period), zap.Int("to", year))
	}
	p.period = year
	return nil
}

// Enroll opens the employee's benefit accounts for every offered plan that
// has none yet. Accounts are keyed by employee, employer and plan.
func (p *Processor) Enroll(e entity.Employment) map[model.Plan]*ledger.Account {
	accounts := make(map[model.Plan]*ledger.Account)
	for _, plan := range e.Plans() {
		accounts[plan] = p.benefitAccount(e, plan)
	}
	return accounts
}

func (p *Processor) benefitAccount(e entity.Employment, plan model.Plan) *ledger.Account {
	employer := e.Employer.ID()
	for _, a := range p.ledger.Tagged(e.Employee.ID(), plan.Tag()) {
		if a.Sponsor == employer {
			return a
		}
	}
	a := p.ledger.Open(e.Employee.ID(), employer, plan.Tags()...)
	p.logger.Debug("benefit account opened",
		zap.String("owner", string(a.Owner)),
		zap.String("sponsor", string(employer)),
		zap.String("plan", string(plan)),
		zap.Int("account", int(a.ID)))
	return a
}

// PayContract pays a non-employee. Nothing is withheld.
func (p *Processor) PayContract(payer entity.Company, payee entity.Person, amount decimal.Decimal) (string, error) {
	entryID, err := p.ledger.Transfer(ledger.TransferParams{
		From:        p.ledger.General(payer.ID()).ID,
		To:          p.ledger.General(payee.ID()).ID,
		Amount:      amount,
		Description: model.DescContract,
		Beneficiary: payee.ID(),
		Period:      p.period,
		BatchID:     uuid.NewString(),
	})
	if err != nil {
		p.logger.Warn("contract payment rejected", zap.String("payee", string(payee.ID())), zap.Error(err))
		return "", fmt.Errorf("paying contract to %s: %w", payee.Name, err)
	}
	p.logger.Info("contract paid",
		zap.String("payer", string(payer.ID())),
		zap.String("payee", string(payee.ID())),
		zap.Stringer("amount", amount),
		zap.String("entry", entryID))
	return entryID, nil
}

// ProfitShare is declared for completeness and not supported.
func (p *Processor) ProfitShare(e entity.Employment, amount decimal.Decimal) error {
	return fmt.Errorf("profit sharing: %w", ErrNotImplemented)
}

// Dividend is declared for completeness and not supported.
func (p *Processor) Dividend(payer entity.Company, holder entity.Person, amount decimal.Decimal) error {
	return fmt.Errorf("dividends: %w", ErrNotImplemented)
}

// due computes the tax one jurisdiction levies on increment, rounded to cents.
func (p *Processor) due(j entity.Jurisdiction, c model.Category, status model.FilingStatus, increment, already decimal.Decimal) (decimal.Decimal, error) {
	key := rates.Key{Jurisdiction: j.Name, Category: c, Status: status, Year: p.period}
	amount, err := p.calc.Due(key, increment, already)
	if err != nil {
		return decimal.Zero, fmt.Errorf("computing %s: %w", c, err)
	}
	return amount.Round(2), nil
}
