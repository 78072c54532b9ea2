package payroll

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/taxit-dev/taxit/internal/entity"
	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/model"
)

// RealizeGain moves a long-term gain from the person's brokerage account to
// their general account and pays capital gains tax on it. The tax is marginal
// over gains already realized this period.
func (p *Processor) RealizeGain(person entity.Person, amount decimal.Decimal) (*Receipt, error) {
	owner := person.ID()
	logger := p.logger.With(zap.String("person", string(owner)), zap.Int("period", p.period), zap.Stringer("gain", amount))

	if amount.IsNegative() {
		err := fmt.Errorf("%w: negative gain %s", ledger.ErrMalformedTransfer, amount)
		logger.Warn("gain rejected", zap.Error(err))
		return nil, err
	}

	general := p.ledger.General(owner)
	brokerage := p.brokerage(owner)
	already := general.HighwaterIn(model.DescCapitalGain, owner, p.period)

	receipt := &Receipt{BatchID: uuid.NewString(), Period: p.period, Gross: amount, Pretax: decimal.Zero, Match: decimal.Zero}
	transfers := []ledger.TransferParams{{
		From: brokerage.ID, To: general.ID, Amount: amount, Description: model.DescCapitalGain,
	}}
	for _, j := range entity.Levying(person.Jurisdictions, model.CategoryCapGainsLong) {
		due, err := p.due(j, model.CategoryCapGainsLong, person.Status, amount, already)
		if err != nil {
			logger.Warn("gain rejected", zap.Error(err))
			return nil, fmt.Errorf("realizing gain for %s: %s: %w", person.Name, j.Name, err)
		}
		receipt.Taxes = append(receipt.Taxes, TaxLine{Jurisdiction: j.Name, Category: model.CategoryCapGainsLong, Taxable: amount, Amount: due})
		if due.IsPositive() {
			transfers = append(transfers, ledger.TransferParams{
				From: general.ID, To: p.ledger.General(j.ID()).ID, Amount: due, Description: string(model.CategoryCapGainsLong),
			})
		}
	}

	for _, t := range transfers {
		t.Beneficiary = owner
		t.Period = p.period
		t.BatchID = receipt.BatchID
		entryID, err := p.ledger.Transfer(t)
		if err != nil {
			return nil, fmt.Errorf("posting %s for %s: %w", t.Description, person.Name, err)
		}
		receipt.EntryIDs = append(receipt.EntryIDs, entryID)
	}
	receipt.Net = amount.Sub(receipt.EmployeeTaxes())

	logger.Info("gain realized", zap.String("batch", receipt.BatchID), zap.Stringer("tax", receipt.Tax(model.CategoryCapGainsLong)))
	return receipt, nil
}

func (p *Processor) brokerage(owner model.OwnerID) *ledger.Account {
	for _, a := range p.ledger.Tagged(owner, model.TagBrokerage) {
		return a
	}
	return p.ledger.Open(owner, "", model.TagBrokerage)
}
