package model

import (
	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/id"
)

// Entry is one side of a double-entry transfer. Entries are immutable once posted.
type Entry struct {
	ID           string          // "YYYY-NNNNNNx" where x = a (from side) or b (to side)
	Seq          int             // arrival order; both legs of a transfer share it
	Period       int             // tax year
	AccountID    AccountID       // account the entry is posted to
	Description  string          // category label, e.g. "ssi_employee"
	Amount       decimal.Decimal // signed
	Beneficiary  OwnerID         // natural person the entry is for; may be empty
	Counterparty AccountID
	BatchID      string // groups the transfers of one payroll event
}

// EntryGroup returns the transfer ID (without leg suffix).
// "2021-000001a" -> "2021-000001"
func (e Entry) EntryGroup() string {
	return id.EntryGroup(e.ID)
}

// Entry descriptions posted by payroll. Tax entries use their Category.
const (
	DescSalary          = "salary"
	DescContract        = "contract"
	DescCapitalGain     = "capital_gain"
	DescRetirement      = "retirement_contribution"
	DescRetirementMatch = "retirement_match"
	DescDependentCare   = "dependent_care_contribution"
)
