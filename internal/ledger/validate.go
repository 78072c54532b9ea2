package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/id"
	"github.com/taxit-dev/taxit/internal/model"
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists.
type AccountChecker interface {
	Exists(id model.AccountID) bool
}

// ValidateEntries enforces the journal invariants on a set of entries:
//  1. each transfer sums to zero
//  2. each transfer has exactly two legs
//  3. every account and counterparty exists
//  4. leg 'a' pays (non-positive), leg 'b' receives (non-negative)
//  5. transfer sequence numbers are contiguous 1..N
func ValidateEntries(entries []model.Entry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	groups := make(map[string][]model.Entry)
	var groupOrder []string
	for _, e := range entries {
		g := e.EntryGroup()
		if _, seen := groups[g]; !seen {
			groupOrder = append(groupOrder, g)
		}
		groups[g] = append(groups[g], e)
	}

	for _, g := range groupOrder {
		legs := groups[g]
		total := decimal.Zero
		for _, e := range legs {
			total = total.Add(e.Amount)
		}
		if !total.IsZero() {
			errs = append(errs, ValidationError{
				Invariant:   1,
				EntryID:     g,
				Description: fmt.Sprintf("legs sum to %s", total.StringFixed(2)),
			})
		}
		if len(legs) != 2 {
			errs = append(errs, ValidationError{
				Invariant:   2,
				EntryID:     g,
				Description: fmt.Sprintf("transfer has %d legs", len(legs)),
			})
		}
	}

	seqSeen := make(map[int]bool)
	for _, e := range entries {
		if !accounts.Exists(e.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     e.ID,
				Description: fmt.Sprintf("unknown account %d", e.AccountID),
			})
		}
		if !accounts.Exists(e.Counterparty) {
			errs = append(errs, ValidationError{
				Invariant:   3,
				EntryID:     e.ID,
				Description: fmt.Sprintf("unknown counterparty %d", e.Counterparty),
			})
		}

		switch id.Leg(e.ID) {
		case id.LegFrom:
			if e.Amount.IsPositive() {
				errs = append(errs, ValidationError{Invariant: 4, EntryID: e.ID, Description: fmt.Sprintf("paying leg has positive amount %s", e.Amount)})
			}
		case id.LegTo:
			if e.Amount.IsNegative() {
				errs = append(errs, ValidationError{Invariant: 4, EntryID: e.ID, Description: fmt.Sprintf("receiving leg has negative amount %s", e.Amount)})
			}
		default:
			errs = append(errs, ValidationError{Invariant: 4, EntryID: e.ID, Description: "missing or unknown leg suffix"})
		}

		_, seq, err := id.ParseEntryID(e.ID)
		if err != nil {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     e.ID,
				Description: fmt.Sprintf("invalid entry ID: %v", err),
			})
			continue
		}
		seqSeen[seq] = true
	}
	for i := 1; i <= len(seqSeen); i++ {
		if !seqSeen[i] {
			errs = append(errs, ValidationError{
				Invariant:   5,
				EntryID:     fmt.Sprintf("seq %d", i),
				Description: fmt.Sprintf("missing sequence %d in 1..%d", i, len(seqSeen)),
			})
		}
	}

	return errs
}

// Verify validates the whole ledger. On top of ValidateEntries it checks
// invariant 6: contribution accounts never go negative.
func (l *Ledger) Verify() []ValidationError {
	errs := ValidateEntries(l.Entries(), l)
	for _, a := range l.accounts {
		if a.Contribution() && a.Value().IsNegative() {
			errs = append(errs, ValidationError{
				Invariant:   6,
				EntryID:     fmt.Sprintf("account %d", a.ID),
				Description: fmt.Sprintf("contribution account %s has negative value %s", a.Owner, a.Value().StringFixed(2)),
			})
		}
	}
	return errs
}
