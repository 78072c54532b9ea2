// Package ledger is the double-entry store: an arena of accounts keyed by
// AccountID and the transfer engine that is the only writer of entries.
//
// A Ledger is not safe for concurrent use. Callers that read history to
// validate a transfer must hold off other writers until the transfer posts.
package ledger

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxit-dev/taxit/internal/id"
	"github.com/taxit-dev/taxit/internal/model"
)

// Ledger owns every account of one scenario run.
type Ledger struct {
	accounts []*Account // accounts[i].ID == i+1
	byOwner  map[model.OwnerID][]model.AccountID
	seq      int
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{byOwner: make(map[model.OwnerID][]model.AccountID)}
}

// Open creates a new account for owner. sponsor may be empty.
func (l *Ledger) Open(owner, sponsor model.OwnerID, tags ...model.Tag) *Account {
	acct := &Account{Account: model.Account{
		ID:      model.AccountID(len(l.accounts) + 1),
		Owner:   owner,
		Sponsor: sponsor,
		Tags:    append([]model.Tag(nil), tags...),
	}}
	l.accounts = append(l.accounts, acct)
	l.byOwner[owner] = append(l.byOwner[owner], acct.ID)
	return acct
}

// General returns owner's general account, opening it on first use.
func (l *Ledger) General(owner model.OwnerID) *Account {
	for _, a := range l.Tagged(owner, model.TagGeneral) {
		return a
	}
	return l.Open(owner, "", model.TagGeneral)
}

// Account returns an account by ID.
func (l *Ledger) Account(accountID model.AccountID) (*Account, bool) {
	i := int(accountID) - 1
	if i < 0 || i >= len(l.accounts) {
		return nil, false
	}
	return l.accounts[i], true
}

// Exists reports whether an account ID exists.
func (l *Ledger) Exists(accountID model.AccountID) bool {
	_, ok := l.Account(accountID)
	return ok
}

// Accounts returns all accounts in creation order.
func (l *Ledger) Accounts() []*Account {
	return append([]*Account(nil), l.accounts...)
}

// Owners returns every owner with at least one account, sorted.
func (l *Ledger) Owners() []model.OwnerID {
	owners := make([]model.OwnerID, 0, len(l.byOwner))
	for o := range l.byOwner {
		owners = append(owners, o)
	}
	sort.Slice(owners, func(i, j int) bool { return owners[i] < owners[j] })
	return owners
}

// Owned returns owner's accounts in creation order.
func (l *Ledger) Owned(owner model.OwnerID) []*Account {
	ids := l.byOwner[owner]
	result := make([]*Account, 0, len(ids))
	for _, accountID := range ids {
		a, _ := l.Account(accountID)
		result = append(result, a)
	}
	return result
}

// Tagged returns owner's accounts carrying tag.
func (l *Ledger) Tagged(owner model.OwnerID, tag model.Tag) []*Account {
	var result []*Account
	for _, a := range l.Owned(owner) {
		if a.HasTag(tag) {
			result = append(result, a)
		}
	}
	return result
}

// TransferParams holds parameters for a two-sided transfer.
type TransferParams struct {
	From        model.AccountID
	To          model.AccountID
	Amount      decimal.Decimal
	Description string
	Beneficiary model.OwnerID
	Period      int
	BatchID     string
}

// Transfer posts -Amount to From and +Amount to To under the same
// description and beneficiary. Returns the transfer ID. It enforces no
// business rules; callers validate before calling.
func (l *Ledger) Transfer(params TransferParams) (string, error) {
	if params.Amount.IsNegative() {
		return "", fmt.Errorf("%w: negative amount %s", ErrMalformedTransfer, params.Amount)
	}
	if strings.TrimSpace(params.Description) == "" {
		return "", fmt.Errorf("%w: description is required", ErrMalformedTransfer)
	}
	if params.Period <= 0 {
		return "", fmt.Errorf("%w: period %d", ErrMalformedTransfer, params.Period)
	}
	from, ok := l.Account(params.From)
	if !ok {
		return "", fmt.Errorf("%w: unknown from account %d", ErrMalformedTransfer, params.From)
	}
	to, ok := l.Account(params.To)
	if !ok {
		return "", fmt.Errorf("%w: unknown to account %d", ErrMalformedTransfer, params.To)
	}

	seq := l.seq + 1
	entryID := id.FormatEntryID(params.Period, seq)
	debit := model.Entry{
		ID:           id.FormatLegID(entryID, id.LegFrom),
		Seq:          seq,
		Period:       params.Period,
		AccountID:    from.ID,
		Description:  params.Description,
		Amount:       params.Amount.Neg(),
		Beneficiary:  params.Beneficiary,
		Counterparty: to.ID,
		BatchID:      params.BatchID,
	}
	credit := debit
	credit.ID = id.FormatLegID(entryID, id.LegTo)
	credit.AccountID = to.ID
	credit.Amount = params.Amount
	credit.Counterparty = from.ID

	if err := from.post(debit); err != nil {
		return "", err
	}
	if err := to.post(credit); err != nil {
		return "", err
	}
	l.seq = seq
	return entryID, nil
}

// Seq returns the sequence number of the last posted transfer.
func (l *Ledger) Seq() int { return l.seq }

// Entries returns every entry ordered by transfer and leg.
func (l *Ledger) Entries() []model.Entry {
	var all []model.Entry
	for _, a := range l.accounts {
		all = append(all, a.entries...)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Seq != all[j].Seq {
			return all[i].Seq < all[j].Seq
		}
		return all[i].ID < all[j].ID
	})
	return all
}

// Total is the sum of every entry in the ledger. It is always zero.
func (l *Ledger) Total() decimal.Decimal {
	return SumAccounts(l.accounts, nil)
}
