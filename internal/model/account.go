package model

import (
	"fmt"
	"slices"
	"strings"
)

// AccountID indexes an account in the ledger arena. Zero is never assigned.
type AccountID int

// OwnerID is a non-owning reference to a person, company or jurisdiction.
type OwnerID string

// Owner kinds used as OwnerID prefixes.
const (
	OwnerPerson       = "person"
	OwnerCompany      = "company"
	OwnerJurisdiction = "jurisdiction"
)

// NewOwnerID returns "kind/name", e.g. "person/alice".
func NewOwnerID(kind, name string) OwnerID {
	return OwnerID(kind + "/" + strings.ToLower(strings.TrimSpace(name)))
}

// Kind returns the prefix of the owner reference.
func (o OwnerID) Kind() string {
	kind, _, _ := strings.Cut(string(o), "/")
	return kind
}

// Tag classifies accounts for routing and limit aggregation.
type Tag string

const (
	TagGeneral    Tag = "general"
	TagRetirement Tag = "retirement"
	Tag401k       Tag = "401k"
	Tag403b       Tag = "403b"
	TagChildCare  Tag = "child_care"
	TagBrokerage  Tag = "brokerage"
)

// Account is the identity of a ledger account. Entries live in the ledger.
type Account struct {
	ID      AccountID
	Owner   OwnerID
	Sponsor OwnerID // employer that granted a benefit account; empty otherwise
	Tags    []Tag
}

// HasTag reports whether the account carries tag.
func (a Account) HasTag(tag Tag) bool {
	return slices.Contains(a.Tags, tag)
}

// Contribution reports whether the account holds pretax contributions.
// Such accounts must never go negative.
func (a Account) Contribution() bool {
	return a.HasTag(TagRetirement) || a.HasTag(TagChildCare)
}

func (a Account) String() string {
	tags := make([]string, len(a.Tags))
	for i, t := range a.Tags {
		tags[i] = string(t)
	}
	return fmt.Sprintf("%d %s [%s]", a.ID, a.Owner, strings.Join(tags, ","))
}
