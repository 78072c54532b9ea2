package rates

import (
	"sort"

	"github.com/taxit-dev/taxit/internal/model"
)

// Federal is the jurisdiction name of the built-in tables.
const Federal = "federal"

// Book is a read-only collection of schedules, loaded once and shared by reference.
type Book struct {
	schedules map[Key]*Schedule
}

// NewBook indexes schedules by key. Later duplicates replace earlier ones.
func NewBook(schedules ...*Schedule) *Book {
	b := &Book{schedules: make(map[Key]*Schedule, len(schedules))}
	for _, s := range schedules {
		b.schedules[s.key] = s
	}
	return b
}

// Schedule returns the table for key.
func (b *Book) Schedule(key Key) (*Schedule, error) {
	s, ok := b.schedules[key]
	if !ok {
		return nil, &UnknownJurisdictionError{Key: key}
	}
	return s, nil
}

// BracketsFor returns the federal brackets for a category, status and year.
func (b *Book) BracketsFor(category model.Category, status model.FilingStatus, year int) ([]Bracket, error) {
	s, err := b.Schedule(Key{Jurisdiction: Federal, Category: category, Status: status, Year: year})
	if err != nil {
		return nil, err
	}
	return s.Brackets(), nil
}

// Merge returns a new book holding b's schedules overlaid with other's.
func (b *Book) Merge(other *Book) *Book {
	merged := &Book{schedules: make(map[Key]*Schedule, len(b.schedules)+len(other.schedules))}
	for k, s := range b.schedules {
		merged.schedules[k] = s
	}
	for k, s := range other.schedules {
		merged.schedules[k] = s
	}
	return merged
}

// Keys returns every key in a stable order.
func (b *Book) Keys() []Key {
	keys := make([]Key, 0, len(b.schedules))
	for k := range b.schedules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, c := keys[i], keys[j]
		if a.Jurisdiction != c.Jurisdiction {
			return a.Jurisdiction < c.Jurisdiction
		}
		if a.Year != c.Year {
			return a.Year < c.Year
		}
		if a.Category != c.Category {
			return a.Category < c.Category
		}
		return a.Status < c.Status
	})
	return keys
}

// Len returns the number of schedules.
func (b *Book) Len() int { return len(b.schedules) }
