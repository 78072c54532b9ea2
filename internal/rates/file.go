package rates

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/taxit-dev/taxit/internal/model"
)

// File is the YAML layout of a rate-table file.
type File struct {
	Tables []TableFile `yaml:"tables"`
}

// TableFile is one schedule in a rate-table file.
type TableFile struct {
	Jurisdiction string        `yaml:"jurisdiction"`
	Category     string        `yaml:"category"`
	Status       string        `yaml:"status"`
	Year         int           `yaml:"year"`
	Brackets     []BracketFile `yaml:"brackets"`
}

// BracketFile is one bracket row. An omitted or zero upper bound on the
// last row means unbounded.
type BracketFile struct {
	Lower float64 `yaml:"lower"`
	Upper float64 `yaml:"upper,omitempty"`
	Rate  float64 `yaml:"rate"`
}

// LoadFile reads a rate-table file into a Book.
func LoadFile(path string) (*Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rate tables: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing rate tables: %w", err)
	}
	return f.Book()
}

// SaveFile writes every schedule of b to path.
func SaveFile(path string, b *Book) error {
	data, err := yaml.Marshal(FileFromBook(b))
	if err != nil {
		return fmt.Errorf("marshaling rate tables: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rate tables: %w", err)
	}
	return nil
}

// Book validates every table and builds a Book.
func (f File) Book() (*Book, error) {
	schedules := make([]*Schedule, 0, len(f.Tables))
	for i, t := range f.Tables {
		category, err := model.ParseCategory(t.Category)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		status, err := model.ParseFilingStatus(t.Status)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		jurisdiction := t.Jurisdiction
		if jurisdiction == "" {
			jurisdiction = Federal
		}

		brackets := make([]Bracket, len(t.Brackets))
		for j, row := range t.Brackets {
			upper := decimal.NewFromFloat(row.Upper)
			if j == len(t.Brackets)-1 && row.Upper == 0 {
				upper = Unbounded
			}
			brackets[j] = Bracket{
				Lower: decimal.NewFromFloat(row.Lower),
				Upper: upper,
				Rate:  decimal.NewFromFloat(row.Rate),
			}
		}

		key := Key{Jurisdiction: jurisdiction, Category: category, Status: status, Year: t.Year}
		s, err := NewSchedule(key, brackets)
		if err != nil {
			return nil, fmt.Errorf("table %d: %w", i, err)
		}
		schedules = append(schedules, s)
	}
	return NewBook(schedules...), nil
}

// FileFromBook converts a Book into its file layout.
func FileFromBook(b *Book) File {
	var f File
	for _, key := range b.Keys() {
		s := b.schedules[key]
		t := TableFile{
			Jurisdiction: key.Jurisdiction,
			Category:     string(key.Category),
			Status:       key.Status.String(),
			Year:         key.Year,
		}
		for i, br := range s.brackets {
			row := BracketFile{Lower: br.Lower.InexactFloat64(), Rate: br.Rate.InexactFloat64()}
			if i < len(s.brackets)-1 {
				row.Upper = br.Upper.InexactFloat64()
			}
			t.Brackets = append(t.Brackets, row)
		}
		f.Tables = append(f.Tables, t)
	}
	return f
}
