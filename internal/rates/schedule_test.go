package rates

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxit-dev/taxit/internal/model"
)

var testKey = Key{Jurisdiction: Federal, Category: model.CategoryIncome, Status: model.Single, Year: 2021}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		brackets []Bracket
		wantIdx  int
		wantErr  bool
	}{
		{"valid", []Bracket{NewBracket(0, 100, 10), NewBracket(100, 999_999_999, 20)}, 0, false},
		{"single bracket", []Bracket{NewBracket(0, 999_999_999, 1.45)}, 0, false},
		{"empty", nil, -1, true},
		{"nonzero start", []Bracket{NewBracket(1, 100, 10)}, 0, true},
		{"gap", []Bracket{NewBracket(0, 100, 10), NewBracket(101, 200, 20)}, 1, true},
		{"overlap", []Bracket{NewBracket(0, 100, 10), NewBracket(90, 200, 20)}, 1, true},
		{"inverted", []Bracket{NewBracket(0, 100, 10), NewBracket(100, 50, 20)}, 1, true},
		{"negative rate", []Bracket{NewBracket(0, 100, -1)}, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.brackets)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidSchedule)
			var ise *InvalidScheduleError
			require.True(t, errors.As(err, &ise))
			assert.Equal(t, tt.wantIdx, ise.Index)
		})
	}
}

func TestNewScheduleCopiesBrackets(t *testing.T) {
	in := []Bracket{NewBracket(0, 100, 10), NewBracket(100, 999_999_999, 20)}
	s, err := NewSchedule(testKey, in)
	require.NoError(t, err)

	in[0].Rate = decimal.NewFromInt(99)
	got := s.Brackets()
	assert.True(t, got[0].Rate.Equal(decimal.NewFromInt(10)))

	got[1].Rate = decimal.NewFromInt(99)
	assert.True(t, s.Brackets()[1].Rate.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, testKey, s.Key())
}

func TestNewScheduleInvalidCarriesKey(t *testing.T) {
	_, err := NewSchedule(testKey, []Bracket{NewBracket(0, 100, 10), NewBracket(200, 300, 10)})
	var ise *InvalidScheduleError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, testKey, ise.Key)
	assert.Contains(t, err.Error(), "federal/income/single/2021")
}

func TestBookLookup(t *testing.T) {
	b := Default()

	brackets, err := b.BracketsFor(model.CategoryIncome, model.Single, 2021)
	require.NoError(t, err)
	require.Len(t, brackets, 7)
	assert.True(t, brackets[0].Upper.Equal(decimal.NewFromInt(9950)))
	assert.True(t, brackets[1].Lower.Equal(decimal.NewFromInt(9950)))
	assert.True(t, brackets[1].Upper.Equal(decimal.NewFromInt(40525)))
	assert.True(t, brackets[6].Upper.Equal(Unbounded))

	_, err = b.BracketsFor(model.CategoryIncome, model.Single, 1999)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownJurisdiction)

	_, err = b.Schedule(Key{Jurisdiction: "atlantis", Category: model.CategoryIncome, Status: model.Single, Year: 2021})
	var uje *UnknownJurisdictionError
	require.True(t, errors.As(err, &uje))
	assert.Equal(t, "atlantis", uje.Key.Jurisdiction)
}

func TestDefaultBookCoversEveryTable(t *testing.T) {
	b := Default()
	for _, year := range Years() {
		for _, status := range []model.FilingStatus{model.Single, model.Married} {
			for _, c := range model.Categories() {
				s, err := b.Schedule(Key{Jurisdiction: Federal, Category: c, Status: status, Year: year})
				require.NoError(t, err, "%s %s %d", c, status, year)
				assert.NoError(t, Validate(s.Brackets()))
			}
		}
	}
	assert.Equal(t, len(Years())*2*len(model.Categories()), b.Len())
	assert.Same(t, b, Default(), "default book is built once")
}

func TestIncomeRatesProgressive(t *testing.T) {
	b := Default()
	for _, key := range b.Keys() {
		if key.Category != model.CategoryIncome && key.Category != model.CategoryCapGainsLong {
			continue
		}
		s, err := b.Schedule(key)
		require.NoError(t, err)
		brackets := s.Brackets()
		for i := 1; i < len(brackets); i++ {
			assert.True(t, brackets[i].Rate.GreaterThanOrEqual(brackets[i-1].Rate), "%s bracket %d", key, i)
		}
	}
}

func TestMerge(t *testing.T) {
	state, err := NewSchedule(Key{Jurisdiction: "oregon", Category: model.CategoryIncome, Status: model.Single, Year: 2021},
		[]Bracket{NewBracket(0, 3650, 4.75), NewBracket(3650, 999_999_999, 6.75)})
	require.NoError(t, err)

	merged := Default().Merge(NewBook(state))
	assert.Equal(t, Default().Len()+1, merged.Len())
	_, err = merged.Schedule(state.Key())
	assert.NoError(t, err)

	// The default book is untouched.
	_, err = Default().Schedule(state.Key())
	assert.ErrorIs(t, err, ErrUnknownJurisdiction)
}
