package rates

import (
	"sync"

	"github.com/taxit-dev/taxit/internal/model"
)

type yearTables struct {
	incomeSingle, incomeMarried   []int64 // upper bounds, top bracket excluded
	ssiWageBase                   int64
	medicareSingle, medicareMarry int64 // additional medicare thresholds
	gainsSingle, gainsMarried     []int64
}

var incomeRates = []float64{10, 12, 22, 24, 32, 35, 37}

var gainsRates = []float64{0, 15, 20}

var federalTables = map[int]yearTables{
	2020: {
		incomeSingle:   []int64{9875, 40125, 85525, 163300, 207350, 518400},
		incomeMarried:  []int64{19750, 80250, 171050, 326600, 414700, 622050},
		ssiWageBase:    137700,
		medicareSingle: 200000,
		medicareMarry:  250000,
		gainsSingle:    []int64{40000, 441450},
		gainsMarried:   []int64{80000, 496600},
	},
	2021: {
		incomeSingle:   []int64{9950, 40525, 86375, 164925, 209425, 523600},
		incomeMarried:  []int64{19900, 81050, 172750, 329850, 418850, 628300},
		ssiWageBase:    142800,
		medicareSingle: 200000,
		medicareMarry:  250000,
		gainsSingle:    []int64{40400, 445850},
		gainsMarried:   []int64{80800, 501600},
	},
}

var defaultBook = sync.OnceValue(buildDefault)

// Default returns the built-in federal book. It is built once per process.
func Default() *Book {
	return defaultBook()
}

// Years lists the years covered by the built-in tables.
func Years() []int {
	return []int{2020, 2021}
}

func buildDefault() *Book {
	var schedules []*Schedule
	add := func(key Key, brackets []Bracket) {
		s, err := NewSchedule(key, brackets)
		if err != nil {
			// Static tables; covered by tests.
			panic(err)
		}
		schedules = append(schedules, s)
	}

	for year, t := range federalTables {
		for _, status := range []model.FilingStatus{model.Single, model.Married} {
			key := func(c model.Category) Key {
				return Key{Jurisdiction: Federal, Category: c, Status: status, Year: year}
			}

			income, gains, medicare := t.incomeSingle, t.gainsSingle, t.medicareSingle
			if status == model.Married {
				income, gains, medicare = t.incomeMarried, t.gainsMarried, t.medicareMarry
			}

			add(key(model.CategoryIncome), tiered(income, incomeRates))
			add(key(model.CategoryCapGainsLong), tiered(gains, gainsRates))
			add(key(model.CategorySSIEmployer), tiered([]int64{t.ssiWageBase}, []float64{6.2, 0}))
			add(key(model.CategorySSIEmployee), tiered([]int64{t.ssiWageBase}, []float64{6.2, 0}))
			add(key(model.CategoryMedicareEmployer), tiered(nil, []float64{1.45}))
			add(key(model.CategoryMedicareEmployee), tiered([]int64{medicare}, []float64{1.45, 2.35}))
		}
	}
	return NewBook(schedules...)
}

// tiered builds contiguous brackets from interior bounds; len(rates) must be len(bounds)+1.
func tiered(bounds []int64, rates []float64) []Bracket {
	brackets := make([]Bracket, 0, len(rates))
	var lower int64
	for i, rate := range rates {
		upper := Unbounded.IntPart()
		if i < len(bounds) {
			upper = bounds[i]
		}
		brackets = append(brackets, NewBracket(lower, upper, rate))
		lower = upper
	}
	return brackets
}
