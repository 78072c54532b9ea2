package scenario

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/limits"
	"github.com/taxit-dev/taxit/internal/payroll"
	"github.com/taxit-dev/taxit/internal/rates"
	"github.com/taxit-dev/taxit/internal/tax"
)

// Deps are the shared tables a run reads.
type Deps struct {
	Book   *rates.Book
	Caps   *limits.Table
	Year   int // used when the scenario names no year
	Logger *zap.Logger
}

// Outcome records what happened to one event.
type Outcome struct {
	Index   int // 1-based
	Event   Event
	Receipt *payroll.Receipt // salary and capital gain
	EntryID string           // contract
	Err     error
}

// OK reports whether the event posted.
func (o Outcome) OK() bool { return o.Err == nil }

// Result is the ledger after a run and every event's outcome.
type Result struct {
	Ledger   *ledger.Ledger
	Outcomes []Outcome
}

// Rejected counts events that did not post.
func (r *Result) Rejected() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.OK() {
			n++
		}
	}
	return n
}

// Run executes the events of sc in order on a new ledger. A rejected event
// is recorded and the run continues, unless strict is set, in which case the
// run stops and returns the error alongside the partial result.
func Run(sc *Scenario, deps Deps, strict bool) (*Result, error) {
	w, err := sc.world()
	if err != nil {
		return nil, err
	}
	year := sc.Year
	if year == 0 {
		year = deps.Year
	}
	if year <= 0 {
		return nil, errors.New("scenario has no year")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	l := ledger.New()
	p := payroll.NewProcessor(l, tax.NewCalculator(deps.Book), deps.Caps, year, payroll.WithLogger(logger))
	for _, e := range w.order {
		p.Enroll(e)
	}

	res := &Result{Ledger: l}
	for i, ev := range sc.Events {
		o := Outcome{Index: i + 1, Event: ev}
		switch ev.Kind {
		case KindSalary:
			e := w.employments[[2]string{key(ev.Employer), key(ev.Employee)}]
			o.Receipt, o.Err = p.PaySalary(e, ev.Gross, payroll.Contributions{
				RetirementEmployee: ev.RetirementEmployee,
				RetirementMatch:    ev.RetirementMatch,
				SecondaryEmployee:  ev.SecondaryEmployee,
				SecondaryMatch:     ev.SecondaryMatch,
				DependentCare:      ev.DependentCare,
			})
		case KindContract:
			o.EntryID, o.Err = p.PayContract(w.companies[key(ev.Payer)], w.people[key(ev.Payee)], ev.Amount)
		case KindCapitalGain:
			o.Receipt, o.Err = p.RealizeGain(w.people[key(ev.Person)], ev.Amount)
		case KindPeriod:
			o.Err = p.SetPeriod(ev.Year)
		}
		res.Outcomes = append(res.Outcomes, o)
		if o.Err != nil && strict {
			return res, fmt.Errorf("event %d (%s): %w", o.Index, ev, o.Err)
		}
	}
	return res, nil
}
