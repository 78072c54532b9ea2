package limits

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxit-dev/taxit/internal/ledger"
	"github.com/taxit-dev/taxit/internal/model"
)

const year = 2021

var (
	alice = model.NewOwnerID(model.OwnerPerson, "alice")
	acme  = model.NewOwnerID(model.OwnerCompany, "acme")
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// contribute posts employee and match credits to acct the way payroll does.
func contribute(t *testing.T, l *ledger.Ledger, acct *ledger.Account, employee, match int64) {
	t.Helper()
	if employee > 0 {
		_, err := l.Transfer(ledger.TransferParams{
			From: l.General(alice).ID, To: acct.ID, Amount: d(employee),
			Description: model.DescRetirement, Beneficiary: alice, Period: year,
		})
		require.NoError(t, err)
	}
	if match > 0 {
		_, err := l.Transfer(ledger.TransferParams{
			From: l.General(acme).ID, To: acct.ID, Amount: d(match),
			Description: model.DescRetirementMatch, Beneficiary: alice, Period: year,
		})
		require.NoError(t, err)
	}
}

func TestRetirementCapEnforcement(t *testing.T) {
	e := NewEnforcer(Caps{RetirementTotal: d(58000), RetirementEmployee: d(58000), MatchPercent: d(25)})
	l := ledger.New()
	k401 := l.Open(alice, acme, model.PlanPrimary.Tags()...)

	u := ReadUsage(l.Owned(alice), alice, year)
	require.NoError(t, ValidateRetirement(d(35000), e.RetirementSpace(u)))
	contribute(t, l, k401, 20000, 15000)

	u = ReadUsage(l.Owned(alice), alice, year)
	assert.Equal(t, "35000", u.Primary.String())
	assert.Equal(t, "20000", u.Deferrals.String())

	err := ValidateRetirement(d(25000), e.RetirementSpace(u))
	require.ErrorIs(t, err, ErrExceedsRetirementSpace)

	var le *LimitError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, "25000", le.Requested.String())
	assert.Equal(t, "23000", le.Available.String())
	assert.Contains(t, err.Error(), "requested 25000.00, available 23000.00")
}

func TestEmployerMatchCap(t *testing.T) {
	e := NewEnforcer(DefaultCaps()[year])

	assert.NoError(t, e.ValidateEmployerMatch(d(10000), d(40000)))
	assert.ErrorIs(t, e.ValidateEmployerMatch(d(10001), d(40000)), ErrExceedsMatchCap)
	assert.Equal(t, "10000", e.MatchCap(d(40000)).String())
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"pretax equal to gross", ValidatePretaxTotal(d(100), d(100)), nil},
		{"pretax over gross", ValidatePretaxTotal(d(101), d(100)), ErrExceedsGrossPay},
		{"retirement within space", ValidateRetirement(d(0), d(0)), nil},
		{"deferral over space", ValidateDeferral(d(19501), d(19500)), ErrExceedsRetirementSpace},
		{"child care within cap", ValidateChildCare(d(5000), d(5000)), nil},
		{"child care over cap", ValidateChildCare(d(5001), d(5000)), ErrExceedsChildCareCap},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.want == nil {
				assert.NoError(t, tt.err)
				return
			}
			assert.ErrorIs(t, tt.err, tt.want)
		})
	}
}

func TestPlanInterference(t *testing.T) {
	e := NewEnforcer(DefaultCaps()[year])
	l := ledger.New()
	k401 := l.Open(alice, acme, model.PlanPrimary.Tags()...)
	k403 := l.Open(alice, acme, model.PlanSecondary.Tags()...)

	contribute(t, l, k401, 5000, 5000)

	// An empty secondary account does not share the total.
	u := ReadUsage(l.Owned(alice), alice, year)
	assert.False(t, u.SecondaryActive)
	assert.Equal(t, "48000", e.RetirementSpace(u).String())

	contribute(t, l, k403, 4000, 6000)
	u = ReadUsage(l.Owned(alice), alice, year)
	assert.True(t, u.SecondaryActive)
	assert.Equal(t, "10000", u.Secondary.String())
	assert.Equal(t, "9000", u.Deferrals.String())
	assert.Equal(t, "38000", e.RetirementSpace(u).String())
	assert.Equal(t, "48000", e.SecondarySpace(u).String())
	assert.Equal(t, "10500", e.DeferralSpace(u).String())
}

func TestUsagePlus(t *testing.T) {
	e := NewEnforcer(DefaultCaps()[year])
	var u Usage

	planned := u.Plus(model.PlanSecondary, d(1000), d(500))
	assert.True(t, planned.SecondaryActive)
	assert.Equal(t, "1500", planned.Secondary.String())
	assert.Equal(t, "1000", planned.Deferrals.String())
	assert.Equal(t, "56500", e.RetirementSpace(planned).String())

	// Zero contribution does not activate the secondary plan.
	assert.False(t, u.Plus(model.PlanSecondary, decimal.Zero, decimal.Zero).SecondaryActive)

	planned = planned.Plus(model.PlanPrimary, d(2000), d(0)).Plus(model.PlanDependentCare, d(300), d(0))
	assert.Equal(t, "2000", planned.Primary.String())
	assert.Equal(t, "3000", planned.Deferrals.String())
	assert.Equal(t, "300", planned.DependentCare.String())
}

func TestReadUsage_FiltersPeriodAndBeneficiary(t *testing.T) {
	l := ledger.New()
	cc := l.Open(alice, acme, model.PlanDependentCare.Tags()...)
	bob := model.NewOwnerID(model.OwnerPerson, "bob")

	post := func(amount int64, benef model.OwnerID, period int) {
		_, err := l.Transfer(ledger.TransferParams{
			From: l.General(alice).ID, To: cc.ID, Amount: d(amount),
			Description: model.DescDependentCare, Beneficiary: benef, Period: period,
		})
		require.NoError(t, err)
	}
	post(1000, alice, 2020)
	post(2000, alice, year)
	post(4000, bob, year)

	u := ReadUsage(l.Owned(alice), alice, year)
	assert.Equal(t, "2000", u.DependentCare.String())
	assert.True(t, u.Primary.IsZero())

	e := NewEnforcer(DefaultCaps()[year])
	assert.Equal(t, "8500", e.ChildCareSpace(u).String())
}

func TestSpaceClampsAtZero(t *testing.T) {
	e := NewEnforcer(Caps{RetirementTotal: d(100), RetirementEmployee: d(50), DependentCare: d(10)})
	u := Usage{Primary: d(150), Secondary: d(200), Deferrals: d(60), DependentCare: d(11), SecondaryActive: true}

	assert.True(t, e.RetirementSpace(u).IsZero())
	assert.True(t, e.SecondarySpace(u).IsZero())
	assert.True(t, e.DeferralSpace(u).IsZero())
	assert.True(t, e.ChildCareSpace(u).IsZero())
}

func TestTable(t *testing.T) {
	caps := DefaultCaps()
	table := NewTable(caps)
	delete(caps, 2020)

	assert.Equal(t, []int{2020, 2021}, table.Years())

	e, err := table.Enforcer(2020)
	require.NoError(t, err)
	assert.Equal(t, "57000", e.Caps().RetirementTotal.String())

	_, err = table.Enforcer(1999)
	assert.ErrorIs(t, err, ErrNoCaps)
}
