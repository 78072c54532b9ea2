package ledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxit-dev/taxit/internal/model"
)

func TestCSVRoundTrip(t *testing.T) {
	l := New()
	company := l.General(acme)
	person := l.General(alice)
	fed := l.General(irs)

	_, err := l.Transfer(TransferParams{From: company.ID, To: person.ID, Amount: dec("2500.00"), Description: "salary", Beneficiary: alice, Period: period, BatchID: "b-1"})
	require.NoError(t, err)
	_, err = l.Transfer(TransferParams{From: person.ID, To: fed.ID, Amount: dec("155.00"), Description: "ssi_employee", Beneficiary: alice, Period: period, BatchID: "b-1"})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteEntries(&buf, l.Entries()))
	assert.True(t, strings.HasPrefix(buf.String(), Header+"\n"))

	got, err := ReadEntries(&buf)
	require.NoError(t, err)
	want := l.Entries()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Seq, got[i].Seq)
		assert.Equal(t, want[i].Period, got[i].Period)
		assert.Equal(t, want[i].AccountID, got[i].AccountID)
		assert.Equal(t, want[i].Description, got[i].Description)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "amount row %d", i)
		assert.Equal(t, want[i].Beneficiary, got[i].Beneficiary)
		assert.Equal(t, want[i].Counterparty, got[i].Counterparty)
		assert.Equal(t, want[i].BatchID, got[i].BatchID)
	}
	assert.Empty(t, ValidateEntries(got, l))
}

func TestReadEntries_Empty(t *testing.T) {
	got, err := ReadEntries(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestReadEntries_BadRows(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"bad period", "2021-000001a,x,1,salary,-1,,2,"},
		{"bad account", "2021-000001a,2021,one,salary,-1,,2,"},
		{"bad amount", "2021-000001a,2021,1,salary,lots,,2,"},
		{"bad counterparty", "2021-000001a,2021,1,salary,-1,,two,"},
		{"short row", "2021-000001a,2021,1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadEntries(strings.NewReader(Header + "\n" + tt.row + "\n"))
			assert.Error(t, err)
		})
	}
}

func TestMarshalEntry_OmitsZeroCounterparty(t *testing.T) {
	row := MarshalEntry(model.Entry{ID: "2021-000001a", Period: 2021, AccountID: 1, Description: "x", Amount: dec("-1.50")})
	assert.Equal(t, "", row[colCparty])
	assert.Equal(t, "-1.5", row[colAmount])
}
