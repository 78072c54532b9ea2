package id

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatEntryID(t *testing.T) {
	tests := []struct {
		period, seq int
		want        string
	}{
		{2021, 1, "2021-000001"},
		{2020, 99, "2020-000099"},
		{2021, 123456, "2021-123456"},
	}
	for _, tt := range tests {
		got := FormatEntryID(tt.period, tt.seq)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatLegID(t *testing.T) {
	assert.Equal(t, "2021-000001a", FormatLegID("2021-000001", LegFrom))
	assert.Equal(t, "2021-000001b", FormatLegID("2021-000001", LegTo))
	assert.Equal(t, "2021-000001c", FormatLegID("2021-000001", 2))
}

func TestParseEntryID(t *testing.T) {
	tests := []struct {
		input      string
		wantPeriod int
		wantSeq    int
	}{
		{"2021-000001", 2021, 1},
		{"2020-000099", 2020, 99},
		{"2021-000001a", 2021, 1},
		{"2021-000001b", 2021, 1},
	}
	for _, tt := range tests {
		period, seq, err := ParseEntryID(tt.input)
		require.NoError(t, err, "input: %s", tt.input)
		assert.Equal(t, tt.wantPeriod, period)
		assert.Equal(t, tt.wantSeq, seq)
	}
}

func TestParseEntryID_Errors(t *testing.T) {
	badInputs := []string{
		"",
		"not-valid",
		"2021",
		"2021-",
		"xxxx-000001",
		"2021-000000",
	}
	for _, input := range badInputs {
		_, _, err := ParseEntryID(input)
		assert.Error(t, err, "expected error for input: %s", input)
	}
}

func TestEntryGroup(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2021-000001a", "2021-000001"},
		{"2021-000001b", "2021-000001"},
		{"2021-000001", "2021-000001"},
		{"", ""},
	}
	for _, tt := range tests {
		got := EntryGroup(tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestLeg(t *testing.T) {
	assert.Equal(t, LegFrom, Leg("2021-000001a"))
	assert.Equal(t, LegTo, Leg("2021-000001b"))
	assert.Equal(t, -1, Leg("2021-000001"))
	assert.Equal(t, -1, Leg("2021-000001ab"))
	assert.Equal(t, -1, Leg(""))
}
