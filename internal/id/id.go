package id

import (
	"fmt"
	"strconv"
	"strings"
)

// Leg indexes within a transfer: the paying side is always 'a'.
const (
	LegFrom = 0
	LegTo   = 1
)

// FormatEntryID returns a transfer ID like "2021-000042".
func FormatEntryID(period, seq int) string {
	return fmt.Sprintf("%04d-%06d", period, seq)
}

// FormatLegID returns a leg ID like "2021-000042a" (leg 0='a', 1='b', etc.).
func FormatLegID(entryID string, leg int) string {
	return entryID + string(rune('a'+leg))
}

// ParseEntryID parses "2021-000042" (with or without leg suffix) into period and seq.
func ParseEntryID(id string) (period, seq int, err error) {
	base := EntryGroup(id)

	parts := strings.SplitN(base, "-", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return 0, 0, fmt.Errorf("invalid entry ID format: %q", id)
	}

	period, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period in entry ID %q: %w", id, err)
	}

	seq, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid sequence in entry ID %q: %w", id, err)
	}
	if seq <= 0 {
		return 0, 0, fmt.Errorf("invalid sequence in entry ID %q: must be positive", id)
	}

	return period, seq, nil
}

// EntryGroup strips the leg suffix from a leg ID.
// "2021-000042a" -> "2021-000042"
func EntryGroup(legID string) string {
	if len(legID) == 0 {
		return ""
	}
	i := len(legID)
	for i > 0 && legID[i-1] >= 'a' && legID[i-1] <= 'z' {
		i--
	}
	return legID[:i]
}

// Leg returns the leg index encoded in the suffix, or -1 when there is none.
func Leg(legID string) int {
	group := EntryGroup(legID)
	suffix := legID[len(group):]
	if len(suffix) != 1 {
		return -1
	}
	return int(suffix[0] - 'a')
}
