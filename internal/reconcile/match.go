package reconcile

import (
	"strings"

	"github.com/guttosm/graindesk/internal/domain/models"
)

// MatchPolicy selects how correction keys are matched against record names.
type MatchPolicy int

const (
	// MatchExact applies a correction only when the key equals the record name.
	MatchExact MatchPolicy = iota
	// MatchExactThenSubstring falls back to the first key, in table order,
	// contained in the record name when no key matches exactly.
	//
	// Overlapping keys are order dependent: with "ADM" listed before
	// "ADM Decatur", a record named "ADM Decatur Plant" receives the "ADM"
	// entry. This precedence is kept on purpose; reorder the table to change it.
	MatchExactThenSubstring
)

func (p MatchPolicy) String() string {
	switch p {
	case MatchExact:
		return "exact"
	case MatchExactThenSubstring:
		return "exact+substring"
	default:
		return "unknown"
	}
}

// findCorrection returns the index of the correction that applies to name, or -1.
func findCorrection(name string, table []models.Correction, policy MatchPolicy) int {
	for i, c := range table {
		if c.Match == name {
			return i
		}
	}
	if policy != MatchExactThenSubstring {
		return -1
	}
	for i, c := range table {
		if strings.Contains(name, c.Match) {
			return i
		}
	}
	return -1
}
