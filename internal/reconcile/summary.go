package reconcile

import (
	"fmt"
	"io"
	"strings"

	"github.com/guttosm/graindesk/internal/domain/models"
)

const rule = "============================================================"

// Summary reports what a Pass did.
type Summary struct {
	Pass            string
	Initial         int
	Renamed         int
	Corrected       int
	Fixes           []models.FieldChange
	Unmatched       []string
	Removed         []string
	Added           []string
	AlreadyPresent  []string
	StatesFixed     int
	ProfilesApplied int
	PhonesReplaced  int
	Stamped         int
	Final           int
}

// Updated is the number of records touched by renames or corrections.
func (s Summary) Updated() int {
	return s.Renamed + s.Corrected
}

// Print writes a human-readable report of the pass to w.
func (s Summary) Print(w io.Writer) error {
	var b strings.Builder
	title := strings.ToUpper(strings.ReplaceAll(s.Pass, "-", " "))

	fmt.Fprintln(&b, rule)
	fmt.Fprintf(&b, "%s COMPLETE\n", title)
	fmt.Fprintln(&b, rule)

	if s.Renamed > 0 || s.Corrected > 0 || len(s.Fixes) > 0 {
		fmt.Fprintf(&b, "\nRecords updated: %d\n", s.Updated())
		fmt.Fprintf(&b, "Fixes applied (%d):\n", len(s.Fixes))
		for _, f := range s.Fixes {
			fmt.Fprintf(&b, "  ✓ %s: %s changed from '%s' to '%s'\n", f.Record, f.Field, f.Old, f.New)
		}
	}
	if len(s.Unmatched) > 0 {
		fmt.Fprintf(&b, "\nCorrections with no matching record (%d):\n", len(s.Unmatched))
		for _, k := range s.Unmatched {
			fmt.Fprintf(&b, "  - %s\n", k)
		}
	}
	if len(s.Removed) > 0 {
		fmt.Fprintf(&b, "\nEntries removed (%d):\n", len(s.Removed))
		for _, n := range s.Removed {
			fmt.Fprintf(&b, "  - %s\n", n)
		}
	}
	if len(s.Added) > 0 || len(s.AlreadyPresent) > 0 {
		fmt.Fprintf(&b, "\nNew verified entries added (%d):\n", len(s.Added))
		for _, n := range s.Added {
			fmt.Fprintf(&b, "  + %s\n", n)
		}
		if len(s.AlreadyPresent) > 0 {
			fmt.Fprintf(&b, "Already present (%d): %s\n", len(s.AlreadyPresent), strings.Join(s.AlreadyPresent, ", "))
		}
	}
	if s.StatesFixed > 0 {
		fmt.Fprintf(&b, "\nStates fixed: %d\n", s.StatesFixed)
	}
	if s.ProfilesApplied > 0 {
		fmt.Fprintf(&b, "\nUpdated %d buyers with market profile pricing.\n", s.ProfilesApplied)
	}
	if s.PhonesReplaced > 0 {
		fmt.Fprintf(&b, "\nPlaceholder phones replaced: %d\n", s.PhonesReplaced)
	}
	if s.Stamped > 0 {
		fmt.Fprintf(&b, "\nMarked verified: %d\n", s.Stamped)
	}

	fmt.Fprintf(&b, "\nFinal buyer count: %d\n", s.Final)
	fmt.Fprintln(&b, rule)

	_, err := io.WriteString(w, b.String())
	return err
}
