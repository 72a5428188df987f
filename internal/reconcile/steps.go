package reconcile

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/guttosm/graindesk/internal/dataset"
	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/generator"
	"github.com/guttosm/graindesk/internal/pricing"
)

// Every step below is pure: it returns a new slice and never mutates its input.

// CorrectionStats describes the outcome of ApplyCorrections.
//
// Fields:
//   - Updated: number of records that matched a correction key.
//   - Changes: individual field overwrites whose value changed.
//   - Unmatched: correction keys that matched no record (reported, not an error).
type CorrectionStats struct {
	Updated   int
	Changes   []models.FieldChange
	Unmatched []string
}

// ApplyCorrections overwrites fields of records whose name matches a key of table.
// A record lacking a name fails with dataset.MissingFieldError.
func ApplyCorrections(records []models.BuyerRecord, table []models.Correction, policy MatchPolicy) ([]models.BuyerRecord, CorrectionStats, error) {
	out := slices.Clone(records)
	var stats CorrectionStats
	if len(table) == 0 {
		return out, stats, nil
	}

	hits := make([]bool, len(table))
	for i := range out {
		if out[i].Name == "" {
			return records, CorrectionStats{}, &dataset.MissingFieldError{Index: i, Field: "name"}
		}
		idx := findCorrection(out[i].Name, table, policy)
		if idx < 0 {
			continue
		}
		hits[idx] = true
		stats.Updated++
		stats.Changes = append(stats.Changes, applyPatch(&out[i], table[idx].Set)...)
	}

	for i, hit := range hits {
		if !hit {
			stats.Unmatched = append(stats.Unmatched, table[i].Match)
		}
	}
	return out, stats, nil
}

// Exclude drops every record whose name is in names. It returns the names of
// the removed records, one entry per record removed.
func Exclude(records []models.BuyerRecord, names []string) ([]models.BuyerRecord, []string) {
	if len(names) == 0 {
		return slices.Clone(records), nil
	}
	drop := make(map[string]struct{}, len(names))
	for _, n := range names {
		drop[n] = struct{}{}
	}

	out := make([]models.BuyerRecord, 0, len(records))
	var removed []string
	for _, r := range records {
		if _, ok := drop[r.Name]; ok {
			removed = append(removed, r.Name)
			continue
		}
		out = append(out, r)
	}
	return out, removed
}

// Append adds additions to the end of records.
//
// Behavior:
//   - An addition without id or name fails with dataset.MissingFieldError.
//   - An addition whose id is already used by a record with a different name,
//     or repeated within additions, fails with dataset.DuplicateIdentifierError.
//   - An addition whose id and name are both already present is skipped and
//     reported in skipped, so re-running the same pass is a no-op.
//
// The skip compares the current name only. If a later correction renames an
// added record, the next run sees a different name under the same id and
// fails with DuplicateIdentifierError; keep correction keys and addition
// names disjoint.
//
// On error the input is returned unchanged.
func Append(records []models.BuyerRecord, additions []models.BuyerRecord) (out []models.BuyerRecord, added, skipped []string, err error) {
	existing := make(map[string]string, len(records))
	for _, r := range records {
		existing[r.ID] = r.Name
	}

	pending := make([]models.BuyerRecord, 0, len(additions))
	for i, a := range additions {
		switch {
		case a.ID == "":
			return records, nil, nil, &dataset.MissingFieldError{Index: len(records) + i, Field: "id"}
		case a.Name == "":
			return records, nil, nil, &dataset.MissingFieldError{Index: len(records) + i, Field: "name"}
		}
		if name, ok := existing[a.ID]; ok {
			if name == a.Name && !containsID(pending, a.ID) {
				skipped = append(skipped, a.Name)
				continue
			}
			return records, nil, nil, &dataset.DuplicateIdentifierError{ID: a.ID, Name: a.Name, Existing: name}
		}
		existing[a.ID] = a.Name
		pending = append(pending, a)
		added = append(added, a.Name)
	}

	out = make([]models.BuyerRecord, 0, len(records)+len(pending))
	out = append(out, records...)
	out = append(out, pending...)
	return out, added, skipped, nil
}

func containsID(records []models.BuyerRecord, id string) bool {
	for _, r := range records {
		if r.ID == id {
			return true
		}
	}
	return false
}

// FixStates rewrites the state of records whose city is a key of fixups
// (e.g. the Midwest subregions, which span several states).
func FixStates(records []models.BuyerRecord, fixups map[string]string) ([]models.BuyerRecord, int) {
	out := slices.Clone(records)
	fixed := 0
	for i := range out {
		if want, ok := fixups[out[i].City]; ok && out[i].State != want {
			out[i].State = want
			fixed++
		}
	}
	return out, fixed
}

// ProfileFor returns the first profile whose state group contains state.
func ProfileFor(profiles []models.MarketProfile, state string) (models.MarketProfile, bool) {
	for _, p := range profiles {
		if slices.Contains(p.States, state) {
			return p, true
		}
	}
	return models.MarketProfile{}, false
}

// ApplyMarketProfiles overrides basis and freight from the profile matching each
// record's state and recomputes cash and net prices against futures. Records
// with no matching profile keep their prior pricing.
func ApplyMarketProfiles(records []models.BuyerRecord, profiles []models.MarketProfile, futures float64) ([]models.BuyerRecord, int) {
	out := slices.Clone(records)
	applied := 0
	for i := range out {
		p, ok := ProfileFor(profiles, out[i].State)
		if !ok {
			continue
		}
		pricing.ApplyProfile(&out[i], p, futures)
		applied++
	}
	return out, applied
}

// ReplacePlaceholderPhones swaps generator placeholder numbers for plausible
// numbers using an area code of the record's state. Records in states without
// area codes keep their placeholder.
func ReplacePlaceholderPhones(records []models.BuyerRecord, areaCodes map[string][]string, r *rand.Rand) ([]models.BuyerRecord, int) {
	out := slices.Clone(records)
	replaced := 0
	for i := range out {
		if !generator.IsPlaceholderPhone(out[i].ContactPhone) {
			continue
		}
		codes := areaCodes[out[i].State]
		if len(codes) == 0 {
			continue
		}
		code := codes[r.IntN(len(codes))]
		out[i].ContactPhone = fmt.Sprintf("(%s) %d-%04d", code, 200+r.IntN(800), 1000+r.IntN(9000))
		replaced++
	}
	return out, replaced
}

// StampVerified marks every record verified with lastUpdated set to now.
func StampVerified(records []models.BuyerRecord, now time.Time) []models.BuyerRecord {
	out := slices.Clone(records)
	stamp := now.UTC().Format(time.RFC3339)
	for i := range out {
		out[i].Verified = true
		out[i].LastUpdated = stamp
	}
	return out
}
