// Package reconcile corrects a buyer dataset against hand-curated reference
// data: name-keyed field corrections, exclusions, verified additions, state
// fix-ups, market-profile pricing and a final verified stamp.
package reconcile

import (
	"math/rand/v2"
	"time"

	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/logger"
)

// Pass bundles the tables of one reconciliation run. Empty tables skip their step.
//
// Steps run in this order:
//  1. Renames (exact match)
//  2. Corrections (Policy)
//  3. Exclusions
//  4. Additions
//  5. State fix-ups
//  6. Market profiles (against Futures)
//  7. Placeholder phone replacement (when AreaCodes is set)
//  8. Verified stamp (when Stamp is true)
type Pass struct {
	Name        string
	Renames     []models.Correction
	Corrections []models.Correction
	Policy      MatchPolicy
	Exclusions  []string
	Additions   []models.BuyerRecord
	StateFixups map[string]string
	Profiles    []models.MarketProfile
	Futures     float64
	AreaCodes   map[string][]string
	Rand        *rand.Rand
	Stamp       bool
	Now         func() time.Time
}

// Result is the outcome of a successful Pass.
type Result struct {
	Records []models.BuyerRecord
	Summary Summary
}

// Run applies the pass to records. The input slice is never modified; on error
// nothing of the pass is returned, so callers must not persist anything.
func (p Pass) Run(records []models.BuyerRecord) (Result, error) {
	log := logger.L().With().Str("pass", p.Name).Logger()
	sum := Summary{Pass: p.Name, Initial: len(records)}
	out := records

	if len(p.Renames) > 0 {
		next, stats, err := ApplyCorrections(out, p.Renames, MatchExact)
		if err != nil {
			return Result{}, err
		}
		out = next
		sum.Renamed = stats.Updated
		sum.Fixes = append(sum.Fixes, stats.Changes...)
	}

	if len(p.Corrections) > 0 {
		next, stats, err := ApplyCorrections(out, p.Corrections, p.Policy)
		if err != nil {
			return Result{}, err
		}
		out = next
		sum.Corrected = stats.Updated
		sum.Fixes = append(sum.Fixes, stats.Changes...)
		sum.Unmatched = stats.Unmatched
	}

	if len(p.Exclusions) > 0 {
		out, sum.Removed = Exclude(out, p.Exclusions)
	}

	if len(p.Additions) > 0 {
		next, added, skipped, err := Append(out, p.Additions)
		if err != nil {
			return Result{}, err
		}
		out = next
		sum.Added = added
		sum.AlreadyPresent = skipped
	}

	if len(p.StateFixups) > 0 {
		out, sum.StatesFixed = FixStates(out, p.StateFixups)
	}

	if len(p.Profiles) > 0 {
		out, sum.ProfilesApplied = ApplyMarketProfiles(out, p.Profiles, p.Futures)
	}

	if len(p.AreaCodes) > 0 {
		r := p.Rand
		if r == nil {
			r = rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
		}
		out, sum.PhonesReplaced = ReplacePlaceholderPhones(out, p.AreaCodes, r)
	}

	if p.Stamp {
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		out = StampVerified(out, now())
		sum.Stamped = len(out)
	}

	for _, f := range sum.Fixes {
		log.Debug().Str("buyer", f.Record).Str("field", f.Field).Str("old", f.Old).Str("new", f.New).Msg("field corrected")
	}
	sum.Final = len(out)
	log.Info().
		Int("initial", sum.Initial).
		Int("updated", sum.Updated()).
		Int("removed", len(sum.Removed)).
		Int("added", len(sum.Added)).
		Int("final", sum.Final).
		Msg("pass complete")

	return Result{Records: out, Summary: sum}, nil
}
