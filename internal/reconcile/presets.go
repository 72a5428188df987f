package reconcile

import (
	"math/rand/v2"
	"time"

	"github.com/guttosm/graindesk/internal/reference"
)

// Pass names, also used as the CLI mode names.
const (
	PassPhones   = "reconcile-phones"
	PassContacts = "reconcile-contacts"
	PassFull     = "reconcile-full"
	PassBasis    = "reconcile-basis"
)

// PhonesPass overwrites contactPhone from the known numbers table, falling
// back to substring matches.
func PhonesPass(t *reference.Tables) Pass {
	return Pass{
		Name:        PassPhones,
		Corrections: t.PhoneCorrections(),
		Policy:      MatchExactThenSubstring,
	}
}

// ContactsPass applies renames and exact contact corrections, then replaces
// any remaining placeholder phones with plausible local numbers.
func ContactsPass(t *reference.Tables, r *rand.Rand) Pass {
	return Pass{
		Name:        PassContacts,
		Renames:     t.Renames,
		Corrections: t.Contacts,
		Policy:      MatchExact,
		AreaCodes:   t.AreaCodes,
		Rand:        r,
	}
}

// FullPass runs corrections, exclusions, additions and state fix-ups, then
// stamps every surviving record as verified.
func FullPass(t *reference.Tables, now func() time.Time) Pass {
	return Pass{
		Name:        PassFull,
		Corrections: t.Corrections,
		Policy:      MatchExact,
		Exclusions:  t.Exclusions,
		Additions:   t.Additions,
		StateFixups: t.SubregionStates,
		Stamp:       true,
		Now:         now,
	}
}

// BasisPass applies the market profiles against the given futures price.
func BasisPass(t *reference.Tables, futures float64) Pass {
	if futures == 0 {
		futures = t.Futures.Market
	}
	return Pass{
		Name:     PassBasis,
		Profiles: t.MarketProfiles,
		Futures:  futures,
	}
}
