// Package generator produces the synthetic buyer directory from the reference
// taxonomy: one record per entity, with jittered coordinates, prices derived
// from the regional anchors and placeholder contact data.
package generator

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/pricing"
	"github.com/guttosm/graindesk/internal/reference"
)

const (
	idPrefix           = "b"
	minIDWidth         = 3
	coordJitter        = 0.05
	cashVariation      = 0.10
	freightVariation   = 0.05
	minConfidence      = 85
	maxConfidence      = 99
	defaultContactName = "Grain Desk"
)

// Options tunes a Generator. Zero values fall back to sensible defaults.
//
// Fields:
//   - Futures: global futures price used to derive basis (default: tables.Futures.Generate).
//   - Rand: random source; inject a seeded one for reproducible output (default: time-seeded).
//   - Now: clock used for lastUpdated (default: time.Now).
type Options struct {
	Futures float64
	Rand    *rand.Rand
	Now     func() time.Time
}

// Generator walks the taxonomy and emits BuyerRecords.
type Generator struct {
	tables *reference.Tables
	opts   Options
}

// NewSeededRand returns a deterministic random source for the given seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// New builds a Generator over tables.
func New(tables *reference.Tables, opts Options) *Generator {
	if opts.Futures == 0 {
		opts.Futures = tables.Futures.Generate
	}
	if opts.Rand == nil {
		opts.Rand = NewSeededRand(uint64(time.Now().UnixNano()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Generator{tables: tables, opts: opts}
}

// Generate returns one record per taxonomy entity, in traversal order.
//
// Ids are zero-padded sequential counters starting at 1 ("b001", "b002", ...).
// With the same tables and the same seeded Rand the output is identical
// except for lastUpdated.
func (g *Generator) Generate() []models.BuyerRecord {
	total := g.tables.Taxonomy.Size()
	width := len(strconv.Itoa(total))
	if width < minIDWidth {
		width = minIDWidth
	}

	stamp := g.opts.Now().UTC().Format(time.RFC3339)
	out := make([]models.BuyerRecord, 0, total)
	n := 0

	for _, region := range g.tables.Taxonomy {
		anchor := g.tables.AnchorFor(region.Name)
		for _, sub := range region.Subregions {
			centroid := g.tables.CentroidFor(sub.Name)
			state := g.tables.StateFor(region.Name, sub.Name)
			label := g.tables.RegionLabel(region.Name, sub.Name)

			for _, entity := range sub.Entities {
				n++
				rec := g.record(entity, anchor, centroid)
				rec.ID = fmt.Sprintf("%s%0*d", idPrefix, width, n)
				rec.City = sub.Name
				rec.State = state
				rec.Region = label
				rec.LastUpdated = stamp
				out = append(out, rec)
			}
		}
	}
	return out
}

func (g *Generator) record(entity models.Entity, anchor models.PricingAnchor, centroid models.Centroid) models.BuyerRecord {
	r := g.opts.Rand

	lat := centroid.Lat + g.symmetric(coordJitter)
	lng := centroid.Lng + g.symmetric(coordJitter)

	cash := pricing.Round(anchor.CashAnchor+g.symmetric(cashVariation), pricing.PricePlaces)
	freight := pricing.Round(anchor.FreightBase+g.symmetric(freightVariation), pricing.PricePlaces)

	return models.BuyerRecord{
		Name:            entity.Name,
		Type:            entity.Type,
		CashPrice:       cash,
		Basis:           pricing.Basis(cash, g.opts.Futures),
		FreightCost:     freight,
		NetPrice:        pricing.Net(cash, freight),
		Lat:             lat,
		Lng:             lng,
		RailAccessible:  r.IntN(2) == 1,
		NearTransload:   r.IntN(2) == 1,
		ContactName:     defaultContactName,
		ContactPhone:    PlaceholderPhone(r),
		Website:         WebsiteGuess(entity.Name),
		ConfidenceScore: minConfidence + r.IntN(maxConfidence-minConfidence+1),
	}
}

// symmetric returns a uniform value in [-span, +span].
func (g *Generator) symmetric(span float64) float64 {
	return (g.opts.Rand.Float64()*2 - 1) * span
}

// PlaceholderPhone returns a number in the reserved 555 exchange. It is never
// a real number and is replaced during contact reconciliation.
func PlaceholderPhone(r *rand.Rand) string {
	return fmt.Sprintf("555-%03d-%04d", 100+r.IntN(900), 1000+r.IntN(9000))
}

// IsPlaceholderPhone reports whether phone came from PlaceholderPhone.
func IsPlaceholderPhone(phone string) bool {
	return strings.HasPrefix(phone, "555-")
}

// WebsiteGuess derives an unverified https URL from a buyer name by lowercasing
// and dropping whitespace, '&' and '.'.
func WebsiteGuess(name string) string {
	slug := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || r == '&' || r == '.' {
			return -1
		}
		return unicode.ToLower(r)
	}, name)
	return "https://www." + slug + ".com"
}
