// Package reference loads the hand-curated lookup tables that drive generation
// and reconciliation: taxonomy, anchors, centroids, known phone numbers,
// corrections, exclusions, additions and market profiles.
package reference

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/guttosm/graindesk/internal/domain/models"
)

//go:embed defaults.yaml
var defaultTables []byte

// Futures holds the two futures references used by the market model.
//
// Fields:
//   - Generate: the single global futures price used to derive generated basis.
//   - Market: the futures price used when applying market profiles.
type Futures struct {
	Generate float64 `yaml:"generate"`
	Market   float64 `yaml:"market"`
}

// KnownPhone maps a name key to a publicly listed phone number.
type KnownPhone struct {
	Match string `yaml:"match"`
	Phone string `yaml:"phone"`
}

// Tables is the full reference document.
type Tables struct {
	Futures         Futures                         `yaml:"futures"`
	Taxonomy        models.Taxonomy                 `yaml:"taxonomy"`
	Anchors         map[string]models.PricingAnchor `yaml:"anchors"`
	DefaultAnchor   models.PricingAnchor            `yaml:"defaultAnchor"`
	Centroids       map[string]models.Centroid      `yaml:"centroids"`
	DefaultCentroid models.Centroid                 `yaml:"defaultCentroid"`
	RegionStates    map[string]string               `yaml:"regionStates"`
	SubregionStates map[string]string               `yaml:"subregionStates"`
	RegionSuffixes  map[string]string               `yaml:"regionSuffixes"`
	KnownPhones     []KnownPhone                    `yaml:"knownPhones"`
	Renames         []models.Correction             `yaml:"renames"`
	Contacts        []models.Correction             `yaml:"contacts"`
	AreaCodes       map[string][]string             `yaml:"areaCodes"`
	Corrections     []models.Correction             `yaml:"corrections"`
	Exclusions      []string                        `yaml:"exclusions"`
	Additions       []models.BuyerRecord            `yaml:"additions"`
	MarketProfiles  []models.MarketProfile          `yaml:"marketProfiles"`
}

// Defaults parses the embedded reference tables. Each call returns a fresh copy.
func Defaults() (*Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(defaultTables, &t); err != nil {
		return nil, eris.Wrap(err, "reference: parse embedded tables")
	}
	return &t, nil
}

// Load returns the embedded tables overlaid with the YAML document at path.
// An empty path returns the embedded tables unchanged. Sections present in the
// file replace the embedded lists; map sections are merged key by key.
func Load(path string) (*Tables, error) {
	t, err := Defaults()
	if err != nil {
		return nil, err
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, eris.Wrapf(err, "reference: read %s", path)
		}
		if err := yaml.Unmarshal(data, t); err != nil {
			return nil, eris.Wrapf(err, "reference: parse %s", path)
		}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return t, nil
}

// Validate checks the tables are internally consistent.
//
// It rejects unknown buyer types, subregions that resolve to no state, blank
// correction keys and market profiles with no states.
func (t *Tables) Validate() error {
	for _, r := range t.Taxonomy {
		for _, s := range r.Subregions {
			if t.StateFor(r.Name, s.Name) == "" {
				return eris.Errorf("reference: no state for %s/%s", r.Name, s.Name)
			}
			for _, e := range s.Entities {
				if e.Name == "" {
					return eris.Errorf("reference: unnamed buyer in %s/%s", r.Name, s.Name)
				}
				if !e.Type.Valid() {
					return eris.Errorf("reference: %q has unknown type %q", e.Name, e.Type)
				}
			}
		}
	}
	for _, group := range [][]models.Correction{t.Renames, t.Contacts, t.Corrections} {
		for _, c := range group {
			if c.Match == "" {
				return eris.New("reference: correction with empty match key")
			}
		}
	}
	for _, p := range t.KnownPhones {
		if p.Match == "" || p.Phone == "" {
			return eris.Errorf("reference: incomplete known phone entry %+v", p)
		}
	}
	for _, p := range t.MarketProfiles {
		if len(p.States) == 0 {
			return eris.Errorf("reference: market profile %q has no states", p.Name)
		}
	}
	for _, a := range t.Additions {
		if !a.Type.Valid() {
			return eris.Errorf("reference: addition %q has unknown type %q", a.Name, a.Type)
		}
	}
	return nil
}

// AnchorFor returns the pricing anchor of a region, falling back to DefaultAnchor.
func (t *Tables) AnchorFor(region string) models.PricingAnchor {
	if a, ok := t.Anchors[region]; ok {
		return a
	}
	return t.DefaultAnchor
}

// CentroidFor returns the centroid of a subregion, falling back to DefaultCentroid.
func (t *Tables) CentroidFor(subregion string) models.Centroid {
	if c, ok := t.Centroids[subregion]; ok {
		return c
	}
	return t.DefaultCentroid
}

// StateFor resolves the state code of a subregion. A subregion override wins
// over the region mapping (multi-state regions such as Midwest or Canada).
func (t *Tables) StateFor(region, subregion string) string {
	if s, ok := t.SubregionStates[subregion]; ok {
		return s
	}
	return t.RegionStates[region]
}

// RegionLabel returns the region label stored on generated records.
func (t *Tables) RegionLabel(region, subregion string) string {
	return subregion + t.RegionSuffixes[region]
}

// PhoneCorrections converts KnownPhones into contactPhone corrections, preserving order.
func (t *Tables) PhoneCorrections() []models.Correction {
	out := make([]models.Correction, 0, len(t.KnownPhones))
	for _, p := range t.KnownPhones {
		phone := p.Phone
		out = append(out, models.Correction{Match: p.Match, Set: models.Patch{ContactPhone: &phone}})
	}
	return out
}
