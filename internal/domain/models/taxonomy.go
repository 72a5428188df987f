package models

// Entity is one named buyer inside a subregion of the generator taxonomy.
type Entity struct {
	Name string    `yaml:"name"`
	Type BuyerType `yaml:"type"`
}

// Subregion groups the entities generated around a single centroid.
type Subregion struct {
	Name     string   `yaml:"name"`
	Entities []Entity `yaml:"buyers"`
}

// Region is a top-level pricing area (e.g. "California", "Midwest").
type Region struct {
	Name       string      `yaml:"name"`
	Subregions []Subregion `yaml:"subregions"`
}

// Taxonomy is the ordered region -> subregion -> entity tree the generator walks.
// Slices are used instead of maps so traversal order is stable.
type Taxonomy []Region

// Size returns the number of entities in the taxonomy.
func (t Taxonomy) Size() int {
	n := 0
	for _, r := range t {
		for _, s := range r.Subregions {
			n += len(s.Entities)
		}
	}
	return n
}

// PricingAnchor holds the per-region cash anchor and base freight cost.
// FreightBase is negative (a cost).
type PricingAnchor struct {
	CashAnchor  float64 `yaml:"cash"`
	FreightBase float64 `yaml:"freight"`
}

// Centroid is an approximate subregion location.
type Centroid struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

// MarketProfile is an authoritative basis/freight pair for a group of states.
// Freight is a positive cost; it is stored negated in BuyerRecord.FreightCost.
type MarketProfile struct {
	Name    string   `yaml:"name"`
	States  []string `yaml:"states"`
	Basis   float64  `yaml:"basis"`
	Freight float64  `yaml:"freight"`
}
