package models

// Patch is a partial overwrite of a BuyerRecord. Nil fields are left untouched.
type Patch struct {
	Name            *string    `yaml:"name,omitempty"`
	Type            *BuyerType `yaml:"type,omitempty"`
	City            *string    `yaml:"city,omitempty"`
	State           *string    `yaml:"state,omitempty"`
	Region          *string    `yaml:"region,omitempty"`
	Lat             *float64   `yaml:"lat,omitempty"`
	Lng             *float64   `yaml:"lng,omitempty"`
	CashPrice       *float64   `yaml:"cashPrice,omitempty"`
	Basis           *float64   `yaml:"basis,omitempty"`
	FreightCost     *float64   `yaml:"freightCost,omitempty"`
	RailAccessible  *bool      `yaml:"railAccessible,omitempty"`
	NearTransload   *bool      `yaml:"nearTransload,omitempty"`
	ContactName     *string    `yaml:"contactName,omitempty"`
	ContactPhone    *string    `yaml:"contactPhone,omitempty"`
	Website         *string    `yaml:"website,omitempty"`
	ConfidenceScore *int       `yaml:"confidenceScore,omitempty"`
	DataSource      *string    `yaml:"dataSource,omitempty"`
}

// Correction pairs a name match key with the patch applied on a hit.
type Correction struct {
	Match string `yaml:"match"`
	Set   Patch  `yaml:"set"`
}

// FieldChange records one field overwritten by a Patch.
type FieldChange struct {
	Record string
	Field  string
	Old    string
	New    string
}
