package models

// BuyerType classifies what kind of facility a grain buyer operates.
type BuyerType string

const (
	BuyerElevator  BuyerType = "elevator"
	BuyerProcessor BuyerType = "processor"
	BuyerFeedlot   BuyerType = "feedlot"
	BuyerExport    BuyerType = "export"
	BuyerEthanol   BuyerType = "ethanol"
	BuyerRiver     BuyerType = "river"
	BuyerShuttle   BuyerType = "shuttle"
)

// BuyerTypes lists every known BuyerType in declaration order.
var BuyerTypes = []BuyerType{
	BuyerElevator,
	BuyerProcessor,
	BuyerFeedlot,
	BuyerExport,
	BuyerEthanol,
	BuyerRiver,
	BuyerShuttle,
}

// Valid reports whether t is one of the known buyer types.
func (t BuyerType) Valid() bool {
	for _, known := range BuyerTypes {
		if t == known {
			return true
		}
	}
	return false
}

// BuyerRecord is one grain buyer listing in the dataset file.
//
// Fields are grouped as:
//   - Identity: ID (unique across the file), Name (may be renamed during reconciliation).
//   - Location: City, Region, State (two-letter code), Lat/Lng.
//   - Pricing: CashPrice, Basis, FreightCost (negative = cost), NetPrice (= CashPrice + FreightCost).
//   - Contact: ContactName, ContactPhone, Website.
//   - Metadata: LastUpdated (RFC 3339), ConfidenceScore (0-100), Verified, DataSource.
//
// Optional string fields are omitted from the JSON document when empty.
type BuyerRecord struct {
	ID              string    `json:"id" yaml:"id"`
	Name            string    `json:"name" yaml:"name"`
	Type            BuyerType `json:"type" yaml:"type"`
	CashPrice       float64   `json:"cashPrice" yaml:"cashPrice"`
	Basis           float64   `json:"basis" yaml:"basis"`
	FreightCost     float64   `json:"freightCost" yaml:"freightCost"`
	NetPrice        float64   `json:"netPrice" yaml:"netPrice"`
	City            string    `json:"city" yaml:"city"`
	State           string    `json:"state" yaml:"state"`
	Region          string    `json:"region" yaml:"region"`
	Lat             float64   `json:"lat" yaml:"lat"`
	Lng             float64   `json:"lng" yaml:"lng"`
	RailAccessible  bool      `json:"railAccessible" yaml:"railAccessible"`
	NearTransload   bool      `json:"nearTransload" yaml:"nearTransload"`
	ContactName     string    `json:"contactName,omitempty" yaml:"contactName,omitempty"`
	ContactPhone    string    `json:"contactPhone,omitempty" yaml:"contactPhone,omitempty"`
	Website         string    `json:"website,omitempty" yaml:"website,omitempty"`
	LastUpdated     string    `json:"lastUpdated,omitempty" yaml:"lastUpdated,omitempty"`
	ConfidenceScore int       `json:"confidenceScore" yaml:"confidenceScore"`
	Verified        bool      `json:"verified" yaml:"verified"`
	DataSource      string    `json:"dataSource,omitempty" yaml:"dataSource,omitempty"`
}
