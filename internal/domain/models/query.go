package models

import "time"

// BuyerFilter narrows a buyer listing. Zero values disable a criterion.
//
// Fields:
//   - State, Type, Region: exact matches.
//   - Verified: nil means "any".
//   - Search: case-insensitive substring of the buyer name.
//   - Limit/Offset: pagination, applied after ordering by dataset position.
type BuyerFilter struct {
	State    string
	Type     BuyerType
	Region   string
	Verified *bool
	Search   string
	Limit    int
	Offset   int
}

// StateCount is the number of buyers listed in one state.
type StateCount struct {
	State string
	Count int
}

// SyncRun records one mirror of the dataset file into the database.
type SyncRun struct {
	RunID       string
	Source      string
	Checksum    string // sha256 of the dataset file contents
	RecordCount int
	SyncedAt    time.Time
}

// DatasetSummary aggregates the headline numbers of the mirrored dataset.
type DatasetSummary struct {
	Total    int
	Verified int
	ByState  []StateCount
	LastSync *SyncRun
}
