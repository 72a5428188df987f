package dto

import (
	"time"

	"github.com/guttosm/graindesk/internal/domain/models"
)

// BuyerResponse represents one buyer as returned by the /api/v1/buyers endpoints.
//
// Fields match the API contract and may differ from the dataset file layout.
type BuyerResponse struct {
	ID              string  `json:"id" example:"b001"`
	Name            string  `json:"name" example:"Modesto Milling"`
	Type            string  `json:"type" example:"elevator"`
	CashPrice       float64 `json:"cash_price" example:"6.03"`
	Basis           float64 `json:"basis" example:"1.55"`
	FreightCost     float64 `json:"freight_cost" example:"-1.25"`
	NetPrice        float64 `json:"net_price" example:"4.78"`
	City            string  `json:"city" example:"Modesto"`
	State           string  `json:"state" example:"CA"`
	Region          string  `json:"region" example:"Modesto Valley"`
	Lat             float64 `json:"lat" example:"37.6391"`
	Lng             float64 `json:"lng" example:"-120.9969"`
	RailAccessible  bool    `json:"rail_accessible"`
	NearTransload   bool    `json:"near_transload"`
	ContactName     string  `json:"contact_name,omitempty" example:"Grain Desk"`
	ContactPhone    string  `json:"contact_phone,omitempty" example:"(209) 523-9167"`
	Website         string  `json:"website,omitempty" example:"https://modestomilling.com"`
	LastUpdated     string  `json:"last_updated,omitempty" example:"2026-02-01T18:00:00Z"`
	ConfidenceScore int     `json:"confidence_score" example:"92"`
	Verified        bool    `json:"verified"`
	DataSource      string  `json:"data_source,omitempty"`
}

// BuyerListResponse is one page of buyers.
type BuyerListResponse struct {
	Items  []BuyerResponse `json:"items"`
	Total  int             `json:"total" example:"63"`
	Limit  int             `json:"limit" example:"500"`
	Offset int             `json:"offset" example:"0"`
}

// StateCountResponse is the number of buyers in one state.
type StateCountResponse struct {
	State string `json:"state" example:"CA"`
	Count int    `json:"count" example:"15"`
}

// SyncRunResponse describes the last dataset sync.
type SyncRunResponse struct {
	RunID       string    `json:"run_id" example:"5f1c7f1e-8a4e-4f43-9b7e-2a5c6f0a1d2b"`
	Source      string    `json:"source" example:"data/buyers.json"`
	RecordCount int       `json:"record_count" example:"63"`
	SyncedAt    time.Time `json:"synced_at"`
}

// SummaryResponse is returned by GET /api/v1/buyers/summary.
type SummaryResponse struct {
	Total    int                  `json:"total" example:"63"`
	Verified int                  `json:"verified" example:"63"`
	ByState  []StateCountResponse `json:"by_state"`
	LastSync *SyncRunResponse     `json:"last_sync,omitempty"`
}

// NewBuyerResponse maps a domain record to its API shape.
func NewBuyerResponse(r models.BuyerRecord) BuyerResponse {
	return BuyerResponse{
		ID:              r.ID,
		Name:            r.Name,
		Type:            string(r.Type),
		CashPrice:       r.CashPrice,
		Basis:           r.Basis,
		FreightCost:     r.FreightCost,
		NetPrice:        r.NetPrice,
		City:            r.City,
		State:           r.State,
		Region:          r.Region,
		Lat:             r.Lat,
		Lng:             r.Lng,
		RailAccessible:  r.RailAccessible,
		NearTransload:   r.NearTransload,
		ContactName:     r.ContactName,
		ContactPhone:    r.ContactPhone,
		Website:         r.Website,
		LastUpdated:     r.LastUpdated,
		ConfidenceScore: r.ConfidenceScore,
		Verified:        r.Verified,
		DataSource:      r.DataSource,
	}
}

// NewSummaryResponse maps a dataset summary to its API shape.
func NewSummaryResponse(s models.DatasetSummary) SummaryResponse {
	out := SummaryResponse{
		Total:    s.Total,
		Verified: s.Verified,
		ByState:  make([]StateCountResponse, 0, len(s.ByState)),
	}
	for _, sc := range s.ByState {
		out.ByState = append(out.ByState, StateCountResponse{State: sc.State, Count: sc.Count})
	}
	if s.LastSync != nil {
		out.LastSync = &SyncRunResponse{
			RunID:       s.LastSync.RunID,
			Source:      s.LastSync.Source,
			RecordCount: s.LastSync.RecordCount,
			SyncedAt:    s.LastSync.SyncedAt,
		}
	}
	return out
}
