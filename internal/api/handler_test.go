package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/graindesk/internal/domain/dto"
	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/service"
)

type mockBuyerService struct {
	page    *service.BuyerPage
	rec     *models.BuyerRecord
	summary *models.DatasetSummary
	err     error
	filter  models.BuyerFilter
}

func (m *mockBuyerService) List(_ context.Context, f models.BuyerFilter) (*service.BuyerPage, error) {
	m.filter = f
	return m.page, m.err
}

func (m *mockBuyerService) Get(_ context.Context, _ string) (*models.BuyerRecord, error) {
	return m.rec, m.err
}

func (m *mockBuyerService) Summary(_ context.Context) (*models.DatasetSummary, error) {
	return m.summary, m.err
}

var _ service.BuyerService = (*mockBuyerService)(nil)

func setupRouterWithMock(s service.BuyerService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s)
	r := gin.New()
	v1 := r.Group("/api/v1")
	v1.GET("/buyers", h.ListBuyers)
	v1.GET("/buyers/summary", h.GetSummary)
	v1.GET("/buyers/:id", h.GetBuyer)
	return r
}

var gevo = models.BuyerRecord{ID: "b052", Name: "Gevo", Type: models.BuyerEthanol, State: "MN", NetPrice: 4.18, Verified: true}

func TestListBuyers_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockBuyerService
		query  string
		status int
		assert func(t *testing.T, svc *mockBuyerService, body []byte)
	}{
		{name: "invalid type", svc: &mockBuyerService{}, query: "/api/v1/buyers?type=silo", status: http.StatusBadRequest},
		{name: "invalid verified", svc: &mockBuyerService{}, query: "/api/v1/buyers?verified=maybe", status: http.StatusBadRequest},
		{name: "invalid limit", svc: &mockBuyerService{}, query: "/api/v1/buyers?limit=0", status: http.StatusBadRequest},
		{name: "invalid offset", svc: &mockBuyerService{}, query: "/api/v1/buyers?offset=-1", status: http.StatusBadRequest},
		{name: "internal error", svc: &mockBuyerService{err: errors.New("db down")}, query: "/api/v1/buyers", status: http.StatusInternalServerError},
		{
			name:   "success",
			svc:    &mockBuyerService{page: &service.BuyerPage{Items: []models.BuyerRecord{gevo}, Total: 1, Limit: 10, Offset: 0}},
			query:  "/api/v1/buyers?state=mn&type=Ethanol&verified=true&search=gev&limit=10",
			status: http.StatusOK,
			assert: func(t *testing.T, svc *mockBuyerService, body []byte) {
				f := svc.filter
				if f.State != "MN" || f.Type != models.BuyerEthanol || f.Verified == nil || !*f.Verified || f.Search != "gev" || f.Limit != 10 {
					t.Fatalf("unexpected filter %+v", f)
				}
				var out dto.BuyerListResponse
				if err := json.Unmarshal(body, &out); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if out.Total != 1 || len(out.Items) != 1 || out.Items[0].ID != "b052" || out.Items[0].NetPrice != 4.18 {
					t.Fatalf("unexpected body: %+v", out)
				}
			},
		},
		{
			name:   "empty page encodes empty items",
			svc:    &mockBuyerService{page: &service.BuyerPage{Limit: 500}},
			query:  "/api/v1/buyers?state=TX",
			status: http.StatusOK,
			assert: func(t *testing.T, _ *mockBuyerService, body []byte) {
				var raw map[string]json.RawMessage
				if err := json.Unmarshal(body, &raw); err != nil {
					t.Fatalf("invalid json: %v", err)
				}
				if string(raw["items"]) != "[]" {
					t.Fatalf("items=%s, want []", raw["items"])
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.query, nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d: %s", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, tc.svc, w.Body.Bytes())
			}
		})
	}
}

func TestGetBuyer_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockBuyerService
		status int
	}{
		{name: "not found", svc: &mockBuyerService{err: service.ErrNotFound}, status: http.StatusNotFound},
		{name: "internal error", svc: &mockBuyerService{err: errors.New("db down")}, status: http.StatusInternalServerError},
		{name: "success", svc: &mockBuyerService{rec: &gevo}, status: http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMock(tc.svc)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/buyers/b052", nil))
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
			if tc.status == http.StatusOK {
				var out dto.BuyerResponse
				if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil || out.Name != "Gevo" {
					t.Fatalf("unexpected body %s (err=%v)", w.Body.String(), err)
				}
			}
		})
	}
}

func TestGetSummary(t *testing.T) {
	svc := &mockBuyerService{summary: &models.DatasetSummary{Total: 63, Verified: 63, ByState: []models.StateCount{{State: "CA", Count: 15}}}}
	r := setupRouterWithMock(svc)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/buyers/summary", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var out dto.SummaryResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if out.Total != 63 || len(out.ByState) != 1 || out.LastSync != nil {
		t.Fatalf("unexpected body: %+v", out)
	}

	svc.err = errors.New("boom")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/buyers/summary", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
