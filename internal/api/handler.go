package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/graindesk/internal/domain/dto"
	"github.com/guttosm/graindesk/internal/domain/models"
	"github.com/guttosm/graindesk/internal/middleware"
	"github.com/guttosm/graindesk/internal/service"
)

// Handler provides HTTP handlers for the buyer directory endpoints.
//
// Responsibilities:
//   - Validate incoming HTTP query parameters
//   - Delegate to the service layer
//   - Translate results into response DTOs
type Handler struct {
	svc service.BuyerService
}

// NewHandler constructs a new Handler instance.
//
// Parameters:
//   - svc (service.BuyerService): read-side buyer service.
//
// Returns:
//   - *Handler: A handler ready to be registered with the router.
func NewHandler(svc service.BuyerService) *Handler {
	return &Handler{svc: svc}
}

// parseFilter reads the listing query parameters.
func parseFilter(c *gin.Context) (models.BuyerFilter, error) {
	f := models.BuyerFilter{
		State:  strings.ToUpper(strings.TrimSpace(c.Query("state"))),
		Region: strings.TrimSpace(c.Query("region")),
		Search: strings.TrimSpace(c.Query("search")),
	}

	if s := strings.ToLower(strings.TrimSpace(c.Query("type"))); s != "" {
		t := models.BuyerType(s)
		if !t.Valid() {
			return f, fmt.Errorf("unknown type %q", s)
		}
		f.Type = t
	}
	if s := c.Query("verified"); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("invalid verified: %w", err)
		}
		f.Verified = &v
	}
	if s := c.Query("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			return f, fmt.Errorf("invalid limit %q", s)
		}
		f.Limit = n
	}
	if s := c.Query("offset"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return f, fmt.Errorf("invalid offset %q", s)
		}
		f.Offset = n
	}
	return f, nil
}

// ListBuyers godoc
// @Summary      List buyers
// @Description  Returns a page of buyers in dataset order, optionally filtered
// @Tags         buyers
// @Produce      json
// @Param        state     query     string  false  "Two-letter state code" example(CA)
// @Param        type      query     string  false  "Buyer type" Enums(elevator, processor, feedlot, export, ethanol, river, shuttle)
// @Param        region    query     string  false  "Region label" example(Modesto Valley)
// @Param        verified  query     bool    false  "Only verified (true) or unverified (false) buyers"
// @Param        search    query     string  false  "Case-insensitive name substring"
// @Param        limit     query     int     false  "Page size (1..2000, default 500)"
// @Param        offset    query     int     false  "Rows to skip"
// @Success      200       {object}  dto.BuyerListResponse  "Success"
// @Failure      400       {object}  dto.ErrorResponse      "Bad Request"
// @Failure      500       {object}  dto.ErrorResponse      "Internal Error"
// @Router       /api/v1/buyers [get]
func (h *Handler) ListBuyers(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		middleware.AbortWithError(c, http.StatusBadRequest, "invalid query parameters", err)
		return
	}

	page, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to list buyers", err)
		return
	}

	resp := dto.BuyerListResponse{
		Items:  make([]dto.BuyerResponse, 0, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, r := range page.Items {
		resp.Items = append(resp.Items, dto.NewBuyerResponse(r))
	}
	c.JSON(http.StatusOK, resp)
}

// GetBuyer godoc
// @Summary      Get buyer by id
// @Tags         buyers
// @Produce      json
// @Param        id   path      string  true  "Buyer id" example(b001)
// @Success      200  {object}  dto.BuyerResponse  "Success"
// @Failure      404  {object}  dto.ErrorResponse  "Not Found"
// @Failure      500  {object}  dto.ErrorResponse  "Internal Error"
// @Router       /api/v1/buyers/{id} [get]
func (h *Handler) GetBuyer(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))

	rec, err := h.svc.Get(c.Request.Context(), id)
	switch {
	case errors.Is(err, service.ErrNotFound):
		middleware.AbortWithError(c, http.StatusNotFound, "buyer not found", nil)
		return
	case err != nil:
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to fetch buyer", err)
		return
	}

	c.JSON(http.StatusOK, dto.NewBuyerResponse(*rec))
}

// GetSummary godoc
// @Summary      Dataset summary
// @Description  Returns totals, verified count, per-state counts and the last sync run
// @Tags         buyers
// @Produce      json
// @Success      200  {object}  dto.SummaryResponse  "Success"
// @Failure      500  {object}  dto.ErrorResponse    "Internal Error"
// @Router       /api/v1/buyers/summary [get]
func (h *Handler) GetSummary(c *gin.Context) {
	sum, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		middleware.AbortWithError(c, http.StatusInternalServerError, "failed to summarize buyers", err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSummaryResponse(*sum))
}
