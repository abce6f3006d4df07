package handlers

import (
	"net/http"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// StatsResponse is the dashboard overview payload.
type StatsResponse struct {
	TotalLost           int            `json:"total_lost"`
	TotalFound          int            `json:"total_found"`
	PendingVerification int            `json:"pending_verification"`
	Available           int            `json:"available"`
	ReturnedLastDay     int            `json:"returned_last_day"`
	HighRiskOpen        int            `json:"high_risk_open"`
	PendingClaims       int            `json:"pending_claims"`
	CategoryBreakdown   map[string]int `json:"category_breakdown"`
	RecoveryRatePercent float64        `json:"recovery_rate_percent"`
}

// GetItemStatsHandler handles GET /items/stats requests.
type GetItemStatsHandler struct {
	svc *appsvcs.Services
}

func NewGetItemStatsHandler(svc *appsvcs.Services) *GetItemStatsHandler {
	return &GetItemStatsHandler{svc: svc}
}

// Execute reports dashboard counters over the item catalogue.
func (h *GetItemStatsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Items.Stats(r.Context())
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	breakdown := make(map[string]int, len(stats.CategoryBreakdown))
	for category, count := range stats.CategoryBreakdown {
		breakdown[string(category)] = count
	}
	httpx.JSON(w, http.StatusOK, StatsResponse{
		TotalLost:           stats.TotalLost,
		TotalFound:          stats.TotalFound,
		PendingVerification: stats.PendingVerification,
		Available:           stats.Available,
		ReturnedLastDay:     stats.ReturnedLastDay,
		HighRiskOpen:        stats.HighRiskOpen,
		PendingClaims:       stats.PendingClaims,
		CategoryBreakdown:   breakdown,
		RecoveryRatePercent: stats.RecoveryRatePercent,
	})
}
