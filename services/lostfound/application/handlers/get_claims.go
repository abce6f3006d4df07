package handlers

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// GetClaimsHandler handles GET /claims requests.
type GetClaimsHandler struct {
	svc *appsvcs.Services
}

func NewGetClaimsHandler(svc *appsvcs.Services) *GetClaimsHandler {
	return &GetClaimsHandler{svc: svc}
}

// Execute lists claims. Query parameters: status, item_id, limit.
func (h *GetClaimsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repositories.ClaimFilter

	if v := q.Get("status"); v != "" {
		status := models.ClaimStatus(v)
		if status != models.ClaimPending && !status.Decided() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid status")
			return
		}
		filter.Status = &status
	}
	if v := q.Get("item_id"); v != "" {
		itemID, err := uuid.Parse(v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid item_id")
			return
		}
		filter.ItemID = &itemID
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	claims, err := h.svc.Claims.List(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"claims": newClaimResponses(claims)})
}
