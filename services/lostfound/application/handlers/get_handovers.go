package handlers

import (
	"net/http"
	"strconv"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// GetHandoversHandler handles GET /handovers requests.
type GetHandoversHandler struct {
	svc *appsvcs.Services
}

func NewGetHandoversHandler(svc *appsvcs.Services) *GetHandoversHandler {
	return &GetHandoversHandler{svc: svc}
}

// Execute lists handover records, most recent first.
func (h *GetHandoversHandler) Execute(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	recs, err := h.svc.Items.Handovers(r.Context(), limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]HandoverResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, newHandoverResponse(rec))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"handovers": out})
}
