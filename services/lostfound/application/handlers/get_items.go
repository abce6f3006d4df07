package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// GetItemsHandler handles GET /items requests.
type GetItemsHandler struct {
	svc *appsvcs.Services
}

func NewGetItemsHandler(svc *appsvcs.Services) *GetItemsHandler {
	return &GetItemsHandler{svc: svc}
}

// Execute lists items. Query parameters: kind, status, category, q (free
// text), from, to (RFC 3339), limit.
func (h *GetItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var filter repositories.ItemFilter

	if v := q.Get("kind"); v != "" {
		kind := models.ReportKind(v)
		if !kind.Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid kind")
			return
		}
		filter.Kind = &kind
	}
	if v := q.Get("status"); v != "" {
		status := models.ItemStatus(v)
		filter.Status = &status
	}
	if v := q.Get("category"); v != "" {
		category := models.Category(v)
		if !category.Valid() {
			httpx.JSONError(w, http.StatusBadRequest, "invalid category")
			return
		}
		filter.Category = &category
	}
	filter.Query = q.Get("q")

	if v := q.Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid from timestamp")
			return
		}
		filter.From = &from
	}
	if v := q.Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			httpx.JSONError(w, http.StatusBadRequest, "invalid to timestamp")
			return
		}
		filter.To = &to
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	items, err := h.svc.Items.Search(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"items": newItemResponses(items)})
}
