package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// ItemContextResponse bundles an item with its claims, linked counterpart,
// and handover record.
type ItemContextResponse struct {
	Item       ItemResponse      `json:"item"`
	LinkedItem *ItemResponse     `json:"linked_item,omitempty"`
	Claims     []ClaimResponse   `json:"claims"`
	Handover   *HandoverResponse `json:"handover,omitempty"`
}

// GetItemHandler handles GET /items/{id} requests.
type GetItemHandler struct {
	svc *appsvcs.Services
}

func NewGetItemHandler(svc *appsvcs.Services) *GetItemHandler {
	return &GetItemHandler{svc: svc}
}

// Execute returns the item with everything staff need to act on it.
func (h *GetItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	itemCtx, err := h.svc.Items.GetContext(r.Context(), id)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := ItemContextResponse{
		Item:   newItemResponse(itemCtx.Item),
		Claims: newClaimResponses(itemCtx.Claims),
	}
	if itemCtx.LinkedItem != nil {
		linked := newItemResponse(itemCtx.LinkedItem)
		resp.LinkedItem = &linked
	}
	if itemCtx.Handover != nil {
		handover := newHandoverResponse(itemCtx.Handover)
		resp.Handover = &handover
	}
	httpx.JSON(w, http.StatusOK, resp)
}
