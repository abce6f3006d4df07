package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	pkgvalidator "github.com/campuskeep/campuskeep/pkg/validator"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// LinkItemsRequest is the request body for POST /items/link.
type LinkItemsRequest struct {
	LostItemID  uuid.UUID `json:"lost_item_id" validate:"required"`
	FoundItemID uuid.UUID `json:"found_item_id" validate:"required"`
}

// LinkItemsResponse returns both sides of the confirmed link.
type LinkItemsResponse struct {
	LostItem  ItemResponse `json:"lost_item"`
	FoundItem ItemResponse `json:"found_item"`
}

// PostLinkItemsHandler handles POST /items/link requests.
type PostLinkItemsHandler struct {
	svc *appsvcs.Services
}

func NewPostLinkItemsHandler(svc *appsvcs.Services) *PostLinkItemsHandler {
	return &PostLinkItemsHandler{svc: svc}
}

// Execute links a lost report and a found report as one resolved case.
func (h *PostLinkItemsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	req, ok := pkgvalidator.ValidateRequest[LinkItemsRequest](w, r)
	if !ok {
		return
	}

	a, b, err := h.svc.Matches.Link(r.Context(), actor, req.LostItemID, req.FoundItemID)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	resp := LinkItemsResponse{LostItem: newItemResponse(a), FoundItem: newItemResponse(b)}
	if a.Kind != models.KindLost {
		resp.LostItem, resp.FoundItem = resp.FoundItem, resp.LostItem
	}
	httpx.JSON(w, http.StatusOK, resp)
}
