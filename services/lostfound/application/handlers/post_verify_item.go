package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	pkgvalidator "github.com/campuskeep/campuskeep/pkg/validator"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// VerifyItemRequest is the request body for POST /items/{id}/verify.
type VerifyItemRequest struct {
	StorageLocation string `json:"storage_location" validate:"required,min=2,max=255"`
	Remarks         string `json:"remarks,omitempty" validate:"max=2000"`
}

// PostVerifyItemHandler handles POST /items/{id}/verify requests.
type PostVerifyItemHandler struct {
	svc *appsvcs.Services
}

func NewPostVerifyItemHandler(svc *appsvcs.Services) *PostVerifyItemHandler {
	return &PostVerifyItemHandler{svc: svc}
}

// Execute confirms custody of a found item and opens it for claims.
func (h *PostVerifyItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[VerifyItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.VerifyAndStore(r.Context(), actor, id, req.StorageLocation, req.Remarks)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}
