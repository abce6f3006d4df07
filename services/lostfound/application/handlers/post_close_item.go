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

// CloseItemRequest is the request body for archive and dispose endpoints.
type CloseItemRequest struct {
	Remarks string `json:"remarks,omitempty" validate:"max=2000"`
}

// PostArchiveItemHandler handles POST /items/{id}/archive requests.
type PostArchiveItemHandler struct {
	svc *appsvcs.Services
}

func NewPostArchiveItemHandler(svc *appsvcs.Services) *PostArchiveItemHandler {
	return &PostArchiveItemHandler{svc: svc}
}

// Execute closes an item without resolution.
func (h *PostArchiveItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CloseItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.Archive(r.Context(), actor, id, req.Remarks)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}

// PostDisposeItemHandler handles POST /items/{id}/dispose requests.
type PostDisposeItemHandler struct {
	svc *appsvcs.Services
}

func NewPostDisposeItemHandler(svc *appsvcs.Services) *PostDisposeItemHandler {
	return &PostDisposeItemHandler{svc: svc}
}

// Execute records disposal of an item past its retention period.
func (h *PostDisposeItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[CloseItemRequest](w, r)
	if !ok {
		return
	}

	item, err := h.svc.Items.Dispose(r.Context(), actor, id, req.Remarks)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newItemResponse(item))
}
