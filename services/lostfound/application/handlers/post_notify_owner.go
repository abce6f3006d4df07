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

// NotifyOwnerRequest is the request body for POST /items/{id}/notify-owner.
type NotifyOwnerRequest struct {
	Remarks string `json:"remarks,omitempty" validate:"max=2000"`
}

// PostNotifyOwnerHandler handles POST /items/{id}/notify-owner requests.
type PostNotifyOwnerHandler struct {
	svc *appsvcs.Services
}

func NewPostNotifyOwnerHandler(svc *appsvcs.Services) *PostNotifyOwnerHandler {
	return &PostNotifyOwnerHandler{svc: svc}
}

// Execute records that the reporter of a lost item has been contacted.
// Safe to call more than once for the same item.
func (h *PostNotifyOwnerHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[NotifyOwnerRequest](w, r)
	if !ok {
		return
	}

	if err := h.svc.Items.NotifyOwner(r.Context(), actor, id, req.Remarks); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "owner notified"})
}
