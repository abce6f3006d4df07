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

// HandoverRequest is the request body for POST /items/{id}/handover.
type HandoverRequest struct {
	StudentID string `json:"student_id" validate:"required,min=2,max=64"`
	Remarks   string `json:"remarks,omitempty" validate:"max=2000"`
}

// PostHandoverHandler handles POST /items/{id}/handover requests.
type PostHandoverHandler struct {
	svc *appsvcs.Services
}

func NewPostHandoverHandler(svc *appsvcs.Services) *PostHandoverHandler {
	return &PostHandoverHandler{svc: svc}
}

// Execute hands the physical item to a student and closes it as RETURNED.
func (h *PostHandoverHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[HandoverRequest](w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Items.RecordHandover(r.Context(), actor, id, req.StudentID, req.Remarks)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newHandoverResponse(rec))
}
