package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	pkgvalidator "github.com/campuskeep/campuskeep/pkg/validator"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// ClaimDecisionRequest is the request body for POST /claims/{id}/decision.
type ClaimDecisionRequest struct {
	Decision string `json:"decision" validate:"required,oneof=APPROVED REJECTED"`
	Remarks  string `json:"remarks,omitempty" validate:"max=2000"`
}

// PostClaimDecisionHandler handles POST /claims/{id}/decision requests.
type PostClaimDecisionHandler struct {
	svc *appsvcs.Services
}

func NewPostClaimDecisionHandler(svc *appsvcs.Services) *PostClaimDecisionHandler {
	return &PostClaimDecisionHandler{svc: svc}
}

// Execute approves or rejects a pending claim.
func (h *PostClaimDecisionHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}
	req, ok := pkgvalidator.ValidateRequest[ClaimDecisionRequest](w, r)
	if !ok {
		return
	}

	claim, err := h.svc.Claims.Decide(r.Context(), actor, id, models.ClaimStatus(req.Decision), req.Remarks)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, newClaimResponse(claim))
}
