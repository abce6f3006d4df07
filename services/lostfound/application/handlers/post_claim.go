package handlers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	pkgvalidator "github.com/campuskeep/campuskeep/pkg/validator"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
)

// SubmitClaimRequest is the request body for POST /claims.
type SubmitClaimRequest struct {
	ItemID              uuid.UUID `json:"item_id" validate:"required"`
	VerificationDetails string    `json:"verification_details" validate:"required,min=10,max=2000"`
	ProofImageURL       string    `json:"proof_image_url,omitempty" validate:"omitempty,url"`
}

// PostClaimHandler handles POST /claims requests.
type PostClaimHandler struct {
	svc *appsvcs.Services
}

func NewPostClaimHandler(svc *appsvcs.Services) *PostClaimHandler {
	return &PostClaimHandler{svc: svc}
}

// Execute files an ownership claim by the authenticated user.
func (h *PostClaimHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	req, ok := pkgvalidator.ValidateRequest[SubmitClaimRequest](w, r)
	if !ok {
		return
	}

	claim, err := h.svc.Claims.Submit(r.Context(), actor, req.ItemID, req.VerificationDetails, req.ProofImageURL)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, newClaimResponse(claim))
}
