package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	pkgvalidator "github.com/campuskeep/campuskeep/pkg/validator"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// CreateItemRequest is the request body for POST /items.
type CreateItemRequest struct {
	Kind        string     `json:"kind" validate:"required,oneof=LOST FOUND"`
	Category    string     `json:"category" validate:"required"`
	Description string     `json:"description" validate:"required,min=3,max=2000"`
	Location    string     `json:"location" validate:"required,min=2,max=255"`
	ReportedAt  *time.Time `json:"reported_at,omitempty"`
	ImageURL    string     `json:"image_url,omitempty" validate:"omitempty,url"`
}

// PostItemHandler handles POST /items requests.
type PostItemHandler struct {
	svc *appsvcs.Services
}

func NewPostItemHandler(svc *appsvcs.Services) *PostItemHandler {
	return &PostItemHandler{svc: svc}
}

// Execute files a new lost or found report for the authenticated user.
func (h *PostItemHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	req, ok := pkgvalidator.ValidateRequest[CreateItemRequest](w, r)
	if !ok {
		return
	}

	var reportedAt time.Time
	if req.ReportedAt != nil {
		reportedAt = *req.ReportedAt
	}
	reporterID := actor.ID
	item, err := h.svc.Items.Create(r.Context(), appsvcs.CreateItemInput{
		Kind:        models.ReportKind(req.Kind),
		Category:    models.Category(req.Category),
		Description: req.Description,
		Location:    req.Location,
		ReportedAt:  reportedAt,
		ReporterID:  &reporterID,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, newItemResponse(item))
}

// parseID extracts and parses a UUID path parameter, writing a 400 response
// on failure.
func parseID(w http.ResponseWriter, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}
