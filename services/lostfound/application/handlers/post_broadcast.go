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

// BroadcastRequest is the request body for POST /broadcasts.
type BroadcastRequest struct {
	Title    string `json:"title" validate:"required,min=3,max=255"`
	Message  string `json:"message" validate:"required,min=3,max=2000"`
	Category string `json:"category,omitempty"`
}

// BroadcastResponse acknowledges an accepted broadcast.
type BroadcastResponse struct {
	BroadcastID uuid.UUID `json:"broadcast_id"`
	Status      string    `json:"status"`
}

// PostBroadcastHandler handles POST /broadcasts requests.
type PostBroadcastHandler struct {
	svc *appsvcs.Services
}

func NewPostBroadcastHandler(svc *appsvcs.Services) *PostBroadcastHandler {
	return &PostBroadcastHandler{svc: svc}
}

// Execute enqueues a campus-wide announcement. Fan-out to recipient inboxes
// happens asynchronously in the worker.
func (h *PostBroadcastHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	req, ok := pkgvalidator.ValidateRequest[BroadcastRequest](w, r)
	if !ok {
		return
	}

	broadcastID, err := h.svc.Broadcasts.Broadcast(r.Context(), actor, req.Title, req.Message, req.Category)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusAccepted, BroadcastResponse{BroadcastID: broadcastID, Status: "queued"})
}
