package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// NotificationResponse is the wire representation of an inbox entry.
type NotificationResponse struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	RelatedID string    `json:"related_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func newNotificationResponse(n *models.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Title:     n.Title,
		Message:   n.Message,
		Kind:      n.Kind,
		RelatedID: n.RelatedID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

// GetNotificationsHandler handles GET /notifications requests.
type GetNotificationsHandler struct {
	svc *appsvcs.Services
}

func NewGetNotificationsHandler(svc *appsvcs.Services) *GetNotificationsHandler {
	return &GetNotificationsHandler{svc: svc}
}

// Execute lists the authenticated user's notifications, newest first.
// Query parameters: unread (bool), limit.
func (h *GetNotificationsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	q := r.URL.Query()
	unreadOnly := q.Get("unread") == "true"
	limit := 0
	if v := q.Get("limit"); v != "" {
		limit, err = strconv.Atoi(v)
		if err != nil || limit < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
	}

	notifications, err := h.svc.Notifications.List(r.Context(), actor, unreadOnly, limit)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, newNotificationResponse(n))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"notifications": out})
}

// PostNotificationReadHandler handles POST /notifications/{id}/read requests.
type PostNotificationReadHandler struct {
	svc *appsvcs.Services
}

func NewPostNotificationReadHandler(svc *appsvcs.Services) *PostNotificationReadHandler {
	return &PostNotificationReadHandler{svc: svc}
}

// Execute marks one of the authenticated user's notifications as read.
func (h *PostNotificationReadHandler) Execute(w http.ResponseWriter, r *http.Request) {
	actor, err := auth.ActorFromCtx(r.Context())
	if err != nil {
		httpx.JSONError(w, http.StatusUnauthorized, "authentication required")
		return
	}
	id, ok := parseID(w, chi.URLParam(r, "id"))
	if !ok {
		return
	}

	if err := h.svc.Notifications.MarkRead(r.Context(), actor, id); err != nil {
		errhttp.WriteError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, map[string]string{"status": "read"})
}
