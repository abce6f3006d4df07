package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/errhttp"
	"github.com/campuskeep/campuskeep/pkg/httpx"
	appsvcs "github.com/campuskeep/campuskeep/services/lostfound/application/services"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// AuditEntryResponse is the wire representation of an audit ledger entry.
type AuditEntryResponse struct {
	ID         uuid.UUID      `json:"id"`
	AdminID    uuid.UUID      `json:"admin_id"`
	AdminName  string         `json:"admin_name"`
	Action     string         `json:"action"`
	TargetType string         `json:"target_type"`
	TargetID   string         `json:"target_id"`
	Details    map[string]any `json:"details,omitempty"`
	Timestamp  time.Time      `json:"timestamp"`
}

func newAuditEntryResponse(e *models.AuditEntry) AuditEntryResponse {
	return AuditEntryResponse{
		ID:         e.ID,
		AdminID:    e.AdminID,
		AdminName:  e.AdminName,
		Action:     e.Action,
		TargetType: e.TargetType,
		TargetID:   e.TargetID,
		Details:    e.Details,
		Timestamp:  e.Timestamp,
	}
}

// GetAuditLogsHandler handles GET /audit-logs requests.
type GetAuditLogsHandler struct {
	svc *appsvcs.Services
}

func NewGetAuditLogsHandler(svc *appsvcs.Services) *GetAuditLogsHandler {
	return &GetAuditLogsHandler{svc: svc}
}

// Execute lists audit entries, newest first. Query parameters: action,
// target_type, target_id, limit.
func (h *GetAuditLogsHandler) Execute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.AuditFilter{
		Action:     q.Get("action"),
		TargetType: q.Get("target_type"),
		TargetID:   q.Get("target_id"),
	}
	if v := q.Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			httpx.JSONError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = limit
	}

	entries, err := h.svc.Audit.Query(r.Context(), filter)
	if err != nil {
		errhttp.WriteError(w, err)
		return
	}

	out := make([]AuditEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, newAuditEntryResponse(e))
	}
	httpx.JSON(w, http.StatusOK, map[string]any{"entries": out})
}
