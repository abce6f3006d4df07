package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// BroadcastService publishes campus-wide announcements. The actual fan-out to
// recipient inboxes happens asynchronously in the worker; a broadcast call
// records the intent once, audited, and enqueues one event.
type BroadcastService struct {
	audit repositories.AuditRepository
}

func NewBroadcastService(audit repositories.AuditRepository) *BroadcastService {
	return &BroadcastService{audit: audit}
}

// Broadcast validates and enqueues an announcement. Returns the broadcast's
// event ID for correlation with the audit trail.
func (s *BroadcastService) Broadcast(ctx context.Context, actor auth.Actor, title, message, category string) (uuid.UUID, error) {
	title = strings.TrimSpace(title)
	message = strings.TrimSpace(message)
	if title == "" || message == "" {
		return uuid.Nil, fmt.Errorf("%w: broadcast title and message are required", domain.ErrValidation)
	}
	if category != "" && !models.Category(category).Valid() {
		return uuid.Nil, fmt.Errorf("%w: unknown category %q", domain.ErrValidation, category)
	}

	event := events.BroadcastRequestedEvent{
		EventID:    uuid.New(),
		Version:    1,
		Title:      title,
		Message:    message,
		Category:   category,
		OccurredAt: time.Now().UTC(),
	}
	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionBroadcast, models.TargetBroadcast, event.EventID.String(), map[string]any{
		"title":    title,
		"category": category,
	})
	if err := s.audit.AppendWithEvent(ctx, entry, events.TopicBroadcastRequested, event); err != nil {
		return uuid.Nil, fmt.Errorf("enqueuing broadcast: %w", err)
	}
	return event.EventID, nil
}
