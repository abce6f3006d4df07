package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// NotificationService exposes the per-user notification inbox. Entries are
// written by the dispatcher worker; this service only reads and marks them.
type NotificationService struct {
	notifications repositories.NotificationRepository
}

func NewNotificationService(notifications repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notifications: notifications}
}

// List returns the actor's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, actor auth.Actor, unreadOnly bool, limit int) ([]*models.Notification, error) {
	return s.notifications.ListByRecipient(ctx, actor.ID, unreadOnly, limit)
}

// MarkRead flags one of the actor's notifications as read.
func (s *NotificationService) MarkRead(ctx context.Context, actor auth.Actor, id uuid.UUID) error {
	return s.notifications.MarkRead(ctx, actor.ID, id)
}
