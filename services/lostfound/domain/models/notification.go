package models

import (
	"time"

	"github.com/google/uuid"
)

// Notification kinds written by the dispatcher worker.
const (
	NotificationOwnerAlert    = "OWNER_ALERT"
	NotificationItemLinked    = "ITEM_LINKED"
	NotificationClaimDecision = "CLAIM_DECISION"
	NotificationBroadcast     = "BROADCAST"
)

// Notification is a per-recipient inbox entry produced by the dispatcher.
// Delivery is at-least-once: the worker may write duplicates on redelivery,
// which readers tolerate.
type Notification struct {
	ID          uuid.UUID
	RecipientID uuid.UUID
	Title       string
	Message     string
	Kind        string
	RelatedID   string // item or claim ID, empty for broadcasts
	Read        bool
	CreatedAt   time.Time
}

// NewNotification constructs an unread Notification for the given recipient.
func NewNotification(recipientID uuid.UUID, title, message, kind, relatedID string) *Notification {
	return &Notification{
		ID:          uuid.New(),
		RecipientID: recipientID,
		Title:       title,
		Message:     message,
		Kind:        kind,
		RelatedID:   relatedID,
		CreatedAt:   time.Now().UTC(),
	}
}
