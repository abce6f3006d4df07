// Package events defines the Watermill topics and payloads published by the
// lost-and-found context. Consumers subscribe via EventBus.Subscribe; payloads
// are versioned JSON.
package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// Topics published by the lost-and-found context.
const (
	TopicItemCreated        = "lostfound.item.created"
	TopicItemsLinked        = "lostfound.items.linked"
	TopicOwnerNotified      = "lostfound.item.owner_notified"
	TopicClaimDecided       = "lostfound.claim.decided"
	TopicBroadcastRequested = "lostfound.broadcast.requested"
)

// ItemCreatedEvent is published after a new report is persisted.
type ItemCreatedEvent struct {
	EventID     uuid.UUID         `json:"event_id"` // Unique publish-time identifier for deduplication
	Version     int               `json:"version"`  // Schema version; increment on breaking changes
	ItemID      uuid.UUID         `json:"item_id"`
	Kind        models.ReportKind `json:"kind"`
	Category    models.Category   `json:"category"`
	Description string            `json:"description"`
	Location    string            `json:"location"`
	Status      models.ItemStatus `json:"status"`
	ReporterID  *uuid.UUID        `json:"reporter_id,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

// ItemsLinkedEvent is published after a LOST and a FOUND report are linked
// as one resolved case.
type ItemsLinkedEvent struct {
	EventID         uuid.UUID       `json:"event_id"`
	Version         int             `json:"version"`
	LostItemID      uuid.UUID       `json:"lost_item_id"`
	FoundItemID     uuid.UUID       `json:"found_item_id"`
	Category        models.Category `json:"category"`
	LostReporterID  *uuid.UUID      `json:"lost_reporter_id,omitempty"`
	FoundReporterID *uuid.UUID      `json:"found_reporter_id,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// OwnerNotifiedEvent is published each time an administrator notifies the
// reporter of a LOST item. notifyOwner is repeatable, so consumers may see
// several of these per item.
type OwnerNotifiedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	ItemID     uuid.UUID `json:"item_id"`
	ReporterID uuid.UUID `json:"reporter_id"`
	Remarks    string    `json:"remarks"`
	OccurredAt time.Time `json:"occurred_at"`
}

// ClaimDecidedEvent is published after a claim moves out of PENDING.
// Superseded claims (auto-rejected when a sibling is approved) publish their
// own event with Superseded set.
type ClaimDecidedEvent struct {
	EventID    uuid.UUID          `json:"event_id"`
	Version    int                `json:"version"`
	ClaimID    uuid.UUID          `json:"claim_id"`
	ItemID     uuid.UUID          `json:"item_id"`
	ClaimantID uuid.UUID          `json:"claimant_id"`
	Decision   models.ClaimStatus `json:"decision"`
	Superseded bool               `json:"superseded"`
	Remarks    string             `json:"remarks"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// BroadcastRequestedEvent is published once per broadcast call, regardless of
// how many recipients the worker later fans out to.
type BroadcastRequestedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurred_at"`
}
