// Package repositories defines the persistence interfaces for the
// lost-and-found context. The domain layer owns these interfaces;
// infrastructure implements them.
//
// Mutating methods that take an *models.AuditEntry must apply the entity
// write, the audit append, and any outbox event publish as one atomic unit:
// a rejected mutation leaves every record unchanged.
package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// ItemFilter narrows item searches. Nil/zero fields are ignored.
type ItemFilter struct {
	Kind     *models.ReportKind
	Status   *models.ItemStatus
	Category *models.Category
	Query    string // matched against description, location, and category
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ItemStats is the dashboard overview aggregate.
type ItemStats struct {
	TotalLost           int
	TotalFound          int
	PendingVerification int
	Available           int
	ReturnedLastDay     int
	HighRiskOpen        int
	PendingClaims       int
	CategoryBreakdown   map[models.Category]int
	RecoveryRatePercent float64
}

// ItemRepository is the persistence interface for the Item aggregate.
type ItemRepository interface {
	// Create persists a new report and publishes ItemCreatedEvent in the
	// same transaction.
	Create(ctx context.Context, item *models.Item) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)

	// Find retrieves items matching the filter, most recent report first.
	Find(ctx context.Context, filter ItemFilter) ([]*models.Item, error)

	// FindMatchCandidates retrieves unlinked items of the given kind and
	// category for the match resolver.
	FindMatchCandidates(ctx context.Context, kind models.ReportKind, category models.Category) ([]*models.Item, error)

	// Update persists item state with an optimistic version check and
	// appends the audit entry in the same transaction. A stale version
	// returns ErrConflict and writes nothing. On success the in-memory
	// item's Version is advanced.
	Update(ctx context.Context, item *models.Item, entry *models.AuditEntry) error

	// Link writes the symmetric link between both items (each version
	// checked), appends the audit entry, and publishes ItemsLinkedEvent,
	// all in one transaction.
	Link(ctx context.Context, a, b *models.Item, entry *models.AuditEntry) error

	// Stats computes the dashboard overview aggregate.
	Stats(ctx context.Context) (*ItemStats, error)
}

// ClaimFilter narrows claim listings. Nil fields are ignored.
type ClaimFilter struct {
	Status     *models.ClaimStatus
	ItemID     *uuid.UUID
	ClaimantID *uuid.UUID
	Limit      int
}

// ClaimRepository is the persistence interface for ownership claims.
// Claims are never deleted.
type ClaimRepository interface {
	Create(ctx context.Context, claim *models.Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error)

	// Find retrieves claims matching the filter, newest submission first.
	Find(ctx context.Context, filter ClaimFilter) ([]*models.Claim, error)

	// HasPending reports whether the claimant already has a pending claim
	// on the item (duplicate-claim prevention).
	HasPending(ctx context.Context, itemID, claimantID uuid.UUID) (bool, error)

	// Decide finalizes the claim and, atomically with it: rejects every
	// superseded sibling claim, applies the item status change when item is
	// non-nil (version checked), appends the audit entry, and publishes
	// ClaimDecidedEvents. The claim row is guarded on status=PENDING; a
	// lost guard returns ErrAlreadyDecided and writes nothing.
	Decide(ctx context.Context, claim *models.Claim, superseded []*models.Claim, item *models.Item, entry *models.AuditEntry) error
}

// HandoverRepository is the persistence interface for custody transfers.
// Records are append-only.
type HandoverRepository interface {
	// Create inserts the handover record and applies the item's RETURNED
	// transition (version checked) with its audit entry in one transaction.
	// A second record for the same item returns ErrConflict.
	Create(ctx context.Context, rec *models.HandoverRecord, item *models.Item, entry *models.AuditEntry) error

	// GetByItem returns the item's handover record, or nil without error
	// when none exists.
	GetByItem(ctx context.Context, itemID uuid.UUID) (*models.HandoverRecord, error)
	List(ctx context.Context, limit int) ([]*models.HandoverRecord, error)
}

// AuditFilter narrows audit queries. Empty fields are ignored.
type AuditFilter struct {
	Action     string
	TargetType string
	TargetID   string
	Limit      int
}

// AuditRepository is the append-only ledger of administrative actions.
type AuditRepository interface {
	// Append inserts the entry. It never raises business-rule errors; a
	// failure means the store itself is unavailable.
	Append(ctx context.Context, entry *models.AuditEntry) error

	// AppendWithEvent inserts the entry and publishes the event to the
	// outbox in the same transaction.
	AppendWithEvent(ctx context.Context, entry *models.AuditEntry, topic string, payload any) error

	// Query returns entries matching the filter, newest first.
	Query(ctx context.Context, filter AuditFilter) ([]*models.AuditEntry, error)
}

// NotificationRepository is the persistence interface for the per-recipient
// notification inbox written by the dispatcher worker.
type NotificationRepository interface {
	Create(ctx context.Context, n *models.Notification) error

	// FanOut invokes build once per registered recipient (every distinct
	// user that has filed a report) and inserts the result. Individual
	// insert failures are skipped; the count of successful inserts and the
	// first error encountered are returned.
	FanOut(ctx context.Context, build func(recipientID uuid.UUID) *models.Notification) (int, error)

	ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*models.Notification, error)

	// MarkRead flags the notification read, scoped to the recipient.
	// Returns ErrNotificationNotFound when no matching row exists.
	MarkRead(ctx context.Context, recipientID, id uuid.UUID) error
}
