package models

import (
	"time"

	"github.com/google/uuid"
)

// Audit action verbs. Every administrative state change appends exactly one
// entry tagged with one of these.
const (
	ActionVerifyItem   = "VERIFY_ITEM"
	ActionNotifyOwner  = "NOTIFY_OWNER"
	ActionApproveClaim = "APPROVE_CLAIM"
	ActionRejectClaim  = "REJECT_CLAIM"
	ActionHandover     = "HANDOVER"
	ActionArchive      = "ARCHIVE"
	ActionDispose      = "DISPOSE"
	ActionLinkItems    = "LINK_ITEMS"
	ActionBroadcast    = "BROADCAST"
)

// Audit target types.
const (
	TargetItem      = "ITEM"
	TargetClaim     = "CLAIM"
	TargetBroadcast = "BROADCAST"
)

// AuditEntry is an immutable record of an administrative action. Entries are
// inserted in the same transaction as the mutation they record and are never
// updated or deleted.
type AuditEntry struct {
	ID         uuid.UUID
	AdminID    uuid.UUID
	AdminName  string
	Action     string
	TargetType string
	TargetID   string
	Details    map[string]any
	Timestamp  time.Time
}

// NewAuditEntry constructs an AuditEntry stamped with the current time.
func NewAuditEntry(adminID uuid.UUID, adminName, action, targetType, targetID string, details map[string]any) *AuditEntry {
	return &AuditEntry{
		ID:         uuid.New(),
		AdminID:    adminID,
		AdminName:  adminName,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Details:    details,
		Timestamp:  time.Now().UTC(),
	}
}
