package models

import (
	"time"

	"github.com/google/uuid"
)

// HandoverRecord is permanent proof of a physical custody transfer.
// At most one record exists per item (enforced by a unique index), and a
// record is never mutated or deleted once written.
type HandoverRecord struct {
	ID               uuid.UUID
	ItemID           uuid.UUID
	HandedOverToID   string // student ID of the recipient, e.g. "21BE001"
	HandedOverByName string
	Remarks          string
	HandedOverAt     time.Time
}

// NewHandoverRecord constructs a HandoverRecord for the given item.
func NewHandoverRecord(itemID uuid.UUID, studentID, adminName, remarks string) *HandoverRecord {
	return &HandoverRecord{
		ID:               uuid.New(),
		ItemID:           itemID,
		HandedOverToID:   studentID,
		HandedOverByName: adminName,
		Remarks:          remarks,
		HandedOverAt:     time.Now().UTC(),
	}
}
