package models

import (
	"time"

	"github.com/google/uuid"
)

// ClaimStatus is the per-claim verification state.
type ClaimStatus string

const (
	ClaimPending  ClaimStatus = "PENDING"
	ClaimApproved ClaimStatus = "APPROVED"
	ClaimRejected ClaimStatus = "REJECTED"
)

// Decided reports whether the claim has reached a terminal state.
func (s ClaimStatus) Decided() bool {
	return s == ClaimApproved || s == ClaimRejected
}

// Claim is an ownership assertion submitted against a FOUND item.
// Claims are never deleted; rejected and superseded claims are retained
// for the audit trail.
type Claim struct {
	ID                  uuid.UUID
	ItemID              uuid.UUID
	ClaimantID          uuid.UUID
	VerificationDetails string
	ProofImageURL       string
	Status              ClaimStatus
	AdminRemarks        string
	SubmittedAt         time.Time
}

// NewClaim constructs a pending Claim against the given item.
func NewClaim(itemID, claimantID uuid.UUID, details, proofImageURL string) *Claim {
	return &Claim{
		ID:                  uuid.New(),
		ItemID:              itemID,
		ClaimantID:          claimantID,
		VerificationDetails: details,
		ProofImageURL:       proofImageURL,
		Status:              ClaimPending,
		SubmittedAt:         time.Now().UTC(),
	}
}
