package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// ErrorResponse is returned on all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ItemResponse is the wire representation of an item.
type ItemResponse struct {
	ID              uuid.UUID  `json:"id"`
	Kind            string     `json:"kind"`
	Category        string     `json:"category"`
	Description     string     `json:"description"`
	Location        string     `json:"location"`
	ReportedAt      time.Time  `json:"reported_at"`
	ReporterID      *uuid.UUID `json:"reporter_id,omitempty"`
	Status          string     `json:"status"`
	StorageLocation string     `json:"storage_location,omitempty"`
	AdminRemarks    string     `json:"admin_remarks,omitempty"`
	VerifiedBy      string     `json:"verified_by,omitempty"`
	VerifiedAt      *time.Time `json:"verified_at,omitempty"`
	LinkedItemID    *uuid.UUID `json:"linked_item_id,omitempty"`
	ImageURL        string     `json:"image_url,omitempty"`
	Version         int        `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
}

func newItemResponse(item *models.Item) ItemResponse {
	return ItemResponse{
		ID:              item.ID,
		Kind:            string(item.Kind),
		Category:        string(item.Category),
		Description:     item.Description,
		Location:        item.Location,
		ReportedAt:      item.ReportedAt,
		ReporterID:      item.ReporterID,
		Status:          string(item.Status),
		StorageLocation: item.StorageLocation,
		AdminRemarks:    item.AdminRemarks,
		VerifiedBy:      item.VerifiedByName,
		VerifiedAt:      item.VerifiedAt,
		LinkedItemID:    item.LinkedItemID,
		ImageURL:        item.ImageURL,
		Version:         item.Version,
		CreatedAt:       item.CreatedAt,
	}
}

func newItemResponses(items []*models.Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, newItemResponse(item))
	}
	return out
}

// ClaimResponse is the wire representation of an ownership claim.
type ClaimResponse struct {
	ID                  uuid.UUID `json:"id"`
	ItemID              uuid.UUID `json:"item_id"`
	ClaimantID          uuid.UUID `json:"claimant_id"`
	VerificationDetails string    `json:"verification_details"`
	ProofImageURL       string    `json:"proof_image_url,omitempty"`
	Status              string    `json:"status"`
	AdminRemarks        string    `json:"admin_remarks,omitempty"`
	SubmittedAt         time.Time `json:"submitted_at"`
}

func newClaimResponse(claim *models.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                  claim.ID,
		ItemID:              claim.ItemID,
		ClaimantID:          claim.ClaimantID,
		VerificationDetails: claim.VerificationDetails,
		ProofImageURL:       claim.ProofImageURL,
		Status:              string(claim.Status),
		AdminRemarks:        claim.AdminRemarks,
		SubmittedAt:         claim.SubmittedAt,
	}
}

func newClaimResponses(claims []*models.Claim) []ClaimResponse {
	out := make([]ClaimResponse, 0, len(claims))
	for _, claim := range claims {
		out = append(out, newClaimResponse(claim))
	}
	return out
}

// HandoverResponse is the wire representation of a handover record.
type HandoverResponse struct {
	ID           uuid.UUID `json:"id"`
	ItemID       uuid.UUID `json:"item_id"`
	HandedOverTo string    `json:"handed_over_to"`
	HandedOverBy string    `json:"handed_over_by"`
	Remarks      string    `json:"remarks,omitempty"`
	HandedOverAt time.Time `json:"handed_over_at"`
}

func newHandoverResponse(rec *models.HandoverRecord) HandoverResponse {
	return HandoverResponse{
		ID:           rec.ID,
		ItemID:       rec.ItemID,
		HandedOverTo: rec.HandedOverToID,
		HandedOverBy: rec.HandedOverByName,
		Remarks:      rec.Remarks,
		HandedOverAt: rec.HandedOverAt,
	}
}
