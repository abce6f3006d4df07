package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
	domainsvc "github.com/campuskeep/campuskeep/services/lostfound/domain/services"
)

// ClaimService orchestrates ownership claims: submission by students and
// verification by staff.
type ClaimService struct {
	claims repositories.ClaimRepository
	items  repositories.ItemRepository
	audit  repositories.AuditRepository
	cache  ItemCache
}

func NewClaimService(
	claims repositories.ClaimRepository,
	items repositories.ItemRepository,
	audit repositories.AuditRepository,
	itemCache ItemCache,
) *ClaimService {
	return &ClaimService{claims: claims, items: items, audit: audit, cache: itemCache}
}

// Submit files an ownership claim against an available found item. A claimant
// can hold at most one pending claim per item.
func (s *ClaimService) Submit(ctx context.Context, actor auth.Actor, itemID uuid.UUID, details, proofURL string) (*models.Claim, error) {
	details = strings.TrimSpace(details)
	if details == "" {
		return nil, fmt.Errorf("%w: claim details are required", domain.ErrValidation)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.Claimable() {
		if item.Status.Terminal() {
			return nil, fmt.Errorf("%w: item %s is closed", domain.ErrItemClosed, itemID)
		}
		return nil, fmt.Errorf("%w: item is not open for claims (kind %s, status %s)", domain.ErrInvalidState, item.Kind, item.Status)
	}

	pending, err := s.claims.HasPending(ctx, itemID, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("checking existing claims: %w", err)
	}
	if pending {
		return nil, fmt.Errorf("%w: a pending claim by this claimant already exists for item %s", domain.ErrConflict, itemID)
	}

	claim := models.NewClaim(itemID, actor.ID, details, proofURL)
	if err := s.claims.Create(ctx, claim); err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}
	return claim, nil
}

// List retrieves claims matching the filter, newest first.
func (s *ClaimService) List(ctx context.Context, filter repositories.ClaimFilter) ([]*models.Claim, error) {
	return s.claims.Find(ctx, filter)
}

// GetByID loads a single claim.
func (s *ClaimService) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	return s.claims.GetByID(ctx, id)
}

// Decide approves or rejects a pending claim. Approval moves the item to
// CLAIMED and auto-rejects every other pending claim on it; those superseded
// claims keep their original details and gain a supersede remark.
func (s *ClaimService) Decide(ctx context.Context, actor auth.Actor, claimID uuid.UUID, decision models.ClaimStatus, remarks string) (*models.Claim, error) {
	if decision != models.ClaimApproved && decision != models.ClaimRejected {
		return nil, fmt.Errorf("%w: decision must be %s or %s", domain.ErrValidation, models.ClaimApproved, models.ClaimRejected)
	}

	claim, err := s.claims.GetByID(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.Status.Decided() {
		return nil, fmt.Errorf("%w: claim %s is %s", domain.ErrAlreadyDecided, claimID, claim.Status)
	}

	claim.Status = decision
	claim.AdminRemarks = remarks

	if decision == models.ClaimRejected {
		entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionRejectClaim, models.TargetClaim, claim.ID.String(), map[string]any{
			"item_id": claim.ItemID.String(),
			"remarks": remarks,
		})
		if err := s.claims.Decide(ctx, claim, nil, nil, entry); err != nil {
			return nil, err
		}
		return claim, nil
	}

	item, err := s.items.GetByID(ctx, claim.ItemID)
	if err != nil {
		return nil, err
	}
	if err := domainsvc.Transition(item, models.StatusClaimed); err != nil {
		return nil, err
	}

	siblings, err := s.claims.Find(ctx, repositories.ClaimFilter{
		ItemID: &claim.ItemID,
		Status: claimStatusPtr(models.ClaimPending),
	})
	if err != nil {
		return nil, fmt.Errorf("loading competing claims: %w", err)
	}
	var superseded []*models.Claim
	for _, sib := range siblings {
		if sib.ID == claim.ID {
			continue
		}
		sib.Status = models.ClaimRejected
		sib.AdminRemarks = "superseded by an approved claim"
		superseded = append(superseded, sib)
	}

	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionApproveClaim, models.TargetClaim, claim.ID.String(), map[string]any{
		"item_id":          claim.ItemID.String(),
		"superseded_count": len(superseded),
		"remarks":          remarks,
	})
	if err := s.claims.Decide(ctx, claim, superseded, item, entry); err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, item.ID)
	}
	return claim, nil
}

func claimStatusPtr(s models.ClaimStatus) *models.ClaimStatus { return &s }
