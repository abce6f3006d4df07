package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
	domainsvc "github.com/campuskeep/campuskeep/services/lostfound/domain/services"
)

// MatchService suggests probable lost/found pairs and records confirmed links.
// Link audit entries are written by the item repository inside the link
// transaction.
type MatchService struct {
	items       repositories.ItemRepository
	cache       ItemCache
	minKeywords int
}

func NewMatchService(items repositories.ItemRepository, itemCache ItemCache, minKeywords int) *MatchService {
	if minKeywords < 1 {
		minKeywords = 1
	}
	return &MatchService{items: items, cache: itemCache, minKeywords: minKeywords}
}

// Suggest returns match candidates for the given item, ordered high-confidence
// first and most recent within each band. An item that is not in a matchable
// state yields an empty list, not an error.
func (s *MatchService) Suggest(ctx context.Context, itemID uuid.UUID) ([]*models.MatchSuggestion, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	candidates, err := s.items.FindMatchCandidates(ctx, item.Kind.Opposite(), item.Category)
	if err != nil {
		return nil, fmt.Errorf("loading match candidates: %w", err)
	}
	return domainsvc.SuggestMatches(item, candidates, s.minKeywords), nil
}

// Link records that a lost report and a found report describe the same
// physical object. Linking is symmetric and idempotent: relinking an already
// linked pair succeeds without a second audit entry.
func (s *MatchService) Link(ctx context.Context, actor auth.Actor, firstID, secondID uuid.UUID) (*models.Item, *models.Item, error) {
	a, err := s.items.GetByID(ctx, firstID)
	if err != nil {
		return nil, nil, err
	}
	b, err := s.items.GetByID(ctx, secondID)
	if err != nil {
		return nil, nil, err
	}

	if err := domainsvc.ValidateLink(a, b); err != nil {
		return nil, nil, err
	}
	if a.LinkedTo(b.ID) && b.LinkedTo(a.ID) {
		return a, b, nil
	}

	a.LinkedItemID = &b.ID
	b.LinkedItemID = &a.ID

	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionLinkItems, models.TargetItem, a.ID.String(), map[string]any{
		"linked_item_id": b.ID.String(),
	})
	if err := s.items.Link(ctx, a, b, entry); err != nil {
		return nil, nil, err
	}
	if s.cache != nil {
		_ = s.cache.Delete(ctx, a.ID)
		_ = s.cache.Delete(ctx, b.ID)
	}
	return a, b, nil
}
