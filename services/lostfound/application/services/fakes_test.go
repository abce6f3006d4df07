package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/cache"
	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// In-memory repository fakes. They mirror the transactional contracts of the
// Postgres implementations: version-checked item writes, status-guarded claim
// decisions, one handover per item, and audit entries recorded alongside
// every mutation.

type fakeStore struct {
	items     map[uuid.UUID]*models.Item
	claims    map[uuid.UUID]*models.Claim
	handovers map[uuid.UUID]*models.HandoverRecord // keyed by item ID
	audit     []*models.AuditEntry
	events    []publishedEvent
}

type publishedEvent struct {
	topic   string
	payload any
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     make(map[uuid.UUID]*models.Item),
		claims:    make(map[uuid.UUID]*models.Claim),
		handovers: make(map[uuid.UUID]*models.HandoverRecord),
	}
}

func (s *fakeStore) applyItem(item *models.Item) error {
	stored, ok := s.items[item.ID]
	if !ok {
		return fmt.Errorf("%w: item %s", domain.ErrItemNotFound, item.ID)
	}
	if stored.Version != item.Version {
		return fmt.Errorf("%w: stale version for item %s", domain.ErrConflict, item.ID)
	}
	cp := *item
	cp.Version++
	s.items[item.ID] = &cp
	item.Version++
	return nil
}

type fakeItemRepo struct{ store *fakeStore }

func (r *fakeItemRepo) Create(_ context.Context, item *models.Item) error {
	cp := *item
	r.store.items[item.ID] = &cp
	return nil
}

func (r *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Item, error) {
	stored, ok := r.store.items[id]
	if !ok {
		return nil, fmt.Errorf("%w: item %s", domain.ErrItemNotFound, id)
	}
	cp := *stored
	return &cp, nil
}

func (r *fakeItemRepo) Find(_ context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range r.store.items {
		if filter.Kind != nil && item.Kind != *filter.Kind {
			continue
		}
		if filter.Status != nil && item.Status != *filter.Status {
			continue
		}
		if filter.Category != nil && item.Category != *filter.Category {
			continue
		}
		if filter.Query != "" && !strings.Contains(strings.ToLower(item.Description), strings.ToLower(filter.Query)) {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ReportedAt.After(out[j].ReportedAt) })
	return out, nil
}

func (r *fakeItemRepo) FindMatchCandidates(_ context.Context, kind models.ReportKind, category models.Category) ([]*models.Item, error) {
	var out []*models.Item
	for _, item := range r.store.items {
		if item.Kind != kind || item.Category != category || item.LinkedItemID != nil {
			continue
		}
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeItemRepo) Update(_ context.Context, item *models.Item, entry *models.AuditEntry) error {
	if err := r.store.applyItem(item); err != nil {
		return err
	}
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r *fakeItemRepo) Link(_ context.Context, a, b *models.Item, entry *models.AuditEntry) error {
	if err := r.store.applyItem(a); err != nil {
		return err
	}
	if err := r.store.applyItem(b); err != nil {
		return err
	}
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r *fakeItemRepo) Stats(_ context.Context) (*repositories.ItemStats, error) {
	stats := &repositories.ItemStats{CategoryBreakdown: make(map[models.Category]int)}
	for _, item := range r.store.items {
		if item.Kind == models.KindLost {
			stats.TotalLost++
		} else {
			stats.TotalFound++
		}
		stats.CategoryBreakdown[item.Category]++
	}
	// A return happens at handover time, so the last-day counter keys on
	// when the item changed hands.
	cutoff := time.Now().Add(-24 * time.Hour)
	for _, rec := range r.store.handovers {
		if rec.HandedOverAt.After(cutoff) {
			stats.ReturnedLastDay++
		}
	}
	return stats, nil
}

type fakeClaimRepo struct{ store *fakeStore }

func (r *fakeClaimRepo) Create(_ context.Context, claim *models.Claim) error {
	cp := *claim
	r.store.claims[claim.ID] = &cp
	return nil
}

func (r *fakeClaimRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Claim, error) {
	stored, ok := r.store.claims[id]
	if !ok {
		return nil, fmt.Errorf("%w: claim %s", domain.ErrClaimNotFound, id)
	}
	cp := *stored
	return &cp, nil
}

func (r *fakeClaimRepo) Find(_ context.Context, filter repositories.ClaimFilter) ([]*models.Claim, error) {
	var out []*models.Claim
	for _, claim := range r.store.claims {
		if filter.Status != nil && claim.Status != *filter.Status {
			continue
		}
		if filter.ItemID != nil && claim.ItemID != *filter.ItemID {
			continue
		}
		if filter.ClaimantID != nil && claim.ClaimantID != *filter.ClaimantID {
			continue
		}
		cp := *claim
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (r *fakeClaimRepo) HasPending(_ context.Context, itemID, claimantID uuid.UUID) (bool, error) {
	for _, claim := range r.store.claims {
		if claim.ItemID == itemID && claim.ClaimantID == claimantID && claim.Status == models.ClaimPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClaimRepo) Decide(_ context.Context, claim *models.Claim, superseded []*models.Claim, item *models.Item, entry *models.AuditEntry) error {
	stored, ok := r.store.claims[claim.ID]
	if !ok {
		return fmt.Errorf("%w: claim %s", domain.ErrClaimNotFound, claim.ID)
	}
	if stored.Status != models.ClaimPending {
		return fmt.Errorf("%w: claim %s", domain.ErrAlreadyDecided, claim.ID)
	}
	if item != nil {
		if err := r.store.applyItem(item); err != nil {
			return err
		}
	}
	cp := *claim
	r.store.claims[claim.ID] = &cp
	for _, sib := range superseded {
		sibCp := *sib
		r.store.claims[sib.ID] = &sibCp
	}
	r.store.audit = append(r.store.audit, entry)
	return nil
}

type fakeHandoverRepo struct{ store *fakeStore }

func (r *fakeHandoverRepo) Create(_ context.Context, rec *models.HandoverRecord, item *models.Item, entry *models.AuditEntry) error {
	if _, exists := r.store.handovers[rec.ItemID]; exists {
		return fmt.Errorf("%w: item %s already has a handover record", domain.ErrConflict, rec.ItemID)
	}
	if err := r.store.applyItem(item); err != nil {
		return err
	}
	cp := *rec
	r.store.handovers[rec.ItemID] = &cp
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r *fakeHandoverRepo) GetByItem(_ context.Context, itemID uuid.UUID) (*models.HandoverRecord, error) {
	stored, ok := r.store.handovers[itemID]
	if !ok {
		return nil, nil
	}
	cp := *stored
	return &cp, nil
}

func (r *fakeHandoverRepo) List(_ context.Context, _ int) ([]*models.HandoverRecord, error) {
	var out []*models.HandoverRecord
	for _, rec := range r.store.handovers {
		cp := *rec
		out = append(out, &cp)
	}
	return out, nil
}

type fakeAuditRepo struct{ store *fakeStore }

func (r *fakeAuditRepo) Append(_ context.Context, entry *models.AuditEntry) error {
	r.store.audit = append(r.store.audit, entry)
	return nil
}

func (r *fakeAuditRepo) AppendWithEvent(_ context.Context, entry *models.AuditEntry, topic string, payload any) error {
	r.store.audit = append(r.store.audit, entry)
	r.store.events = append(r.store.events, publishedEvent{topic: topic, payload: payload})
	return nil
}

func (r *fakeAuditRepo) Query(_ context.Context, filter repositories.AuditFilter) ([]*models.AuditEntry, error) {
	var out []*models.AuditEntry
	for _, entry := range r.store.audit {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.TargetType != "" && entry.TargetType != filter.TargetType {
			continue
		}
		if filter.TargetID != "" && entry.TargetID != filter.TargetID {
			continue
		}
		out = append(out, entry)
	}
	return out, nil
}

// fakeItemCache implements ItemCache with a plain map so tests can seed
// entries and observe what the services write and evict.
type fakeItemCache struct {
	entries map[uuid.UUID]*cache.CachedItem
	deleted []uuid.UUID
}

func newFakeItemCache() *fakeItemCache {
	return &fakeItemCache{entries: make(map[uuid.UUID]*cache.CachedItem)}
}

func (c *fakeItemCache) Get(_ context.Context, itemID uuid.UUID) (*cache.CachedItem, error) {
	stored, ok := c.entries[itemID]
	if !ok {
		return nil, fmt.Errorf("cache miss: %s", itemID)
	}
	cp := *stored
	return &cp, nil
}

func (c *fakeItemCache) Set(_ context.Context, item *cache.CachedItem) error {
	cp := *item
	c.entries[item.ID] = &cp
	return nil
}

func (c *fakeItemCache) Delete(_ context.Context, itemID uuid.UUID) error {
	delete(c.entries, itemID)
	c.deleted = append(c.deleted, itemID)
	return nil
}

// actions returns the audit action sequence recorded so far.
func (s *fakeStore) actions() []string {
	out := make([]string, 0, len(s.audit))
	for _, entry := range s.audit {
		out = append(out, entry.Action)
	}
	return out
}
