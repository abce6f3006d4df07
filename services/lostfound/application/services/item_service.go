package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/pkg/cache"
	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
	domainsvc "github.com/campuskeep/campuskeep/services/lostfound/domain/services"
)

// ItemCache is the read-model cache surface the services depend on,
// satisfied by cache.ItemCache. A nil cache disables caching entirely.
type ItemCache interface {
	Get(ctx context.Context, itemID uuid.UUID) (*cache.CachedItem, error)
	Set(ctx context.Context, item *cache.CachedItem) error
	Delete(ctx context.Context, itemID uuid.UUID) error
}

// ItemService orchestrates the item lifecycle: intake, staff verification,
// owner notification, handover, and closing.
type ItemService struct {
	items     repositories.ItemRepository
	claims    repositories.ClaimRepository
	handovers repositories.HandoverRepository
	audit     repositories.AuditRepository
	cache     ItemCache
}

func NewItemService(
	items repositories.ItemRepository,
	claims repositories.ClaimRepository,
	handovers repositories.HandoverRepository,
	audit repositories.AuditRepository,
	itemCache ItemCache,
) *ItemService {
	return &ItemService{
		items:     items,
		claims:    claims,
		handovers: handovers,
		audit:     audit,
		cache:     itemCache,
	}
}

// CreateItemInput carries a new lost or found report.
type CreateItemInput struct {
	Kind        models.ReportKind
	Category    models.Category
	Description string
	Location    string
	ReportedAt  time.Time
	ReporterID  *uuid.UUID
	ImageURL    string
}

// Create registers a new report. Lost reports open in OPEN, found reports in
// PENDING until a staff member verifies physical custody.
func (s *ItemService) Create(ctx context.Context, in CreateItemInput) (*models.Item, error) {
	reportedAt := in.ReportedAt
	if reportedAt.IsZero() {
		reportedAt = time.Now().UTC()
	}
	item := models.NewItem(in.Kind, in.Category, strings.TrimSpace(in.Description), strings.TrimSpace(in.Location), reportedAt, in.ReporterID, in.ImageURL)
	if err := domainsvc.ValidateItemForCreation(item); err != nil {
		return nil, err
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("creating item: %w", err)
	}
	return item, nil
}

// Search lists items matching the filter, most recent first.
func (s *ItemService) Search(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	return s.items.Find(ctx, filter)
}

// GetByID serves reads through the Redis cache. Cached entries carry only
// display fields; mutating operations always reload from the database.
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, id); err == nil && cached != nil {
			return &models.Item{
				ID:              cached.ID,
				Kind:            models.ReportKind(cached.Kind),
				Category:        models.Category(cached.Category),
				Description:     cached.Description,
				Location:        cached.Location,
				Status:          models.ItemStatus(cached.Status),
				StorageLocation: cached.StorageLocation,
				ReportedAt:      cached.ReportedAt,
			}, nil
		}
	}

	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cacheItem(ctx, item)
	return item, nil
}

// ItemContext bundles an item with everything staff need to act on it.
type ItemContext struct {
	Item       *models.Item           `json:"item"`
	LinkedItem *models.Item           `json:"linked_item,omitempty"`
	Claims     []*models.Claim        `json:"claims"`
	Handover   *models.HandoverRecord `json:"handover,omitempty"`
}

// GetContext loads an item together with its claims, linked counterpart, and
// handover record if one exists.
func (s *ItemService) GetContext(ctx context.Context, id uuid.UUID) (*ItemContext, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	claims, err := s.claims.Find(ctx, repositories.ClaimFilter{ItemID: &item.ID})
	if err != nil {
		return nil, fmt.Errorf("loading claims for item %s: %w", id, err)
	}

	out := &ItemContext{Item: item, Claims: claims}

	if item.LinkedItemID != nil {
		// The linked counterpart is display-only here, so it is served
		// through the cached read path.
		linked, err := s.GetByID(ctx, *item.LinkedItemID)
		if err != nil && !domain.IsNotFound(err) {
			return nil, fmt.Errorf("loading linked item: %w", err)
		}
		out.LinkedItem = linked
	}

	handover, err := s.handovers.GetByItem(ctx, item.ID)
	if err != nil {
		return nil, fmt.Errorf("loading handover for item %s: %w", id, err)
	}
	out.Handover = handover

	return out, nil
}

// VerifyAndStore confirms physical custody of a found item, records where it
// is stored, and makes it visible for claims. Valid only on a found report
// awaiting verification.
func (s *ItemService) VerifyAndStore(ctx context.Context, actor auth.Actor, itemID uuid.UUID, storageLocation, remarks string) (*models.Item, error) {
	storageLocation = strings.TrimSpace(storageLocation)
	if storageLocation == "" {
		return nil, fmt.Errorf("%w: storage location is required", domain.ErrValidation)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item.Kind != models.KindFound {
		return nil, fmt.Errorf("%w: only found items can be verified", domain.ErrInvalidState)
	}
	if err := domainsvc.Transition(item, models.StatusAvailable); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	item.StorageLocation = storageLocation
	item.AdminRemarks = remarks
	item.VerifiedByName = actor.Name
	item.VerifiedAt = &now

	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionVerifyItem, models.TargetItem, item.ID.String(), map[string]any{
		"storage_location": storageLocation,
	})
	if err := s.items.Update(ctx, item, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.ID)
	return item, nil
}

// NotifyOwner records that the reporter of a lost item has been contacted
// about a probable match. Safe to repeat; each notification is audited.
func (s *ItemService) NotifyOwner(ctx context.Context, actor auth.Actor, itemID uuid.UUID, remarks string) error {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if item.Kind != models.KindLost {
		return fmt.Errorf("%w: owner notification applies to lost items", domain.ErrInvalidState)
	}
	if item.Status.Terminal() {
		return fmt.Errorf("%w: item %s is closed", domain.ErrItemClosed, itemID)
	}
	if item.ReporterID == nil {
		return fmt.Errorf("%w: item has no registered reporter to notify", domain.ErrValidation)
	}

	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionNotifyOwner, models.TargetItem, item.ID.String(), map[string]any{
		"remarks": remarks,
	})
	event := events.OwnerNotifiedEvent{
		EventID:    uuid.New(),
		Version:    1,
		ItemID:     item.ID,
		ReporterID: *item.ReporterID,
		Remarks:    remarks,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.audit.AppendWithEvent(ctx, entry, events.TopicOwnerNotified, event); err != nil {
		return fmt.Errorf("recording owner notification: %w", err)
	}
	return nil
}

// Archive closes an item without resolution, for stale or unclaimable
// reports. Archived items refuse all further mutation.
func (s *ItemService) Archive(ctx context.Context, actor auth.Actor, itemID uuid.UUID, remarks string) (*models.Item, error) {
	return s.close(ctx, actor, itemID, models.StatusArchived, models.ActionArchive, remarks)
}

// Dispose closes an item whose retention period expired and the physical
// object was discarded or donated.
func (s *ItemService) Dispose(ctx context.Context, actor auth.Actor, itemID uuid.UUID, remarks string) (*models.Item, error) {
	return s.close(ctx, actor, itemID, models.StatusDisposed, models.ActionDispose, remarks)
}

func (s *ItemService) close(ctx context.Context, actor auth.Actor, itemID uuid.UUID, status models.ItemStatus, action string, remarks string) (*models.Item, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if err := domainsvc.Transition(item, status); err != nil {
		return nil, err
	}
	if remarks != "" {
		item.AdminRemarks = remarks
	}

	entry := models.NewAuditEntry(actor.ID, actor.Name, action, models.TargetItem, item.ID.String(), map[string]any{
		"remarks": remarks,
	})
	if err := s.items.Update(ctx, item, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.ID)
	return item, nil
}

// RecordHandover hands the physical item to a student and closes the item as
// RETURNED. An item can be handed over exactly once.
func (s *ItemService) RecordHandover(ctx context.Context, actor auth.Actor, itemID uuid.UUID, studentID, remarks string) (*models.HandoverRecord, error) {
	studentID = strings.TrimSpace(studentID)
	if studentID == "" {
		return nil, fmt.Errorf("%w: receiving student id is required", domain.ErrValidation)
	}

	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if !item.HandoverEligible() {
		if item.Status.Terminal() {
			return nil, fmt.Errorf("%w: item %s is closed", domain.ErrItemClosed, itemID)
		}
		return nil, fmt.Errorf("%w: item must be available or claimed to hand over, got %s", domain.ErrInvalidState, item.Status)
	}
	if err := domainsvc.Transition(item, models.StatusReturned); err != nil {
		return nil, err
	}

	rec := models.NewHandoverRecord(item.ID, studentID, actor.Name, remarks)
	entry := models.NewAuditEntry(actor.ID, actor.Name, models.ActionHandover, models.TargetItem, item.ID.String(), map[string]any{
		"student_id": studentID,
		"remarks":    remarks,
	})
	if err := s.handovers.Create(ctx, rec, item, entry); err != nil {
		return nil, err
	}
	s.invalidate(ctx, item.ID)
	return rec, nil
}

// Handovers lists recent handover records.
func (s *ItemService) Handovers(ctx context.Context, limit int) ([]*models.HandoverRecord, error) {
	return s.handovers.List(ctx, limit)
}

// Stats reports dashboard counters over the item catalogue.
func (s *ItemService) Stats(ctx context.Context) (*repositories.ItemStats, error) {
	return s.items.Stats(ctx)
}

func (s *ItemService) cacheItem(ctx context.Context, item *models.Item) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Set(ctx, &cache.CachedItem{
		ID:              item.ID,
		Kind:            string(item.Kind),
		Category:        string(item.Category),
		Description:     item.Description,
		Location:        item.Location,
		Status:          string(item.Status),
		StorageLocation: item.StorageLocation,
		ReportedAt:      item.ReportedAt,
	})
}

func (s *ItemService) invalidate(ctx context.Context, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	_ = s.cache.Delete(ctx, id)
}
