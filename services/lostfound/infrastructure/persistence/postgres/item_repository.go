package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/database"
	"github.com/campuskeep/campuskeep/pkg/events"
	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
	domainevents "github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

const itemColumns = `id, kind, category, description, location, reported_at, reporter_id,
	status, storage_location, admin_remarks, verified_by_name, verified_at,
	linked_item_id, image_url, version, created_at`

// ItemRepository implements repositories.ItemRepository against PostgreSQL.
type ItemRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewItemRepository returns an ItemRepository backed by the given connection
// pool and event bus. The bus is used to publish lifecycle events from inside
// the mutation transaction.
func NewItemRepository(db *database.Database, bus *events.EventBus) *ItemRepository {
	return &ItemRepository{db: db, bus: bus}
}

// Create persists a new report and publishes ItemCreatedEvent within the same transaction.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO items (`+itemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`,
			item.ID, item.Kind, item.Category, item.Description, item.Location,
			item.ReportedAt, nullUUID(item.ReporterID), item.Status,
			item.StorageLocation, item.AdminRemarks, item.VerifiedByName,
			item.VerifiedAt, nullUUID(item.LinkedItemID), item.ImageURL,
			item.Version, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert item: %w", err)
		}

		event := domainevents.ItemCreatedEvent{
			EventID:     uuid.New(),
			Version:     1,
			ItemID:      item.ID,
			Kind:        item.Kind,
			Category:    item.Category,
			Description: item.Description,
			Location:    item.Location,
			Status:      item.Status,
			ReporterID:  item.ReporterID,
			OccurredAt:  item.CreatedAt,
		}
		if err := publishTx(r.bus, tx, domainevents.TopicItemCreated, event.EventID, event); err != nil {
			return fmt.Errorf("publish item created: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an Item by ID. Returns ErrItemNotFound if not found.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lfdomain.ErrItemNotFound
		}
		return nil, fmt.Errorf("query item: %w", err)
	}
	return item, nil
}

// Find retrieves items matching the filter, most recent report first.
func (r *ItemRepository) Find(ctx context.Context, filter repositories.ItemFilter) ([]*models.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE 1=1`
	var args []any

	add := func(clause string, arg any) {
		args = append(args, arg)
		query += fmt.Sprintf(" AND "+clause, len(args))
	}

	if filter.Kind != nil {
		add("kind = $%d", *filter.Kind)
	}
	if filter.Status != nil {
		add("status = $%d", *filter.Status)
	}
	if filter.Category != nil {
		add("category = $%d", *filter.Category)
	}
	if filter.Query != "" {
		args = append(args, "%"+filter.Query+"%")
		n := len(args)
		query += fmt.Sprintf(" AND (description ILIKE $%d OR location ILIKE $%d OR category ILIKE $%d)", n, n, n)
	}
	if filter.From != nil {
		add("reported_at >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("reported_at <= $%d", *filter.To)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY reported_at DESC LIMIT $%d", len(args))

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanItems(rows)
}

// FindMatchCandidates retrieves unlinked items of the given kind and category
// for the match resolver, most recent first.
func (r *ItemRepository) FindMatchCandidates(ctx context.Context, kind models.ReportKind, category models.Category) ([]*models.Item, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+itemColumns+` FROM items
		WHERE kind = $1 AND category = $2 AND linked_item_id IS NULL
		ORDER BY reported_at DESC
		LIMIT 200`, kind, category)
	if err != nil {
		return nil, fmt.Errorf("query match candidates: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	return scanItems(rows)
}

// Update persists item state with an optimistic version check and appends the
// audit entry in the same transaction. A stale version returns ErrConflict.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item, entry *models.AuditEntry) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := updateItemTx(ctx, tx, item); err != nil {
			return err
		}
		if entry != nil {
			return insertAudit(ctx, tx, entry)
		}
		return nil
	})
	if err != nil {
		return err
	}
	item.Version++
	return nil
}

// Link writes the symmetric link between both items, appends the audit entry,
// and publishes ItemsLinkedEvent, all in one transaction. Each side carries
// its own version check so a concurrent link attempt loses cleanly.
func (r *ItemRepository) Link(ctx context.Context, a, b *models.Item, entry *models.AuditEntry) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		for _, item := range []*models.Item{a, b} {
			if err := updateItemTx(ctx, tx, item); err != nil {
				return err
			}
		}
		if err := insertAudit(ctx, tx, entry); err != nil {
			return err
		}

		lost, found := a, b
		if lost.Kind != models.KindLost {
			lost, found = b, a
		}
		event := domainevents.ItemsLinkedEvent{
			EventID:         uuid.New(),
			Version:         1,
			LostItemID:      lost.ID,
			FoundItemID:     found.ID,
			Category:        lost.Category,
			LostReporterID:  lost.ReporterID,
			FoundReporterID: found.ReporterID,
			OccurredAt:      entry.Timestamp,
		}
		if err := publishTx(r.bus, tx, domainevents.TopicItemsLinked, event.EventID, event); err != nil {
			return fmt.Errorf("publish items linked: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	a.Version++
	b.Version++
	return nil
}

// Stats computes the dashboard overview aggregate.
func (r *ItemRepository) Stats(ctx context.Context) (*repositories.ItemStats, error) {
	stats := &repositories.ItemStats{CategoryBreakdown: make(map[models.Category]int)}

	row := r.db.DB().QueryRowContext(ctx, `
		SELECT
			count(*) FILTER (WHERE kind = 'LOST'),
			count(*) FILTER (WHERE kind = 'FOUND'),
			count(*) FILTER (WHERE status = 'PENDING'),
			count(*) FILTER (WHERE status = 'AVAILABLE'),
			count(*) FILTER (WHERE category = ANY($1) AND status IN ('OPEN', 'PENDING', 'AVAILABLE')),
			count(*) FILTER (WHERE kind = 'FOUND' AND status = 'RETURNED')
		FROM items`,
		highRiskArray(),
	)
	var foundReturned int
	if err := row.Scan(
		&stats.TotalLost, &stats.TotalFound, &stats.PendingVerification,
		&stats.Available, &stats.HighRiskOpen, &foundReturned,
	); err != nil {
		return nil, fmt.Errorf("query item stats: %w", err)
	}
	if stats.TotalFound > 0 {
		stats.RecoveryRatePercent = float64(foundReturned) / float64(stats.TotalFound) * 100
	}

	// An item counts as returned when it was handed over, so the last-24h
	// counter keys on the handover time rather than the verification time.
	row = r.db.DB().QueryRowContext(ctx, `
		SELECT count(*) FROM handovers WHERE handed_over_at >= $1`,
		time.Now().UTC().Add(-24*time.Hour),
	)
	if err := row.Scan(&stats.ReturnedLastDay); err != nil {
		return nil, fmt.Errorf("query recent handovers: %w", err)
	}

	rows, err := r.db.DB().QueryContext(ctx, `SELECT category, count(*) FROM items GROUP BY category`)
	if err != nil {
		return nil, fmt.Errorf("query category breakdown: %w", err)
	}
	defer rows.Close() //nolint:errcheck
	for rows.Next() {
		var cat models.Category
		var n int
		if err := rows.Scan(&cat, &n); err != nil {
			return nil, fmt.Errorf("scan category breakdown: %w", err)
		}
		stats.CategoryBreakdown[cat] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate category breakdown: %w", err)
	}

	row = r.db.DB().QueryRowContext(ctx, `SELECT count(*) FROM claims WHERE status = 'PENDING'`)
	if err := row.Scan(&stats.PendingClaims); err != nil {
		return nil, fmt.Errorf("query pending claims: %w", err)
	}
	return stats, nil
}

// updateItemTx writes the item's mutable columns guarded on the version the
// caller read. Zero rows affected means either a concurrent writer advanced
// the version (ErrConflict) or the row vanished (ErrItemNotFound).
func updateItemTx(ctx context.Context, tx *sql.Tx, item *models.Item) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE items SET
			status = $1, storage_location = $2, admin_remarks = $3,
			verified_by_name = $4, verified_at = $5, linked_item_id = $6,
			version = version + 1
		WHERE id = $7 AND version = $8`,
		item.Status, item.StorageLocation, item.AdminRemarks,
		item.VerifiedByName, item.VerifiedAt, nullUUID(item.LinkedItemID),
		item.ID, item.Version,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM items WHERE id = $1)`, item.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check item exists: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: item %s was modified concurrently", lfdomain.ErrConflict, item.ID)
		}
		return lfdomain.ErrItemNotFound
	}
	return nil
}

func highRiskArray() []string {
	out := make([]string, len(models.HighRiskCategories))
	for i, c := range models.HighRiskCategories {
		out[i] = string(c)
	}
	return out
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanItem maps one items row to a domain models.Item.
func scanItem(row rowScanner) (*models.Item, error) {
	var item models.Item
	var reporterID, linkedItemID sql.Null[uuid.UUID]
	var verifiedAt sql.NullTime

	if err := row.Scan(
		&item.ID, &item.Kind, &item.Category, &item.Description, &item.Location,
		&item.ReportedAt, &reporterID, &item.Status, &item.StorageLocation,
		&item.AdminRemarks, &item.VerifiedByName, &verifiedAt,
		&linkedItemID, &item.ImageURL, &item.Version, &item.CreatedAt,
	); err != nil {
		return nil, err
	}
	if reporterID.Valid {
		id := reporterID.V
		item.ReporterID = &id
	}
	if linkedItemID.Valid {
		id := linkedItemID.V
		item.LinkedItemID = &id
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		item.VerifiedAt = &t
	}
	return &item, nil
}

func scanItems(rows *sql.Rows) ([]*models.Item, error) {
	var items []*models.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return items, nil
}
