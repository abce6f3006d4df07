package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskeep/campuskeep/pkg/database"
	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

const handoverColumns = `id, item_id, handed_over_to_id, handed_over_by_name, remarks, handed_over_at`

// HandoverRepository implements repositories.HandoverRepository against
// PostgreSQL. Handover rows are append-only; the UNIQUE constraint on item_id
// enforces at most one record per item regardless of caller races.
type HandoverRepository struct {
	db *database.Database
}

// NewHandoverRepository returns a HandoverRepository backed by the given pool.
func NewHandoverRepository(db *database.Database) *HandoverRepository {
	return &HandoverRepository{db: db}
}

// Create inserts the handover record and applies the item's RETURNED
// transition with its audit entry in one transaction. A second record for the
// same item returns ErrConflict and writes nothing.
func (r *HandoverRepository) Create(ctx context.Context, rec *models.HandoverRecord, item *models.Item, entry *models.AuditEntry) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO handovers (`+handoverColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			rec.ID, rec.ItemID, rec.HandedOverToID, rec.HandedOverByName,
			rec.Remarks, rec.HandedOverAt,
		); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: item %s already has a handover record", lfdomain.ErrConflict, rec.ItemID)
			}
			return fmt.Errorf("insert handover: %w", err)
		}
		if err := updateItemTx(ctx, tx, item); err != nil {
			return err
		}
		return insertAudit(ctx, tx, entry)
	})
	if err != nil {
		return err
	}
	item.Version++
	return nil
}

// GetByItem retrieves the handover record for an item. A nil record with a
// nil error means the item was never handed over.
func (r *HandoverRepository) GetByItem(ctx context.Context, itemID uuid.UUID) (*models.HandoverRecord, error) {
	row := r.db.DB().QueryRowContext(ctx, `
		SELECT `+handoverColumns+` FROM handovers WHERE item_id = $1`, itemID)
	rec, err := scanHandover(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("query handover: %w", err)
	}
	return rec, nil
}

// List retrieves handover records, most recent first.
func (r *HandoverRepository) List(ctx context.Context, limit int) ([]*models.HandoverRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT `+handoverColumns+` FROM handovers
		ORDER BY handed_over_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query handovers: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var recs []*models.HandoverRecord
	for rows.Next() {
		rec, err := scanHandover(rows)
		if err != nil {
			return nil, fmt.Errorf("scan handover: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate handovers: %w", err)
	}
	return recs, nil
}

func scanHandover(row rowScanner) (*models.HandoverRecord, error) {
	var rec models.HandoverRecord
	if err := row.Scan(
		&rec.ID, &rec.ItemID, &rec.HandedOverToID, &rec.HandedOverByName,
		&rec.Remarks, &rec.HandedOverAt,
	); err != nil {
		return nil, err
	}
	return &rec, nil
}
