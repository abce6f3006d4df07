package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campuskeep/campuskeep/pkg/database"
	"github.com/campuskeep/campuskeep/pkg/events"
	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
	domainevents "github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

const claimColumns = `id, item_id, claimant_id, verification_details, proof_image_url,
	status, admin_remarks, submitted_at`

// ClaimRepository implements repositories.ClaimRepository against PostgreSQL.
type ClaimRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewClaimRepository returns a ClaimRepository backed by the given connection
// pool and event bus.
func NewClaimRepository(db *database.Database, bus *events.EventBus) *ClaimRepository {
	return &ClaimRepository{db: db, bus: bus}
}

// Create persists a new pending claim.
func (r *ClaimRepository) Create(ctx context.Context, claim *models.Claim) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO claims (`+claimColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		claim.ID, claim.ItemID, claim.ClaimantID, claim.VerificationDetails,
		claim.ProofImageURL, claim.Status, claim.AdminRemarks, claim.SubmittedAt,
	); err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// GetByID retrieves a claim by ID. Returns ErrClaimNotFound if not found.
func (r *ClaimRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Claim, error) {
	row := r.db.DB().QueryRowContext(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id)
	claim, err := scanClaim(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, lfdomain.ErrClaimNotFound
		}
		return nil, fmt.Errorf("query claim: %w", err)
	}
	return claim, nil
}

// Find retrieves claims matching the filter, newest submission first.
func (r *ClaimRepository) Find(ctx context.Context, filter repositories.ClaimFilter) ([]*models.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE 1=1`
	var args []any

	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.ItemID != nil {
		args = append(args, *filter.ItemID)
		query += fmt.Sprintf(" AND item_id = $%d", len(args))
	}
	if filter.ClaimantID != nil {
		args = append(args, *filter.ClaimantID)
		query += fmt.Sprintf(" AND claimant_id = $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY submitted_at DESC LIMIT $%d", len(args))

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query claims: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var claims []*models.Claim
	for rows.Next() {
		claim, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim: %w", err)
		}
		claims = append(claims, claim)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claims: %w", err)
	}
	return claims, nil
}

// HasPending reports whether the claimant already has a pending claim on the item.
func (r *ClaimRepository) HasPending(ctx context.Context, itemID, claimantID uuid.UUID) (bool, error) {
	var exists bool
	if err := r.db.DB().QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM claims
			WHERE item_id = $1 AND claimant_id = $2 AND status = 'PENDING'
		)`, itemID, claimantID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check pending claim: %w", err)
	}
	return exists, nil
}

// Decide finalizes the claim atomically with its side effects: superseded
// sibling claims are rejected, the item status change is applied (version
// checked) when item is non-nil, the audit entry is appended, and
// ClaimDecidedEvents reach the outbox. The claim row is guarded on
// status = PENDING; a lost guard returns ErrAlreadyDecided and writes nothing.
// The partial unique index on (item_id) WHERE status = 'APPROVED' backstops
// the single-approval invariant; a violation surfaces as ErrConflict.
func (r *ClaimRepository) Decide(ctx context.Context, claim *models.Claim, superseded []*models.Claim, item *models.Item, entry *models.AuditEntry) error {
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE claims SET status = $1, admin_remarks = $2
			WHERE id = $3 AND status = 'PENDING'`,
			claim.Status, claim.AdminRemarks, claim.ID,
		)
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == "23505" {
				return fmt.Errorf("%w: item %s already has an approved claim", lfdomain.ErrConflict, claim.ItemID)
			}
			return fmt.Errorf("update claim: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update claim: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: claim %s", lfdomain.ErrAlreadyDecided, claim.ID)
		}

		for _, sib := range superseded {
			if _, err := tx.ExecContext(ctx, `
				UPDATE claims SET status = $1, admin_remarks = $2
				WHERE id = $3 AND status = 'PENDING'`,
				sib.Status, sib.AdminRemarks, sib.ID,
			); err != nil {
				return fmt.Errorf("supersede claim %s: %w", sib.ID, err)
			}
		}

		if item != nil {
			if err := updateItemTx(ctx, tx, item); err != nil {
				return err
			}
		}

		if err := insertAudit(ctx, tx, entry); err != nil {
			return err
		}

		event := domainevents.ClaimDecidedEvent{
			EventID:    uuid.New(),
			Version:    1,
			ClaimID:    claim.ID,
			ItemID:     claim.ItemID,
			ClaimantID: claim.ClaimantID,
			Decision:   claim.Status,
			Remarks:    claim.AdminRemarks,
			OccurredAt: entry.Timestamp,
		}
		if err := publishTx(r.bus, tx, domainevents.TopicClaimDecided, event.EventID, event); err != nil {
			return fmt.Errorf("publish claim decided: %w", err)
		}
		for _, sib := range superseded {
			sibEvent := domainevents.ClaimDecidedEvent{
				EventID:    uuid.New(),
				Version:    1,
				ClaimID:    sib.ID,
				ItemID:     sib.ItemID,
				ClaimantID: sib.ClaimantID,
				Decision:   sib.Status,
				Superseded: true,
				Remarks:    sib.AdminRemarks,
				OccurredAt: entry.Timestamp,
			}
			if err := publishTx(r.bus, tx, domainevents.TopicClaimDecided, sibEvent.EventID, sibEvent); err != nil {
				return fmt.Errorf("publish superseded claim: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	if item != nil {
		item.Version++
	}
	return nil
}

// scanClaim maps one claims row to a domain models.Claim.
func scanClaim(row rowScanner) (*models.Claim, error) {
	var claim models.Claim
	if err := row.Scan(
		&claim.ID, &claim.ItemID, &claim.ClaimantID, &claim.VerificationDetails,
		&claim.ProofImageURL, &claim.Status, &claim.AdminRemarks, &claim.SubmittedAt,
	); err != nil {
		return nil, err
	}
	return &claim, nil
}
