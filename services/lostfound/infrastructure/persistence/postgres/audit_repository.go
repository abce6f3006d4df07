package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/campuskeep/campuskeep/pkg/database"
	"github.com/campuskeep/campuskeep/pkg/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
)

// AuditRepository implements repositories.AuditRepository against PostgreSQL.
// The ledger is append-only: no update or delete statement exists here.
type AuditRepository struct {
	db  *database.Database
	bus *events.EventBus
}

// NewAuditRepository returns an AuditRepository backed by the given pool and bus.
func NewAuditRepository(db *database.Database, bus *events.EventBus) *AuditRepository {
	return &AuditRepository{db: db, bus: bus}
}

// Append inserts the entry. It never raises business-rule errors; a failure
// means the store itself is unavailable.
func (r *AuditRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		return insertAudit(ctx, tx, entry)
	})
}

// AppendWithEvent inserts the entry and publishes the event to the outbox in
// the same transaction, so the ledger and the dispatcher never disagree about
// whether an action happened.
func (r *AuditRepository) AppendWithEvent(ctx context.Context, entry *models.AuditEntry, topic string, payload any) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := insertAudit(ctx, tx, entry); err != nil {
			return err
		}
		if err := publishTx(r.bus, tx, topic, entry.ID, payload); err != nil {
			return fmt.Errorf("publish %s: %w", topic, err)
		}
		return nil
	})
}

// Query returns entries matching the filter, newest first.
func (r *AuditRepository) Query(ctx context.Context, filter repositories.AuditFilter) ([]*models.AuditEntry, error) {
	query := `SELECT id, admin_id, admin_name, action, target_type, target_id, details, ts
		FROM audit_logs WHERE 1=1`
	var args []any

	if filter.Action != "" {
		args = append(args, filter.Action)
		query += fmt.Sprintf(" AND action = $%d", len(args))
	}
	if filter.TargetType != "" {
		args = append(args, filter.TargetType)
		query += fmt.Sprintf(" AND target_type = $%d", len(args))
	}
	if filter.TargetID != "" {
		args = append(args, filter.TargetID)
		query += fmt.Sprintf(" AND target_id = $%d", len(args))
	}

	limit := filter.Limit
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY ts DESC LIMIT $%d", len(args))

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var entries []*models.AuditEntry
	for rows.Next() {
		var entry models.AuditEntry
		var details []byte
		if err := rows.Scan(
			&entry.ID, &entry.AdminID, &entry.AdminName, &entry.Action,
			&entry.TargetType, &entry.TargetID, &details, &entry.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if len(details) > 0 {
			if err := json.Unmarshal(details, &entry.Details); err != nil {
				return nil, fmt.Errorf("decode audit details: %w", err)
			}
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit log: %w", err)
	}
	return entries, nil
}
