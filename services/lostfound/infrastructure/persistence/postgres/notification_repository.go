package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/database"
	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

const notificationColumns = `id, recipient_id, title, message, kind, related_id, read, created_at`

// NotificationRepository implements repositories.NotificationRepository
// against PostgreSQL.
type NotificationRepository struct {
	db *database.Database
}

// NewNotificationRepository returns a NotificationRepository backed by the given pool.
func NewNotificationRepository(db *database.Database) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// Create inserts a notification row.
func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if _, err := r.db.DB().ExecContext(ctx, `
		INSERT INTO notifications (`+notificationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.RecipientID, n.Title, n.Message, n.Kind, n.RelatedID, n.Read, n.CreatedAt,
	); err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// FanOut delivers a broadcast to every registered recipient (each distinct
// user that has filed a report). Individual insert failures are skipped so
// one bad row cannot block the rest of the fan-out; the caller gets the
// successful count and the first error for logging.
func (r *NotificationRepository) FanOut(ctx context.Context, build func(recipientID uuid.UUID) *models.Notification) (int, error) {
	rows, err := r.db.DB().QueryContext(ctx, `
		SELECT DISTINCT reporter_id FROM items WHERE reporter_id IS NOT NULL`)
	if err != nil {
		return 0, fmt.Errorf("query recipients: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var recipients []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return 0, fmt.Errorf("scan recipient: %w", err)
		}
		recipients = append(recipients, id)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("iterate recipients: %w", err)
	}

	var delivered int
	var firstErr error
	for _, recipient := range recipients {
		if err := r.Create(ctx, build(recipient)); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		delivered++
	}
	return delivered, firstErr
}

// ListByRecipient retrieves the recipient's inbox, newest first.
func (r *NotificationRepository) ListByRecipient(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, limit int) ([]*models.Notification, error) {
	query := `SELECT ` + notificationColumns + ` FROM notifications WHERE recipient_id = $1`
	if unreadOnly {
		query += ` AND read = false`
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	query += ` ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.DB().QueryContext(ctx, query, recipientID, limit)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var out []*models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.Title, &n.Message, &n.Kind,
			&n.RelatedID, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notifications: %w", err)
	}
	return out, nil
}

// MarkRead flags the notification read, scoped to the recipient so one user
// cannot touch another's inbox.
func (r *NotificationRepository) MarkRead(ctx context.Context, recipientID, id uuid.UUID) error {
	res, err := r.db.DB().ExecContext(ctx, `
		UPDATE notifications SET read = true
		WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if affected == 0 {
		return lfdomain.ErrNotificationNotFound
	}
	return nil
}
