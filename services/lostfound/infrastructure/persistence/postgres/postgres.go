// Package postgres implements the lost-and-found repository interfaces
// against PostgreSQL. Mutations that carry an audit entry apply the entity
// write, the audit append, and any outbox publish in a single transaction.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// publishTx publishes payload to topic through a publisher bound to tx, so
// the event reaches the outbox only if the surrounding transaction commits.
// A nil bus is a no-op (unit tests, migration tooling).
func publishTx(bus *events.EventBus, tx *sql.Tx, topic string, eventID uuid.UUID, payload any) error {
	if bus == nil {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	msg := message.NewMessage(watermill.NewUUID(), body)
	msg.Metadata.Set("event_id", eventID.String())
	msg.Metadata.Set("event_version", "1")
	p, err := bus.NewTxPublisher(tx)
	if err != nil {
		return fmt.Errorf("create publisher: %w", err)
	}
	return p.Publish(topic, msg)
}

// insertAudit appends the entry inside the caller's transaction.
func insertAudit(ctx context.Context, tx *sql.Tx, entry *models.AuditEntry) error {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("marshal audit details: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `
		INSERT INTO audit_logs (id, admin_id, admin_name, action, target_type, target_id, details, ts)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.AdminID, entry.AdminName, entry.Action,
		entry.TargetType, entry.TargetID, payload, entry.Timestamp,
	); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// nullUUID maps an optional uuid to its sql representation.
func nullUUID(id *uuid.UUID) any {
	if id == nil {
		return nil
	}
	return *id
}
