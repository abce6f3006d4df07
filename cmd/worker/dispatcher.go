package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/app"
	"github.com/campuskeep/campuskeep/pkg/cache"
	"github.com/campuskeep/campuskeep/pkg/logger"
	lfevents "github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/repositories"
	"github.com/campuskeep/campuskeep/services/lostfound/infrastructure/persistence/postgres"
)

// dispatcher turns published domain events into side effects: read-model
// cache warming and notification inbox writes.
// Handlers must be idempotent; the EventBus retries up to 3x on failure and
// duplicate inbox rows are tolerated by readers.
type dispatcher struct {
	notifications repositories.NotificationRepository
	itemCache     *cache.ItemCache
	log           logger.Logger
}

func newDispatcher(a *app.Application) *dispatcher {
	return &dispatcher{
		notifications: postgres.NewNotificationRepository(a.Db),
		itemCache:     cache.NewItemCache(a.Redis),
		log:           a.Logger,
	}
}

// handleItemCreated warms the Redis read-model cache so subsequent item reads
// are served from cache.
func (d *dispatcher) handleItemCreated(ctx context.Context, msg *message.Message) error {
	var evt lfevents.ItemCreatedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}

	if err := d.itemCache.Set(ctx, &cache.CachedItem{
		ID:          evt.ItemID,
		Kind:        string(evt.Kind),
		Category:    string(evt.Category),
		Description: evt.Description,
		Location:    evt.Location,
		Status:      string(evt.Status),
		ReportedAt:  evt.OccurredAt,
	}); err != nil {
		// Cache warming is best-effort; log but do not fail the handler.
		d.log.WarnContext(ctx, "cache warm failed for item.created",
			"item_id", evt.ItemID, "error", err)
		return nil
	}
	d.log.InfoContext(ctx, "cache warmed", "item_id", evt.ItemID)
	return nil
}

// handleItemsLinked notifies the reporters on both sides of a confirmed link.
func (d *dispatcher) handleItemsLinked(ctx context.Context, msg *message.Message) error {
	var evt lfevents.ItemsLinkedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}

	notify := func(recipient *uuid.UUID, itemID uuid.UUID) error {
		if recipient == nil {
			return nil
		}
		n := models.NewNotification(*recipient,
			"Possible match for your report",
			fmt.Sprintf("Your %s report was linked to a matching report. Visit the lost and found desk to proceed.", evt.Category),
			models.NotificationItemLinked,
			itemID.String(),
		)
		return d.notifications.Create(ctx, n)
	}

	if err := notify(evt.LostReporterID, evt.LostItemID); err != nil {
		return fmt.Errorf("notify lost reporter: %w", err)
	}
	if err := notify(evt.FoundReporterID, evt.FoundItemID); err != nil {
		return fmt.Errorf("notify found reporter: %w", err)
	}
	d.log.InfoContext(ctx, "link notifications written",
		"lost_item_id", evt.LostItemID, "found_item_id", evt.FoundItemID)
	return nil
}

// handleOwnerNotified writes an inbox entry for the reporter of a lost item.
func (d *dispatcher) handleOwnerNotified(ctx context.Context, msg *message.Message) error {
	var evt lfevents.OwnerNotifiedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}

	body := "An item matching your lost report is with the lost and found desk."
	if evt.Remarks != "" {
		body = fmt.Sprintf("%s %s", body, evt.Remarks)
	}
	n := models.NewNotification(evt.ReporterID,
		"Your item may have been found",
		body,
		models.NotificationOwnerAlert,
		evt.ItemID.String(),
	)
	if err := d.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("write owner alert: %w", err)
	}
	d.log.InfoContext(ctx, "owner alert written", "item_id", evt.ItemID, "reporter_id", evt.ReporterID)
	return nil
}

// handleClaimDecided notifies the claimant of the decision on their claim.
func (d *dispatcher) handleClaimDecided(ctx context.Context, msg *message.Message) error {
	var evt lfevents.ClaimDecidedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}

	var title, body string
	switch {
	case evt.Decision == models.ClaimApproved:
		title = "Your claim was approved"
		body = "Collect your item from the lost and found desk with your student ID."
	case evt.Superseded:
		title = "Your claim was not successful"
		body = "The item was awarded to another verified claimant."
	default:
		title = "Your claim was rejected"
		body = "The verification details provided did not match the item."
	}
	if evt.Remarks != "" && !evt.Superseded {
		body = fmt.Sprintf("%s Staff remarks: %s", body, evt.Remarks)
	}

	n := models.NewNotification(evt.ClaimantID, title, body, models.NotificationClaimDecision, evt.ClaimID.String())
	if err := d.notifications.Create(ctx, n); err != nil {
		return fmt.Errorf("write claim decision notification: %w", err)
	}
	d.log.InfoContext(ctx, "claim decision notification written",
		"claim_id", evt.ClaimID, "decision", evt.Decision, "superseded", evt.Superseded)
	return nil
}

// handleBroadcastRequested fans the announcement out to every registered
// recipient's inbox.
func (d *dispatcher) handleBroadcastRequested(ctx context.Context, msg *message.Message) error {
	var evt lfevents.BroadcastRequestedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return err
	}

	delivered, err := d.notifications.FanOut(ctx, func(recipientID uuid.UUID) *models.Notification {
		return models.NewNotification(recipientID, evt.Title, evt.Message, models.NotificationBroadcast, "")
	})
	if err != nil {
		d.log.WarnContext(ctx, "broadcast fan-out completed with failures",
			"broadcast_id", evt.EventID, "delivered", delivered, "error", err)
		return nil
	}
	d.log.InfoContext(ctx, "broadcast fanned out",
		"broadcast_id", evt.EventID, "delivered", delivered)
	return nil
}
