package services

import (
	"context"
	"errors"
	"testing"

	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/events"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

func TestMatchService_Suggest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	lost := f.reportItem(t, models.KindLost, "black dell laptop with red sticker")
	strong := f.verifiedFoundItem(t, "dell laptop, black, red sticker on lid")
	weak := f.verifiedFoundItem(t, "laptop charger, white")
	f.reportItem(t, models.KindLost, "dell laptop")

	suggestions, err := f.matches.Suggest(ctx, lost.ID)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("len = %d, want 2 (other lost reports excluded)", len(suggestions))
	}
	if suggestions[0].FoundItem.ID != strong.ID || suggestions[0].Confidence != models.ConfidenceHigh {
		t.Error("high-confidence candidate not ranked first")
	}
	if suggestions[1].FoundItem.ID != weak.ID || suggestions[1].Confidence != models.ConfidenceLow {
		t.Error("low-confidence candidate missing or misranked")
	}
}

func TestMatchService_Link(t *testing.T) {
	t.Run("symmetric link with one audit entry", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		lost := f.reportItem(t, models.KindLost, "black wallet")
		found := f.verifiedFoundItem(t, "black leather wallet")

		a, b, err := f.matches.Link(ctx, admin, lost.ID, found.ID)
		if err != nil {
			t.Fatalf("Link: %v", err)
		}
		if a.LinkedItemID == nil || *a.LinkedItemID != b.ID || b.LinkedItemID == nil || *b.LinkedItemID != a.ID {
			t.Error("link not symmetric")
		}

		auditBefore := len(f.store.actions())

		// Relinking the same pair is a no-op success.
		if _, _, err := f.matches.Link(ctx, admin, lost.ID, found.ID); err != nil {
			t.Fatalf("relink: %v", err)
		}
		if len(f.store.actions()) != auditBefore {
			t.Error("idempotent relink must not append a second audit entry")
		}
	})

	t.Run("category mismatch", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		lost := f.reportItem(t, models.KindLost, "black wallet")
		found, err := f.items.Create(ctx, CreateItemInput{
			Kind:        models.KindFound,
			Category:    models.CategoryKeys,
			Description: "black key pouch",
			Location:    "canteen",
		})
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if _, _, err := f.matches.Link(ctx, admin, lost.ID, found.ID); !errors.Is(err, domain.ErrCategoryMismatch) {
			t.Fatalf("err = %v, want ErrCategoryMismatch", err)
		}
	})

	t.Run("already linked elsewhere", func(t *testing.T) {
		f := newFixture()
		ctx := context.Background()
		lostA := f.reportItem(t, models.KindLost, "black wallet")
		lostB := f.reportItem(t, models.KindLost, "dark wallet")
		found := f.verifiedFoundItem(t, "black leather wallet")

		if _, _, err := f.matches.Link(ctx, admin, lostA.ID, found.ID); err != nil {
			t.Fatalf("first link: %v", err)
		}
		if _, _, err := f.matches.Link(ctx, admin, lostB.ID, found.ID); !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})
}

func TestBroadcastService_Broadcast(t *testing.T) {
	t.Run("audited and queued once", func(t *testing.T) {
		f := newFixture()
		id, err := f.broadcasts.Broadcast(context.Background(), admin, "Found: stack of ID cards", "Collect from the admin block desk.", "DOCUMENTS")
		if err != nil {
			t.Fatalf("Broadcast: %v", err)
		}
		if len(f.store.events) != 1 || f.store.events[0].topic != events.TopicBroadcastRequested {
			t.Fatalf("events = %v, want one broadcast.requested", f.store.events)
		}
		evt, ok := f.store.events[0].payload.(events.BroadcastRequestedEvent)
		if !ok || evt.EventID != id {
			t.Error("returned broadcast id does not match published event")
		}
		if got := f.store.actions(); len(got) != 1 || got[0] != models.ActionBroadcast {
			t.Errorf("audit actions = %v, want [BROADCAST]", got)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		f := newFixture()
		_, err := f.broadcasts.Broadcast(context.Background(), admin, "  ", "body", "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		f := newFixture()
		_, err := f.broadcasts.Broadcast(context.Background(), admin, "title", "body", "GADGETS")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})
}
