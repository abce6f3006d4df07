package services

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

func TestKeywords(t *testing.T) {
	got := Keywords("Lost a black Dell laptop near the library, 15in")
	want := map[string]struct{}{
		"black": {}, "dell": {}, "laptop": {}, "library": {}, "15in": {},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords() = %v, want %v", got, want)
	}
}

func TestSharedKeywords_SortedIntersection(t *testing.T) {
	got := SharedKeywords(
		"black dell laptop with stickers",
		"dell laptop, black,  found in canteen",
	)
	want := []string{"black", "dell", "laptop"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SharedKeywords() = %v, want %v", got, want)
	}
}

func matchItem(kind models.ReportKind, status models.ItemStatus, desc string, reportedAt time.Time) *models.Item {
	item := models.NewItem(kind, models.CategoryDevices, desc, "campus", reportedAt, nil, "")
	item.Status = status
	return item
}

func TestSuggestMatches_ConfidenceAndOrder(t *testing.T) {
	now := time.Now().UTC()
	lost := matchItem(models.KindLost, models.StatusOpen, "black dell laptop with red sticker", now)

	weakOld := matchItem(models.KindFound, models.StatusAvailable, "laptop charger", now.Add(-48*time.Hour))
	weakNew := matchItem(models.KindFound, models.StatusAvailable, "grey laptop sleeve", now.Add(-1*time.Hour))
	strong := matchItem(models.KindFound, models.StatusAvailable, "dell laptop, black", now.Add(-24*time.Hour))

	got := SuggestMatches(lost, []*models.Item{weakOld, weakNew, strong}, 2)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	if got[0].FoundItem.ID != strong.ID || got[0].Confidence != models.ConfidenceHigh {
		t.Errorf("first suggestion = %s (%s), want high-confidence match first", got[0].FoundItem.Description, got[0].Confidence)
	}
	// LOW band ordered most recent first.
	if got[1].FoundItem.ID != weakNew.ID || got[2].FoundItem.ID != weakOld.ID {
		t.Errorf("low band order = [%s, %s], want newest first", got[1].FoundItem.Description, got[2].FoundItem.Description)
	}
	if got[1].Confidence != models.ConfidenceLow {
		t.Errorf("confidence = %s, want LOW", got[1].Confidence)
	}
}

func TestSuggestMatches_SkipsIneligibleCandidates(t *testing.T) {
	now := time.Now().UTC()
	lost := matchItem(models.KindLost, models.StatusOpen, "silver key ring", now)

	sameKind := matchItem(models.KindLost, models.StatusOpen, "silver key ring", now)
	claimed := matchItem(models.KindFound, models.StatusClaimed, "silver key ring", now)
	linkedID := uuid.New()
	linked := matchItem(models.KindFound, models.StatusAvailable, "silver key ring", now)
	linked.LinkedItemID = &linkedID
	wrongCategory := matchItem(models.KindFound, models.StatusAvailable, "silver key ring", now)
	wrongCategory.Category = models.CategoryKeys

	got := SuggestMatches(lost, []*models.Item{sameKind, claimed, linked, wrongCategory}, 2)
	if len(got) != 0 {
		t.Errorf("len = %d, want 0 suggestions from ineligible candidates", len(got))
	}
}

func TestSuggestMatches_LostAndFoundSidesAssigned(t *testing.T) {
	now := time.Now().UTC()
	found := matchItem(models.KindFound, models.StatusPending, "blue water bottle", now)
	lost := matchItem(models.KindLost, models.StatusOpen, "blue water bottle", now)

	got := SuggestMatches(found, []*models.Item{lost}, 2)
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].LostItem.ID != lost.ID || got[0].FoundItem.ID != found.ID {
		t.Error("suggestion sides not assigned by report kind")
	}
}
