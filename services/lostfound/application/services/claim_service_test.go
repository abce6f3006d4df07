package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/campuskeep/campuskeep/pkg/auth"
	"github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

func TestClaimService_Submit(t *testing.T) {
	t.Run("pending claim on available item", func(t *testing.T) {
		f := newFixture()
		item := f.verifiedFoundItem(t, "blue earbuds case")

		claim, err := f.claims.Submit(context.Background(), student, item.ID, "left earbud has a scratch", "")
		if err != nil {
			t.Fatalf("Submit: %v", err)
		}
		if claim.Status != models.ClaimPending {
			t.Errorf("status = %s, want PENDING", claim.Status)
		}
		if claim.ClaimantID != student.ID {
			t.Error("claimant not recorded")
		}
	})

	t.Run("unverified item not claimable", func(t *testing.T) {
		f := newFixture()
		item := f.reportItem(t, models.KindFound, "blue earbuds case")
		_, err := f.claims.Submit(context.Background(), student, item.ID, "left earbud has a scratch", "")
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("err = %v, want ErrInvalidState", err)
		}
	})

	t.Run("lost reports not claimable", func(t *testing.T) {
		f := newFixture()
		item := f.reportItem(t, models.KindLost, "blue earbuds case")
		_, err := f.claims.Submit(context.Background(), student, item.ID, "left earbud has a scratch", "")
		if !errors.Is(err, domain.ErrInvalidState) {
			t.Fatalf("err = %v, want ErrInvalidState", err)
		}
	})

	t.Run("closed item", func(t *testing.T) {
		f := newFixture()
		item := f.verifiedFoundItem(t, "blue earbuds case")
		if _, err := f.items.Dispose(context.Background(), admin, item.ID, ""); err != nil {
			t.Fatalf("Dispose: %v", err)
		}
		_, err := f.claims.Submit(context.Background(), student, item.ID, "left earbud has a scratch", "")
		if !errors.Is(err, domain.ErrItemClosed) {
			t.Fatalf("err = %v, want ErrItemClosed", err)
		}
	})

	t.Run("duplicate pending claim by same claimant", func(t *testing.T) {
		f := newFixture()
		item := f.verifiedFoundItem(t, "blue earbuds case")
		if _, err := f.claims.Submit(context.Background(), student, item.ID, "left earbud has a scratch", ""); err != nil {
			t.Fatalf("first Submit: %v", err)
		}
		_, err := f.claims.Submit(context.Background(), student, item.ID, "second attempt, same earbuds", "")
		if !errors.Is(err, domain.ErrConflict) {
			t.Fatalf("err = %v, want ErrConflict", err)
		}
	})

	t.Run("empty details", func(t *testing.T) {
		f := newFixture()
		item := f.verifiedFoundItem(t, "blue earbuds case")
		_, err := f.claims.Submit(context.Background(), student, item.ID, "   ", "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})
}

func TestClaimService_Decide_Reject(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.verifiedFoundItem(t, "casio watch")
	claim, err := f.claims.Submit(ctx, student, item.ID, "strap is worn on the left side", "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	decided, err := f.claims.Decide(ctx, admin, claim.ID, models.ClaimRejected, "details did not match")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if decided.Status != models.ClaimRejected || decided.AdminRemarks != "details did not match" {
		t.Error("rejection not recorded on claim")
	}

	// Item stays AVAILABLE for other claimants.
	stored, err := f.items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusAvailable {
		t.Errorf("item status = %s, want AVAILABLE", stored.Status)
	}

	// A decided claim cannot be decided again.
	_, err = f.claims.Decide(ctx, admin, claim.ID, models.ClaimApproved, "")
	if !errors.Is(err, domain.ErrAlreadyDecided) {
		t.Fatalf("second decision err = %v, want ErrAlreadyDecided", err)
	}
}

func TestClaimService_Decide_ApproveSupersedesCompetitors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.verifiedFoundItem(t, "hostel room key with red tag")

	claimants := []auth.Actor{
		{ID: uuid.New(), Name: "Meera Nair"},
		{ID: uuid.New(), Name: "Arjun Pillai"},
		{ID: uuid.New(), Name: "Sana Khan"},
	}
	claims := make([]*models.Claim, len(claimants))
	for i, c := range claimants {
		claim, err := f.claims.Submit(ctx, c, item.ID, "red tag, room number scratched off", "")
		if err != nil {
			t.Fatalf("Submit %d: %v", i, err)
		}
		claims[i] = claim
	}

	winner, err := f.claims.Decide(ctx, admin, claims[1].ID, models.ClaimApproved, "room records match")
	if err != nil {
		t.Fatalf("Decide: %v", err)
	}
	if winner.Status != models.ClaimApproved {
		t.Errorf("winner status = %s, want APPROVED", winner.Status)
	}

	stored, err := f.items.GetByID(ctx, item.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if stored.Status != models.StatusClaimed {
		t.Errorf("item status = %s, want CLAIMED", stored.Status)
	}

	for _, i := range []int{0, 2} {
		loser, err := f.claims.GetByID(ctx, claims[i].ID)
		if err != nil {
			t.Fatalf("GetByID claim: %v", err)
		}
		if loser.Status != models.ClaimRejected {
			t.Errorf("competing claim %d status = %s, want REJECTED", i, loser.Status)
		}
		if loser.AdminRemarks == "" {
			t.Errorf("competing claim %d missing supersede remark", i)
		}
	}

	// Only the approval is audited; supersedes ride in the same unit.
	if got := f.store.actions(); got[len(got)-1] != models.ActionApproveClaim {
		t.Errorf("last audit action = %s, want APPROVE_CLAIM", got[len(got)-1])
	}
}

func TestClaimService_Decide_Validation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	item := f.verifiedFoundItem(t, "casio watch")
	claim, err := f.claims.Submit(ctx, student, item.ID, "strap is worn on the left side", "")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}

	t.Run("unknown decision", func(t *testing.T) {
		_, err := f.claims.Decide(ctx, admin, claim.ID, "MAYBE", "")
		if !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("err = %v, want ErrValidation", err)
		}
	})

	t.Run("missing claim", func(t *testing.T) {
		_, err := f.claims.Decide(ctx, admin, uuid.New(), models.ClaimApproved, "")
		if !errors.Is(err, domain.ErrClaimNotFound) {
			t.Fatalf("err = %v, want ErrClaimNotFound", err)
		}
	})
}
