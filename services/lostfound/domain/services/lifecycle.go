// Package services contains stateless domain services for the lost-and-found
// bounded context: the item lifecycle state machine and the match heuristic.
// They operate purely on domain types with zero external dependencies beyond
// stdlib and the domain layer.
package services

import (
	"fmt"

	domain "github.com/campuskeep/campuskeep/services/lostfound/domain"
	"github.com/campuskeep/campuskeep/services/lostfound/domain/models"
)

// lifecycleGraph is the authoritative set of legal status transitions.
// OPEN/PENDING → AVAILABLE → CLAIMED → RETURNED, with ARCHIVED and DISPOSED
// reachable from every non-terminal state. Terminal states have no out-edges.
var lifecycleGraph = map[models.ItemStatus][]models.ItemStatus{
	models.StatusOpen:      {models.StatusAvailable, models.StatusArchived, models.StatusDisposed},
	models.StatusPending:   {models.StatusAvailable, models.StatusArchived, models.StatusDisposed},
	models.StatusAvailable: {models.StatusClaimed, models.StatusReturned, models.StatusArchived, models.StatusDisposed},
	models.StatusClaimed:   {models.StatusReturned, models.StatusArchived, models.StatusDisposed},
	models.StatusReturned:  nil,
	models.StatusArchived:  nil,
	models.StatusDisposed:  nil,
}

// CanTransition reports whether the lifecycle graph has an edge from → to.
func CanTransition(from, to models.ItemStatus) bool {
	for _, next := range lifecycleGraph[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition validates and applies a status change on the item. The item is
// only mutated when the transition is legal. A terminal current state yields
// ErrItemClosed; any other off-graph move yields ErrInvalidState.
func Transition(item *models.Item, to models.ItemStatus) error {
	if item.Status.Terminal() {
		return fmt.Errorf("%w: item %s is %s", domain.ErrItemClosed, item.ID, item.Status)
	}
	if !CanTransition(item.Status, to) {
		return fmt.Errorf("%w: cannot move %s to %s", domain.ErrInvalidState, item.Status, to)
	}
	item.Status = to
	return nil
}

// ValidateItemForCreation checks a report before it is persisted.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", domain.ErrValidation)
	}
	if !item.Kind.Valid() {
		return fmt.Errorf("%w: unknown report kind %q", domain.ErrValidation, item.Kind)
	}
	if !item.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", domain.ErrValidation, item.Category)
	}
	if item.Location == "" {
		return fmt.Errorf("%w: location is required", domain.ErrValidation)
	}
	if item.ReportedAt.IsZero() {
		return fmt.Errorf("%w: reported time is required", domain.ErrValidation)
	}
	return nil
}

// ValidateLink checks that two items may be linked as one resolved case:
// opposite report kinds, equal categories, and neither already linked to a
// third item. Linking the same mutual pair again is allowed (idempotent at
// the caller). Terminal items cannot be linked.
func ValidateLink(a, b *models.Item) error {
	if a.ID == b.ID {
		return fmt.Errorf("%w: cannot link an item to itself", domain.ErrCategoryMismatch)
	}
	if a.Kind == b.Kind {
		return fmt.Errorf("%w: both items are %s reports", domain.ErrCategoryMismatch, a.Kind)
	}
	if a.Category != b.Category {
		return fmt.Errorf("%w: categories differ (%s vs %s)", domain.ErrCategoryMismatch, a.Category, b.Category)
	}
	if a.Status.Terminal() {
		return fmt.Errorf("%w: item %s is %s", domain.ErrItemClosed, a.ID, a.Status)
	}
	if b.Status.Terminal() {
		return fmt.Errorf("%w: item %s is %s", domain.ErrItemClosed, b.ID, b.Status)
	}
	if a.LinkedTo(b.ID) && b.LinkedTo(a.ID) {
		return nil
	}
	if a.LinkedItemID != nil {
		return fmt.Errorf("%w: item %s is already linked to %s", domain.ErrConflict, a.ID, *a.LinkedItemID)
	}
	if b.LinkedItemID != nil {
		return fmt.Errorf("%w: item %s is already linked to %s", domain.ErrConflict, b.ID, *b.LinkedItemID)
	}
	return nil
}
