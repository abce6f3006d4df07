package domain

import "errors"

// Sentinel errors for the lost-and-found domain. Use errors.Is() to check these.
var (
	// ErrValidation indicates a missing or malformed required field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidState indicates an operation attempted against an entity
	// whose current lifecycle state does not permit it.
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrConflict indicates an invariant violation from a concurrent
	// mutation, such as a stale version write or a double link.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrAlreadyDecided indicates a verify attempt on a claim that is no
	// longer pending.
	ErrAlreadyDecided = errors.New("claim already decided")

	// ErrItemClosed indicates a mutation attempted on a returned, archived,
	// or disposed item.
	ErrItemClosed = errors.New("item is closed")

	// ErrCategoryMismatch indicates a link attempt between items of
	// different categories or the same report kind.
	ErrCategoryMismatch = errors.New("items cannot be linked")

	// ErrItemNotFound indicates the referenced item does not exist.
	ErrItemNotFound = errors.New("item not found")

	// ErrClaimNotFound indicates the referenced claim does not exist.
	ErrClaimNotFound = errors.New("claim not found")

	// ErrNotificationNotFound indicates the referenced notification does not exist.
	ErrNotificationNotFound = errors.New("notification not found")
)

// IsNotFound reports whether err wraps any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrItemNotFound) ||
		errors.Is(err, ErrClaimNotFound) ||
		errors.Is(err, ErrNotificationNotFound)
}
