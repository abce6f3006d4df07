// Package errhttp maps domain sentinel errors to HTTP status codes.
// Add a case to mapErrorToStatus for each new domain sentinel error.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/campuskeep/campuskeep/pkg/httpx"
	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
)

// WriteError maps err to an HTTP status code and writes a JSON error response.
// Uses errors.Is() so wrapped sentinel errors are matched correctly.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	httpx.JSONError(w, mapErrorToStatus(err), err.Error())
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, lfdomain.ErrItemNotFound),
		errors.Is(err, lfdomain.ErrClaimNotFound),
		errors.Is(err, lfdomain.ErrNotificationNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, lfdomain.ErrConflict),
		errors.Is(err, lfdomain.ErrAlreadyDecided):
		return http.StatusConflict // 409
	case errors.Is(err, lfdomain.ErrItemClosed):
		return http.StatusGone // 410
	case errors.Is(err, lfdomain.ErrInvalidState),
		errors.Is(err, lfdomain.ErrCategoryMismatch),
		errors.Is(err, lfdomain.ErrValidation):
		return http.StatusUnprocessableEntity // 422
	default:
		return http.StatusInternalServerError // 500
	}
}
