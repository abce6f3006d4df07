package errhttp

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	lfdomain "github.com/campuskeep/campuskeep/services/lostfound/domain"
)

func TestWriteError_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ErrItemNotFound", lfdomain.ErrItemNotFound, http.StatusNotFound},
		{"ErrClaimNotFound", lfdomain.ErrClaimNotFound, http.StatusNotFound},
		{"ErrNotificationNotFound", lfdomain.ErrNotificationNotFound, http.StatusNotFound},
		{"ErrConflict", lfdomain.ErrConflict, http.StatusConflict},
		{"ErrAlreadyDecided", lfdomain.ErrAlreadyDecided, http.StatusConflict},
		{"ErrItemClosed", lfdomain.ErrItemClosed, http.StatusGone},
		{"ErrInvalidState", lfdomain.ErrInvalidState, http.StatusUnprocessableEntity},
		{"ErrCategoryMismatch", lfdomain.ErrCategoryMismatch, http.StatusUnprocessableEntity},
		{"ErrValidation", lfdomain.ErrValidation, http.StatusUnprocessableEntity},
		{"wrapped ErrItemNotFound", fmt.Errorf("get item: %w", lfdomain.ErrItemNotFound), http.StatusNotFound},
		{"wrapped ErrConflict", fmt.Errorf("%w: version changed", lfdomain.ErrConflict), http.StatusConflict},
		{"unknown error", errors.New("something unexpected"), http.StatusInternalServerError},
		{"generic wrapped error", fmt.Errorf("context: %w", errors.New("db down")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteError(w, tt.err)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestWriteError_JSONBody(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, lfdomain.ErrItemNotFound)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body is not valid JSON: %v", err)
	}
	if _, ok := body["error"]; !ok {
		t.Fatal("response body missing 'error' key")
	}
}

func TestWriteError_ContentType(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, lfdomain.ErrItemNotFound)

	ct := w.Header().Get("Content-Type")
	if ct == "" {
		t.Fatal("Content-Type header not set")
	}
}
