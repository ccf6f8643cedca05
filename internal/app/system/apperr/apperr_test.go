package apperr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dalemusser/tenanthub/internal/app/system/apperr"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *apperr.Error
		want int
	}{
		{apperr.Validation("bad input", nil), http.StatusUnprocessableEntity},
		{apperr.DuplicateName("acme"), http.StatusBadRequest},
		{apperr.DuplicateEmail(), http.StatusBadRequest},
		{apperr.NotFound("organization not found"), http.StatusNotFound},
		{apperr.Forbidden("wrong tenant"), http.StatusForbidden},
		{apperr.Unauthorized(), http.StatusUnauthorized},
		{apperr.MigrationConflict("rename failed", nil), http.StatusConflict},
		{apperr.RateLimited("slow down"), http.StatusTooManyRequests},
		{apperr.Storage("db down", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Code), func(t *testing.T) {
			if got := tt.err.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus(%s) = %d, want %d", tt.err.Code, got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := apperr.Storage("db down", cause)
	if !errors.Is(err, cause) {
		t.Error("expected the wrapped cause to be reachable via errors.Is")
	}
}

func TestFrom_PassesThroughClassified(t *testing.T) {
	orig := apperr.NotFound("organization not found")
	wrapped := fmt.Errorf("handler: %w", orig)
	got := apperr.From(wrapped)
	if got.Code != apperr.CodeNotFound {
		t.Errorf("From(wrapped) code = %s, want %s", got.Code, apperr.CodeNotFound)
	}
}

func TestFrom_WrapsUnclassified(t *testing.T) {
	got := apperr.From(errors.New("boom"))
	if got.Code != apperr.CodeStorage {
		t.Errorf("From(unclassified) code = %s, want %s", got.Code, apperr.CodeStorage)
	}
	if got.Message != "internal error" {
		t.Errorf("From(unclassified) message = %q, want a generic message", got.Message)
	}
}

func TestDuplicateNameMessage(t *testing.T) {
	err := apperr.DuplicateName("acme_corp")
	want := "organization 'acme_corp' already exists"
	if err.Message != want {
		t.Errorf("message = %q, want %q", err.Message, want)
	}
}
