package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/delivery"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/identity"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/rating"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/domain/stats"
	"github.com/adityabalaji97/cricket-data-thing-sub003/internal/usecase"
)

func TestMapError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantReason string
	}{
		{"invalid input", usecase.ErrInvalidInput, http.StatusBadRequest, "invalidInput"},
		{"not found", usecase.ErrNotFound, http.StatusNotFound, "notFound"},
		{"unauthorized", usecase.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"dependency unavailable", usecase.ErrDependencyUnavailable, http.StatusServiceUnavailable, "dependencyUnavailable"},
		{"unknown team", identity.ErrUnknownTeam, http.StatusBadRequest, "unknownLabel"},
		{"unknown league", identity.ErrUnknownLeague, http.StatusBadRequest, "unknownLabel"},
		{"invalid dimension", stats.ErrInvalidDimension, http.StatusBadRequest, "invalidQuery"},
		{"unknown metric", stats.ErrUnknownMetric, http.StatusBadRequest, "invalidQuery"},
		{"invalid over", delivery.ErrInvalidOver, http.StatusBadRequest, "invalidQuery"},
		{"out of order update", rating.ErrOutOfOrderUpdate, http.StatusConflict, "outOfOrderUpdate"},
		{"unclassified", fmt.Errorf("database exploded"), http.StatusInternalServerError, "internalError"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// Wrapped errors must map the same as bare sentinels.
			mapped := mapError(context.Background(), fmt.Errorf("context: %w", tc.err))
			if mapped.HTTPStatus != tc.wantStatus {
				t.Fatalf("got status %d, want %d", mapped.HTTPStatus, tc.wantStatus)
			}
			if mapped.Reason != tc.wantReason {
				t.Fatalf("got reason %q, want %q", mapped.Reason, tc.wantReason)
			}
		})
	}
}

func TestWriteError_EnvelopeShape(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: league is required", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got status %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("got content type %q", ct)
	}

	var env googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.APIVersion != googleAPIVersion {
		t.Fatalf("got apiVersion %q", env.APIVersion)
	}
	if env.Error == nil {
		t.Fatalf("expected error body")
	}
	if env.Error.Code != http.StatusBadRequest || env.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", env.Error)
	}
	if len(env.Error.Errors) != 1 || env.Error.Errors[0].Domain != errorDomain {
		t.Fatalf("unexpected error items: %+v", env.Error.Errors)
	}
}

func TestWriteInternalError_HidesDetail(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	writeInternalError(context.Background(), rec)

	var env googleResponseEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if env.Error == nil || env.Error.Message != "internal server error" {
		t.Fatalf("internal errors must not leak detail: %+v", env.Error)
	}
}
