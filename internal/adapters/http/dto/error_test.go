package dto_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jsamuelsen11/guise/internal/adapters/http/dto"
	"github.com/jsamuelsen11/guise/internal/domain"
)

func TestNewErrorResponse_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "not found", err: fmt.Errorf("session of demo: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound},
		{name: "validation", err: domain.NewValidationError("events[0].type", "is required"), wantStatus: http.StatusBadRequest},
		{name: "invalid argument", err: fmt.Errorf("depict ID %q: %w", "x", domain.ErrInvalidArgument), wantStatus: http.StatusBadRequest},
		{name: "conflict", err: domain.ErrConflict, wantStatus: http.StatusConflict},
		{name: "illegal state", err: domain.ErrIllegalState, wantStatus: http.StatusConflict},
		{name: "vetoed", err: &domain.VetoError{Property: "value"}, wantStatus: http.StatusUnprocessableEntity},
		{name: "unavailable", err: domain.ErrUnavailable, wantStatus: http.StatusBadGateway},
		{name: "deadline", err: fmt.Errorf("depicting: %w", context.DeadlineExceeded), wantStatus: http.StatusGatewayTimeout},
		{name: "unknown", err: errors.New("oops"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := httptest.NewRequest(http.MethodPost, "/_guise/ajax", nil)
			got := dto.NewErrorResponse(r, tt.err)

			if got.Status != tt.wantStatus {
				t.Errorf("Status = %d, want %d", got.Status, tt.wantStatus)
			}
			if got.Title != http.StatusText(tt.wantStatus) {
				t.Errorf("Title = %q, want %q", got.Title, http.StatusText(tt.wantStatus))
			}
			if got.Instance != "/_guise/ajax" {
				t.Errorf("Instance = %q, want %q", got.Instance, "/_guise/ajax")
			}
		})
	}
}

func TestNewErrorResponse_ValidationErrors(t *testing.T) {
	t.Parallel()

	err := &domain.ValidationError{Fields: map[string]string{
		"events[1].objectID": "invalid depict ID",
		"events[0].type":     "is required",
	}}
	got := dto.NewErrorResponse(httptest.NewRequest(http.MethodPost, "/", nil), err)

	want := []dto.ErrorDetail{
		{Location: "body.events[0].type", Message: "is required"},
		{Location: "body.events[1].objectID", Message: "invalid depict ID"},
	}
	if len(got.Errors) != len(want) {
		t.Fatalf("len(Errors) = %d, want %d", len(got.Errors), len(want))
	}
	for i := range want {
		if got.Errors[i].Location != want[i].Location || got.Errors[i].Message != want[i].Message {
			t.Errorf("Errors[%d] = %+v, want %+v", i, got.Errors[i], want[i])
		}
	}

	plain := dto.NewErrorResponse(httptest.NewRequest(http.MethodPost, "/", nil), domain.ErrNotFound)
	if plain.Errors != nil {
		t.Errorf("Errors = %v, want nil for a non-validation error", plain.Errors)
	}
}

func TestWriteErrorResponse(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/demo/", nil)

	dto.WriteErrorResponse(rec, r, fmt.Errorf("application demo: %w", domain.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want %q", ct, "application/problem+json")
	}

	var body dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body.Type != "about:blank" || body.Status != http.StatusNotFound {
		t.Errorf("body = %+v, want about:blank with status 404", body)
	}
	if body.Detail != "application demo: not found" {
		t.Errorf("Detail = %q, want %q", body.Detail, "application demo: not found")
	}
}

func TestNewErrorResponse_Detail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantDetail string
	}{
		{name: "mapped error shown", err: fmt.Errorf("theme %s: %w", "dark", domain.ErrUnavailable), wantDetail: "theme dark: unavailable"},
		{name: "internal error withheld", err: errors.New("sqlite: database disk image is malformed"), wantDetail: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := dto.NewErrorResponse(httptest.NewRequest(http.MethodGet, "/demo/", nil), tt.err)
			if got.Detail != tt.wantDetail {
				t.Errorf("Detail = %q, want %q", got.Detail, tt.wantDetail)
			}
		})
	}
}
