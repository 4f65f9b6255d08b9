package acl

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/jsamuelsen11/guise/internal/domain"
)

func TestTranslateHTTPError_StatusMapping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status  int
		wantErr error
	}{
		{status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{status: http.StatusGone, wantErr: domain.ErrNotFound},
		{status: http.StatusBadRequest, wantErr: domain.ErrValidation},
		{status: http.StatusNotAcceptable, wantErr: domain.ErrValidation},
		{status: http.StatusUnprocessableEntity, wantErr: domain.ErrValidation},
		{status: http.StatusUnauthorized, wantErr: domain.ErrUnavailable},
		{status: http.StatusForbidden, wantErr: domain.ErrUnavailable},
		{status: http.StatusTooManyRequests, wantErr: domain.ErrUnavailable},
		{status: http.StatusBadGateway, wantErr: domain.ErrUnavailable},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(&http.Response{StatusCode: tt.status, Header: http.Header{}, Body: http.NoBody})
			if !errors.Is(got, tt.wantErr) {
				t.Errorf("TranslateHTTPError(%d) = %v, want errors.Is %v", tt.status, got, tt.wantErr)
			}
		})
	}
}

func TestTranslateHTTPError_UnexpectedStatus(t *testing.T) {
	t.Parallel()

	got := TranslateHTTPError(&http.Response{StatusCode: http.StatusTeapot, Header: http.Header{}, Body: http.NoBody})
	for _, sentinel := range []error{domain.ErrNotFound, domain.ErrValidation, domain.ErrUnavailable} {
		if errors.Is(got, sentinel) {
			t.Errorf("TranslateHTTPError(418) = %v, must not match %v", got, sentinel)
		}
	}
	if !strings.Contains(got.Error(), "418") {
		t.Errorf("error = %q, want the status code", got)
	}
}

func TestTranslateHTTPError_ProblemDetail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		contentType string
		body        string
		wantSubstr  string
	}{
		{
			name:        "detail from problem body",
			contentType: "application/problem+json",
			body:        `{"title":"Not Found","status":404,"detail":"theme dark is not published"}`,
			wantSubstr:  "theme dark is not published",
		},
		{
			name:        "status text for plain body",
			contentType: "text/plain",
			body:        "nope",
			wantSubstr:  "Not Found",
		},
		{
			name:        "status text for malformed problem body",
			contentType: "application/problem+json",
			body:        "{",
			wantSubstr:  "Not Found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := TranslateHTTPError(&http.Response{
				StatusCode: http.StatusNotFound,
				Header:     http.Header{"Content-Type": []string{tt.contentType}},
				Body:       io.NopCloser(strings.NewReader(tt.body)),
			})
			if !strings.Contains(got.Error(), tt.wantSubstr) {
				t.Errorf("error = %q, want substring %q", got, tt.wantSubstr)
			}
		})
	}
}

func TestTranslateHTTPError_FieldErrors(t *testing.T) {
	t.Parallel()

	body := `{"detail":"invalid theme","errors":[{"location":"rules[0].select.class","message":"unknown class"}]}`
	got := TranslateHTTPError(&http.Response{
		StatusCode: http.StatusUnprocessableEntity,
		Header:     http.Header{"Content-Type": []string{"application/problem+json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	})

	var verr *domain.ValidationError
	if !errors.As(got, &verr) {
		t.Fatalf("error = %v, want *domain.ValidationError", got)
	}
	if msg := verr.Fields["rules[0].select.class"]; msg != "unknown class" {
		t.Errorf("Fields[rules[0].select.class] = %q, want %q", msg, "unknown class")
	}
}
