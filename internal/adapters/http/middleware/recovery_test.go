package middleware_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jsamuelsen11/guise/internal/adapters/http/middleware"
)

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		handler    http.HandlerFunc
		wantStatus int
		wantLog    []string
	}{
		{
			name:       "no panic",
			handler:    respond(http.StatusOK, "<html/>").ServeHTTP,
			wantStatus: http.StatusOK,
		},
		{
			name:       "string panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic("depictor exploded") },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic recovered", "depictor exploded", "goroutine"},
		},
		{
			name:       "error panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic(errors.New("nil frame")) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"nil frame"},
		},
		{
			name:       "non-error panic",
			handler:    func(http.ResponseWriter, *http.Request) { panic(42) },
			wantStatus: http.StatusInternalServerError,
			wantLog:    []string{"panic=42"},
		},
		{
			name: "panic after headers keeps the status",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				_, _ = w.Write([]byte("partial"))
				panic("late")
			},
			wantStatus: http.StatusAccepted,
			wantLog:    []string{"late"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			rec := httptest.NewRecorder()
			middleware.Recovery(testLogger(&buf))(tt.handler).
				ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/_guise/ajax", http.NoBody))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			for _, want := range tt.wantLog {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("log missing %q: %s", want, buf.String())
				}
			}
			if len(tt.wantLog) == 0 && buf.Len() != 0 {
				t.Errorf("unexpected log output: %s", buf.String())
			}
		})
	}
}

func TestRecovery_ProblemBodyHidesPanic(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	middleware.Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("secret internals")
	})).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
	var body map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["title"] != "Internal Server Error" {
		t.Errorf("title = %v, want Internal Server Error", body["title"])
	}
	if detail, _ := body["detail"].(string); strings.Contains(detail, "secret") {
		t.Errorf("detail = %q leaks the panic value", detail)
	}
}

func TestRecovery_ReraisesAbort(t *testing.T) {
	t.Parallel()

	h := middleware.Recovery(discardLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if v := recover(); v != http.ErrAbortHandler {
			t.Errorf("recovered %v, want http.ErrAbortHandler", v)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", http.NoBody))
}
