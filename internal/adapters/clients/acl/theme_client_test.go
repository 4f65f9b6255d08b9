package acl_test

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/platform/config"
	"github.com/jsamuelsen11/guise/internal/platform/httpclient"
)

func newThemeClient(t *testing.T, handler http.HandlerFunc) *acl.ThemeClient {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.ClientConfig{
		BaseURL: srv.URL + "/themes/",
		Timeout: 2 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     1,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1,
		},
		CircuitBreaker: config.CircuitBreakerConfig{MaxFailures: 5, Timeout: time.Second, HalfOpenLimit: 1},
	}
	logger := slog.New(slog.DiscardHandler)
	return acl.NewThemeClient(httpclient.New(cfg, "theme-server", nil, logger), logger)
}

func TestThemeClient_Load(t *testing.T) {
	t.Parallel()

	var gotPath, gotAccept string
	client := newThemeClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write([]byte("parentURI: base.guisetheme\n" + baseTheme))
	})

	th, err := client.Load(context.Background(), "dark.guisetheme")
	require.NoError(t, err)

	assert.Equal(t, "/themes/dark.guisetheme", gotPath)
	assert.Contains(t, gotAccept, "application/yaml")
	assert.Equal(t, "dark.guisetheme", th.URI)
	assert.Equal(t, "base.guisetheme", th.ParentURI)
	assert.Len(t, th.Rules(), 1)
}

func TestThemeClient_LoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "not found", status: http.StatusNotFound, wantErr: domain.ErrNotFound},
		{name: "server error", status: http.StatusInternalServerError, wantErr: domain.ErrUnavailable},
		{name: "not a theme", status: http.StatusOK, body: "rules: {", wantErr: domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newThemeClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := client.Load(context.Background(), "dark.guisetheme")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestThemeClient_Health(t *testing.T) {
	t.Parallel()

	client := newThemeClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	assert.Equal(t, "theme-server", client.Name())
	assert.NoError(t, client.HealthCheck(context.Background()))
}
