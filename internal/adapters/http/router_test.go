package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	adapthttp "github.com/jsamuelsen11/guise/internal/adapters/http"
	"github.com/jsamuelsen11/guise/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/guise/internal/ports"
	"github.com/jsamuelsen11/guise/mocks"
)

func newTestRouter(t *testing.T, middlewares ...func(http.Handler) http.Handler) (http.Handler, *mocks.MockPageService, *mocks.MockHealthRegistry) {
	t.Helper()
	pages := mocks.NewMockPageService(t)
	registry := mocks.NewMockHealthRegistry(t)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "guise.css"), []byte("body{}"), 0o600); err != nil {
		t.Fatalf("write resource: %v", err)
	}

	router := adapthttp.NewRouter(
		[]*handlers.PageHandler{
			handlers.NewPageHandler(pages, "demo", "/demo/"),
			handlers.NewPageHandler(pages, "admin", "/admin/"),
		},
		handlers.NewHealthHandler(registry),
		dir,
		middlewares...,
	)
	return router, pages, registry
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	expectedRoutes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/health/live"},
		{http.MethodGet, "/health/ready"},
		{http.MethodGet, "/demo/"},
		{http.MethodPost, "/demo/"},
		{http.MethodPost, "/demo/_guise/ajax"},
		{http.MethodPost, "/demo/_guise/notifications/ack"},
		{http.MethodGet, "/demo/_guise/resources/*"},
		{http.MethodGet, "/admin/"},
		{http.MethodPost, "/admin/_guise/ajax"},
	}

	chiRouter, ok := router.(*chi.Mux)
	if !ok {
		t.Fatal("router is not *chi.Mux")
	}

	registered := make(map[string]bool)
	err := chi.Walk(chiRouter, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	})
	if err != nil {
		t.Fatalf("chi.Walk error: %v", err)
	}

	for _, expected := range expectedRoutes {
		key := expected.method + " " + expected.path
		if !registered[key] {
			t.Errorf("route %s not registered", key)
		}
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}

	router, _, registry := newTestRouter(t, testMW)
	registry.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	router.ServeHTTP(rec, req)

	if !called {
		t.Error("middleware was not called")
	}
}

func TestRouter_PageRoutedToApplication(t *testing.T) {
	t.Parallel()

	router, pages, _ := newTestRouter(t)
	pages.EXPECT().RenderPage(mock.Anything, "admin", "").
		Return(&ports.Page{SessionID: "s1", Markup: "<html/>"}, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_ServesResources(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo/_guise/resources/guise.css", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Body.String(); !strings.Contains(got, "body{}") {
		t.Errorf("body = %q, want the stylesheet", got)
	}
}

func TestRouter_NotFoundReturns404(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nonexistent", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNotFound)
	}
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router, _, _ := newTestRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/demo/_guise/ajax", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
	}
}
