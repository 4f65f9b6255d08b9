package handlers_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/jsamuelsen11/guise/internal/adapters/http/dto"
	"github.com/jsamuelsen11/guise/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/guise/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/ports"
	"github.com/jsamuelsen11/guise/mocks"
)

// --- Page ---

func TestPage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		sessionID  string
		returned   string
		wantCookie bool
	}{
		{name: "new session sets cookie", sessionID: "", returned: testSession, wantCookie: true},
		{name: "expired session replaced", sessionID: "gone", returned: testSession, wantCookie: true},
		{name: "live session keeps cookie", sessionID: testSession, returned: testSession, wantCookie: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages := mocks.NewMockPageService(t)
			pages.EXPECT().RenderPage(mock.Anything, testApp, tt.sessionID).
				Return(&ports.Page{SessionID: tt.returned, Markup: "<html></html>"}, nil)
			h := handlers.NewPageHandler(pages, testApp, testBase)

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, testBase, http.NoBody)
			if tt.sessionID != "" {
				req = withSession(req, tt.sessionID)
			}
			h.Page(rec, req)

			requireStatus(t, rec, http.StatusOK)
			if got := rec.Body.String(); got != "<html></html>" {
				t.Errorf("body = %q, want the page markup", got)
			}
			if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
				t.Errorf("Content-Type = %q, want text/html", ct)
			}

			cookies := rec.Result().Cookies()
			if tt.wantCookie {
				if len(cookies) != 1 || cookies[0].Value != tt.returned || cookies[0].Path != testBase {
					t.Errorf("cookies = %v, want %s=%s at %s", cookies, middleware.SessionCookie, tt.returned, testBase)
				}
			} else if len(cookies) != 0 {
				t.Errorf("cookies = %v, want none", cookies)
			}
		})
	}
}

func TestPage_UnknownApplication(t *testing.T) {
	t.Parallel()

	pages := mocks.NewMockPageService(t)
	pages.EXPECT().RenderPage(mock.Anything, testApp, "").
		Return(nil, fmt.Errorf("application %s: %w", testApp, domain.ErrNotFound))
	h := handlers.NewPageHandler(pages, testApp, testBase)

	rec := httptest.NewRecorder()
	h.Page(rec, httptest.NewRequest(http.MethodGet, testBase, http.NoBody))

	requireStatus(t, rec, http.StatusNotFound)
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

// --- Submit ---

func TestSubmit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "applied", err: nil, wantStatus: http.StatusSeeOther},
		{name: "expired session", err: domain.ErrNotFound, wantStatus: http.StatusSeeOther},
		{name: "bad value", err: fmt.Errorf("form event: %w", domain.ErrInvalidArgument), wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			pages := mocks.NewMockPageService(t)
			pages.EXPECT().SubmitForm(mock.Anything, testApp, testSession, url.Values{"id2": {"Ada"}}).Return(tt.err)
			h := handlers.NewPageHandler(pages, testApp, testBase)

			req := httptest.NewRequest(http.MethodPost, testBase, strings.NewReader("id2=Ada"))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rec := httptest.NewRecorder()
			h.Submit(rec, withSession(req, testSession))

			requireStatus(t, rec, tt.wantStatus)
			if tt.wantStatus == http.StatusSeeOther {
				if loc := rec.Header().Get("Location"); loc != testBase {
					t.Errorf("Location = %q, want %q", loc, testBase)
				}
			}
		})
	}
}

// --- Events ---

func TestEvents(t *testing.T) {
	t.Parallel()

	pages := mocks.NewMockPageService(t)
	pages.EXPECT().ProcessEvents(mock.Anything, testApp, testSession, []platform.Event{
		platform.ActionEvent{ObjectID: 0xa, ActionID: "action"},
	}).Return(&ports.Update{
		Patches:       []ports.Patch{{ID: "ida", Markup: "<button/>"}},
		Notifications: []domain.Notification{domain.NewNotification("Saved")},
	}, nil)
	h := handlers.NewPageHandler(pages, testApp, testBase)

	body := jsonBody(t, dto.EventRequest{Events: []dto.EventDTO{
		{Type: dto.EventTypeAction, ObjectID: "ida", ActionID: "action"},
	}})
	rec := httptest.NewRecorder()
	h.Events(rec, withSession(httptest.NewRequest(http.MethodPost, testBase+"_guise/ajax", body), testSession))

	requireStatus(t, rec, http.StatusOK)
	got := decodeJSON[dto.UpdateResponse](t, rec)
	if len(got.Patches) != 1 || got.Patches[0].ID != "ida" {
		t.Errorf("patches = %+v, want one patch for ida", got.Patches)
	}
	if len(got.Notifications) != 1 || got.Notifications[0].Message != "Saved" {
		t.Errorf("notifications = %+v, want Saved", got.Notifications)
	}
}

func TestEvents_Rejected(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{name: "malformed JSON", body: "{", wantStatus: http.StatusBadRequest},
		{name: "invalid event", body: `{"events":[{"type":"action","objectID":"7"}]}`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			h := handlers.NewPageHandler(mocks.NewMockPageService(t), testApp, testBase)

			rec := httptest.NewRecorder()
			h.Events(rec, httptest.NewRequest(http.MethodPost, testBase+"_guise/ajax", strings.NewReader(tt.body)))

			requireStatus(t, rec, tt.wantStatus)
		})
	}
}

func TestEvents_UnknownSession(t *testing.T) {
	t.Parallel()

	pages := mocks.NewMockPageService(t)
	pages.EXPECT().ProcessEvents(mock.Anything, testApp, "", mock.Anything).
		Return(nil, fmt.Errorf("session of %s: %w", testApp, domain.ErrNotFound))
	h := handlers.NewPageHandler(pages, testApp, testBase)

	rec := httptest.NewRecorder()
	h.Events(rec, httptest.NewRequest(http.MethodPost, testBase+"_guise/ajax", strings.NewReader(`{"events":[{"type":"poll"}]}`)))

	requireStatus(t, rec, http.StatusNotFound)
}

// --- Acknowledge ---

func TestAcknowledge(t *testing.T) {
	t.Parallel()

	pages := mocks.NewMockPageService(t)
	pages.EXPECT().AcknowledgeNotifications(mock.Anything, testApp, testSession).
		Return(&ports.Update{Patches: []ports.Patch{{ID: "id3", Markup: "<div/>"}}}, nil)
	h := handlers.NewPageHandler(pages, testApp, testBase)

	req := httptest.NewRequest(http.MethodPost, testBase+"_guise/notifications/ack", http.NoBody)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	h.Acknowledge(rec, withSession(req, testSession))

	requireStatus(t, rec, http.StatusOK)
	got := decodeJSON[dto.UpdateResponse](t, rec)
	if len(got.Patches) != 1 || len(got.Notifications) != 0 {
		t.Errorf("update = %+v, want one patch and no notifications", got)
	}
}

func TestAcknowledge_FormPostRedirects(t *testing.T) {
	t.Parallel()

	pages := mocks.NewMockPageService(t)
	pages.EXPECT().AcknowledgeNotifications(mock.Anything, testApp, testSession).Return(&ports.Update{}, nil)
	h := handlers.NewPageHandler(pages, testApp, testBase)

	rec := httptest.NewRecorder()
	h.Acknowledge(rec, withSession(httptest.NewRequest(http.MethodPost, testBase+"_guise/notifications/ack", http.NoBody), testSession))

	requireStatus(t, rec, http.StatusSeeOther)
	if loc := rec.Header().Get("Location"); loc != testBase {
		t.Errorf("Location = %q, want %q", loc, testBase)
	}
}
