package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jsamuelsen11/guise/internal/adapters/http/dto"
	"github.com/jsamuelsen11/guise/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// PageHandler serves one Guise application: its page, form posts, browser
// events, and notification acknowledgements.
type PageHandler struct {
	pages       ports.PageService
	application string
	basePath    string
}

// NewPageHandler creates a PageHandler for the application mounted at
// basePath.
func NewPageHandler(pages ports.PageService, application, basePath string) *PageHandler {
	return &PageHandler{pages: pages, application: application, basePath: basePath}
}

// BasePath returns the path the application is mounted at.
func (h *PageHandler) BasePath() string { return h.basePath }

// Page handles GET {base}. It depicts the session's frame, starting a
// session when the browser has none, and sets the session cookie when the
// session changed.
func (h *PageHandler) Page(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.SessionIDFromContext(r.Context())

	page, err := h.pages.RenderPage(r.Context(), h.application, sessionID)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	if page.SessionID != sessionID {
		middleware.SetSessionCookie(w, h.basePath, page.SessionID)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(page.Markup)); err != nil {
		logging.FromContext(r.Context()).WarnContext(r.Context(), "failed to write page",
			slog.Any("error", err),
		)
	}
}

// Submit handles POST {base}, the form submission used when scripting is
// unavailable. The values are applied and the browser is redirected to the
// page. A post for an expired session redirects to a fresh page.
func (h *PageHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBodyBytes)
	if err := r.ParseForm(); err != nil {
		dto.WriteErrorResponse(w, r, &domain.ValidationError{
			Fields: map[string]string{"body": "invalid form"},
		})
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())
	err := h.pages.SubmitForm(r.Context(), h.application, sessionID, r.PostForm)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	http.Redirect(w, r, h.basePath, http.StatusSeeOther)
}

// Events handles POST {base}_guise/ajax. The body is an EventRequest; the
// response is the UpdateResponse to apply.
func (h *PageHandler) Events(w http.ResponseWriter, r *http.Request) {
	var req dto.EventRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	update, err := h.pages.ProcessEvents(r.Context(), h.application,
		middleware.SessionIDFromContext(r.Context()), req.ToEvents())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUpdateResponse(update))
}

// Acknowledge handles POST {base}_guise/notifications/ack. Scripted clients
// asking for JSON get the resulting update; plain form posts are redirected
// to the page.
func (h *PageHandler) Acknowledge(w http.ResponseWriter, r *http.Request) {
	update, err := h.pages.AcknowledgeNotifications(r.Context(), h.application,
		middleware.SessionIDFromContext(r.Context()))
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !strings.Contains(r.Header.Get("Accept"), "application/json") {
		http.Redirect(w, r, h.basePath, http.StatusSeeOther)
		return
	}
	writeJSON(w, http.StatusOK, dto.ToUpdateResponse(update))
}
