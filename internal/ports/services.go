package ports

import (
	"context"
	"net/url"

	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
)

// Page is a fully depicted document for a session.
type Page struct {
	// SessionID identifies the session the page belongs to. It differs from
	// the requested ID when a new session had to be started.
	SessionID string
	Markup    string
}

// Patch replaces the element with the given depict ID.
type Patch struct {
	ID     string
	Markup string
}

// Update is what the browser must apply after a batch of events: replaced
// elements, queued platform commands, and notifications awaiting
// acknowledgement.
type Update struct {
	Patches       []Patch
	Commands      []platform.Message
	Notifications []domain.Notification
}

// PageService defines the service port for depicting sessions and feeding
// browser events back into their component trees. Implemented by the
// application layer; called by the HTTP handlers.
type PageService interface {
	// RenderPage depicts the whole frame of the session. An empty or unknown
	// sessionID starts a new session of the application.
	// Returns domain.ErrNotFound if the application is not registered.
	RenderPage(ctx context.Context, application, sessionID string) (*Page, error)

	// ProcessEvents applies events in order and returns the resulting update.
	// Returns domain.ErrNotFound if the session does not exist, and
	// domain.ErrInvalidArgument for an event addressed to the wrong object.
	ProcessEvents(ctx context.Context, application, sessionID string, events []platform.Event) (*Update, error)

	// SubmitForm applies a full form submission as an exhaustive form event.
	// Returns domain.ErrNotFound if the session does not exist.
	SubmitForm(ctx context.Context, application, sessionID string, params url.Values) error

	// AcknowledgeNotifications dismisses the pending notifications, runs
	// whatever was waiting on them, and returns the resulting update.
	// Returns domain.ErrNotFound if the session does not exist.
	AcknowledgeNotifications(ctx context.Context, application, sessionID string) (*Update, error)
}
