package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jsamuelsen11/guise/internal/adapters/web/depict"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	appctx "github.com/jsamuelsen11/guise/internal/app/context"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// FrameBuilder creates the component tree of a new session.
type FrameBuilder func(ctx context.Context) (*component.Frame, error)

// Application is a Guise application mounted under BasePath.
type Application struct {
	Name     string
	BasePath string
	// ThemeURI names the theme applied to every new frame. Empty means none.
	ThemeURI    string
	Stylesheets []string
	Scripts     []string
	NewFrame    FrameBuilder
}

// Session is one user's instance of an application: its frame, the
// renderer depicting it, and the notifications waiting for the user.
// Event processing and depiction are serialized per session.
type Session struct {
	ID  string
	app *Application

	mu       sync.Mutex
	frame    *component.Frame
	platform *platform.Platform
	renderer *depict.Renderer
	notes    *notificationQueue

	prefs     ports.PreferenceStore
	prefsMu   sync.Mutex
	persisted map[string]map[string]string

	lastAccess atomic.Int64
}

// Application returns the application the session belongs to.
func (s *Session) Application() *Application { return s.app }

// Frame returns the root of the session's component tree.
func (s *Session) Frame() *component.Frame { return s.frame }

// LastAccess returns when the session was last used.
func (s *Session) LastAccess() time.Time { return time.Unix(0, s.lastAccess.Load()) }

func (s *Session) touch(now time.Time) { s.lastAccess.Store(now.UnixNano()) }

// Notifications returns the notifications awaiting acknowledgement.
func (s *Session) Notifications() []domain.Notification { return s.notes.pending() }

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame.SetNotificationSink(nil)
	s.renderer.Close()
}

// notificationQueue is the frame's notification sink. Notifications wait
// until the user acknowledges them; the continuations registered with them
// run afterwards, in order.
type notificationQueue struct {
	mu    sync.Mutex
	notes []domain.Notification
	thens []func()
}

func (q *notificationQueue) Notify(then func(), notes ...domain.Notification) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.notes = append(q.notes, notes...)
	if then != nil {
		q.thens = append(q.thens, then)
	}
}

func (q *notificationQueue) pending() []domain.Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	return slices.Clone(q.notes)
}

// acknowledge clears the queue and runs the waiting continuations. Further
// notifications raised by a continuation are queued anew.
func (q *notificationQueue) acknowledge() int {
	q.mu.Lock()
	n := len(q.notes)
	thens := q.thens
	q.notes, q.thens = nil, nil
	q.mu.Unlock()

	for _, then := range thens {
		then()
	}
	return n
}

// preferenceKey addresses the stored preferences of one component.
func preferenceKey(path string) string { return "prefs:" + path }

// loadPreferences assigns stored preference values to every component of
// the frame that declares preference properties.
// Values that cannot be loaded or assigned are logged and skipped.
func (s *Session) loadPreferences(ctx context.Context) {
	if s.prefs == nil {
		return
	}
	var errs []error
	component.Walk(s.frame, func(c component.Component) bool {
		names := c.PreferenceProperties()
		if len(names) == 0 {
			return true
		}
		path := component.Path(c)
		values, err := s.prefs.Load(ctx, s.app.Name, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("loading preferences of %s: %w", path, err))
			return true
		}
		for _, name := range names {
			v, ok := values[name]
			if !ok {
				continue
			}
			if err := c.SetPropertyValue(name, v); err != nil {
				errs = append(errs, err)
			}
		}
		s.remember(path, values)
		return true
	})
	if len(errs) > 0 {
		logging.FromContext(ctx).WarnContext(ctx, "some preferences could not be restored",
			slog.String("operation", "Session.loadPreferences"),
			slog.String("application", s.app.Name),
			slog.Any("error", errors.Join(errs...)),
		)
	}
}

func (s *Session) remember(path string, values map[string]string) {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()
	s.persisted[path] = maps.Clone(values)
}

func (s *Session) recalled(path string) map[string]string {
	s.prefsMu.Lock()
	defer s.prefsMu.Unlock()
	return maps.Clone(s.persisted[path])
}

// currentPreferences returns the text form of c's preference properties.
func currentPreferences(c component.Component) map[string]string {
	values := make(map[string]string)
	for _, name := range c.PreferenceProperties() {
		if v, ok := c.PropertyValue(name); ok && v != nil {
			values[name] = fmt.Sprint(v)
		}
	}
	return values
}

// stagePreferences stages a save for every component whose preference
// values differ from the stored ones.
func (s *Session) stagePreferences(rc *appctx.RequestContext) error {
	if s.prefs == nil {
		return nil
	}
	var errs []error
	component.Walk(s.frame, func(c component.Component) bool {
		if len(c.PreferenceProperties()) == 0 {
			return true
		}
		path := component.Path(c)
		stored, err := appctx.GetOrFetch(rc, preferenceKey(path), func(context.Context) (map[string]string, error) {
			return s.recalled(path), nil
		})
		if err != nil {
			errs = append(errs, err)
			return true
		}
		current := currentPreferences(c)
		if maps.Equal(stored, current) {
			return true
		}
		errs = append(errs, rc.Stage(preferenceKey(path), current, &savePreferences{
			session:  s,
			path:     path,
			values:   current,
			previous: stored,
		}))
		return true
	})
	return errors.Join(errs...)
}

// savePreferences persists the preference values of one component.
type savePreferences struct {
	session  *Session
	path     string
	values   map[string]string
	previous map[string]string
}

func (a *savePreferences) Execute(ctx context.Context) error {
	if err := a.session.prefs.Save(ctx, a.session.app.Name, a.path, a.values); err != nil {
		return err
	}
	a.session.remember(a.path, a.values)
	return nil
}

func (a *savePreferences) Rollback(ctx context.Context) error {
	if err := a.session.prefs.Save(ctx, a.session.app.Name, a.path, a.previous); err != nil {
		return err
	}
	a.session.remember(a.path, a.previous)
	return nil
}

func (a *savePreferences) Description() string {
	return "save preferences of " + a.path
}
