// Package app provides the application services that host Guise
// applications: the registry of applications and their sessions, page
// depiction and event processing, and theme resolution.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/guise/internal/adapters/web/depict"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/platform/config"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
	"github.com/jsamuelsen11/guise/internal/platform/telemetry"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// Container holds the registered applications and their live sessions.
// Sessions idle for longer than the configured timeout are expired.
type Container struct {
	cfg      config.GuiseConfig
	registry *depict.Registry
	themes   *ThemeService
	prefs    ports.PreferenceStore
	metrics  *telemetry.Metrics
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	apps     map[string]*Application
	sessions map[string]*Session
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithPreferenceStore persists component preferences in store.
func WithPreferenceStore(store ports.PreferenceStore) ContainerOption {
	return func(c *Container) { c.prefs = store }
}

// WithMetrics records session counts in m.
func WithMetrics(m *telemetry.Metrics) ContainerOption {
	return func(c *Container) { c.metrics = m }
}

// WithClock replaces time.Now for idle expiry.
func WithClock(now func() time.Time) ContainerOption {
	return func(c *Container) { c.now = now }
}

// NewContainer creates an empty Container. Depictors are looked up in
// registry and frames of new sessions are themed through themes.
func NewContainer(cfg config.GuiseConfig, registry *depict.Registry, themes *ThemeService, logger *slog.Logger, opts ...ContainerOption) *Container {
	c := &Container{
		cfg:      cfg,
		registry: registry,
		themes:   themes,
		logger:   logger,
		now:      time.Now,
		apps:     make(map[string]*Application),
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register adds app. Names must be unique and base paths must start and end
// with a slash.
func (c *Container) Register(app *Application) error {
	if app == nil || app.Name == "" || app.NewFrame == nil {
		return fmt.Errorf("application needs a name and a frame builder: %w", domain.ErrInvalidArgument)
	}
	if !strings.HasPrefix(app.BasePath, "/") || !strings.HasSuffix(app.BasePath, "/") {
		return fmt.Errorf("application %s base path %q: %w", app.Name, app.BasePath, domain.ErrInvalidArgument)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.apps[app.Name]; ok {
		return fmt.Errorf("application %s: %w", app.Name, domain.ErrConflict)
	}
	c.apps[app.Name] = app
	return nil
}

// Application returns the application registered under name.
func (c *Container) Application(name string) (*Application, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	app, ok := c.apps[name]
	if !ok {
		return nil, fmt.Errorf("application %s: %w", name, domain.ErrNotFound)
	}
	return app, nil
}

// Applications returns the registered applications.
func (c *Container) Applications() []*Application {
	c.mu.RLock()
	defer c.mu.RUnlock()
	apps := make([]*Application, 0, len(c.apps))
	for _, app := range c.apps {
		apps = append(apps, app)
	}
	return apps
}

// NewSession starts a session of the named application: it builds the
// frame, applies the application theme, and restores stored preferences.
// A theme that cannot be loaded is logged and the frame is shown unthemed.
func (c *Container) NewSession(ctx context.Context, name string) (*Session, error) {
	app, err := c.Application(name)
	if err != nil {
		return nil, err
	}

	frame, err := app.NewFrame(ctx)
	if err != nil {
		return nil, fmt.Errorf("building frame of %s: %w", name, err)
	}
	if err := c.themes.Apply(ctx, app.ThemeURI, frame); err != nil {
		logging.FromContext(ctx).WarnContext(ctx, "showing frame without theme",
			slog.String("operation", "NewSession"),
			slog.String("application", name),
			slog.Any("error", err),
		)
	}

	p := platform.New(c.cfg.PollInterval)
	s := &Session{
		ID:        uuid.NewString(),
		app:       app,
		frame:     frame,
		platform:  p,
		renderer:  depict.NewRenderer(c.registry, p, frame, depict.WithBasePath(app.BasePath), depict.WithIndent(c.cfg.Indent)),
		notes:     &notificationQueue{},
		prefs:     c.prefs,
		persisted: make(map[string]map[string]string),
	}
	frame.SetNotificationSink(s.notes)
	s.loadPreferences(ctx)
	s.touch(c.now())

	c.mu.Lock()
	c.sessions[s.ID] = s
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.SessionsActive.Add(ctx, 1)
	}
	c.logger.InfoContext(ctx, "session started",
		slog.String("application", name),
		slog.String(logging.SessionIDField, s.ID),
	)
	return s, nil
}

// Session returns the live session with id belonging to the named
// application and marks it used.
func (c *Container) Session(name, id string) (*Session, error) {
	c.mu.RLock()
	s, ok := c.sessions[id]
	c.mu.RUnlock()
	if !ok || s.app.Name != name {
		return nil, fmt.Errorf("session of %s: %w", name, domain.ErrNotFound)
	}
	s.touch(c.now())
	return s, nil
}

// Sessions returns the number of live sessions.
func (c *Container) Sessions() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sessions)
}

// Expire ends the sessions idle for longer than the configured timeout and
// returns how many it ended.
func (c *Container) Expire(ctx context.Context) int {
	cutoff := c.now().Add(-c.cfg.SessionIdleTimeout)

	c.mu.Lock()
	var expired []*Session
	for id, s := range c.sessions {
		if s.LastAccess().Before(cutoff) {
			expired = append(expired, s)
			delete(c.sessions, id)
		}
	}
	c.mu.Unlock()

	c.end(ctx, expired)
	return len(expired)
}

// Run expires idle sessions periodically until ctx is done.
func (c *Container) Run(ctx context.Context) {
	interval := max(c.cfg.SessionIdleTimeout/2, time.Second)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.Expire(ctx); n > 0 {
				c.logger.InfoContext(ctx, "expired idle sessions", slog.Int("count", n))
			}
		}
	}
}

// Close ends every session.
func (c *Container) Close(ctx context.Context) {
	c.mu.Lock()
	all := make([]*Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		all = append(all, s)
	}
	clear(c.sessions)
	c.mu.Unlock()

	c.end(ctx, all)
}

func (c *Container) end(ctx context.Context, sessions []*Session) {
	for _, s := range sessions {
		s.close()
	}
	if c.metrics != nil && len(sessions) > 0 {
		c.metrics.SessionsActive.Add(ctx, -int64(len(sessions)))
	}
}
