package app_test

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/adapters/web/depict"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	"github.com/jsamuelsen11/guise/internal/app"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/platform/config"
	"github.com/jsamuelsen11/guise/internal/ports"
	"github.com/jsamuelsen11/guise/mocks"
)

const testApp = "demo"

var discard = slog.New(slog.DiscardHandler)

// testFrame is the tree built for each session of the test application.
type testFrame struct {
	frame  *component.Frame
	name   *component.TextControl[string]
	button *component.Button
}

type fixture struct {
	container *app.Container
	service   *app.PageService
	clock     *fakeClock

	mu     sync.Mutex
	frames []*testFrame
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newFixture(t *testing.T, prefs ports.PreferenceStore, onAction func(ctx context.Context, f *testFrame)) *fixture {
	t.Helper()

	fx := &fixture{clock: &fakeClock{now: time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)}}
	cfg := config.GuiseConfig{
		PollInterval:       5 * time.Minute,
		SessionIdleTimeout: 30 * time.Minute,
		RenderWorkers:      2,
	}
	opts := []app.ContainerOption{app.WithClock(fx.clock.Now)}
	if prefs != nil {
		opts = append(opts, app.WithPreferenceStore(prefs))
	}
	themes := app.NewThemeService(mocks.NewMockThemeSource(t), nil, discard)
	fx.container = app.NewContainer(cfg, depict.DefaultRegistry(), themes, discard, opts...)
	fx.service = app.NewPageService(fx.container, cfg.RenderWorkers, nil, discard)

	require.NoError(t, fx.container.Register(&app.Application{
		Name:     testApp,
		BasePath: "/demo/",
		NewFrame: func(context.Context) (*component.Frame, error) {
			f := &testFrame{
				frame:  component.NewFrame("Demo"),
				name:   component.NewStringControl("Name"),
				button: component.NewButton("Go"),
			}
			f.name.SetName("name")
			f.name.AddPreferenceProperty(component.LabelProperty)
			if err := f.frame.Add(f.name, nil); err != nil {
				return nil, err
			}
			if err := f.frame.Add(f.button, nil); err != nil {
				return nil, err
			}
			if onAction != nil {
				f.button.OnAction(func(ctx context.Context) { onAction(ctx, f) })
			}
			fx.mu.Lock()
			fx.frames = append(fx.frames, f)
			fx.mu.Unlock()
			return f.frame, nil
		},
	}))
	return fx
}

func (fx *fixture) lastFrame() *testFrame {
	fx.mu.Lock()
	defer fx.mu.Unlock()
	return fx.frames[len(fx.frames)-1]
}

func (fx *fixture) open(t *testing.T) (string, *testFrame) {
	t.Helper()
	page, err := fx.service.RenderPage(context.Background(), testApp, "")
	require.NoError(t, err)
	return page.SessionID, fx.lastFrame()
}

func TestRenderPage_StartsAndReusesSession(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	ctx := context.Background()

	first, err := fx.service.RenderPage(ctx, testApp, "")
	require.NoError(t, err)
	require.NotEmpty(t, first.SessionID)
	assert.Contains(t, first.Markup, "<title>Demo</title>")
	assert.Contains(t, first.Markup, `href="/demo/_guise/resources/guise.css"`)
	assert.Contains(t, first.Markup, `data-event-uri="/demo/_guise/ajax"`)

	again, err := fx.service.RenderPage(ctx, testApp, first.SessionID)
	require.NoError(t, err)
	assert.Equal(t, first.SessionID, again.SessionID)

	stale, err := fx.service.RenderPage(ctx, testApp, "no-such-session")
	require.NoError(t, err)
	assert.NotEqual(t, first.SessionID, stale.SessionID)
	assert.Equal(t, 2, fx.container.Sessions())
}

func TestRenderPage_UnknownApplication(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	_, err := fx.service.RenderPage(context.Background(), "other", "")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUnknownSession(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "events", call: func() error {
			_, err := fx.service.ProcessEvents(ctx, testApp, "missing", []platform.Event{platform.PollEvent{}})
			return err
		}},
		{name: "form", call: func() error {
			return fx.service.SubmitForm(ctx, testApp, "missing", url.Values{})
		}},
		{name: "acknowledge", call: func() error {
			_, err := fx.service.AcknowledgeNotifications(ctx, testApp, "missing")
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("got %v, want ErrNotFound", err)
			}
		})
	}
}

func TestProcessEvents_PatchesChangedComponents(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	sid, f := fx.open(t)

	update, err := fx.service.ProcessEvents(context.Background(), testApp, sid, []platform.Event{
		platform.ChangeEvent{ObjectID: f.name.ID(), Properties: map[string]any{"value": "Grace"}},
	})

	require.NoError(t, err)
	assert.Equal(t, "Grace", f.name.Text())
	require.Len(t, update.Patches, 1)
	assert.Equal(t, platform.FormatDepictID(f.name.ID()), update.Patches[0].ID)
	assert.Contains(t, update.Patches[0].Markup, `value="Grace"`)

	update, err = fx.service.ProcessEvents(context.Background(), testApp, sid, []platform.Event{platform.PollEvent{}})
	require.NoError(t, err)
	assert.Empty(t, update.Patches)
}

func TestProcessEvents_RejectsMisaddressedEvent(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	sid, _ := fx.open(t)

	_, err := fx.service.ProcessEvents(context.Background(), testApp, sid, []platform.Event{
		platform.ActionEvent{ObjectID: 1 << 40, ActionID: "action"},
	})

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSubmitForm_AppliesValues(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	sid, f := fx.open(t)

	params := url.Values{platform.FormatDepictID(f.name.ID()): {"Ada"}}
	require.NoError(t, fx.service.SubmitForm(context.Background(), testApp, sid, params))

	assert.Equal(t, "Ada", f.name.Text())
}

func TestNotifications_WaitForAcknowledgement(t *testing.T) {
	t.Parallel()

	continued := false
	fx := newFixture(t, nil, func(_ context.Context, f *testFrame) {
		component.Notify(f.button, func() {
			continued = true
			f.name.SetLabel("Continued")
		}, domain.NewNotification("Are you sure?"))
	})
	sid, f := fx.open(t)
	ctx := context.Background()

	update, err := fx.service.ProcessEvents(ctx, testApp, sid, []platform.Event{
		platform.ActionEvent{ObjectID: f.button.ID(), ActionID: "action"},
	})
	require.NoError(t, err)
	require.Len(t, update.Notifications, 1)
	assert.Equal(t, "Are you sure?", update.Notifications[0].Message)
	assert.False(t, continued)

	page, err := fx.service.RenderPage(ctx, testApp, sid)
	require.NoError(t, err)
	assert.Contains(t, page.Markup, "Are you sure?")

	update, err = fx.service.AcknowledgeNotifications(ctx, testApp, sid)
	require.NoError(t, err)
	assert.True(t, continued)
	assert.Empty(t, update.Notifications)
	require.Len(t, update.Patches, 1)
	assert.Equal(t, platform.FormatDepictID(f.name.ID()), update.Patches[0].ID)
}

func TestPreferences_RestoredAndSaved(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Load(mock.Anything, testApp, "frame/name").Return(map[string]string{"label": "Stored"}, nil)
	store.EXPECT().Save(mock.Anything, testApp, "frame/name", map[string]string{"label": "Renamed"}).Return(nil).Once()

	fx := newFixture(t, store, func(_ context.Context, f *testFrame) {
		f.name.SetLabel("Renamed")
	})
	sid, f := fx.open(t)
	assert.Equal(t, "Stored", f.name.Label())

	ctx := context.Background()
	press := []platform.Event{platform.ActionEvent{ObjectID: f.button.ID(), ActionID: "action"}}
	_, err := fx.service.ProcessEvents(ctx, testApp, sid, press)
	require.NoError(t, err)

	// Unchanged values are not saved again.
	_, err = fx.service.ProcessEvents(ctx, testApp, sid, press)
	require.NoError(t, err)
}

func TestPreferences_SaveFailureBecomesNotification(t *testing.T) {
	t.Parallel()

	store := mocks.NewMockPreferenceStore(t)
	store.EXPECT().Load(mock.Anything, testApp, "frame/name").Return(map[string]string{}, nil)
	store.EXPECT().Save(mock.Anything, testApp, "frame/name", mock.Anything).Return(errors.New("disk full"))

	fx := newFixture(t, store, func(_ context.Context, f *testFrame) {
		f.name.SetLabel("Renamed")
	})
	sid, f := fx.open(t)

	update, err := fx.service.ProcessEvents(context.Background(), testApp, sid, []platform.Event{
		platform.ActionEvent{ObjectID: f.button.ID(), ActionID: "action"},
	})

	require.NoError(t, err)
	require.Len(t, update.Notifications, 1)
	assert.Equal(t, domain.SeverityError, update.Notifications[0].Severity)
}

func TestContainer_ExpiresIdleSessions(t *testing.T) {
	t.Parallel()

	fx := newFixture(t, nil, nil)
	ctx := context.Background()
	idle, _ := fx.open(t)

	fx.clock.Advance(20 * time.Minute)
	active, _ := fx.open(t)
	fx.clock.Advance(15 * time.Minute)

	assert.Equal(t, 1, fx.container.Expire(ctx))
	_, err := fx.container.Session(testApp, idle)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = fx.container.Session(testApp, active)
	assert.NoError(t, err)

	fx.container.Close(ctx)
	assert.Zero(t, fx.container.Sessions())
}

func TestContainer_Register(t *testing.T) {
	t.Parallel()

	frame := func(context.Context) (*component.Frame, error) { return component.NewFrame(""), nil }

	tests := []struct {
		name    string
		app     *app.Application
		wantErr error
	}{
		{name: "valid", app: &app.Application{Name: "other", BasePath: "/other/", NewFrame: frame}},
		{name: "duplicate", app: &app.Application{Name: testApp, BasePath: "/x/", NewFrame: frame}, wantErr: domain.ErrConflict},
		{name: "no name", app: &app.Application{BasePath: "/x/", NewFrame: frame}, wantErr: domain.ErrInvalidArgument},
		{name: "no frame builder", app: &app.Application{Name: "x", BasePath: "/x/"}, wantErr: domain.ErrInvalidArgument},
		{name: "relative base path", app: &app.Application{Name: "x", BasePath: "x/", NewFrame: frame}, wantErr: domain.ErrInvalidArgument},
		{name: "base path without trailing slash", app: &app.Application{Name: "x", BasePath: "/x", NewFrame: frame}, wantErr: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fx := newFixture(t, nil, nil)
			err := fx.container.Register(tt.app)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
		})
	}
}
