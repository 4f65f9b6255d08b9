package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/guise/internal/adapters/web/depict"
	"github.com/jsamuelsen11/guise/internal/adapters/web/platform"
	appctx "github.com/jsamuelsen11/guise/internal/app/context"
	"github.com/jsamuelsen11/guise/internal/app/fanout"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
	"github.com/jsamuelsen11/guise/internal/platform/telemetry"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// Compile-time check that PageService implements ports.PageService.
var _ ports.PageService = (*PageService)(nil)

// Paths below an application's base path served by the framework itself.
const (
	EventPath         = "_guise/ajax"
	AcknowledgePath   = "_guise/notifications/ack"
	ResourcesPath     = "_guise/resources/"
	defaultStylesheet = ResourcesPath + "guise.css"
	defaultScript     = ResourcesPath + "guise.js"
)

// PageService implements ports.PageService on top of the session
// container. Patches of independent dirty subtrees are rendered by up to
// workers goroutines.
type PageService struct {
	container *Container
	workers   int
	metrics   *telemetry.Metrics
	logger    *slog.Logger
}

// NewPageService creates a PageService. metrics may be nil.
func NewPageService(container *Container, workers int, metrics *telemetry.Metrics, logger *slog.Logger) *PageService {
	return &PageService{
		container: container,
		workers:   workers,
		metrics:   metrics,
		logger:    logger,
	}
}

// RenderPage depicts the whole frame of the session, starting a new session
// when sessionID is empty or no longer live.
func (s *PageService) RenderPage(ctx context.Context, application, sessionID string) (*ports.Page, error) {
	sess, err := s.container.Session(application, sessionID)
	if errors.Is(err, domain.ErrNotFound) {
		sess, err = s.container.NewSession(ctx, application)
	}
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to open session",
			slog.String("operation", "RenderPage"),
			slog.String("application", application),
			slog.Any("error", err),
		)
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	start := time.Now()
	app := sess.app
	markup, err := sess.renderer.RenderPage(depict.Page{
		Stylesheets:   append([]string{defaultStylesheet}, app.Stylesheets...),
		Scripts:       append([]string{defaultScript}, app.Scripts...),
		PollInterval:  sess.platform.PollInterval(),
		FormURI:       app.BasePath,
		EventURI:      app.BasePath + EventPath,
		AckURI:        app.BasePath + AcknowledgePath,
		Notifications: sess.notes.pending(),
	})
	s.recordDepiction(ctx, "page", start)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to depict page",
			slog.String("operation", "RenderPage"),
			slog.String("application", application),
			slog.Any("error", err),
		)
		return nil, err
	}

	return &ports.Page{SessionID: sess.ID, Markup: markup}, nil
}

// ProcessEvents applies events in order, persists changed preferences, and
// returns the patches, commands, and notifications the browser must apply.
// Processing stops at the first event that cannot be delivered; the events
// before it stay applied.
func (s *PageService) ProcessEvents(ctx context.Context, application, sessionID string, events []platform.Event) (*ports.Update, error) {
	sess, err := s.container.Session(application, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := s.apply(ctx, sess, events); err != nil {
		s.logger.WarnContext(ctx, "rejected platform event",
			slog.String("operation", "ProcessEvents"),
			slog.String("application", application),
			slog.Any("error", err),
		)
		return nil, err
	}
	return s.update(ctx, sess), nil
}

// SubmitForm applies params as an exhaustive form event.
func (s *PageService) SubmitForm(ctx context.Context, application, sessionID string, params url.Values) error {
	sess, err := s.container.Session(application, sessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return s.apply(ctx, sess, []platform.Event{platform.FormEvent{Params: params, Exhaustive: true}})
}

// AcknowledgeNotifications dismisses the pending notifications and runs the
// transitions that were waiting for them.
func (s *PageService) AcknowledgeNotifications(ctx context.Context, application, sessionID string) (*ports.Update, error) {
	sess, err := s.container.Session(application, sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	n := sess.notes.acknowledge()
	s.logger.DebugContext(ctx, "notifications acknowledged",
		slog.String("application", application),
		slog.Int("count", n),
	)
	s.persist(ctx, sess)
	return s.update(ctx, sess), nil
}

// apply delivers events to the session's renderer and then persists changed
// preferences. The caller holds sess.mu.
func (s *PageService) apply(ctx context.Context, sess *Session, events []platform.Event) error {
	for _, ev := range events {
		kind := eventKind(ev)
		err := sess.renderer.ProcessEvent(ctx, ev)
		if s.metrics != nil {
			result := "ok"
			if err != nil {
				result = "error"
			}
			s.metrics.EventsProcessed.Add(ctx, 1, metric.WithAttributes(
				telemetry.AttrEventKind.String(kind),
				telemetry.AttrResult.String(result),
			))
		}
		if err != nil {
			return fmt.Errorf("%s event: %w", kind, err)
		}
	}
	s.persist(ctx, sess)
	return nil
}

// persist saves changed preferences. A failed save is reported to the user
// as a notification on the frame rather than failing the request.
func (s *PageService) persist(ctx context.Context, sess *Session) {
	rc := appctx.New(ctx)
	err := sess.stagePreferences(rc)
	if err == nil {
		err = rc.Commit(ctx)
	}
	if err == nil {
		return
	}
	logging.FromContext(ctx).ErrorContext(ctx, "failed to save preferences",
		slog.String("operation", "PageService.persist"),
		slog.String("application", sess.app.Name),
		slog.Any("error", err),
	)
	component.Notify(sess.frame, nil, domain.NewErrorNotification(err))
}

// update collects what changed since the last depiction. The caller holds
// sess.mu.
func (s *PageService) update(ctx context.Context, sess *Session) *ports.Update {
	start := time.Now()
	roots := sess.renderer.TakeDirtyRoots()
	results := fanout.Run(ctx, s.workers, roots, func(_ context.Context, c component.Component) (ports.Patch, error) {
		markup, err := sess.renderer.RenderComponent(c)
		if err != nil {
			return ports.Patch{}, err
		}
		return ports.Patch{ID: platform.FormatDepictID(c.ID()), Markup: markup}, nil
	})
	patches, errs := fanout.Values(results)
	if len(roots) > 0 {
		s.recordDepiction(ctx, "patch", start)
	}
	if len(errs) > 0 {
		s.logger.ErrorContext(ctx, "failed to depict changed components",
			slog.String("operation", "PageService.update"),
			slog.String("application", sess.app.Name),
			slog.Any("error", errors.Join(errs...)),
		)
	}
	sess.renderer.Prune()

	return &ports.Update{
		Patches:       patches,
		Commands:      sess.platform.Drain(),
		Notifications: sess.notes.pending(),
	}
}

func (s *PageService) recordDepiction(ctx context.Context, kind string, start time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.DepictionDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(telemetry.AttrRenderKind.String(kind)))
}

func eventKind(ev platform.Event) string {
	switch ev.(type) {
	case platform.ActionEvent:
		return "action"
	case platform.ChangeEvent:
		return "change"
	case platform.FormEvent:
		return "form"
	case platform.ProgressEvent:
		return "progress"
	case platform.PollEvent:
		return "poll"
	default:
		return "unknown"
	}
}
