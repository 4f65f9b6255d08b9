package appctx

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen11/guise/internal/platform/logging"
)

// Commit runs the queued actions in order. When one fails, the actions before
// it are rolled back last first and the failure is returned. Rollback failures
// are logged only.
//
// The RequestContext is committed afterwards whatever the outcome; a second
// call returns ErrAlreadyCommitted.
func (rc *RequestContext) Commit(ctx context.Context) error {
	rc.queueMu.Lock()
	if rc.committed {
		rc.queueMu.Unlock()
		return ErrAlreadyCommitted
	}
	rc.committed = true
	actions := rc.actions
	rc.queueMu.Unlock()

	logger := logging.FromContext(ctx)

	for i, a := range actions {
		logger.DebugContext(ctx, "executing staged action",
			slog.String("operation", "RequestContext.Commit"),
			slog.Int("step", i+1),
			slog.Int("total", len(actions)),
			slog.String("action", a.Description()),
		)

		if err := a.Execute(ctx); err != nil {
			logger.WarnContext(ctx, "staged action failed, rolling back",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("failed_step", i+1),
				slog.String("action", a.Description()),
				slog.Any("error", err),
			)
			rollback(ctx, actions[:i])
			return fmt.Errorf("executing %s: %w", a.Description(), err)
		}
	}

	return nil
}
