package appctx

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
)

// AddAction queues action for Commit.
func (rc *RequestContext) AddAction(action domain.Action) error {
	if action == nil {
		return ErrNilAction
	}

	rc.queueMu.Lock()
	defer rc.queueMu.Unlock()

	if rc.committed {
		return ErrAlreadyCommitted
	}
	rc.actions = append(rc.actions, action)
	return nil
}

// rollback undoes actions last first. Failures are logged and do not stop
// the remaining rollbacks.
func rollback(ctx context.Context, actions []domain.Action) {
	logger := logging.FromContext(ctx)
	for i := len(actions) - 1; i >= 0; i-- {
		a := actions[i]
		if err := a.Rollback(ctx); err != nil {
			logger.ErrorContext(ctx, "rollback failed",
				slog.String("operation", "RequestContext.Commit"),
				slog.Int("step", i+1),
				slog.String("action", a.Description()),
				slog.Any("error", err),
			)
		}
	}
}
