package domain

import "context"

// Action represents a single executable operation with rollback capability.
// The application layer stages actions, such as persisting changed component
// preferences, while platform events are processed and runs them once the
// whole batch of events has been applied.
type Action interface {
	// Execute performs the action. The context carries cancellation and
	// deadline signals that the implementation should respect.
	Execute(ctx context.Context) error

	// Rollback reverses the effect of a previously successful Execute call.
	// Rollback is only called if Execute returned nil.
	Rollback(ctx context.Context) error

	// Description returns a human-readable description of the action for
	// logging purposes (e.g., "save preferences for frame wizard").
	Description() string
}
