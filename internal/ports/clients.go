package ports

import (
	"context"

	"github.com/jsamuelsen11/guise/internal/domain/theme"
)

// ThemeSource loads a single theme resource without resolving its parent.
// Implemented by the theme adapters; called by the theme service.
type ThemeSource interface {
	// Load reads and parses the theme at uri.
	// Returns domain.ErrNotFound if there is no theme at uri, and
	// domain.ErrValidation if the resource is not a valid theme.
	Load(ctx context.Context, uri string) (*theme.Theme, error)
}

// PreferenceStore persists component preference properties per application
// and component path. Values are stored in their text form.
type PreferenceStore interface {
	// Load returns the stored values, or an empty map if none are stored.
	Load(ctx context.Context, application, path string) (map[string]string, error)

	// Save replaces the stored values. An empty map removes them.
	Save(ctx context.Context, application, path string, values map[string]string) error
}
