package acl

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/providers/file"

	"github.com/jsamuelsen11/guise/internal/adapters/clients/acl/themedoc"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/theme"
	"github.com/jsamuelsen11/guise/internal/ports"
)

var _ ports.ThemeSource = (*ThemeFiles)(nil)

// ThemeFiles loads themes from the local filesystem. Relative URIs are
// resolved against the root directory; file: URIs name absolute paths.
type ThemeFiles struct {
	root string
}

// NewThemeFiles creates a ThemeFiles reading below root.
func NewThemeFiles(root string) *ThemeFiles {
	return &ThemeFiles{root: root}
}

// Load reads and translates the theme document at uri.
func (f *ThemeFiles) Load(ctx context.Context, uri string) (*theme.Theme, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.path(uri)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("theme %s: %w", uri, domain.ErrNotFound)
	case err != nil:
		return nil, fmt.Errorf("theme %s: %w", uri, err)
	case info.IsDir():
		return nil, fmt.Errorf("theme %s is a directory: %w", uri, domain.ErrNotFound)
	}

	dto, err := themedoc.Decode(file.Provider(path))
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", uri, err)
	}
	return themedoc.ToDomainTheme(uri, &dto)
}

func (f *ThemeFiles) path(uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("theme URI %q: %w", uri, domain.ErrInvalidArgument)
	}
	switch u.Scheme {
	case "":
		p := filepath.FromSlash(u.Path)
		if filepath.IsAbs(p) {
			return p, nil
		}
		return filepath.Join(f.root, p), nil
	case "file":
		return filepath.FromSlash(u.Path), nil
	default:
		return "", fmt.Errorf("theme URI %q is not a file: %w", uri, domain.ErrInvalidArgument)
	}
}
