package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"path"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
	"github.com/jsamuelsen11/guise/internal/domain/theme"
	"github.com/jsamuelsen11/guise/internal/ports"
)

// ThemeService loads themes together with their parent chains and caches the
// resolved result per URI. Plain paths and file: URIs are read through the
// file source; http and https URIs through the remote source.
type ThemeService struct {
	files  ports.ThemeSource
	remote ports.ThemeSource
	logger *slog.Logger

	mu       sync.RWMutex
	resolved map[string]*theme.Theme
	loads    singleflight.Group
}

// NewThemeService creates a ThemeService. remote may be nil, in which case
// http URIs fail with domain.ErrUnavailable.
func NewThemeService(files, remote ports.ThemeSource, logger *slog.Logger) *ThemeService {
	return &ThemeService{
		files:    files,
		remote:   remote,
		logger:   logger,
		resolved: make(map[string]*theme.Theme),
	}
}

// Resolve returns the theme at uri with Parent set along the whole chain.
// Relative parent URIs are resolved against the URI of the child. A chain that
// returns to a theme already in it fails with domain.ErrInvalidArgument.
func (s *ThemeService) Resolve(ctx context.Context, uri string) (*theme.Theme, error) {
	s.mu.RLock()
	t, ok := s.resolved[uri]
	s.mu.RUnlock()
	if ok {
		return t, nil
	}

	v, err, _ := s.loads.Do(uri, func() (any, error) {
		return s.resolveChain(ctx, uri)
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to resolve theme",
			slog.String("operation", "ResolveTheme"),
			slog.String("uri", uri),
			slog.Any("error", err),
		)
		return nil, err
	}

	t = v.(*theme.Theme)
	s.mu.Lock()
	s.resolved[uri] = t
	s.mu.Unlock()
	return t, nil
}

func (s *ThemeService) resolveChain(ctx context.Context, uri string) (*theme.Theme, error) {
	seen := make(map[string]bool)
	var root, child *theme.Theme
	for cur := uri; cur != ""; {
		if seen[cur] {
			return nil, fmt.Errorf("theme %s: parent chain returns to %s: %w", uri, cur, domain.ErrInvalidArgument)
		}
		seen[cur] = true

		t, err := s.load(ctx, cur)
		if err != nil {
			return nil, fmt.Errorf("loading theme %s: %w", cur, err)
		}
		if child == nil {
			root = t
		} else {
			child.Parent = t
		}
		child = t

		if t.ParentURI == "" {
			break
		}
		if cur, err = resolveReference(cur, t.ParentURI); err != nil {
			return nil, err
		}
	}
	return root, nil
}

func (s *ThemeService) load(ctx context.Context, uri string) (*theme.Theme, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("theme URI %q: %w", uri, domain.ErrInvalidArgument)
	}
	switch u.Scheme {
	case "http", "https":
		if s.remote == nil {
			return nil, fmt.Errorf("no remote theme source for %s: %w", uri, domain.ErrUnavailable)
		}
		return s.remote.Load(ctx, uri)
	case "", "file":
		return s.files.Load(ctx, uri)
	default:
		return nil, fmt.Errorf("theme URI scheme %q: %w", u.Scheme, domain.ErrInvalidArgument)
	}
}

// resolveReference resolves ref against base. Plain paths are resolved as
// file paths, everything else as URLs.
func resolveReference(base, ref string) (string, error) {
	r, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("parent theme URI %q: %w", ref, domain.ErrInvalidArgument)
	}
	if r.IsAbs() {
		return ref, nil
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("theme URI %q: %w", base, domain.ErrInvalidArgument)
	}
	if b.Scheme == "" {
		if path.IsAbs(ref) {
			return ref, nil
		}
		return path.Join(path.Dir(base), ref), nil
	}
	return b.ResolveReference(r).String(), nil
}

// Apply resolves the theme at uri and applies it to root and its descendants.
// Properties the theme cannot set are logged and do not fail the call; only
// a theme that cannot be resolved does.
func (s *ThemeService) Apply(ctx context.Context, uri string, root component.Component) error {
	if uri == "" {
		return nil
	}
	t, err := s.Resolve(ctx, uri)
	if err != nil {
		return err
	}
	if err := t.ApplyTree(root); err != nil {
		s.logger.WarnContext(ctx, "theme could not set some properties",
			slog.String("operation", "ApplyTheme"),
			slog.String("uri", uri),
			slog.Any("error", err),
		)
	}
	return nil
}

// Forget drops the cached theme for uri so the next Resolve reloads it.
func (s *ThemeService) Forget(uri string) {
	s.mu.Lock()
	delete(s.resolved, uri)
	s.mu.Unlock()
}
