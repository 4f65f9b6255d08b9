package acl_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/guise/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/component"
)

const baseTheme = `rules:
  - select:
      class: button
    set:
      styleID: guise-button
`

func writeTheme(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestThemeFiles_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	abs := writeTheme(t, dir, "themes/base.guisetheme", baseTheme)
	files := acl.NewThemeFiles(dir)

	tests := []struct {
		name string
		uri  string
	}{
		{name: "relative to root", uri: "themes/base.guisetheme"},
		{name: "absolute path", uri: abs},
		{name: "file URI", uri: "file://" + filepath.ToSlash(abs)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			th, err := files.Load(context.Background(), tt.uri)
			require.NoError(t, err)

			assert.Equal(t, tt.uri, th.URI)
			assert.Empty(t, th.ParentURI)

			button := component.NewButton("Go")
			require.NoError(t, th.Apply(button))
			assert.Equal(t, "guise-button", button.StyleID())
		})
	}
}

func TestThemeFiles_LoadErrors(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "broken.guisetheme", "rules: [")
	writeTheme(t, dir, "unknown.guisetheme", "rules:\n  - select: {class: marquee}\n    set: {styleID: x}\n")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "folder.guisetheme"), 0o755))
	files := acl.NewThemeFiles(dir)

	tests := []struct {
		name    string
		uri     string
		wantErr error
	}{
		{name: "missing", uri: "absent.guisetheme", wantErr: domain.ErrNotFound},
		{name: "directory", uri: "folder.guisetheme", wantErr: domain.ErrNotFound},
		{name: "malformed", uri: "broken.guisetheme", wantErr: domain.ErrValidation},
		{name: "unknown class", uri: "unknown.guisetheme", wantErr: domain.ErrValidation},
		{name: "remote scheme", uri: "https://themes.example.com/a.guisetheme", wantErr: domain.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := files.Load(context.Background(), tt.uri)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load(%q) error = %v, want %v", tt.uri, err, tt.wantErr)
			}
		})
	}
}

func TestThemeFiles_CanceledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := acl.NewThemeFiles(t.TempDir()).Load(ctx, "any.guisetheme")
	assert.ErrorIs(t, err, context.Canceled)
}
