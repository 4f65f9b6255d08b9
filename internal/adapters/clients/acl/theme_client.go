package acl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/guise/internal/adapters/clients/acl/themedoc"
	"github.com/jsamuelsen11/guise/internal/domain"
	"github.com/jsamuelsen11/guise/internal/domain/theme"
	"github.com/jsamuelsen11/guise/internal/platform/httpclient"
	"github.com/jsamuelsen11/guise/internal/ports"
)

var _ ports.ThemeSource = (*ThemeClient)(nil)

// maxThemeSize bounds a fetched theme document.
const maxThemeSize = 4 << 20

// ThemeClient fetches themes from a theme server over HTTP. The underlying
// httpclient.Client supplies retries, circuit breaking, and tracing, and its
// breaker state is what HealthCheck reports.
type ThemeClient struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewThemeClient creates a ThemeClient sending requests through client.
func NewThemeClient(client *httpclient.Client, logger *slog.Logger) *ThemeClient {
	return &ThemeClient{client: client, logger: logger}
}

// Load fetches and translates the theme document at uri. A relative uri is
// resolved against the client's base URL.
func (c *ThemeClient) Load(ctx context.Context, uri string) (*theme.Theme, error) {
	resp, err := c.client.Get(ctx, uri, theme.MediaType+", application/yaml;q=0.9, */*;q=0.1")
	if resp != nil {
		defer c.closeBody(ctx, resp)
	}
	if err != nil && resp == nil {
		c.logger.ErrorContext(ctx, "theme request failed",
			slog.String("uri", uri),
			slog.Any("error", err),
		)
		return nil, fmt.Errorf("fetching theme %s: %v: %w", uri, err, domain.ErrUnavailable)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.WarnContext(ctx, "unexpected theme status",
			slog.String("uri", uri),
			slog.Int("status", resp.StatusCode),
		)
		return nil, fmt.Errorf("fetching theme %s: %w", uri, TranslateHTTPError(resp))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxThemeSize))
	if err != nil {
		return nil, fmt.Errorf("reading theme %s: %v: %w", uri, err, domain.ErrUnavailable)
	}
	dto, err := themedoc.Decode(themedoc.Bytes(body))
	if err != nil {
		return nil, fmt.Errorf("theme %s: %w", uri, err)
	}
	return themedoc.ToDomainTheme(uri, &dto)
}

// Name returns the name the theme server is registered under for health
// checks.
func (c *ThemeClient) Name() string {
	return c.client.Name()
}

// HealthCheck reports the theme server's breaker state. No request is made.
func (c *ThemeClient) HealthCheck(ctx context.Context) error {
	return c.client.HealthCheck(ctx)
}

func (c *ThemeClient) closeBody(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		c.logger.WarnContext(ctx, "failed to close response body",
			slog.String("error", err.Error()),
		)
	}
}
