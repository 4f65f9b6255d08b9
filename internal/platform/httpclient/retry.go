package httpclient

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/jsamuelsen11/guise/internal/platform/config"
	"github.com/jsamuelsen11/guise/internal/platform/logging"
)

// jitterFraction bounds the random spread applied to each delay (±25%).
const jitterFraction = 0.25

// retryPolicy is the exponential backoff applied between attempts.
type retryPolicy struct {
	maxAttempts     int
	initialInterval time.Duration
	maxInterval     time.Duration
	multiplier      float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
		maxInterval:     cfg.MaxInterval,
		multiplier:      cfg.Multiplier,
	}
}

// delay returns the pause before retry number attempt (1 is the first
// retry). A Retry-After hint from the server lengthens the pause up to
// maxInterval but never shortens it.
func (p retryPolicy) delay(attempt int, hint time.Duration) time.Duration {
	d := float64(p.initialInterval) * math.Pow(p.multiplier, float64(attempt-1))
	d = min(d, float64(p.maxInterval))
	d += d * jitterFraction * (2*randFloat64() - 1)

	wait := time.Duration(max(d, 0))
	if hint > wait {
		wait = min(hint, p.maxInterval)
	}
	return wait
}

// attemptFailure is why an attempt is being retried.
type attemptFailure struct {
	err        error
	retryAfter time.Duration
}

// doWithRetry sends req until it gets a response that should not be
// retried or the attempts run out. The request body is replayed on every
// attempt. The last response is stored in resp with its body open; when
// attempts run out on a retryable status both resp and the error are set.
func (c *Client) doWithRetry(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.maxAttempts < 1 {
		return fmt.Errorf("httpclient: maxAttempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	body, err := bufferRequestBody(req)
	if err != nil {
		return err
	}

	var last attemptFailure
	for attempt := range c.retry.maxAttempts {
		if attempt > 0 {
			if err := c.pause(ctx, req, attempt, last); err != nil {
				return err
			}
		}
		if body != nil {
			req.Body = io.NopCloser(bytes.NewReader(body))
			req.ContentLength = int64(len(body))
		}

		r, err := c.httpClient.Do(req)
		switch {
		case err != nil:
			if !isRetryable(err) {
				return err
			}
			last = attemptFailure{err: err}
		case !isRetryableStatus(r.StatusCode):
			*resp = r
			return nil
		default:
			last = attemptFailure{
				err:        fmt.Errorf("HTTP %d from %s", r.StatusCode, c.serviceName),
				retryAfter: parseRetryAfter(r.Header.Get("Retry-After"), time.Now()),
			}
			if attempt == c.retry.maxAttempts-1 {
				*resp = r
				return last.err
			}
			_, _ = io.Copy(io.Discard, r.Body)
			_ = r.Body.Close()
		}
	}
	return last.err
}

// bufferRequestBody reads and closes the request body so it can be replayed.
func bufferRequestBody(req *http.Request) ([]byte, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return nil, nil
	}
	defer func() { _ = req.Body.Close() }()

	b, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, fmt.Errorf("reading request body: %w", err)
	}
	return b, nil
}

// pause logs the retry and waits out its delay unless ctx ends first.
func (c *Client) pause(ctx context.Context, req *http.Request, attempt int, last attemptFailure) error {
	wait := c.retry.delay(attempt, last.retryAfter)

	logging.FromContext(ctx).WarnContext(ctx, "retrying theme request",
		slog.String("operation", "httpclient.Do"),
		slog.String("method", req.Method),
		slog.String("url", req.URL.String()),
		slog.String("peer_service", c.serviceName),
		slog.Int("attempt", attempt+1),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("backoff", wait),
		slog.Any("error", last.err),
	)

	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// parseRetryAfter reads a Retry-After header given either as seconds or as
// an HTTP date. Missing, malformed or past values yield zero.
func parseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}
	return 0
}

// randFloat64 returns a uniformly distributed float64 in [0, 1).
func randFloat64() float64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0.5
	}
	return float64(binary.BigEndian.Uint64(b[:])>>11) / (1 << 53)
}

// isRetryable reports whether a transport error is worth another attempt.
// Cancellation and deadlines are final; anything else, including network
// errors, is retried.
func isRetryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// isRetryableStatus reports whether the theme server asked for a retry:
// 429 or any 5xx.
func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}
