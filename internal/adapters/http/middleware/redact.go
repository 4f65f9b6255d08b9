package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/jsamuelsen11/guise/internal/platform/logging"
)

const redacted = "[REDACTED]"

// RedactHeaders converts headers into slog attributes sorted by name, for
// debug logging. Credential headers are replaced with "[REDACTED]". Cookie
// headers keep their cookie names but hide the session cookie's value, so a
// log still shows whether the browser presented a session.
func RedactHeaders(headers http.Header) []slog.Attr {
	keys := make([]string, 0, len(headers))
	for key := range headers {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	attrs := make([]slog.Attr, 0, len(keys))
	for _, key := range keys {
		vals := headers[key]
		switch lower := strings.ToLower(key); {
		case logging.SensitiveHeaders[lower]:
			attrs = append(attrs, slog.String(key, redacted))
		case lower == "cookie":
			attrs = append(attrs, slog.String(key, redactSessionCookie(strings.Join(vals, "; "))))
		default:
			attrs = append(attrs, slog.String(key, strings.Join(vals, ",")))
		}
	}
	return attrs
}

func redactSessionCookie(header string) string {
	parts := strings.Split(header, ";")
	for i, part := range parts {
		name, _, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && name == SessionCookie {
			parts[i] = " " + SessionCookie + "=" + redacted
		}
	}
	return strings.TrimSpace(strings.Join(parts, ";"))
}
