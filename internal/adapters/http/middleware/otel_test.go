package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/guise/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/guise/internal/platform/telemetry"
)

// These tests replace the global TracerProvider and so do not run in
// parallel.

func setupTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })
	return exporter
}

func spanAttrs(s tracetest.SpanStub) map[attribute.Key]attribute.Value {
	attrs := make(map[attribute.Key]attribute.Value, len(s.Attributes))
	for _, a := range s.Attributes {
		attrs[a.Key] = a.Value
	}
	return attrs
}

func TestOpenTelemetry_Span(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		status     int
		session    string
		wantName   string
		wantStatus codes.Code
	}{
		{name: "page", method: http.MethodGet, path: "/demo/", status: http.StatusOK,
			wantName: "HTTP GET /demo/", wantStatus: codes.Unset},
		{name: "expired session", method: http.MethodPost, path: "/demo/_guise/ajax", status: http.StatusNotFound,
			session: "gone", wantName: "HTTP POST /demo/_guise/ajax", wantStatus: codes.Unset},
		{name: "depiction failure", method: http.MethodGet, path: "/demo/", status: http.StatusInternalServerError,
			session: "s1", wantName: "HTTP GET /demo/", wantStatus: codes.Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exporter := setupTracer(t)

			h := middleware.Session()(middleware.OpenTelemetry(nil)(respond(tt.status, "")))
			req := httptest.NewRequest(tt.method, tt.path, http.NoBody)
			if tt.session != "" {
				req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: tt.session})
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			spans := exporter.GetSpans()
			if len(spans) != 1 {
				t.Fatalf("recorded %d spans, want 1", len(spans))
			}
			s := spans[0]
			if s.Name != tt.wantName {
				t.Errorf("span name = %q, want %q", s.Name, tt.wantName)
			}
			if s.SpanKind != trace.SpanKindServer {
				t.Errorf("span kind = %v, want server", s.SpanKind)
			}
			if s.Status.Code != tt.wantStatus {
				t.Errorf("span status = %v, want %v", s.Status.Code, tt.wantStatus)
			}
			attrs := spanAttrs(s)
			if got := attrs["http.method"].AsString(); got != tt.method {
				t.Errorf("http.method = %q, want %q", got, tt.method)
			}
			if got := attrs["http.status_code"].AsInt64(); got != int64(tt.status) {
				t.Errorf("http.status_code = %d, want %d", got, tt.status)
			}
			if got := attrs["guise.session.present"].AsBool(); got != (tt.session != "") {
				t.Errorf("guise.session.present = %v, want %v", got, tt.session != "")
			}
		})
	}
}

func TestOpenTelemetry_NamesSpanAfterRoute(t *testing.T) {
	exporter := setupTracer(t)

	r := chi.NewRouter()
	r.Use(middleware.OpenTelemetry(nil))
	r.Post("/{app}/_guise/ajax", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/demo/_guise/ajax", http.NoBody))

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	const want = "/{app}/_guise/ajax"
	if spans[0].Name != "HTTP POST "+want {
		t.Errorf("span name = %q, want %q", spans[0].Name, "HTTP POST "+want)
	}
	if got := spanAttrs(spans[0])["http.route"].AsString(); got != want {
		t.Errorf("http.route = %q, want %q", got, want)
	}
}

func TestOpenTelemetry_ContinuesIncomingTrace(t *testing.T) {
	exporter := setupTracer(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodGet, "/demo/", http.NoBody)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	middleware.OpenTelemetry(nil)(respond(http.StatusOK, "")).ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans()
	if len(spans) != 1 {
		t.Fatalf("recorded %d spans, want 1", len(spans))
	}
	if got := spans[0].SpanContext.TraceID().String(); got != traceID {
		t.Errorf("trace ID = %s, want %s", got, traceID)
	}
}

func TestOpenTelemetry_RecordsMetrics(t *testing.T) {
	metrics, err := telemetry.NewMetrics(noop.NewMeterProvider(), "guise")
	if err != nil {
		t.Fatalf("NewMetrics() error = %v", err)
	}

	for _, m := range []*telemetry.Metrics{nil, metrics} {
		rec := httptest.NewRecorder()
		middleware.OpenTelemetry(m)(respond(http.StatusAccepted, "")).
			ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/demo/", http.NoBody))
		if rec.Code != http.StatusAccepted {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusAccepted)
		}
	}
}
