package telemetry

import (
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys for metric labels.
var (
	AttrHTTPMethod  = attribute.Key("http.method")
	AttrHTTPStatus  = attribute.Key("http.status_code")
	AttrPeerService = attribute.Key("peer.service")
	AttrResult      = attribute.Key("result")
	AttrEventKind   = attribute.Key("guise.event.kind")
	AttrRenderKind  = attribute.Key("guise.render.kind")
)

// Metrics holds the server's metric instruments. Components accept a nil
// *Metrics and record nothing.
type Metrics struct {
	ServerRequestDuration metric.Float64Histogram
	ServerRequestTotal    metric.Int64Counter
	ClientRequestDuration metric.Float64Histogram
	ClientRequestTotal    metric.Int64Counter
	EventsProcessed       metric.Int64Counter
	DepictionDuration     metric.Float64Histogram
	SessionsActive        metric.Int64UpDownCounter
}

// instrument describes one entry of the Metrics struct.
type instrument struct {
	name, description, unit string
	create                  func(meter metric.Meter, name, desc, unit string) error
}

// NewMetrics creates every instrument on a meter scoped to scope.
func NewMetrics(mp metric.MeterProvider, scope string) (*Metrics, error) {
	m := &Metrics{}
	for _, in := range m.instruments() {
		if err := in.create(mp.Meter(scope), in.name, in.description, in.unit); err != nil {
			return nil, fmt.Errorf("creating %s: %w", in.name, err)
		}
	}
	return m, nil
}

func (m *Metrics) instruments() []instrument {
	return []instrument{
		{"http.server.request.duration", "Duration of incoming HTTP requests", "s", histogram(&m.ServerRequestDuration)},
		{"http.server.request.total", "Total number of incoming HTTP requests", "{request}", counter(&m.ServerRequestTotal)},
		{"http.client.request.duration", "Duration of theme server requests", "s", histogram(&m.ClientRequestDuration)},
		{"http.client.request.total", "Total number of theme server requests", "{request}", counter(&m.ClientRequestTotal)},
		{"guise.events.processed", "Number of platform events delivered to depictors", "{event}", counter(&m.EventsProcessed)},
		{"guise.depiction.duration", "Duration of page and patch depiction", "s", histogram(&m.DepictionDuration)},
		{"guise.sessions.active", "Number of live sessions", "{session}", upDownCounter(&m.SessionsActive)},
	}
}

func histogram(dst *metric.Float64Histogram) func(metric.Meter, string, string, string) error {
	return func(meter metric.Meter, name, desc, unit string) (err error) {
		*dst, err = meter.Float64Histogram(name, metric.WithDescription(desc), metric.WithUnit(unit))
		return err
	}
}

func counter(dst *metric.Int64Counter) func(metric.Meter, string, string, string) error {
	return func(meter metric.Meter, name, desc, unit string) (err error) {
		*dst, err = meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		return err
	}
}

func upDownCounter(dst *metric.Int64UpDownCounter) func(metric.Meter, string, string, string) error {
	return func(meter metric.Meter, name, desc, unit string) (err error) {
		*dst, err = meter.Int64UpDownCounter(name, metric.WithDescription(desc), metric.WithUnit(unit))
		return err
	}
}
