package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/BoykoDmytr/Crypto-Calendar-sub000/internal/model"
)

var (
	registry = prometheus.NewRegistry()

	inserted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_events_inserted_total",
		Help: "New pending events created per channel.",
	}, []string{"channel"})

	updated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_events_updated_total",
		Help: "Pending events updated in place per channel.",
	}, []string{"channel"})

	suggested = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_edit_suggestions_total",
		Help: "Edit suggestions queued against approved events per channel.",
	}, []string{"channel"})

	skipped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_messages_skipped_total",
		Help: "Messages or drafts skipped as unparseable or duplicate per channel.",
	}, []string{"channel"})

	errors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ingest_errors_total",
		Help: "Per-item ingest errors per channel.",
	}, []string{"channel"})
)

func init() {
	registry.MustRegister(inserted, updated, suggested, skipped, errors)
}

// ObserveRun records one channel's run summary.
func ObserveRun(s model.RunSummary) {
	inserted.WithLabelValues(s.Channel).Add(float64(s.Inserted))
	updated.WithLabelValues(s.Channel).Add(float64(s.Updated))
	suggested.WithLabelValues(s.Channel).Add(float64(s.Suggested))
	skipped.WithLabelValues(s.Channel).Add(float64(s.Skipped))
	errors.WithLabelValues(s.Channel).Add(float64(s.Errors))
}

// Push sends the collected counters to a Pushgateway. The ingest binary is
// a short-lived cron job, so pushing at the end of a run is the only way
// its metrics survive.
func Push(gatewayURL, job string) error {
	return push.New(gatewayURL, job).Gatherer(registry).Push()
}

// Handler exposes the registry for the long-running API binary.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
