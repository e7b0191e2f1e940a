package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lsrc"

// Recorder collects chat proxy outcomes. Safe for concurrent use.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	polls    prometheus.Histogram
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat proxy requests by outcome.",
		}, []string{"outcome"}),
		polls: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_run_polls",
			Help:      "Run status checks performed per chat request.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 30, 45, 60},
		}),
	}
	r.registry.MustRegister(r.requests, r.polls)
	return r
}

// ObserveChat records one finished chat request.
func (r *Recorder) ObserveChat(outcome string, polls int) {
	r.requests.WithLabelValues(outcome).Inc()
	r.polls.Observe(float64(polls))
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
