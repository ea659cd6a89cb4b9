package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/remtori/image-resize/internal/core/domain"
)

type Options struct {
	Labels prometheus.Labels
}

// Instance holds every metric the service exports. Construct it once with
// New, attach it to a registry with Register and hand it to the HTTP layer
// as its metrics recorder.
type Instance struct {
	requestsTotal       *prometheus.CounterVec
	sourceFileTypeTotal *prometheus.CounterVec

	fetchDurationSeconds  prometheus.Histogram
	decodeDurationSeconds prometheus.Histogram
	resizeDurationSeconds prometheus.Histogram
	encodeDurationSeconds prometheus.Histogram
}

func New(o Options) *Instance {
	return &Instance{
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "image_resize",
			Name:        "requests_total",
			Help:        "The total number of processed requests per outcome",
			ConstLabels: o.Labels,
		}, []string{"outcome"}),
		sourceFileTypeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "image_resize",
			Name:        "source_file_type_total",
			Help:        "The total number of fetched sources per detected file type",
			ConstLabels: o.Labels,
		}, []string{"type"}),
		fetchDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resize",
			Name:        "fetch_duration_seconds",
			Help:        "The seconds spent fetching source bytes",
			ConstLabels: o.Labels,
		}),
		decodeDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resize",
			Name:        "decode_duration_seconds",
			Help:        "The seconds spent decoding source bytes",
			ConstLabels: o.Labels,
		}),
		resizeDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resize",
			Name:        "resize_duration_seconds",
			Help:        "The seconds spent resampling pixels",
			ConstLabels: o.Labels,
		}),
		encodeDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace:   "image_resize",
			Name:        "encode_duration_seconds",
			Help:        "The seconds spent encoding output JPEGs",
			ConstLabels: o.Labels,
		}),
	}
}

func (m *Instance) Register(r prometheus.Registerer) {
	r.MustRegister(
		m.requestsTotal,
		m.sourceFileTypeTotal,

		m.fetchDurationSeconds,
		m.decodeDurationSeconds,
		m.resizeDurationSeconds,
		m.encodeDurationSeconds,
	)
}

// RecordRequest counts one finished request and observes the durations of
// the stages that actually ran.
func (m *Instance) RecordRequest(result domain.Result, outcome domain.Outcome) {
	m.requestsTotal.WithLabelValues(string(outcome)).Inc()

	if result.FileType != "" {
		m.sourceFileTypeTotal.WithLabelValues(result.FileType).Inc()
	}

	if result.Timings.Fetch > 0 {
		m.fetchDurationSeconds.Observe(result.Timings.Fetch.Seconds())
	}
	if result.Timings.Decode > 0 {
		m.decodeDurationSeconds.Observe(result.Timings.Decode.Seconds())
	}
	if result.Timings.Resize > 0 {
		m.resizeDurationSeconds.Observe(result.Timings.Resize.Seconds())
	}
	if result.Timings.Encode > 0 {
		m.encodeDurationSeconds.Observe(result.Timings.Encode.Seconds())
	}
}
