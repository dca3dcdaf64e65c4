// Package metrics exposes Prometheus collectors for exports and the HTTP
// server.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cv2pdf"

// Export outcomes.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

var (
	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "total",
			Help:      "Exports by outcome.",
		},
		[]string{"status"},
	)

	exportDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "duration_seconds",
			Help:      "End-to-end export duration.",
			Buckets:   []float64{0.5, 1, 2, 4, 8, 15, 30, 60},
		},
	)

	renderDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "duration_seconds",
			Help:      "Browser render duration per layer.",
			Buckets:   []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		},
		[]string{"layer"},
	)

	mergedPages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "pages",
			Help:      "Pages in merged PDFs.",
			Buckets:   []float64{1, 2, 3, 4, 6, 8, 12},
		},
	)

	fontTimeouts = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "render",
			Name:      "font_timeouts_total",
			Help:      "Renders that gave up waiting for web fonts.",
		},
	)

	photoMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "export",
			Name:      "photo_misses_total",
			Help:      "Exports whose photo could not be found.",
		},
	)
)

// ObserveExport records one finished export.
func ObserveExport(err error, d time.Duration, pages int) {
	status := StatusOK
	if err != nil {
		status = StatusError
	}
	exportsTotal.WithLabelValues(status).Inc()
	exportDuration.Observe(d.Seconds())
	if err == nil {
		mergedPages.Observe(float64(pages))
	}
}

// ObserveRender records one layer render.
func ObserveRender(layer string, d time.Duration) {
	renderDuration.WithLabelValues(layer).Observe(d.Seconds())
}

// FontTimeout counts a render that proceeded with fallback fonts.
func FontTimeout() {
	fontTimeouts.Inc()
}

// PhotoMiss counts an export rendered without its photo.
func PhotoMiss() {
	photoMisses.Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
