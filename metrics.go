package reportengine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const metricsNamespace = "reportengine"

// metrics uses a per-App registry so several Apps (tests, embedding) can
// coexist in one process.
type metrics struct {
	registry       *prometheus.Registry
	reportsCreated prometheus.Counter
	imagesStored   prometheus.Counter
}

func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	m := &metrics{
		registry: reg,
		reportsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "reports_created_total",
			Help:      "Reports inserted into the document store.",
		}),
		imagesStored: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "images_stored_total",
			Help:      "Uploaded images written to the upload directory.",
		}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.reportsCreated,
		m.imagesStored,
	)
	return m
}
