package importing

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	rowsTotal *prometheus.CounterVec
	runsTotal *prometheus.CounterVec
}

var metricsSingleton = sync.OnceValue(func() *metrics {
	return &metrics{
		rowsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donations",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Total number of processed import rows broken down by outcome.",
		}, []string{"outcome"}),
		runsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "donations",
			Subsystem: "import",
			Name:      "runs_total",
			Help:      "Total number of import runs broken down by result.",
		}, []string{"result"}),
	}
})

func getMetrics() *metrics {
	return metricsSingleton()
}
