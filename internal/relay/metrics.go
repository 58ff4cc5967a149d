package relay

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/ringqueue/internal/custompromauto"
)

var (
	droppedValues = custompromauto.Auto().NewCounterVec(prometheus.CounterOpts{
		Name: "ringqueue_relay_dropped_values_total",
		Help: "Number of values dropped by relay buffers because they were full",
	}, []string{"policy"})

	bufferedValues = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Name: "ringqueue_relay_buffered_values",
		Help: "Number of values currently held by relay buffers",
	})
)
