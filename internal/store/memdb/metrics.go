package memdb

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/ringqueue/internal/custompromauto"
)

var (
	enqueuedMessages = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Name: "ringqueue_enqueued_messages_total",
		Help: "Total number of messages accepted into the queue",
	})
	rejectedMessages = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
		Name: "ringqueue_rejected_messages_total",
		Help: "Total number of messages rejected because the queue was full",
	})

	queueLength = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Name: "ringqueue_queue_length",
		Help: "Number of messages currently held in the queue",
	})
	queueCapacity = custompromauto.Auto().NewGauge(prometheus.GaugeOpts{
		Name: "ringqueue_queue_capacity",
		Help: "Fixed number of message slots in the queue",
	})
)
