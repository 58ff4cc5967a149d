package forward

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hedisam/ringqueue/internal/custompromauto"
)

var deliveredMessages = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
	Name: "ringqueue_forwarded_messages_total",
	Help: "Number of messages delivered to the webhook",
})

var failedDeliveries = custompromauto.Auto().NewCounter(prometheus.CounterOpts{
	Name: "ringqueue_failed_deliveries_total",
	Help: "Number of messages dropped after exhausting webhook delivery retries",
})
