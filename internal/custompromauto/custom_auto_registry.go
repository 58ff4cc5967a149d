// Package custompromauto holds the prometheus registry every ringqueue metric is registered with.
// Using our own registry instead of the default one keeps the default http handler metrics out of /metrics.
package custompromauto

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	registry = prometheus.NewRegistry()
	auto     = promauto.With(registry)
)

// Auto returns a factory registering the created collectors with Registry.
func Auto() promauto.Factory {
	return auto
}

func Registry() *prometheus.Registry {
	return registry
}

// RegisterRuntimeCollectors adds the go runtime and process collectors to Registry.
func RegisterRuntimeCollectors() error {
	for _, c := range []prometheus.Collector{
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	} {
		err := registry.Register(c)
		if err != nil {
			return err
		}
	}
	return nil
}
