package metrics

import (
	// External Packages
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// DefaultNamespace prefixes every metric when the config leaves metrics.namespace empty.
const DefaultNamespace = "wiki_stream"

// Metrics holds the collectors owned by the application, kafka client metrics
// come from kprom.
type Metrics struct {
	RecordsPrinted *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &Metrics{
		RecordsPrinted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "records_printed_total",
				Help:      "Number of record values written to stdout",
			},
			[]string{"topic"},
		),
	}
}

// Collectors lists the collectors of m for registration.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.RecordsPrinted}
}

// NewRegistry returns a registry holding the Go runtime and process
// collectors plus the collectors of m.
func NewRegistry(m *Metrics) (*prometheus.Registry, error) {
	reg := prometheus.NewRegistry()
	cs := append(m.Collectors(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := Register(reg, cs...); err != nil {
		return nil, err
	}
	return reg, nil
}

// Register registers cs on reg. Collectors that are already registered are
// skipped, so calling it twice is harmless.
func Register(reg prometheus.Registerer, cs ...prometheus.Collector) error {
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
				continue
			}
			return err
		}
	}
	return nil
}
