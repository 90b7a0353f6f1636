package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StateMetrics records cart/order mutations and the health of the state store.
type StateMetrics struct {
	mutations     *prometheus.CounterVec
	persistErrors *prometheus.CounterVec
	loadFallbacks *prometheus.CounterVec
	catalogLoad   *prometheus.HistogramVec
}

// NewStateMetrics registers the state metrics on the provided registerer.
func NewStateMetrics(reg prometheus.Registerer) *StateMetrics {
	if reg == nil {
		return &StateMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewcart_state_mutations_total",
		Help: "Session state mutations by command.",
	}, []string{"command"})
	persistErrors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewcart_state_persist_errors_total",
		Help: "Failed state writes by namespace.",
	}, []string{"namespace"})
	loadFallbacks := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "brewcart_state_load_fallbacks_total",
		Help: "State reads that fell back to the default value.",
	}, []string{"namespace", "reason"})
	catalogLoad := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "brewcart_catalog_load_seconds",
		Help:    "Duration of the startup catalog fetch.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})
	reg.MustRegister(mutations, persistErrors, loadFallbacks, catalogLoad)
	return &StateMetrics{
		mutations:     mutations,
		persistErrors: persistErrors,
		loadFallbacks: loadFallbacks,
		catalogLoad:   catalogLoad,
	}
}

// IncMutation counts a completed session command.
func (s *StateMetrics) IncMutation(command string) {
	if s == nil || s.mutations == nil {
		return
	}
	s.mutations.WithLabelValues(normalizeLabel(command)).Inc()
}

// IncPersistError counts a failed write for the namespace.
func (s *StateMetrics) IncPersistError(namespace string) {
	if s == nil || s.persistErrors == nil {
		return
	}
	s.persistErrors.WithLabelValues(normalizeLabel(namespace)).Inc()
}

// IncLoadFallback counts a read that returned the caller's fallback.
func (s *StateMetrics) IncLoadFallback(namespace, reason string) {
	if s == nil || s.loadFallbacks == nil {
		return
	}
	s.loadFallbacks.WithLabelValues(normalizeLabel(namespace), normalizeLabel(reason)).Inc()
}

// ObserveCatalogLoad records how long the catalog fetch took.
func (s *StateMetrics) ObserveCatalogLoad(duration time.Duration, err error) {
	if s == nil || s.catalogLoad == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.catalogLoad.WithLabelValues(outcome).Observe(duration.Seconds())
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
