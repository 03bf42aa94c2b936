package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StorefrontMetrics records cart and order activity for the API.
type StorefrontMetrics struct {
	cartMutations   *prometheus.CounterVec
	ordersCreated   prometheus.Counter
	statusChanges   *prometheus.CounterVec
	statusOverrides prometheus.Counter
}

// NewStorefrontMetrics registers the storefront metrics on the provided
// registerer. A nil registerer yields a no-op instance for tests.
func NewStorefrontMetrics(reg prometheus.Registerer) *StorefrontMetrics {
	if reg == nil {
		return &StorefrontMetrics{}
	}
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Cart mutations by operation.",
	}, []string{"op"})
	ordersCreated := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders placed.",
	})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status transitions by target status.",
	}, []string{"status"})
	statusOverrides := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "order_status_overrides_total",
		Help: "Order status changes forced outside the normal progression.",
	})
	reg.MustRegister(cartMutations, ordersCreated, statusChanges, statusOverrides)
	return &StorefrontMetrics{
		cartMutations:   cartMutations,
		ordersCreated:   ordersCreated,
		statusChanges:   statusChanges,
		statusOverrides: statusOverrides,
	}
}

// IncCartMutation increments the counter for the named cart operation.
func (m *StorefrontMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

// IncOrderCreated increments the placed-order counter.
func (m *StorefrontMetrics) IncOrderCreated() {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.Inc()
}

// IncStatusChange records a status transition to the given target status.
func (m *StorefrontMetrics) IncStatusChange(status string, override bool) {
	if m == nil || m.statusChanges == nil {
		return
	}
	m.statusChanges.WithLabelValues(normalizeLabel(status)).Inc()
	if override {
		m.statusOverrides.Inc()
	}
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
