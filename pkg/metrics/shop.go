package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ShopMetrics records what shoppers do with their state containers.
type ShopMetrics struct {
	ordersCreated   *prometheus.CounterVec
	orderAmount     prometheus.Histogram
	cartMutations   *prometheus.CounterVec
	persistFailures *prometheus.CounterVec
	liveSessions    prometheus.Gauge
}

// NewShopMetrics registers the shop metrics on the provided registerer. A nil
// registerer yields a recorder whose methods are no-ops.
func NewShopMetrics(reg prometheus.Registerer) *ShopMetrics {
	if reg == nil {
		return &ShopMetrics{}
	}
	ordersCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lavka_orders_created_total",
		Help: "Orders recorded by checkout.",
	}, []string{"kind"})
	orderAmount := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "lavka_order_total_rubles",
		Help:    "Order totals including delivery, in rubles.",
		Buckets: []float64{250, 500, 1000, 1500, 2500, 5000, 10000},
	})
	cartMutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lavka_cart_mutations_total",
		Help: "Committed cart mutations.",
	}, []string{"op"})
	persistFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "lavka_persist_failures_total",
		Help: "Blob mirror writes or reads that failed and were degraded.",
	}, []string{"store"})
	liveSessions := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "lavka_live_sessions",
		Help: "Shopper state containers currently held in memory.",
	})
	reg.MustRegister(ordersCreated, orderAmount, cartMutations, persistFailures, liveSessions)
	return &ShopMetrics{
		ordersCreated:   ordersCreated,
		orderAmount:     orderAmount,
		cartMutations:   cartMutations,
		persistFailures: persistFailures,
		liveSessions:    liveSessions,
	}
}

// ObserveOrder counts an order of the given kind ("cart" or "direct") and its total.
func (m *ShopMetrics) ObserveOrder(kind string, total int64) {
	if m == nil || m.ordersCreated == nil {
		return
	}
	m.ordersCreated.WithLabelValues(normalizeLabel(kind)).Inc()
	m.orderAmount.Observe(float64(total))
}

func (m *ShopMetrics) IncCartMutation(op string) {
	if m == nil || m.cartMutations == nil {
		return
	}
	m.cartMutations.WithLabelValues(normalizeLabel(op)).Inc()
}

func (m *ShopMetrics) IncPersistFailure(store string) {
	if m == nil || m.persistFailures == nil {
		return
	}
	m.persistFailures.WithLabelValues(normalizeLabel(store)).Inc()
}

func (m *ShopMetrics) SetLiveSessions(n int) {
	if m == nil || m.liveSessions == nil {
		return
	}
	m.liveSessions.Set(float64(n))
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
