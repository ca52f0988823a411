package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector exports ledger activity to Prometheus. A nil *Collector is a
// valid no-op receiver so call sites do not have to guard every observation.
type Collector struct {
	registry *prometheus.Registry

	operationsTotal  *prometheus.CounterVec
	operationsFailed *prometheus.CounterVec
	requestDuration  *prometheus.HistogramVec
	accountBalance   *prometheus.GaugeVec
	carsInUse        prometheus.Gauge
	overdueRentals   prometheus.Gauge
}

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		operationsTotal: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_total",
			Help: "Total number of ledger operations by kind",
		}, []string{"operation"}),
		operationsFailed: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_operations_failed_total",
			Help: "Total number of failed ledger operations by kind",
		}, []string{"operation"}),
		requestDuration: promauto.With(registry).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_request_duration_seconds",
			Help:    "Time taken to serve an API request",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		accountBalance: promauto.With(registry).NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Current account balance in the smallest currency unit",
		}, []string{"address"}),
		carsInUse: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "ledger_cars_in_use",
			Help: "Number of cars currently reserved by an open rental",
		}),
		overdueRentals: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "ledger_overdue_rentals",
			Help: "Number of open rentals past their end date",
		}),
	}
}

// Handler returns the /metrics endpoint for this collector's registry.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func (c *Collector) RecordOperation(operation string, err error) {
	if c == nil {
		return
	}
	c.operationsTotal.WithLabelValues(operation).Inc()
	if err != nil {
		c.operationsFailed.WithLabelValues(operation).Inc()
	}
}

func (c *Collector) ObserveRequest(route string, duration time.Duration) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(route).Observe(duration.Seconds())
}

func (c *Collector) SetAccountBalance(address string, balance uint64) {
	if c == nil {
		return
	}
	c.accountBalance.WithLabelValues(address).Set(float64(balance))
}

func (c *Collector) CarReserved() {
	if c == nil {
		return
	}
	c.carsInUse.Inc()
}

func (c *Collector) CarReleased() {
	if c == nil {
		return
	}
	c.carsInUse.Dec()
}

func (c *Collector) SetOverdueRentals(count int) {
	if c == nil {
		return
	}
	c.overdueRentals.Set(float64(count))
}
