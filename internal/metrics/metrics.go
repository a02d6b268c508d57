package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// исходы вызова инструмента, лейбл outcome
const (
	OutcomeOK           = "ok"
	OutcomeNoCredential = "no_credential"
	OutcomeHTTPError    = "http_error"
	OutcomeAPIError     = "api_error"
	OutcomeNoResults    = "no_results"
	OutcomeFailed       = "failed"
)

type Metrics struct {
	ToolCallsTotal    *prometheus.CounterVec
	ToolCallDuration  *prometheus.HistogramVec
	ToolCallsInFlight prometheus.Gauge

	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIBalance         prometheus.Gauge
}

// New регистрирует метрики в reg. nil - метрики создаются, но никуда не регистрируются.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		ToolCallsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kagi_search_tool_calls_total",
				Help: "Total number of kagi_search tool calls by outcome",
			},
			[]string{"outcome"},
		),
		ToolCallDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kagi_search_tool_call_duration_seconds",
				Help:    "Tool call duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"outcome"},
		),
		ToolCallsInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "kagi_search_tool_calls_in_flight",
				Help: "Number of tool calls currently being processed",
			},
		),

		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kagi_search_api_requests_total",
				Help: "Total number of Kagi Search API requests",
			},
			[]string{"status"},
		),
		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kagi_search_api_request_duration_seconds",
				Help:    "Kagi Search API request duration in seconds",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
			},
			[]string{},
		),
		APIBalance: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "kagi_search_api_balance_dollars",
				Help: "Last API balance reported by Kagi",
			},
		),
	}

	return m
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordToolCall(outcome string, duration time.Duration) {
	m.ToolCallsTotal.WithLabelValues(outcome).Inc()
	m.ToolCallDuration.WithLabelValues(outcome).Observe(duration.Seconds())
}

func (m *Metrics) RecordAPIRequest(status string, duration time.Duration) {
	m.APIRequestsTotal.WithLabelValues(status).Inc()
	m.APIRequestDuration.WithLabelValues().Observe(duration.Seconds())
}

func (m *Metrics) SetAPIBalance(balance float64) {
	m.APIBalance.Set(balance)
}

func (m *Metrics) IncToolCallsInFlight() {
	m.ToolCallsInFlight.Inc()
}

func (m *Metrics) DecToolCallsInFlight() {
	m.ToolCallsInFlight.Dec()
}
