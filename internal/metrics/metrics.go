// Package metrics exposes Prometheus counters for the coaching engine
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "rpg_fitness"

// Tool call outcomes
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeUnknown = "unknown"
)

// Metrics holds the engine counters. A nil *Metrics records nothing.
type Metrics struct {
	registry         *prometheus.Registry
	toolCalls        *prometheus.CounterVec
	gatewayFallbacks *prometheus.CounterVec
	questsGenerated  *prometheus.CounterVec
}

// New creates the counters on a fresh registry
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		toolCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tool_calls_total",
			Help:      "AI tool calls executed, by tool and outcome.",
		}, []string{"tool", "outcome"}),
		gatewayFallbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "gateway_fallbacks_total",
			Help:      "Requests served by a local fallback because the AI gateway failed.",
		}, []string{"intent"}),
		questsGenerated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quest_sets_generated_total",
			Help:      "Quest sets generated, by source.",
		}, []string{"source"}),
	}
	m.registry.MustRegister(m.toolCalls, m.gatewayFallbacks, m.questsGenerated)
	return m
}

// ToolCall counts one executed tool call
func (m *Metrics) ToolCall(tool, outcome string) {
	if m == nil {
		return
	}
	m.toolCalls.WithLabelValues(tool, outcome).Inc()
}

// GatewayFallback counts a local fallback for intent
func (m *Metrics) GatewayFallback(intent string) {
	if m == nil {
		return
	}
	m.gatewayFallbacks.WithLabelValues(intent).Inc()
}

// QuestSetGenerated counts a generated quest set; source is "ai" or "local"
func (m *Metrics) QuestSetGenerated(source string) {
	if m == nil {
		return
	}
	m.questsGenerated.WithLabelValues(source).Inc()
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
