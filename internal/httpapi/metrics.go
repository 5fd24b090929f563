// Copyright (C) 2026 AI Hallucination Firewall contributors
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE file for the full license text.

package httpapi

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricsNamespace = "hallucination_firewall"
	metricsSubsystem = "http"
)

// Metrics holds the counters and histograms exposed at GET /metrics,
// namespaced as a namespace/subsystem pair, with one registry per server
// instance rather than the global default so tests never collide.
type Metrics struct {
	registry          *prometheus.Registry
	ValidationsTotal  *prometheus.CounterVec
	IssuesTotal       *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RateLimitRejected prometheus.Counter
}

// NewMetrics builds a fresh Metrics instance with its own registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		ValidationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "validations_total",
			Help:      "Total number of /validate requests, by language and pass/fail outcome.",
		}, []string{"language", "passed"}),
		IssuesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "issues_total",
			Help:      "Total number of issues emitted, by kind.",
		}, []string{"kind"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "request_duration_seconds",
			Help:      "Request latency for the /validate endpoint.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		RateLimitRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: metricsSubsystem,
			Name:      "rate_limited_total",
			Help:      "Total number of requests rejected by the per-IP rate limiter.",
		}),
	}

	registry.MustRegister(m.ValidationsTotal, m.IssuesTotal, m.RequestDuration, m.RateLimitRejected)
	return m
}
