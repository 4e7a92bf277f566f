// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: MIT

package collector

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
	OutcomeFailed   = "failed"
)

type RankingCollector struct {
	ReleasesProcessedTotal *prometheus.CounterVec
	RejectionsTotal        *prometheus.CounterVec
}

func NewRankingCollector(r *prometheus.Registry) *RankingCollector {
	m := &RankingCollector{
		ReleasesProcessedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtn",
			Subsystem: "ranking",
			Name:      "releases_processed_total",
			Help:      "Total number of releases ranked, by outcome",
		}, []string{"outcome"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "rtn",
			Subsystem: "ranking",
			Name:      "release_rejections_total",
			Help:      "Total number of violated keys across rejected releases",
		}, []string{"key"}),
	}

	r.MustRegister(m.ReleasesProcessedTotal)
	r.MustRegister(m.RejectionsTotal)
	return m
}

func (m *RankingCollector) Accepted() {
	m.ReleasesProcessedTotal.WithLabelValues(OutcomeAccepted).Inc()
}

func (m *RankingCollector) Rejected(keys []string) {
	m.ReleasesProcessedTotal.WithLabelValues(OutcomeRejected).Inc()
	for _, key := range keys {
		m.RejectionsTotal.WithLabelValues(key).Inc()
	}
}

func (m *RankingCollector) Failed() {
	m.ReleasesProcessedTotal.WithLabelValues(OutcomeFailed).Inc()
}

func (m *RankingCollector) GetReleasesProcessedTotal(outcome string) prometheus.Counter {
	return m.ReleasesProcessedTotal.With(prometheus.Labels{"outcome": outcome})
}
