// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: MIT

package collector

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRankingCollector_Outcomes(t *testing.T) {
	registry := prometheus.NewRegistry()
	c := NewRankingCollector(registry)

	c.Accepted()
	c.Accepted()
	c.Rejected([]string{"trash_flag", "resolution_2160p"})
	c.Rejected([]string{"trash_flag"})
	c.Failed()

	assert.InDelta(t, 2, testutil.ToFloat64(c.GetReleasesProcessedTotal(OutcomeAccepted)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(c.GetReleasesProcessedTotal(OutcomeRejected)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.GetReleasesProcessedTotal(OutcomeFailed)), 0)

	assert.InDelta(t, 2, testutil.ToFloat64(c.RejectionsTotal.WithLabelValues("trash_flag")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(c.RejectionsTotal.WithLabelValues("resolution_2160p")), 0)
	assert.Equal(t, 2, testutil.CollectAndCount(c.RejectionsTotal))
}

func TestRankingCollector_DoubleRegistrationPanics(t *testing.T) {
	registry := prometheus.NewRegistry()
	NewRankingCollector(registry)

	assert.Panics(t, func() {
		NewRankingCollector(registry)
	})
}
