// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package metrics

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/autobrr/rtn/internal/metrics/collector"
)

type Manager struct {
	registry         *prometheus.Registry
	rankingCollector *collector.RankingCollector
}

func NewManager() *Manager {
	registry := prometheus.NewRegistry()

	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	rankingCollector := collector.NewRankingCollector(registry)

	log.Debug().Msg("Metrics manager initialized with ranking collector")

	return &Manager{
		registry:         registry,
		rankingCollector: rankingCollector,
	}
}

func (m *Manager) GetRegistry() *prometheus.Registry {
	return m.registry
}

// Recorder returns the collector that counts ranking outcomes.
func (m *Manager) Recorder() *collector.RankingCollector {
	return m.rankingCollector
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for pickup by a node exporter textfile collector.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return errors.Wrapf(err, "could not write metrics to %s", path)
	}
	log.Debug().Str("path", path).Msg("Metrics written to textfile")
	return nil
}
