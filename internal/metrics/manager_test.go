// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: MIT

package metrics

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManager(t *testing.T) {
	manager := NewManager()

	assert.NotNil(t, manager)
	assert.NotNil(t, manager.registry)
	assert.NotNil(t, manager.rankingCollector)
	assert.Same(t, manager.rankingCollector, manager.Recorder())
}

func TestManager_GetRegistry(t *testing.T) {
	manager := NewManager()

	registry := manager.GetRegistry()

	assert.NotNil(t, registry)
	assert.IsType(t, &prometheus.Registry{}, registry)

	// verify standard collectors are registered
	metricFamilies, err := registry.Gather()
	require.NoError(t, err)

	foundGoMetrics := false
	foundProcessMetrics := false

	for _, mf := range metricFamilies {
		name := mf.GetName()
		if strings.HasPrefix(name, "go_") {
			foundGoMetrics = true
		}
		if strings.HasPrefix(name, "process_") {
			foundProcessMetrics = true
		}
	}

	assert.True(t, foundGoMetrics, "Go runtime metrics should be registered (go_* metrics)")
	if runtime.GOOS == "darwin" {
		assert.False(t, foundProcessMetrics, "Process metrics should NOT be available on macOS")
	} else {
		assert.True(t, foundProcessMetrics, "Process metrics should be registered on Linux/Windows")
	}
}

func TestManager_RegistryIsolation(t *testing.T) {
	manager1 := NewManager()
	manager2 := NewManager()

	assert.NotSame(t, manager1.registry, manager2.registry, "Each manager should have its own registry")
	assert.NotSame(t, manager1.rankingCollector, manager2.rankingCollector, "Each manager should have its own collector")
}

func TestManager_RecorderCountsAreScraped(t *testing.T) {
	manager := NewManager()

	manager.Recorder().Accepted()
	manager.Recorder().Rejected([]string{"trash_quality"})

	count := testutil.CollectAndCount(manager.GetRegistry(), "rtn_ranking_releases_processed_total")
	assert.Equal(t, 2, count)
}

func TestManager_WriteTextfile(t *testing.T) {
	manager := NewManager()
	manager.Recorder().Rejected([]string{"rank_under"})

	path := filepath.Join(t.TempDir(), "rtn.prom")
	require.NoError(t, manager.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `rtn_ranking_release_rejections_total{key="rank_under"} 1`)
	assert.Contains(t, string(data), `rtn_ranking_releases_processed_total{outcome="rejected"} 1`)
}

func TestManager_WriteTextfileMissingDir(t *testing.T) {
	manager := NewManager()

	err := manager.WriteTextfile(filepath.Join(t.TempDir(), "missing", "rtn.prom"))
	require.Error(t, err)
}
