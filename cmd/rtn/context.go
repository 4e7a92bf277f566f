// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/rtn/internal/buildinfo"
	"github.com/autobrr/rtn/internal/config"
	"github.com/autobrr/rtn/internal/logger"
	"github.com/autobrr/rtn/internal/metrics"
	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
	"github.com/autobrr/rtn/internal/services/rtn"
)

type globalFlags struct {
	config   string
	settings string
	preset   string
	logLevel string
}

// commandContext lazily builds the pieces commands share. A command run
// touches only what it needs, so `rtn version` never reads a config file.
type commandContext struct {
	flags *globalFlags

	cfg      *config.AppConfig
	settings *models.Settings
	svc      *rtn.Service
	metrics  *metrics.Manager
	logClose io.Closer
}

func newCommandContext(flags *globalFlags) *commandContext {
	return &commandContext{flags: flags}
}

func (c *commandContext) ensureConfig(cmd *cobra.Command) (*config.AppConfig, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}

	cfg, err := config.New(strings.TrimSpace(c.flags.config))
	if err != nil {
		return nil, err
	}
	if c.flags.logLevel != "" {
		cfg.Config.LogLevel = c.flags.logLevel
	}
	if c.flags.preset != "" {
		cfg.Config.RankingPreset = c.flags.preset
	}
	if c.flags.settings != "" {
		cfg.Config.SettingsPath = c.flags.settings
	}

	closer, err := logger.Setup(cfg.Config, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}
	c.logClose = closer
	c.cfg = cfg

	log.Debug().Str("config", cfg.ConfigPath()).Str("build", buildinfo.UserAgent).Msg("Configuration loaded")
	return cfg, nil
}

// settingsPath returns the explicit --settings path, or the one the config
// resolves.
func (c *commandContext) settingsPath(cfg *config.AppConfig) string {
	if c.flags.settings != "" {
		return c.flags.settings
	}
	return cfg.GetSettingsPath()
}

func (c *commandContext) ensureSettings(cmd *cobra.Command) (*models.Settings, error) {
	if c.settings != nil {
		return c.settings, nil
	}
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, err
	}

	path := c.settingsPath(cfg)
	if path == "" {
		log.Debug().Msg("No settings document, using defaults")
		c.settings = models.DefaultSettings()
		return c.settings, nil
	}

	settings, err := models.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("path", path).Str("profile", settings.Profile).Msg("Settings loaded")
	c.settings = settings
	return settings, nil
}

func (c *commandContext) ensureMetrics() *metrics.Manager {
	if c.metrics == nil {
		c.metrics = metrics.NewManager()
	}
	return c.metrics
}

func (c *commandContext) ensureService(cmd *cobra.Command) (*rtn.Service, error) {
	if c.svc != nil {
		return c.svc, nil
	}
	cfg, err := c.ensureConfig(cmd)
	if err != nil {
		return nil, err
	}
	settings, err := c.ensureSettings(cmd)
	if err != nil {
		return nil, err
	}
	weights, err := models.Preset(cfg.Config.RankingPreset)
	if err != nil {
		return nil, err
	}

	svc, err := rtn.New(settings, &weights,
		rtn.WithParser(releases.NewParser(time.Duration(cfg.Config.ParserCacheTTL)*time.Second)),
		rtn.WithRecorder(c.ensureMetrics().Recorder()),
	)
	if err != nil {
		return nil, err
	}
	c.svc = svc
	return svc, nil
}

func (c *commandContext) close() error {
	if c.logClose == nil {
		return nil
	}
	err := c.logClose.Close()
	c.logClose = nil
	return err
}
