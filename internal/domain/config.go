// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var validLogLevels = []string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR"}

// Config represents the application configuration
type Config struct {
	Version       string `toml:"-" mapstructure:"-"`
	LogLevel      string `toml:"logLevel" mapstructure:"logLevel"`
	LogPath       string `toml:"logPath" mapstructure:"logPath"`
	LogMaxSize    int    `toml:"logMaxSize" mapstructure:"logMaxSize"`
	LogMaxBackups int    `toml:"logMaxBackups" mapstructure:"logMaxBackups"`

	// Workers bounds the batch ranking pool.
	Workers int `toml:"workers" mapstructure:"workers"`

	// SettingsPath points at the JSON or YAML settings document. When empty,
	// settings.json next to the config file is used if it exists.
	SettingsPath  string `toml:"settingsPath" mapstructure:"settingsPath"`
	RankingPreset string `toml:"rankingPreset" mapstructure:"rankingPreset"`

	// ParserCacheTTL is the parse memo lifetime in seconds.
	ParserCacheTTL int `toml:"parserCacheTtl" mapstructure:"parserCacheTtl"`

	MetricsTextfile string `toml:"metricsTextfile" mapstructure:"metricsTextfile"`
}

// Validate checks values viper cannot type-check.
func (c *Config) Validate() error {
	var errs []error

	if !slices.Contains(validLogLevels, strings.ToUpper(strings.TrimSpace(c.LogLevel))) {
		errs = append(errs, fmt.Errorf("logLevel %q must be one of %s", c.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	if c.LogMaxSize < 0 {
		errs = append(errs, fmt.Errorf("logMaxSize must not be negative, got %d", c.LogMaxSize))
	}
	if c.LogMaxBackups < 0 {
		errs = append(errs, fmt.Errorf("logMaxBackups must not be negative, got %d", c.LogMaxBackups))
	}
	if c.Workers < 1 {
		errs = append(errs, fmt.Errorf("workers must be at least 1, got %d", c.Workers))
	}
	if c.ParserCacheTTL < 0 {
		errs = append(errs, fmt.Errorf("parserCacheTtl must not be negative, got %d", c.ParserCacheTTL))
	}

	return errors.Join(errs...)
}
