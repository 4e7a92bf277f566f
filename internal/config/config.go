// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"text/template"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"github.com/autobrr/rtn/internal/domain"
)

const (
	configFileName   = "config.toml"
	settingsFileName = "settings.json"
)

// Environment variables, all prefixed with RTN__.
var envBindings = map[string]string{
	"logLevel":        "RTN__LOG_LEVEL",
	"logPath":         "RTN__LOG_PATH",
	"logMaxSize":      "RTN__LOG_MAX_SIZE",
	"logMaxBackups":   "RTN__LOG_MAX_BACKUPS",
	"workers":         "RTN__WORKERS",
	"settingsPath":    "RTN__SETTINGS_PATH",
	"rankingPreset":   "RTN__RANKING_PRESET",
	"parserCacheTtl":  "RTN__PARSER_CACHE_TTL",
	"metricsTextfile": "RTN__METRICS_TEXTFILE",
}

const configTemplate = `# config.toml - Auto-generated on first run

# Log file path
# If not defined, logs to stdout
# Optional
#logPath = "log/rtn.log"

# Log rotation
# Maximum log file size in megabytes before rotation
# Default: 50
#logMaxSize = {{ .LogMaxSize }}

# Number of rotated log files to retain (0 keeps all)
# Default: 3
#logMaxBackups = {{ .LogMaxBackups }}

# Log level
# Default: "INFO"
# Options: "ERROR", "DEBUG", "INFO", "WARN", "TRACE"
logLevel = "{{ .LogLevel }}"

# Batch ranking workers
# Default: 4
workers = {{ .Workers }}

# Settings document (JSON or YAML)
# If not defined, settings.json next to this file is used when present
# Optional
#settingsPath = "settings.json"

# Ranking weights preset
# Default: "default"
# Options: "default", "best"
rankingPreset = "{{ .RankingPreset }}"

# Parsed title cache lifetime in seconds
# Default: 300
#parserCacheTtl = {{ .ParserCacheTTL }}

# Write ranking metrics to a Prometheus textfile after batch runs
# Optional
#metricsTextfile = "/var/lib/node_exporter/rtn.prom"
`

type AppConfig struct {
	Config *domain.Config

	viper      *viper.Viper
	configPath string
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() domain.Config {
	return domain.Config{
		LogLevel:       "INFO",
		LogMaxSize:     50,
		LogMaxBackups:  3,
		Workers:        4,
		RankingPreset:  "default",
		ParserCacheTTL: 300,
	}
}

// New loads configuration from configPath, or from the default config
// directory when empty. A missing config file is not an error. Environment
// variables override file values.
func New(configPath string) (*AppConfig, error) {
	c := &AppConfig{
		viper: viper.New(),
	}

	c.defaults()
	if err := c.bindEnv(); err != nil {
		return nil, err
	}

	if configPath == "" {
		configPath = filepath.Join(getDefaultConfigDir(), configFileName)
	}
	c.configPath = configPath

	if err := c.load(); err != nil {
		return nil, err
	}

	cfg := &domain.Config{}
	if err := c.viper.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "could not decode config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	c.Config = cfg

	return c, nil
}

func (c *AppConfig) defaults() {
	d := Defaults()
	c.viper.SetDefault("logLevel", d.LogLevel)
	c.viper.SetDefault("logPath", d.LogPath)
	c.viper.SetDefault("logMaxSize", d.LogMaxSize)
	c.viper.SetDefault("logMaxBackups", d.LogMaxBackups)
	c.viper.SetDefault("workers", d.Workers)
	c.viper.SetDefault("settingsPath", d.SettingsPath)
	c.viper.SetDefault("rankingPreset", d.RankingPreset)
	c.viper.SetDefault("parserCacheTtl", d.ParserCacheTTL)
	c.viper.SetDefault("metricsTextfile", d.MetricsTextfile)
}

func (c *AppConfig) bindEnv() error {
	for key, env := range envBindings {
		if err := c.viper.BindEnv(key, env); err != nil {
			return errors.Wrapf(err, "could not bind %s", env)
		}
	}
	return nil
}

func (c *AppConfig) load() error {
	if _, err := os.Stat(c.configPath); err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("path", c.configPath).Msg("No config file found, using defaults")
			return nil
		}
		return errors.Wrapf(err, "could not stat config %s", c.configPath)
	}

	c.viper.SetConfigFile(c.configPath)
	c.viper.SetConfigType("toml")
	if err := c.viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "could not read config %s", c.configPath)
	}
	return nil
}

// ConfigPath is the file the configuration was (or would be) read from.
func (c *AppConfig) ConfigPath() string {
	return c.configPath
}

// GetSettingsPath resolves the settings document path. Relative paths are
// taken from the config file's directory. Empty means no settings file.
func (c *AppConfig) GetSettingsPath() string {
	path := c.Config.SettingsPath
	if path == "" {
		candidate := filepath.Join(filepath.Dir(c.configPath), settingsFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		return ""
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(filepath.Dir(c.configPath), path)
	}
	return path
}

// TOML renders the effective configuration.
func (c *AppConfig) TOML() ([]byte, error) {
	data, err := toml.Marshal(c.Config)
	if err != nil {
		return nil, errors.Wrap(err, "could not encode config")
	}
	return data, nil
}

// WriteDefaultConfig writes a commented config file to path unless one
// already exists.
func WriteDefaultConfig(path string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return errors.Wrapf(err, "could not stat %s", path)
	}

	tmpl, err := template.New("config").Parse(configTemplate)
	if err != nil {
		return errors.Wrap(err, "could not parse config template")
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, Defaults()); err != nil {
		return errors.Wrap(err, "could not render config template")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "could not create config directory for %s", path)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", path)
	}

	log.Info().Str("path", path).Msg("Wrote default config")
	return nil
}

// getDefaultConfigDir prefers XDG_CONFIG_HOME, using it directly when it is
// /config (container images) and appending rtn otherwise.
func getDefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		if xdg == "/config" {
			return xdg
		}
		return filepath.Join(xdg, "rtn")
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "rtn")
}

// DefaultConfigPath is the config file used when no path is given.
func DefaultConfigPath() string {
	return filepath.Join(getDefaultConfigDir(), configFileName)
}
