// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/autobrr/rtn/internal/domain"
)

// ParseLevel maps config level names (INFO, DEBUG, ...) to zerolog levels.
func ParseLevel(level string) (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return zerolog.InfoLevel, errors.Wrapf(err, "invalid log level %q", level)
	}
	if lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, nil
	}
	return lvl, nil
}

// New builds a logger writing human readable output to console and, when
// cfg.LogPath is set, JSON lines to a rotated log file.
func New(cfg *domain.Config, console io.Writer) (zerolog.Logger, io.Closer, error) {
	lvl, err := ParseLevel(cfg.LogLevel)
	if err != nil {
		return zerolog.Nop(), nil, err
	}

	writers := []io.Writer{
		zerolog.ConsoleWriter{Out: console, TimeFormat: time.RFC3339},
	}

	var closer io.Closer = nopCloser{}
	if cfg.LogPath != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogPath), 0o755); err != nil {
			return zerolog.Nop(), nil, errors.Wrapf(err, "could not create log directory for %s", cfg.LogPath)
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    cfg.LogMaxSize,
			MaxBackups: cfg.LogMaxBackups,
		}
		writers = append(writers, rotator)
		closer = rotator
	}

	l := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	return l, closer, nil
}

// Setup installs the logger built from cfg as the global logger.
func Setup(cfg *domain.Config, console io.Writer) (io.Closer, error) {
	l, closer, err := New(cfg, console)
	if err != nil {
		return nil, err
	}
	log.Logger = l
	zerolog.DefaultContextLogger = &log.Logger
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
