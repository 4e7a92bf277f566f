// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var tableHeader = regexp.MustCompile(`^\s*\[[^\]]+\]\s*$`)

func keyLine(key string) *regexp.Regexp {
	return regexp.MustCompile(`^\s*#?\s*` + regexp.QuoteMeta(key) + `\s*=`)
}

// setTOMLKey replaces the first (possibly commented) assignment of key in the
// root table. It reports false when the key is not present.
func setTOMLKey(lines []string, key, value string) bool {
	re := keyLine(key)
	for i, line := range lines {
		if tableHeader.MatchString(line) {
			return false
		}
		if re.MatchString(line) {
			lines[i] = fmt.Sprintf("%s = %s", key, value)
			return true
		}
	}
	return false
}

// updateLogSettingsInTOML rewrites the log settings of a config file in place,
// keeping comments and layout. Missing keys are inserted before the first
// table so they stay in the root table.
func updateLogSettingsInTOML(content, level, path string, maxSize, maxBackups int) string {
	lines := strings.Split(content, "\n")

	settings := []struct {
		key   string
		value string
		skip  bool
	}{
		{key: "logLevel", value: strconv.Quote(level)},
		{key: "logPath", value: strconv.Quote(path), skip: path == ""},
		{key: "logMaxSize", value: strconv.Itoa(maxSize)},
		{key: "logMaxBackups", value: strconv.Itoa(maxBackups)},
	}

	var missing []string
	for _, s := range settings {
		if s.skip {
			continue
		}
		if !setTOMLKey(lines, s.key, s.value) {
			missing = append(missing, fmt.Sprintf("%s = %s", s.key, s.value))
		}
	}
	if len(missing) == 0 {
		return strings.Join(lines, "\n")
	}

	insertAt := len(lines)
	for i, line := range lines {
		if tableHeader.MatchString(line) {
			insertAt = i
			break
		}
	}

	block := append([]string{"# Log settings"}, missing...)
	block = append(block, "")

	out := make([]string, 0, len(lines)+len(block))
	out = append(out, lines[:insertAt]...)
	out = append(out, block...)
	out = append(out, lines[insertAt:]...)
	return strings.Join(out, "\n")
}

// PersistLogSettings writes the log settings of c.Config back to the config
// file, creating it from the default template first when missing.
func (c *AppConfig) PersistLogSettings() error {
	if err := WriteDefaultConfig(c.configPath); err != nil {
		return err
	}

	data, err := os.ReadFile(c.configPath)
	if err != nil {
		return errors.Wrapf(err, "could not read %s", c.configPath)
	}

	updated := updateLogSettingsInTOML(string(data), c.Config.LogLevel, c.Config.LogPath, c.Config.LogMaxSize, c.Config.LogMaxBackups)
	if err := os.WriteFile(c.configPath, []byte(updated), 0o644); err != nil {
		return errors.Wrapf(err, "could not write %s", c.configPath)
	}

	log.Debug().Str("path", c.configPath).Msg("Persisted log settings")
	return nil
}
