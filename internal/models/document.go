// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/autobrr/rtn/internal/domain"
)

// Format is a settings document encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the encoding from the file extension; anything other
// than .yaml or .yml is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// DecodeSettings reads a settings document. Fields missing from the document
// keep their default values. The result is validated.
func DecodeSettings(data []byte, format Format) (*Settings, error) {
	s := DefaultSettings()

	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, s)
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(s)
	default:
		return nil, domain.NewInvalidConfiguration("format", fmt.Errorf("unsupported format %q", format))
	}
	if err != nil {
		return nil, domain.NewInvalidConfiguration("settings", fmt.Errorf("decode %s: %w", format, err))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeSettings writes s in the given format.
func EncodeSettings(s *Settings, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

// LoadSettings reads and validates the settings document at path.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}
	return DecodeSettings(data, FormatFromPath(path))
}

// SaveSettings writes s to path, creating parent directories as needed.
func SaveSettings(path string, s *Settings) error {
	data, err := EncodeSettings(s, FormatFromPath(path))
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create settings dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}
