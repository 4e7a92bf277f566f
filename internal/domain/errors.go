// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidInput matches any *InvalidInputError.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnacceptableRelease matches any *UnacceptableReleaseError.
	ErrUnacceptableRelease = errors.New("unacceptable release")
	// ErrInvalidConfiguration matches any *InvalidConfigurationError.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// InvalidInputError reports a malformed argument: empty titles, bad info
// hashes, non-positive season numbers.
type InvalidInputError struct {
	Field  string
	Reason string
}

func NewInvalidInput(field, reason string) *InvalidInputError {
	return &InvalidInputError{Field: field, Reason: reason}
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// UnacceptableReleaseError is returned by strict evaluation when a release is
// rejected. Keys holds every violated key, sorted.
type UnacceptableReleaseError struct {
	Title string
	Keys  []string
}

func NewUnacceptableRelease(title string, keys []string) *UnacceptableReleaseError {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	return &UnacceptableReleaseError{Title: title, Keys: slices.Compact(sorted)}
}

func (e *UnacceptableReleaseError) Error() string {
	if len(e.Keys) == 0 {
		return fmt.Sprintf("release %q is not acceptable", e.Title)
	}
	return fmt.Sprintf("release %q is not acceptable: %s", e.Title, strings.Join(e.Keys, ", "))
}

func (e *UnacceptableReleaseError) Is(target error) bool {
	return target == ErrUnacceptableRelease
}

// HasKey reports whether key is among the violated keys.
func (e *UnacceptableReleaseError) HasKey(key string) bool {
	return slices.Contains(e.Keys, key)
}

// InvalidConfigurationError is raised while building settings: bad patterns,
// unknown language codes or groups, out of range thresholds.
type InvalidConfigurationError struct {
	Field string
	Err   error
}

func NewInvalidConfiguration(field string, err error) *InvalidConfigurationError {
	return &InvalidConfigurationError{Field: field, Err: err}
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %v", e.Field, e.Err)
}

func (e *InvalidConfigurationError) Unwrap() error {
	return e.Err
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}
