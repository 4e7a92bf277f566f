// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/autobrr/rtn/internal/models"
	"github.com/autobrr/rtn/internal/releases"
)

func newSettingsCommand(app *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage ranking settings documents",
	}

	cmd.AddCommand(newSettingsInitCommand(app))
	cmd.AddCommand(newSettingsValidateCommand(app))
	cmd.AddCommand(newSettingsShowCommand(app))
	cmd.AddCommand(newSettingsKeysCommand(app))
	return cmd
}

func newSettingsInitCommand(app *commandContext) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default settings document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ensureConfig(cmd)
			if err != nil {
				return err
			}

			path := app.settingsPath(cfg)
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				path = filepath.Join(filepath.Dir(cfg.ConfigPath()), "settings.json")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.Errorf("%s already exists, use --force to overwrite", path)
			}

			if err := models.SaveSettings(path, models.DefaultSettings()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote default settings to %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing document")
	return cmd
}

func newSettingsValidateCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Check a settings document for errors",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.ensureConfig(cmd)
			if err != nil {
				return err
			}

			path := app.settingsPath(cfg)
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return errors.New("no settings document given and none configured")
			}

			s, err := models.LoadSettings(path)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid (profile %q, version %s)\n", path, s.Profile, s.Version)
			return nil
		},
	}
}

func newSettingsShowCommand(app *commandContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := app.ensureSettings(cmd)
			if err != nil {
				return err
			}

			f := models.Format(format)
			if f != models.FormatJSON && f != models.FormatYAML {
				return errors.Errorf("unsupported format %q, use json or yaml", format)
			}

			data, err := models.EncodeSettings(s, f)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(models.FormatJSON), "Output format (json, yaml)")
	return cmd
}

func newSettingsKeysCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "keys [filter]",
		Short: "List attribute keys with their fetch policy and rank",
		Long: `List attribute keys with their fetch policy, override and preset weight.

An optional filter fuzzy-matches keys, best matches first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ensureService(cmd)
			if err != nil {
				return err
			}

			keys := models.CustomRankKeys()
			if len(args) == 1 {
				keys = filterKeys(keys, args[0])
			}

			settings := svc.Settings()
			rows := make([][]string, 0, len(keys))
			for _, k := range keys {
				rank, _ := settings.CustomRanks.Get(k)
				override := "-"
				if rank.UseOverride {
					override = strconv.Itoa(rank.OverrideRank)
				}
				rows = append(rows, []string{
					k.String(),
					yesNo(rank.Fetch),
					override,
					strconv.Itoa(svc.Weights().Weight(k)),
				})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(keyColumns, rows))
			return nil
		},
	}
}

// filterKeys keeps keys fuzzy-matching filter, closest first.
func filterKeys(keys []releases.AttributeKey, filter string) []releases.AttributeKey {
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}

	ranks := fuzzy.RankFindFold(filter, names)
	sort.Stable(ranks)

	out := make([]releases.AttributeKey, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, keys[r.OriginalIndex])
	}
	return out
}
