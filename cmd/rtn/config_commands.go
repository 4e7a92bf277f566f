// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autobrr/rtn/internal/config"
)

func newConfigCommand(app *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the rtn configuration file",
	}

	cmd.AddCommand(newConfigInitCommand(app))
	cmd.AddCommand(newConfigShowCommand(app))
	cmd.AddCommand(newConfigLogCommand(app))
	return cmd
}

func configPath(app *commandContext) string {
	if path := strings.TrimSpace(app.flags.config); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func newConfigInitCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a commented default config file if none exists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := configPath(app)
			if err := config.WriteDefaultConfig(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := app.ensureConfig(cmd)
			if err != nil {
				return err
			}
			data, err := cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", cfg.ConfigPath())
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func newConfigLogCommand(app *commandContext) *cobra.Command {
	var (
		path       string
		maxSize    int
		maxBackups int
	)

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Persist log settings to the config file",
		Long: `Persist log settings to the config file, keeping its comments.

The global --log-level flag sets the level to store.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if app.flags.config == "" {
				app.flags.config = config.DefaultConfigPath()
			}
			cfg, err := app.ensureConfig(cmd)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("path") {
				cfg.Config.LogPath = path
			}
			if cmd.Flags().Changed("max-size") {
				cfg.Config.LogMaxSize = maxSize
			}
			if cmd.Flags().Changed("max-backups") {
				cfg.Config.LogMaxBackups = maxBackups
			}
			if err := cfg.Config.Validate(); err != nil {
				return err
			}

			if err := cfg.PersistLogSettings(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated log settings in %s\n", cfg.ConfigPath())
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "Log file path")
	cmd.Flags().IntVar(&maxSize, "max-size", 0, "Maximum log file size in megabytes")
	cmd.Flags().IntVar(&maxBackups, "max-backups", 0, "Rotated log files to keep")
	return cmd
}
