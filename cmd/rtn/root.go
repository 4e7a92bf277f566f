// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var flags globalFlags

	app := newCommandContext(&flags)

	rootCmd := &cobra.Command{
		Use:           "rtn",
		Short:         "Parse, filter and rank torrent release titles",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return app.close()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.config, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVarP(&flags.settings, "settings", "s", "", "Settings document (JSON or YAML)")
	rootCmd.PersistentFlags().StringVar(&flags.preset, "preset", "", "Ranking preset (default, best)")
	rootCmd.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "Log level (ERROR, WARN, INFO, DEBUG, TRACE)")

	rootCmd.AddCommand(newParseCommand(app))
	rootCmd.AddCommand(newClassifyCommand(app))
	rootCmd.AddCommand(newEpisodesCommand(app))
	rootCmd.AddCommand(newMatchCommand(app))
	rootCmd.AddCommand(newRankCommand(app))
	rootCmd.AddCommand(newBatchCommand(app))
	rootCmd.AddCommand(newSettingsCommand(app))
	rootCmd.AddCommand(newConfigCommand(app))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}
