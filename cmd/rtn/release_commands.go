// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/autobrr/rtn/internal/releases"
)

func newParseCommand(app *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "parse <title>",
		Short: "Print the attributes extracted from a release title as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ensureService(cmd)
			if err != nil {
				return err
			}
			attrs, err := svc.Parse(args[0])
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), attrs)
		},
	}
}

func newClassifyCommand(app *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "classify <title>",
		Short: "Run the trash, adult, complete, multi-audio, HDR and 4K detectors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := app.ensureConfig(cmd); err != nil {
				return err
			}
			c, err := releases.Classify(args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), c)
			}
			fmt.Fprintln(cmd.OutOrStdout(), keyValueTable([][]string{
				{"Trash", yesNo(c.Trash)},
				{"Adult", yesNo(c.Adult)},
				{"Complete", yesNo(c.Complete)},
				{"Multi audio", yesNo(c.MultiAudio)},
				{"Multi subtitle", yesNo(c.MultiSubtitle)},
				{"HDR", orDash(c.HDR)},
				{"4K", yesNo(c.Is4K)},
			}))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")
	return cmd
}

func newEpisodesCommand(app *commandContext) *cobra.Command {
	var season int

	cmd := &cobra.Command{
		Use:   "episodes <title>",
		Short: "Extract season and episode numbers",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("season") {
				svc, err := app.ensureService(cmd)
				if err != nil {
					return err
				}
				episodes, err := svc.EpisodesFromSeason(args[0], season)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Season %d episodes: %s\n", season, joinInts(episodes))
				return nil
			}

			if _, err := app.ensureConfig(cmd); err != nil {
				return err
			}
			seasons, err := releases.ExtractSeasons(args[0])
			if err != nil {
				return err
			}
			episodes, err := releases.ExtractEpisodes(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seasons: %s\n", joinInts(seasons))
			fmt.Fprintf(cmd.OutOrStdout(), "Episodes: %s\n", joinInts(episodes))
			return nil
		},
	}

	cmd.Flags().IntVar(&season, "season", 0, "Only print episodes when the title contains this season")
	return cmd
}

func newMatchCommand(app *commandContext) *cobra.Command {
	var aliases []string

	cmd := &cobra.Command{
		Use:   "match <correct-title> <release-title>",
		Short: "Compare a known title against the title parsed from a release",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ensureService(cmd)
			if err != nil {
				return err
			}
			ok, ratio, err := svc.TitleMatch(args[0], args[1], aliases...)
			if err != nil {
				return err
			}
			attrs, err := svc.Parse(args[1])
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), keyValueTable([][]string{
				{"Correct title", args[0]},
				{"Parsed title", orDash(attrs.ParsedTitle)},
				{"Aliases", joinStrings(aliases)},
				{"Threshold", strconv.FormatFloat(svc.Settings().Options.TitleSimilarity, 'f', 2, 64)},
				{"Ratio", fmt.Sprintf("%.4f", ratio)},
				{"Match", yesNo(ok)},
			}))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&aliases, "alias", nil, "Alternative title (repeatable)")
	return cmd
}

func parseResolutions(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v = strings.ToLower(strings.TrimSpace(v)); v != "" {
			out = append(out, v)
		}
	}
	return out
}
