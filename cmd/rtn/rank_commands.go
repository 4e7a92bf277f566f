// Copyright (c) 2025-2026, s0up and the autobrr contributors.
// SPDX-License-Identifier: GPL-2.0-or-later

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/autobrr/rtn/internal/services/ranker"
	"github.com/autobrr/rtn/internal/services/rtn"
)

type rankFlags struct {
	correctTitle string
	aliases      []string
	strict       bool
	speed        bool
	asJSON       bool
}

func (f *rankFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.correctTitle, "correct-title", "", "Reject releases whose parsed title does not match")
	cmd.Flags().StringSliceVar(&f.aliases, "alias", nil, "Alternative correct title (repeatable)")
	cmd.Flags().BoolVar(&f.speed, "speed", false, "Stop at the first violated key")
	cmd.Flags().BoolVar(&f.asJSON, "json", false, "Print JSON instead of a table")
}

func (f *rankFlags) options() rtn.RankOptions {
	return rtn.RankOptions{
		CorrectTitle: f.correctTitle,
		Aliases:      f.aliases,
		Strict:       f.strict,
		SpeedMode:    f.speed,
	}
}

func newRankCommand(app *commandContext) *cobra.Command {
	var (
		flags     rankFlags
		infohash  string
		breakdown bool
	)

	cmd := &cobra.Command{
		Use:   "rank <title>",
		Short: "Decide whether a release should be fetched and compute its rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := app.ensureService(cmd)
			if err != nil {
				return err
			}

			t, err := svc.Rank(args[0], infohash, flags.options())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if flags.asJSON {
				return writeJSON(out, t)
			}

			rows := [][]string{
				{"Title", t.RawTitle},
				{"Parsed title", orDash(t.Data.ParsedTitle)},
				{"Info hash", orDash(t.InfoHash)},
				{"Type", t.Data.Type()},
				{"Resolution", orDash(t.Data.Resolution)},
				{"Quality", orDash(t.Data.Quality)},
				{"Codec", orDash(t.Data.Codec)},
				{"Audio", joinStrings(t.Data.Audio)},
				{"HDR", joinStrings(t.Data.HDR)},
				{"Languages", joinStrings(t.Data.Languages)},
				{"Rank", strconv.Itoa(t.Rank)},
				{"Fetch", yesNo(t.Fetch)},
				{"Failed keys", joinStrings(t.FailedKeys)},
			}
			if flags.correctTitle != "" {
				rows = append(rows, []string{"Title ratio", fmt.Sprintf("%.4f", t.LevRatio)})
			}
			fmt.Fprintln(out, keyValueTable(rows))

			if breakdown {
				terms := ranker.Breakdown(&t.Data, svc.Settings(), svc.Weights())
				tableRows := make([][]string, 0, len(terms))
				for _, term := range terms {
					tableRows = append(tableRows, []string{term.Key, strconv.Itoa(term.Points)})
				}
				fmt.Fprintln(out, renderTable(breakdownColumns, tableRows))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "Fail with an error when the release is rejected")
	cmd.Flags().StringVar(&infohash, "infohash", "", "Info hash (40 or 32 hex characters)")
	cmd.Flags().BoolVar(&breakdown, "breakdown", false, "Show the contribution of each attribute")
	return cmd
}

func newBatchCommand(app *commandContext) *cobra.Command {
	var (
		flags       rankFlags
		input       string
		workers     int
		sorted      bool
		bucketLimit int
		resolutions []string
		textfile    string
		onlyFetch   bool
	)

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Rank many releases read from a file or stdin",
		Long: `Rank many releases read from a file or stdin, one per line.

A line may carry an info hash before the title, separated by a tab.
Blank lines and lines starting with # are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, err := app.ensureService(cmd)
			if err != nil {
				return err
			}
			cfg, err := app.ensureConfig(cmd)
			if err != nil {
				return err
			}

			items, err := readItems(cmd, input)
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("workers") {
				workers = cfg.Config.Workers
			}

			results := svc.BatchRank(cmd.Context(), items, flags.options(), workers)
			sum := rtn.Summarize(results)
			log.Info().
				Int("total", sum.Total).
				Int("accepted", sum.Accepted).
				Int("rejected", sum.Rejected).
				Int("failed", sum.Failed).
				Msg("Batch complete")

			if textfile == "" {
				textfile = cfg.Config.MetricsTextfile
			}
			if textfile != "" {
				if err := app.ensureMetrics().WriteTextfile(textfile); err != nil {
					return err
				}
			}

			return printBatch(cmd.OutOrStdout(), results, batchView{
				asJSON:      flags.asJSON,
				sorted:      sorted,
				bucketLimit: bucketLimit,
				resolutions: parseResolutions(resolutions),
				onlyFetch:   onlyFetch,
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&input, "input", "i", "-", "Input file, - for stdin")
	cmd.Flags().IntVarP(&workers, "workers", "w", rtn.DefaultWorkers, "Parallel workers")
	cmd.Flags().BoolVar(&sorted, "sort", false, "Sort by resolution bucket and rank")
	cmd.Flags().IntVar(&bucketLimit, "bucket-limit", 0, "Keep at most this many releases per resolution when sorting")
	cmd.Flags().StringSliceVar(&resolutions, "resolution", nil, "Only keep these resolution buckets when sorting")
	cmd.Flags().StringVar(&textfile, "metrics-textfile", "", "Write ranking metrics to this Prometheus textfile")
	cmd.Flags().BoolVar(&onlyFetch, "fetch-only", false, "Only print releases that should be fetched")
	return cmd
}

func readItems(cmd *cobra.Command, input string) ([]rtn.Item, error) {
	var r io.Reader
	if input == "" || input == "-" {
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(input)
		if err != nil {
			return nil, errors.Wrapf(err, "could not open %s", input)
		}
		defer f.Close()
		r = f
	}
	return parseItems(r)
}

func parseItems(r io.Reader) ([]rtn.Item, error) {
	var items []rtn.Item

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if hash, title, ok := strings.Cut(line, "\t"); ok {
			items = append(items, rtn.Item{InfoHash: strings.TrimSpace(hash), RawTitle: strings.TrimSpace(title)})
			continue
		}
		items = append(items, rtn.Item{RawTitle: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "could not read input")
	}
	return items, nil
}

type batchView struct {
	asJSON      bool
	sorted      bool
	bucketLimit int
	resolutions []string
	onlyFetch   bool
}

type batchLine struct {
	Torrent *rtn.Torrent `json:"torrent,omitempty"`
	Title   string       `json:"title,omitempty"`
	Error   string       `json:"error,omitempty"`
}

func printBatch(w io.Writer, results []rtn.BatchResult, view batchView) error {
	var (
		torrents []rtn.Torrent
		failures []batchLine
	)
	for i := range results {
		if results[i].Err != nil {
			failures = append(failures, batchLine{Title: results[i].Item.RawTitle, Error: results[i].Err.Error()})
			continue
		}
		if view.onlyFetch && !results[i].Torrent.Fetch {
			continue
		}
		torrents = append(torrents, results[i].Torrent)
	}

	if view.sorted {
		torrents = rtn.SortTorrents(torrents, view.bucketLimit, view.resolutions)
	}

	if view.asJSON {
		lines := make([]batchLine, 0, len(torrents)+len(failures))
		for i := range torrents {
			lines = append(lines, batchLine{Torrent: &torrents[i]})
		}
		lines = append(lines, failures...)
		return writeJSON(w, lines)
	}

	rows := make([][]string, 0, len(torrents))
	for _, t := range torrents {
		rows = append(rows, []string{
			t.RawTitle,
			orDash(t.Data.Resolution),
			strconv.Itoa(t.Rank),
			yesNo(t.Fetch),
			joinStrings(t.FailedKeys),
		})
	}
	fmt.Fprintln(w, renderTable(batchColumns, rows))

	for _, f := range failures {
		fmt.Fprintf(w, "error: %q: %s\n", f.Title, f.Error)
	}

	sum := rtn.Summarize(results)
	fmt.Fprintf(w, "%d releases: %d accepted, %d rejected, %d failed\n", sum.Total, sum.Accepted, sum.Rejected, sum.Failed)
	return nil
}
