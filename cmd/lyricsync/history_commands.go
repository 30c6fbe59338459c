package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"lyricsync/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and maintain recorded sync runs",
	}

	historyCmd.AddCommand(newHistoryListCommand(ctx))
	historyCmd.AddCommand(newHistoryShowCommand(ctx))
	historyCmd.AddCommand(newHistoryStatsCommand(ctx))
	historyCmd.AddCommand(newHistoryPruneCommand(ctx))
	historyCmd.AddCommand(newHistoryClearCommand(ctx))

	return historyCmd
}

func newHistoryListCommand(ctx *commandContext) *cobra.Command {
	var (
		statuses   []string
		limit      int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter, err := parseStatuses(statuses)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *history.Store) error {
				runs, err := store.List(cmd.Context(), history.ListOptions{Limit: limit, Statuses: filter})
				if err != nil {
					return err
				}
				if jsonOutput {
					if runs == nil {
						runs = []*history.Run{}
					}
					return writeJSON(cmd, runs)
				}
				if len(runs) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderRunTable(runs))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&statuses, "status", "s", nil, "Filter by run status (repeatable)")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output runs as JSON")
	return cmd
}

func newHistoryShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				run, err := store.Get(cmd.Context(), strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if run == nil {
					return fmt.Errorf("run %s not found", args[0])
				}
				if jsonOutput {
					return writeJSON(cmd, run)
				}
				return writeRunDetail(cmd.OutOrStdout(), run)
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the run as JSON")
	return cmd
}

func newHistoryStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Count runs per status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *history.Store) error {
				stats, err := store.Stats(cmd.Context())
				if err != nil {
					return err
				}
				view := newTableView(col("Status"), numCol("Count"))
				for _, status := range history.AllStatuses() {
					if count := stats[status]; count > 0 {
						view.add(string(status), strconv.Itoa(count))
					}
				}
				if view.empty() {
					fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
					return nil
				}
				fmt.Fprintln(cmd.OutOrStdout(), view.String())
				return nil
			})
		},
	}
}

func newHistoryPruneCommand(ctx *commandContext) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Delete finished runs older than a duration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if olderThan <= 0 {
				return errors.New("--older-than must be positive")
			}
			return ctx.withStore(func(store *history.Store) error {
				removed, err := store.Prune(cmd.Context(), time.Now().Add(-olderThan))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d runs\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "Age cutoff, e.g. 72h")
	return cmd
}

func newHistoryClearCommand(ctx *commandContext) *cobra.Command {
	var confirm bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every recorded run",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirm {
				return errors.New("refusing to clear history without --yes")
			}
			return ctx.withStore(func(store *history.Store) error {
				removed, err := store.Clear(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d runs\n", removed)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&confirm, "yes", false, "Confirm removal of all runs")
	return cmd
}

func parseStatuses(values []string) ([]history.Status, error) {
	var out []history.Status
	for _, value := range values {
		status, ok := history.ParseStatus(value)
		if !ok {
			return nil, fmt.Errorf("unknown status %q", value)
		}
		out = append(out, status)
	}
	return out, nil
}

func renderRunTable(runs []*history.Run) string {
	view := newTableView(col("ID"), col("Started"), col("Source"), col("Status"), numCol("Lines"), numCol("Dropped"), col("Lyrics"))
	for _, run := range runs {
		view.add(
			shortID(run.ID),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			string(run.Source),
			string(run.Status),
			strconv.Itoa(run.Entries()),
			strconv.Itoa(run.DroppedBlocks),
			run.LyricsPath,
		)
	}
	return view.String()
}

func writeRunDetail(w io.Writer, run *history.Run) error {
	s := newStatusWriter(shouldColorize(w))
	s.section("Run " + run.ID)
	s.line("Status", runStatusKind(run.Status), "%s", run.Status)
	s.line("Source", statusInfo, "%s", run.Source)
	s.line("Started", statusInfo, "%s", run.StartedAt.Local().Format(time.RFC3339))
	if run.FinishedAt != nil {
		s.line("Duration", statusInfo, "%s", run.Duration().Round(time.Millisecond))
	}
	for _, path := range []struct{ label, value string }{
		{"Transcript", run.TranscriptPath},
		{"Lyrics", run.LyricsPath},
		{"Output", run.OutputPath},
	} {
		if path.value != "" {
			s.line(path.label, statusInfo, "%s", path.value)
		}
	}
	s.line("Format", statusInfo, "%s", run.OutputFormat)
	s.line("Scorer", statusInfo, "%s", run.Scorer)
	s.line("Reference lines", statusInfo, "%d", run.ReferenceLines)
	s.line("Transcript blocks", statusInfo, "%d", run.TranscriptBlocks)
	s.line("Matched", statusOK, "%d direct, %d fallback", run.DirectMatches, run.FallbackMatches)
	if run.DroppedBlocks > 0 {
		s.line("Dropped", statusWarn, "%d", run.DroppedBlocks)
	}
	if run.ErrorMessage != "" {
		s.line("Error", statusError, "%s", run.ErrorMessage)
	}
	return s.writeTo(w)
}
