package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/history"
	"lyricsync/internal/reconcile"
	"lyricsync/internal/syncjob"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var (
		outputPath string
		format     string
		dryRun     bool
		jsonOutput bool
		tableView  bool
	)

	cmd := &cobra.Command{
		Use:   "sync <transcript.srt> <lyrics.txt>",
		Short: "Timestamp lyric lines using a recognizer transcript",
		Long: `Reconcile a speech-recognizer SRT transcript with the reference lyrics and
write a caption file. By default the output is written beside the lyrics as
<lyrics file><ext>; use --print to send it to stdout instead.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := syncjob.Request{
				TranscriptPath: args[0],
				LyricsPath:     args[1],
				OutputPath:     strings.TrimSpace(outputPath),
				Format:         format,
				Source:         history.SourceCLI,
				DryRun:         dryRun,
			}
			var result *syncjob.Result
			err := ctx.withEngine(cmd, func(engine *syncjob.Engine) error {
				var runErr error
				result, runErr = engine.Run(cmd.Context(), req)
				return runErr
			})
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, result)
			}
			out := cmd.OutOrStdout()
			if tableView {
				fmt.Fprintln(out, renderEntryTable(result.Reconciled.Entries))
				return nil
			}
			if dryRun {
				_, err := io.WriteString(out, result.Output)
				return err
			}
			return writeSyncSummary(out, result)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Caption output path (default <lyrics><ext>)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: srt, lrc or json (default sync.output_format)")
	cmd.Flags().BoolVar(&dryRun, "print", false, "Print the captions to stdout without writing a file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the full result as JSON")
	cmd.Flags().BoolVar(&tableView, "table", false, "Show the reconciled entries as a table")
	return cmd
}

func renderEntryTable(entries []reconcile.Entry) string {
	view := newTableView(numCol("#"), numCol("Block"), col("Timing"), col("Pass"), numCol("Score"), col("Line"))
	for _, entry := range entries {
		view.add(
			strconv.Itoa(entry.Index),
			strconv.Itoa(entry.Block),
			entry.Timestamp.String(),
			entry.Pass.String(),
			strconv.FormatFloat(entry.Score, 'f', 2, 64),
			entry.Line,
		)
	}
	return view.String()
}
