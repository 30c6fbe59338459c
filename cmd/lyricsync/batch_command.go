package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lyricsync/internal/syncjob"
)

type batchItemJSON struct {
	Lyrics     string          `json:"lyrics"`
	Transcript string          `json:"transcript"`
	Result     *syncjob.Result `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
}

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var (
		format     string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Sync every lyric file in a directory that has a transcript beside it",
		Long: `Pair each *.txt lyric file in <dir> with a transcript named after it
(song.txt with song.mp3.srt, song.wav.srt, song.flac.srt or song.srt) and sync
them concurrently, up to sync.workers at a time.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := syncjob.DiscoverPairs(args[0])
			if err != nil {
				return err
			}
			if len(reqs) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No lyric/transcript pairs found in %s\n", args[0])
				return nil
			}
			for i := range reqs {
				reqs[i].Format = format
			}

			var items []syncjob.BatchItem
			err = ctx.withEngine(cmd, func(engine *syncjob.Engine) error {
				var runErr error
				items, runErr = engine.RunBatch(cmd.Context(), reqs)
				return runErr
			})
			if err != nil {
				return err
			}

			failed := 0
			for _, item := range items {
				if item.Failed() {
					failed++
				}
			}

			if jsonOutput {
				payload := make([]batchItemJSON, 0, len(items))
				for _, item := range items {
					entry := batchItemJSON{
						Lyrics:     item.Request.LyricsPath,
						Transcript: item.Request.TranscriptPath,
						Result:     item.Result,
					}
					if item.Err != nil {
						entry.Error = item.Err.Error()
					}
					payload = append(payload, entry)
				}
				if err := writeJSON(cmd, payload); err != nil {
					return err
				}
			} else {
				fmt.Fprintln(cmd.OutOrStdout(), renderBatchTable(items))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d syncs failed", failed, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: srt, lrc or json (default sync.output_format)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	return cmd
}

func renderBatchTable(items []syncjob.BatchItem) string {
	view := newTableView(col("Lyrics"), col("Status"), numCol("Lines"), numCol("Dropped"), col("Output"))
	for _, item := range items {
		row := []string{item.Request.LyricsPath, "", "", "", ""}
		switch {
		case item.Err != nil:
			row[1] = "failed"
			row[4] = item.Err.Error()
		case item.Result != nil:
			direct, fallback := item.Result.Reconciled.Counts()
			row[1] = string(item.Result.Status)
			row[2] = strconv.Itoa(direct + fallback)
			row[3] = strconv.Itoa(len(item.Result.Reconciled.Dropped))
			row[4] = item.Result.OutputPath
		}
		view.add(row...)
	}
	return view.String()
}
