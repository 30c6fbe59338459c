package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"lyricsync/internal/align"
	"lyricsync/internal/lyrics"
	"lyricsync/internal/syncjob"
)

type alignJSON struct {
	Text    string       `json:"text"`
	Cost    int          `json:"cost"`
	Matches int          `json:"matches"`
	Pairs   []align.Pair `json:"pairs,omitempty"`
}

func newAlignCommand(ctx *commandContext) *cobra.Command {
	var (
		showPairs  bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "align <reference.txt> <transcript.txt>",
		Short: "Regroup a transcript's words into the reference text's lines",
		Long: `Align two texts token by token and print the second text split into the
first text's line structure. Inputs that would exceed align.max_cells are
rejected.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			textA, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}
			textB, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[1], err)
			}

			var alignment align.Alignment
			err = ctx.withEngine(cmd, func(engine *syncjob.Engine) error {
				var alignErr error
				alignment, alignErr = engine.Align(cmd.Context(), string(textA), string(textB))
				return alignErr
			})
			if err != nil {
				return err
			}

			fused := align.FuseText(alignment.Pairs)
			if jsonOutput {
				payload := alignJSON{Text: fused, Cost: alignment.Cost, Matches: alignment.Matches()}
				if showPairs {
					payload.Pairs = alignment.Pairs
				}
				return writeJSON(cmd, payload)
			}
			out := cmd.OutOrStdout()
			if showPairs {
				fmt.Fprintln(out, renderPairTable(alignment.Pairs))
				fmt.Fprintf(out, "cost %d, %d matched tokens\n", alignment.Cost, alignment.Matches())
				return nil
			}
			fmt.Fprint(out, fused)
			if fused != "" && fused[len(fused)-1] != '\n' {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPairs, "pairs", false, "Show the token pairs instead of the fused text")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the alignment as JSON")
	return cmd
}

func renderPairTable(pairs []align.Pair) string {
	view := newTableView(numCol("#"), col("Move"), col("Reference"), col("Transcript"))
	for i, pair := range pairs {
		view.add(strconv.Itoa(i+1), pair.Move.String(), tokenCell(pair.A), tokenCell(pair.B))
	}
	return view.String()
}

func tokenCell(tok *lyrics.Token) string {
	if tok == nil {
		return ""
	}
	if tok.Kind == lyrics.KindLineBreak {
		return "⏎"
	}
	return tok.Text
}
