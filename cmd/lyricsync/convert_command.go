package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lyricsync/internal/caption"
)

func newConvertCommand() *cobra.Command {
	var (
		format     string
		outputPath string
	)

	cmd := &cobra.Command{
		Use:   "convert <captions.srt>",
		Short: "Convert an SRT caption file to LRC",
		Long: `Convert an SRT file to LRC lines. Use "-" to read from stdin. The default
output is the JSON line list; --format lrc writes plain [mm:ss.xx] lines.`,
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var in io.Reader
			if args[0] == "-" {
				in = cmd.InOrStdin()
			} else {
				file, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("open %s: %w", args[0], err)
				}
				defer file.Close()
				in = file
			}

			doc, err := caption.SRTToLRC(in)
			if err != nil {
				return fmt.Errorf("convert %s: %w", args[0], err)
			}

			var buf bytes.Buffer
			switch strings.ToLower(strings.TrimSpace(format)) {
			case "", "json":
				err = caption.WriteLRCJSON(&buf, doc)
			case "lrc":
				err = caption.WriteLRC(&buf, doc)
			default:
				return fmt.Errorf("unsupported convert format %q (want json or lrc)", format)
			}
			if err != nil {
				return err
			}

			if path := strings.TrimSpace(outputPath); path != "" {
				if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d lines to %s\n", len(doc.Lines), path)
				return nil
			}
			_, err = cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format: json or lrc")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write to this file instead of stdout")
	return cmd
}
