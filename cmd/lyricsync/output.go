package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

// writeJSON encodes v as indented JSON to the command's stdout. Nil slices
// are the caller's concern; they encode as null.
func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// shortID abbreviates a run UUID for tables and headers.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
