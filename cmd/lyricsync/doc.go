// Package main hosts the lyricsync CLI entrypoint and command graph.
//
// The Cobra command tree turns terminal invocations into sync runs, text
// alignment, SRT to LRC conversion, batch processing, history maintenance and
// the HTTP API server. Configuration resolution, logger construction and
// history store access are centralized in commandContext so subcommands stay
// declarative; the work itself lives in the internal packages.
package main
