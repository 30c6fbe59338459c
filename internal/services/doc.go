// Package services defines shared error and context utilities consumed by the
// sync runner, the HTTP server, and the CLI.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and correlation
//     identifiers for logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into consistent history statuses (failed, rejected, timed out).
//
// Use these helpers when wiring new entry points so error handling and
// observability stay uniform across surfaces.
package services
