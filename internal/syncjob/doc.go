// Package syncjob runs lyric syncs end to end for the CLI and the HTTP API.
//
// An Engine is built from configuration: it owns the aligner, the reconciler
// and an optional history store. Run reads a transcript and lyric file,
// reconciles them under the configured timeout, writes the caption file while
// holding a lock on it, and records the outcome. RunBatch fans runs out over a
// bounded worker pool.
package syncjob
