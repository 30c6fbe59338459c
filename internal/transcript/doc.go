// Package transcript reads speech-recognition SRT output into the per-block
// timestamp and text maps consumed by the reconciler.
//
// Parsing is line oriented and forgiving: a digit-only line opens a block, the
// first arrow line after it carries the timing, and any other non-empty line
// is appended to the block text. Blocks with unreadable timing are set aside
// in Transcript.Skipped instead of failing the whole file.
package transcript
