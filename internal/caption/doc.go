// Package caption serialises reconciled lyric entries as SRT, LRC or LRC JSON
// and converts existing SRT files to LRC.
package caption
