package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// Lyrics is a small reference text with a section header and a repeated
// chorus line.
const Lyrics = `[Verse]
Dust off the shoulders, heavyweight soldier
Heart like boulders, world getting colder

[Chorus]
Keep it movin', never losin'
`

// Transcript is a recognizer transcript for Lyrics: a leading ad-lib, one
// block per lyric line, and the chorus sung twice.
const Transcript = `1
00:00:01,000 --> 00:00:03,900
Yeah, yeah, uh

2
00:00:04,460 --> 00:00:07,180
Dust off the shoulders heavyweight soldier

3
00:00:07,180 --> 00:00:09,580
Heart like boulders world gettin colder

4
00:00:09,600 --> 00:00:12,000
Keep it movin never losin

5
00:00:12,100 --> 00:00:14,300
keep it movin never losin
`

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteFixturePair writes Transcript and Lyrics under dir and returns their
// paths.
func WriteFixturePair(t testing.TB, dir string) (transcriptPath, lyricsPath string) {
	t.Helper()

	transcriptPath = WriteText(t, filepath.Join(dir, "song.mp3.srt"), Transcript)
	lyricsPath = WriteText(t, filepath.Join(dir, "song.txt"), Lyrics)
	return transcriptPath, lyricsPath
}
