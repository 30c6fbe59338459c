package transcript_test

import (
	"errors"
	"testing"
	"time"

	"lyricsync/internal/transcript"
)

func TestParseSRTTime(t *testing.T) {
	tests := []struct {
		input string
		want  time.Duration
		ok    bool
	}{
		{"00:00:00,000", 0, true},
		{"00:01:02,345", time.Minute + 2*time.Second + 345*time.Millisecond, true},
		{"01:00:00.500", time.Hour + 500*time.Millisecond, true},
		{" 00:00:07,010 ", 7*time.Second + 10*time.Millisecond, true},
		{"00:00:01,5", 1500 * time.Millisecond, true},
		{"00:00:01,05", 1050 * time.Millisecond, true},
		{"00:00:01.25", 1250 * time.Millisecond, true},
		{"00:00:01,", 0, false},
		{"00:00:01,5000", 0, false},
		{"00:00:01,-5", 0, false},
		{"", 0, false},
		{"00:00:07", 0, false},
		{"00:07,000", 0, false},
		{"00:61:00,000", 0, false},
		{"aa:00:00,000", 0, false},
	}
	for _, tt := range tests {
		got, err := transcript.ParseSRTTime(tt.input)
		if tt.ok {
			if err != nil {
				t.Fatalf("ParseSRTTime(%q): %v", tt.input, err)
			}
			if got != tt.want {
				t.Fatalf("ParseSRTTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
			continue
		}
		if !errors.Is(err, transcript.ErrMalformedTimestamp) {
			t.Fatalf("ParseSRTTime(%q) error = %v, want ErrMalformedTimestamp", tt.input, err)
		}
	}
}

func TestParseTimestampIgnoresCueSettings(t *testing.T) {
	ts, err := transcript.ParseTimestamp("00:00:01,000 --> 00:00:02,500 X1:10 X2:20")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if ts.Start != time.Second || ts.End != 2500*time.Millisecond {
		t.Fatalf("timing = %v..%v", ts.Start, ts.End)
	}
	if ts.Duration() != 1500*time.Millisecond {
		t.Fatalf("duration = %v", ts.Duration())
	}
	if ts.String() != "00:00:01,000 --> 00:00:02,500" {
		t.Fatalf("String() = %q", ts.String())
	}
}

func TestParseTimestampRequiresArrow(t *testing.T) {
	if _, err := transcript.ParseTimestamp("00:00:01,000 00:00:02,000"); !errors.Is(err, transcript.ErrMalformedTimestamp) {
		t.Fatalf("expected ErrMalformedTimestamp, got %v", err)
	}
}

func TestFormatSRTTime(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{0, "00:00:00,000"},
		{-time.Second, "00:00:00,000"},
		{90*time.Minute + 3*time.Second + 45*time.Millisecond, "01:30:03,045"},
		{1499 * time.Microsecond, "00:00:00,001"},
	}
	for _, tt := range tests {
		if got := transcript.FormatSRTTime(tt.input); got != tt.want {
			t.Fatalf("FormatSRTTime(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
