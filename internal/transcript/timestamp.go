package transcript

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrMalformedTimestamp reports an SRT timing line that cannot be parsed.
var ErrMalformedTimestamp = errors.New("malformed srt timestamp")

const arrow = "-->"

// Timestamp is the timing of one transcript block. Raw keeps the line as it
// appeared in the source file.
type Timestamp struct {
	Raw   string        `json:"raw"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// String renders the canonical SRT timing line.
func (t Timestamp) String() string {
	return FormatSRTTime(t.Start) + " " + arrow + " " + FormatSRTTime(t.End)
}

// Duration returns End minus Start, never negative.
func (t Timestamp) Duration() time.Duration {
	if t.End < t.Start {
		return 0
	}
	return t.End - t.Start
}

// IsTimingLine reports whether line looks like an SRT timing line.
func IsTimingLine(line string) bool {
	return strings.Contains(line, arrow)
}

// ParseTimestamp parses an SRT timing line such as
// "00:00:01,000 --> 00:00:03,500". Cue settings after the end time are
// ignored.
func ParseTimestamp(line string) (Timestamp, error) {
	raw := strings.TrimSpace(line)
	startText, endText, ok := strings.Cut(raw, arrow)
	if !ok {
		return Timestamp{}, fmt.Errorf("%w: missing %q in %q", ErrMalformedTimestamp, arrow, raw)
	}
	if fields := strings.Fields(endText); len(fields) > 0 {
		endText = fields[0]
	}
	start, err := ParseSRTTime(startText)
	if err != nil {
		return Timestamp{}, err
	}
	end, err := ParseSRTTime(endText)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp{Raw: raw, Start: start, End: end}, nil
}

// ParseSRTTime parses a single HH:MM:SS,mmm value. A period is accepted in
// place of the comma, and a shorter fraction is read as tenths or hundredths.
func ParseSRTTime(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty value", ErrMalformedTimestamp)
	}
	clock, fraction, ok := strings.Cut(strings.ReplaceAll(value, ".", ","), ",")
	if !ok {
		return 0, fmt.Errorf("%w: %q has no milliseconds", ErrMalformedTimestamp, value)
	}
	hms := strings.Split(clock, ":")
	if len(hms) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	hours, errH := strconv.Atoi(hms[0])
	minutes, errM := strconv.Atoi(hms[1])
	seconds, errS := strconv.Atoi(hms[2])
	millis, errMS := parseMillis(fraction)
	if errH != nil || errM != nil || errS != nil || errMS != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimestamp, value)
	}
	if hours < 0 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 || millis < 0 || millis > 999 {
		return 0, fmt.Errorf("%w: %q out of range", ErrMalformedTimestamp, value)
	}
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond, nil
}

// parseMillis reads a fraction of a second written with one to three digits,
// so ",5" is 500ms and ",05" is 50ms.
func parseMillis(fraction string) (int, error) {
	if fraction == "" || len(fraction) > 3 || strings.Trim(fraction, "0123456789") != "" {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(fraction + strings.Repeat("0", 3-len(fraction)))
}

// FormatSRTTime renders d as HH:MM:SS,mmm, rounding to the nearest
// millisecond. Negative durations clamp to zero.
func FormatSRTTime(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	msTotal := d.Round(time.Millisecond).Milliseconds()
	hours := msTotal / 3_600_000
	msTotal %= 3_600_000
	minutes := msTotal / 60_000
	msTotal %= 60_000
	secs := msTotal / 1_000
	millis := msTotal % 1_000
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
