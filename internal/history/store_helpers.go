package history

import (
	"database/sql"
	"errors"
	"time"
)

const runColumns = "id, source, transcript_path, lyrics_path, output_path, output_format, scorer, status, reference_lines, transcript_blocks, direct_matches, fallback_matches, dropped_blocks, skipped_leading, error_message, started_at, finished_at"

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run            Run
		source         string
		transcriptPath sql.NullString
		lyricsPath     sql.NullString
		outputPath     sql.NullString
		status         string
		errorMessage   sql.NullString
		startedRaw     string
		finishedRaw    sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&source,
		&transcriptPath,
		&lyricsPath,
		&outputPath,
		&run.OutputFormat,
		&run.Scorer,
		&status,
		&run.ReferenceLines,
		&run.TranscriptBlocks,
		&run.DirectMatches,
		&run.FallbackMatches,
		&run.DroppedBlocks,
		&run.SkippedLeading,
		&errorMessage,
		&startedRaw,
		&finishedRaw,
	); err != nil {
		return nil, err
	}

	run.Source = Source(source)
	run.Status = Status(status)
	run.TranscriptPath = transcriptPath.String
	run.LyricsPath = lyricsPath.String
	run.OutputPath = outputPath.String
	run.ErrorMessage = errorMessage.String
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finishedRaw.Valid {
		if finished, err := parseTimeString(finishedRaw.String); err == nil {
			run.FinishedAt = &finished
		}
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func nullableTime(value *time.Time) any {
	if value == nil {
		return nil
	}
	return formatTime(*value)
}

// storedTimeLayout is fixed width so that text ordering matches time ordering.
const storedTimeLayout = "2006-01-02T15:04:05.000000000Z"

func formatTime(value time.Time) string {
	return value.UTC().Format(storedTimeLayout)
}

func parseTimeString(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty")
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02 15:04:05", value)
}

func makePlaceholders(count int) string {
	if count <= 0 {
		return ""
	}
	placeholders := make([]byte, 0, count*2)
	for i := 0; i < count; i++ {
		if i > 0 {
			placeholders = append(placeholders, ',')
		}
		placeholders = append(placeholders, '?')
	}
	return string(placeholders)
}
