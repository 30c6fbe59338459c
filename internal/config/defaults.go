package config

const (
	defaultConfigPath  = "~/.config/lyricsync/config.toml"
	projectConfigName  = "lyricsync.toml"
	historyFileName    = "history.db"
	serverLockName     = "serve.lock"
	defaultDataDir     = "~/.local/share/lyricsync"
	defaultLogDirName  = "logs"
	defaultAPIBind     = "127.0.0.1:7489"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
	defaultMaxCells    = 4_000_000
	defaultLineBreak   = 100
	defaultWordCost    = 10
	defaultApostrophe  = 5
	defaultThreshold   = 0.7
	defaultSubstring   = 0.9
	defaultFiller      = "yeah"
	defaultScorer      = ScorerCharset
	defaultFormat      = FormatSRT
	defaultTimeoutSecs = 30
	defaultWorkers     = 4
)

// Fallback scorer names accepted by reconcile.scorer.
const (
	ScorerCharset     = "charset"
	ScorerJaroWinkler = "jarowinkler"
	ScorerCosine      = "cosine"
)

// Output formats accepted by sync.output_format.
const (
	FormatSRT  = "srt"
	FormatLRC  = "lrc"
	FormatJSON = "json"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			APIBind: defaultAPIBind,
		},
		Align: Align{
			MaxCells:               defaultMaxCells,
			LineBreakCost:          defaultLineBreak,
			WordMismatchCost:       defaultWordCost,
			ApostropheMismatchCost: defaultApostrophe,
		},
		Reconcile: Reconcile{
			SimilarityThreshold: defaultThreshold,
			SubstringScore:      defaultSubstring,
			FillerMarker:        defaultFiller,
			Scorer:              defaultScorer,
		},
		Sync: Sync{
			OutputFormat:   defaultFormat,
			TimeoutSeconds: defaultTimeoutSecs,
			Workers:        defaultWorkers,
			RecordHistory:  true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
