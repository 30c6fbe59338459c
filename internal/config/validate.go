package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateAlign(); err != nil {
		return err
	}
	if err := c.validateReconcile(); err != nil {
		return err
	}
	if err := c.validateSync(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		return errors.New("paths.data_dir must be set")
	}
	if !strings.Contains(c.Paths.APIBind, ":") {
		return fmt.Errorf("paths.api_bind must be host:port, got %q", c.Paths.APIBind)
	}
	return nil
}

func (c *Config) validateAlign() error {
	if c.Align.MaxCells <= 0 {
		return errors.New("align.max_cells must be positive")
	}
	return ensureNonNegativeMap(map[string]int{
		"align.line_break_cost":          c.Align.LineBreakCost,
		"align.word_mismatch_cost":       c.Align.WordMismatchCost,
		"align.apostrophe_mismatch_cost": c.Align.ApostropheMismatchCost,
	})
}

func (c *Config) validateReconcile() error {
	if c.Reconcile.SimilarityThreshold < 0 || c.Reconcile.SimilarityThreshold > 1 {
		return errors.New("reconcile.similarity_threshold must be between 0 and 1")
	}
	if c.Reconcile.SubstringScore < 0 || c.Reconcile.SubstringScore > 1 {
		return errors.New("reconcile.substring_score must be between 0 and 1")
	}
	if !slices.Contains([]string{ScorerCharset, ScorerJaroWinkler, ScorerCosine}, c.Reconcile.Scorer) {
		return fmt.Errorf("reconcile.scorer must be one of %s, %s, %s; got %q", ScorerCharset, ScorerJaroWinkler, ScorerCosine, c.Reconcile.Scorer)
	}
	return nil
}

func (c *Config) validateSync() error {
	if !slices.Contains([]string{FormatSRT, FormatLRC, FormatJSON}, c.Sync.OutputFormat) {
		return fmt.Errorf("sync.output_format must be one of %s, %s, %s; got %q", FormatSRT, FormatLRC, FormatJSON, c.Sync.OutputFormat)
	}
	return ensurePositiveMap(map[string]int{
		"sync.timeout_seconds": c.Sync.TimeoutSeconds,
		"sync.workers":         c.Sync.Workers,
	})
}

func ensurePositiveMap(values map[string]int) error {
	for _, key := range sortedKeys(values) {
		if values[key] <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}

func ensureNonNegativeMap(values map[string]int) error {
	for _, key := range sortedKeys(values) {
		if values[key] < 0 {
			return fmt.Errorf("%s must be >= 0", key)
		}
	}
	return nil
}

func sortedKeys(values map[string]int) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
