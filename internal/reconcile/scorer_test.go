package reconcile_test

import (
	"errors"
	"testing"

	"lyricsync/internal/reconcile"
)

func TestScorerByName(t *testing.T) {
	tests := []struct {
		name string
		want reconcile.Scorer
	}{
		{"", reconcile.CharsetScorer{SubstringScore: 0.9}},
		{"charset", reconcile.CharsetScorer{SubstringScore: 0.9}},
		{"JaroWinkler", reconcile.JaroWinklerScorer{SubstringScore: 0.9}},
		{" cosine ", reconcile.TokenCosineScorer{SubstringScore: 0.9}},
	}
	for _, tt := range tests {
		got, err := reconcile.ScorerByName(tt.name, 0.9)
		if err != nil {
			t.Fatalf("ScorerByName(%q): %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("ScorerByName(%q) = %#v, want %#v", tt.name, got, tt.want)
		}
	}

	if _, err := reconcile.ScorerByName("levenshtein", 0.9); !errors.Is(err, reconcile.ErrUnknownScorer) {
		t.Fatalf("expected ErrUnknownScorer, got %v", err)
	}
}

func TestScorersShareSubstringAndEmptyRules(t *testing.T) {
	scorers := map[string]reconcile.Scorer{
		"charset":     reconcile.CharsetScorer{SubstringScore: 0.9},
		"jarowinkler": reconcile.JaroWinklerScorer{SubstringScore: 0.9},
		"cosine":      reconcile.TokenCosineScorer{SubstringScore: 0.9},
	}
	for name, s := range scorers {
		if got := s.Score("Heart like boulders", "heart like boulders, world getting colder"); got != 0.9 {
			t.Errorf("%s: substring score = %v, want 0.9", name, got)
		}
		if got := s.Score("", "anything"); got != 0 {
			t.Errorf("%s: empty score = %v, want 0", name, got)
		}
		if got := s.Score("anything", "   "); got != 0 {
			t.Errorf("%s: blank score = %v, want 0", name, got)
		}
	}
}

func TestScorersRateNearMatchesAboveThreshold(t *testing.T) {
	transcribed := "keep it movin never losin"
	reference := "Keep it movin', never losin'"
	for name, s := range map[string]reconcile.Scorer{
		"charset":     reconcile.CharsetScorer{SubstringScore: 0.9},
		"jarowinkler": reconcile.JaroWinklerScorer{SubstringScore: 0.9},
		"cosine":      reconcile.TokenCosineScorer{SubstringScore: 0.9},
	} {
		if got := s.Score(transcribed, reference); got <= 0.7 {
			t.Errorf("%s: score %v should exceed 0.7", name, got)
		}
	}
}

func TestCosineScorerDisjointLines(t *testing.T) {
	s := reconcile.TokenCosineScorer{SubstringScore: 0.9}
	if got := s.Score("dust off shoulders", "world getting colder"); got != 0 {
		t.Fatalf("disjoint score = %v, want 0", got)
	}
}
