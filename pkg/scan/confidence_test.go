package scan

import (
	"strings"
	"testing"
)

func TestEstimateFullySatisfiedScoresExactlyOne(t *testing.T) {
	e := NewEstimator(DefaultWeights())
	score := e.Estimate(Signals{
		ArticleCount:  12,
		HasChapters:   true,
		AvgBodyLength: 180,
		ActType:       "LEGE",
		ActNumber:     "123/2021",
	})
	if score != 1.0 {
		t.Errorf("fully satisfied score = %v, want exactly 1.0", score)
	}
}

func TestEstimateNoSignalsScoresZero(t *testing.T) {
	e := NewEstimator(DefaultWeights())
	if score := e.Estimate(Signals{}); score != 0.0 {
		t.Errorf("empty signals score = %v, want 0", score)
	}
}

func TestEstimateIsMonotonic(t *testing.T) {
	e := NewEstimator(DefaultWeights())
	bare := e.Estimate(Signals{ArticleCount: 5})
	structured := e.Estimate(Signals{ArticleCount: 5, HasChapters: true})
	full := e.Estimate(Signals{
		ArticleCount: 5, HasChapters: true, AvgBodyLength: 200,
		ActType: "LEGE", ActNumber: "1/2020",
	})
	if !(bare < structured && structured < full) {
		t.Errorf("expected strictly increasing scores, got %v, %v, %v", bare, structured, full)
	}
}

func TestEstimateAllOrNothingTerms(t *testing.T) {
	e := NewEstimator(DefaultWeights())
	// Average body length at the threshold does not fire the content term;
	// one character above it does.
	at := e.Estimate(Signals{ArticleCount: 1, AvgBodyLength: minAverageBodyLength})
	above := e.Estimate(Signals{ArticleCount: 1, AvgBodyLength: minAverageBodyLength + 1})
	if at >= above {
		t.Errorf("content term fired at threshold: at=%v above=%v", at, above)
	}
	// Metadata needs both the type and the number.
	typeOnly := e.Estimate(Signals{ArticleCount: 1, ActType: "LEGE"})
	both := e.Estimate(Signals{ArticleCount: 1, ActType: "LEGE", ActNumber: "5"})
	if typeOnly >= both {
		t.Errorf("metadata term fired on type alone: %v >= %v", typeOnly, both)
	}
}

func TestLoadWeights(t *testing.T) {
	weights, err := LoadWeights(strings.NewReader("articles: 0.7\nstructure: 0.1\ncontent: 0.1\nmetadata: 0.1\n"))
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if weights.Articles != 0.7 {
		t.Errorf("articles weight = %v, want 0.7", weights.Articles)
	}

	// Partial overrides keep the defaults for the rest.
	weights, err = LoadWeights(strings.NewReader("articles: 0.9\n"))
	if err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}
	if weights.Structure != DefaultWeights().Structure {
		t.Errorf("structure weight = %v, want default", weights.Structure)
	}

	if _, err := LoadWeights(strings.NewReader("articles: [broken")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
