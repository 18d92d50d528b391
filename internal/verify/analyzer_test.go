package verify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/factcheckit/factcheckit/internal/models"
)

var sampleResults = []models.SearchResult{
	{Title: "Moon landing confirmed", Snippet: "NASA records show...", URL: "https://example.com/a"},
	{Title: "Apollo 11 anniversary", Snippet: "In 1969...", URL: "https://example.com/b"},
}

func TestAnalyzeGrounded(t *testing.T) {
	provider := &stubProvider{reply: `{
		"verdict": "TRUE",
		"confidence": 0.85,
		"reasoning": ["multiple reliable sources confirm"],
		"key_findings": ["NASA mission records"],
		"evidence_summary": "Strong confirmation across sources"
	}`}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "the moon landing happened in 1969", sampleResults)

	if analysis.VerdictSuggestion != models.VerdictTrue {
		t.Errorf("verdict = %s, want TRUE", analysis.VerdictSuggestion)
	}
	if analysis.Confidence != 0.85 {
		t.Errorf("confidence = %v, want 0.85", analysis.Confidence)
	}
	if analysis.FallbackMode {
		t.Error("fallback mode should be false with search evidence")
	}
	if analysis.SourcesAnalyzed != len(sampleResults) {
		t.Errorf("sources analyzed = %d, want %d", analysis.SourcesAnalyzed, len(sampleResults))
	}
	if analysis.Analysis != "Strong confirmation across sources" {
		t.Errorf("analysis = %q", analysis.Analysis)
	}
	if !strings.Contains(provider.lastPrompt, "Moon landing confirmed") {
		t.Error("prompt should embed the search evidence")
	}
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	provider := &stubProvider{reply: "```json\n{\"verdict\": \"FALSE\", \"confidence\": 0.9, \"reasoning\": [\"debunked\"]}\n```"}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "some claim", sampleResults)

	if analysis.VerdictSuggestion != models.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", analysis.VerdictSuggestion)
	}
	if analysis.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", analysis.Confidence)
	}
}

func TestAnalyzeMalformedReply(t *testing.T) {
	provider := &stubProvider{reply: "I think the claim is probably true."}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "some claim", sampleResults)

	if analysis.VerdictSuggestion != models.VerdictUnverified {
		t.Errorf("verdict = %s, want UNVERIFIED", analysis.VerdictSuggestion)
	}
	if analysis.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", analysis.Confidence)
	}
	if len(analysis.Reasoning) != 1 || analysis.Reasoning[0] != "Unable to analyze results properly" {
		t.Errorf("reasoning = %v", analysis.Reasoning)
	}
	if analysis.Analysis != "Error parsing AI response" {
		t.Errorf("analysis = %q", analysis.Analysis)
	}
	if analysis.SourcesAnalyzed != len(sampleResults) {
		t.Errorf("sources analyzed = %d, want %d", analysis.SourcesAnalyzed, len(sampleResults))
	}
}

func TestAnalyzeProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("connection refused")}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "some claim", sampleResults)

	if analysis.VerdictSuggestion != models.VerdictUnverified {
		t.Errorf("verdict = %s, want UNVERIFIED", analysis.VerdictSuggestion)
	}
	if analysis.Confidence != 0.0 {
		t.Errorf("confidence = %v, want 0.0", analysis.Confidence)
	}
	if len(analysis.Reasoning) == 0 || !strings.Contains(analysis.Reasoning[0], "Analysis error") {
		t.Errorf("reasoning = %v", analysis.Reasoning)
	}
}

func TestAnalyzeFallbackMode(t *testing.T) {
	provider := &stubProvider{reply: `{
		"verdict": "TRUE",
		"confidence": 0.7,
		"reasoning": ["well-established fact"],
		"evidence_summary": "Known from historical record"
	}`}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "water boils at 100C at sea level", nil)

	if !analysis.FallbackMode {
		t.Error("fallback mode should be true with no search evidence")
	}
	if analysis.SourcesAnalyzed != 0 {
		t.Errorf("sources analyzed = %d, want 0", analysis.SourcesAnalyzed)
	}
	if analysis.Caveat != "Analysis based on AI training data (no live web search)" {
		t.Errorf("caveat = %q, want default caveat", analysis.Caveat)
	}
	if !strings.Contains(provider.lastPrompt, "training knowledge") {
		t.Error("prompt should ask for training-knowledge analysis")
	}
}

func TestAnalyzeFallbackProviderError(t *testing.T) {
	provider := &stubProvider{err: errors.New("timeout")}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "some claim", nil)

	if analysis.VerdictSuggestion != models.VerdictUnverified {
		t.Errorf("verdict = %s, want UNVERIFIED", analysis.VerdictSuggestion)
	}
	if !analysis.FallbackMode {
		t.Error("fallback mode should be true")
	}
}

func TestAnalyzeClampsConfidence(t *testing.T) {
	provider := &stubProvider{reply: `{"verdict": "TRUE", "confidence": 1.5}`}
	analyzer := NewAnalyzer(provider)

	analysis := analyzer.Analyze(context.Background(), "some claim", sampleResults)

	if analysis.Confidence != 1.0 {
		t.Errorf("confidence = %v, want clamped 1.0", analysis.Confidence)
	}
}
