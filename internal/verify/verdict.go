package verify

import (
	"fmt"
	"math"
	"strings"

	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

var (
	confirmingWords = []string{"true", "correct", "accurate"}
	debunkingWords  = []string{"false", "incorrect", "inaccurate"}
	partialWords    = []string{"misleading", "mixture", "partially"}
)

// Adjudicate reconciles the AI verdict suggestion with fact-check ratings
// and search volume into one final verdict. Deterministic given its input,
// no I/O; it never panics past its boundary.
func Adjudicate(bundle models.VerificationBundle) (verdict models.Verdict) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("Verdict adjudication failed")
			verdict = models.Verdict{
				Verdict:    models.VerdictUnverified,
				Confidence: 0.0,
				Reasoning:  []string{fmt.Sprintf("Error: %v", r)},
			}
		}
	}()

	result := models.VerdictUnverified
	confidence := 0.0
	var reasoning []string

	factChecks := bundle.FactCheck.Entries
	searchResults := bundle.Search.Results
	ai := bundle.AIAnalysis

	// Priority 1: AI analysis
	if ai.Confidence > 0.0 {
		result = ai.VerdictSuggestion
		confidence = ai.Confidence
		for _, r := range ai.Reasoning {
			reasoning = append(reasoning, "AI Analysis: "+r)
		}
	}

	// Priority 2: fact-check registry cross-reference. Ratings reinforce an
	// agreeing AI verdict; a disagreeing rating is flagged but never
	// overrides.
	for i, entry := range factChecks {
		if i >= 2 {
			break
		}
		rating := strings.ToLower(entry.Rating)

		switch {
		case containsAny(rating, confirmingWords):
			reasoning = append(reasoning, fmt.Sprintf("Fact-checker confirms: %s", publisherOrUnknown(entry)))
			if result == models.VerdictTrue {
				confidence = math.Min(0.95, confidence+0.1)
			} else if result == models.VerdictFalse {
				reasoning = append(reasoning, "Conflicting evidence: fact-checker rating disagrees with AI verdict")
			}
		case containsAny(rating, debunkingWords):
			reasoning = append(reasoning, fmt.Sprintf("Fact-checker debunks: %s", publisherOrUnknown(entry)))
			if result == models.VerdictFalse {
				confidence = math.Min(0.95, confidence+0.1)
			} else if result == models.VerdictTrue {
				reasoning = append(reasoning, "Conflicting evidence: fact-checker rating disagrees with AI verdict")
			}
		case containsAny(rating, partialWords):
			reasoning = append(reasoning, "Fact-checker: Partially true/misleading")
		}
	}

	// Priority 3: search volume, informational only
	if len(searchResults) > 0 {
		reasoning = append(reasoning, fmt.Sprintf("Analyzed %d web sources", len(searchResults)))
	}

	// Unverified with evidence still deserves a confidence floor
	if result == models.VerdictUnverified && len(searchResults) > 0 {
		confidence = math.Max(0.2, confidence)
		reasoning = append(reasoning, "Insufficient evidence to make a definitive determination")
	}

	// A committed verdict is never reported below 0.3
	if result != models.VerdictUnverified && confidence < 0.3 {
		confidence = 0.3
	}

	// The verdict always carries at least one reasoning line, even when no
	// signal contributed anything
	if len(reasoning) == 0 {
		reasoning = append(reasoning, "No usable evidence or analysis was available for this claim")
	}

	return models.Verdict{
		Verdict:      result,
		Confidence:   round2(clamp01(confidence)),
		Reasoning:    reasoning,
		TotalSources: len(factChecks) + len(searchResults),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func publisherOrUnknown(entry models.FactCheckEntry) string {
	if entry.Publisher == "" {
		return "Unknown"
	}
	return entry.Publisher
}
