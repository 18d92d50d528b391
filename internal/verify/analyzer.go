package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

const maxAnalyzedResults = 5

// Analyzer asks the LLM to weigh search evidence and suggest a verdict.
// With no evidence it falls back to the model's training knowledge.
type Analyzer struct {
	provider llm.Provider
}

// NewAnalyzer creates a new AI evidence analyzer.
func NewAnalyzer(provider llm.Provider) *Analyzer {
	return &Analyzer{provider: provider}
}

type analysisReply struct {
	Verdict         string   `json:"verdict"`
	Confidence      float64  `json:"confidence"`
	Reasoning       []string `json:"reasoning"`
	KeyFindings     []string `json:"key_findings"`
	EvidenceSummary string   `json:"evidence_summary"`
	Caveat          string   `json:"caveat"`
}

// Analyze produces a structured verdict suggestion for the claim. The output
// is always a well-formed AIAnalysis; failures degrade to UNVERIFIED with
// confidence 0.
func (a *Analyzer) Analyze(ctx context.Context, claim string, searchResults []models.SearchResult) models.AIAnalysis {
	if len(searchResults) == 0 {
		return a.analyzeFallback(ctx, claim)
	}
	return a.analyzeGrounded(ctx, claim, searchResults)
}

func (a *Analyzer) analyzeGrounded(ctx context.Context, claim string, searchResults []models.SearchResult) models.AIAnalysis {
	var evidenceBlock strings.Builder
	for i, r := range searchResults {
		if i >= maxAnalyzedResults {
			break
		}
		fmt.Fprintf(&evidenceBlock, "Source %d:\nTitle: %s\nSnippet: %s\nURL: %s\n\n", i+1, r.Title, r.Snippet, r.URL)
	}

	prompt := fmt.Sprintf(`You are an expert fact-checker analyzing information to verify a claim.

CLAIM TO VERIFY: "%s"

SEARCH RESULTS FROM THE WEB:
%s
Your task:
1. Carefully analyze all the search results above
2. Look for patterns of debunking, confirmation, or mixed evidence
3. Consider the credibility of sources (news sites, fact-checkers, scientific publications)
4. Determine if the claim is TRUE, FALSE, MISLEADING, or UNVERIFIED

Provide your analysis in this exact JSON format:
{
    "verdict": "TRUE" or "FALSE" or "MISLEADING" or "UNVERIFIED",
    "confidence": 0.0 to 1.0,
    "reasoning": ["point 1", "point 2", "point 3"],
    "key_findings": ["finding 1", "finding 2"],
    "evidence_summary": "Brief summary of evidence"
}

Guidelines:
- TRUE: Multiple reliable sources confirm the claim with strong evidence (confidence > 0.7)
- FALSE: Multiple reliable sources debunk the claim with clear evidence (confidence > 0.7)
- MISLEADING: Mixed evidence, partially true, taken out of context (confidence 0.4-0.7)
- UNVERIFIED: Insufficient evidence or conflicting sources (confidence < 0.4)

Be objective and evidence-based. Return ONLY the JSON, no additional text.`, claim, evidenceBlock.String())

	opts := llm.DefaultCompletionOptions()
	response, err := a.provider.Complete(ctx, prompt, opts)
	if err != nil {
		log.Warn().Err(err).Msg("AI analysis failed")
		return models.AIAnalysis{
			VerdictSuggestion: models.VerdictUnverified,
			Reasoning:         []string{fmt.Sprintf("Analysis error: %s", err)},
			Analysis:          fmt.Sprintf("Error: %s", err),
		}
	}

	var reply analysisReply
	if err := decodeLLMJSON(response, &reply); err != nil {
		log.Warn().Err(err).Msg("AI analysis reply was not valid JSON")
		return models.AIAnalysis{
			VerdictSuggestion: models.VerdictUnverified,
			Reasoning:         []string{"Unable to analyze results properly"},
			Analysis:          "Error parsing AI response",
			SourcesAnalyzed:   len(searchResults),
		}
	}

	return models.AIAnalysis{
		VerdictSuggestion: models.ParseVerdictType(reply.Verdict),
		Confidence:        clamp01(reply.Confidence),
		Reasoning:         reply.Reasoning,
		KeyFindings:       reply.KeyFindings,
		Analysis:          reply.EvidenceSummary,
		SourcesAnalyzed:   len(searchResults),
	}
}

func (a *Analyzer) analyzeFallback(ctx context.Context, claim string) models.AIAnalysis {
	log.Info().Str("claim", claim).Msg("No search results available, using model knowledge")

	prompt := fmt.Sprintf(`You are an expert fact-checker with access to your training data (up to your knowledge cutoff).

CLAIM TO VERIFY: "%s"

Since no web search results are available, use your training knowledge to analyze this claim.

Your task:
1. Based on your training data, determine if this claim is generally TRUE, FALSE, MISLEADING, or UNVERIFIED
2. Provide reasoning based on established facts you know
3. Be honest about limitations if the claim is too recent or obscure

Provide your analysis in this exact JSON format:
{
    "verdict": "TRUE" or "FALSE" or "MISLEADING" or "UNVERIFIED",
    "confidence": 0.0 to 1.0,
    "reasoning": ["point 1", "point 2", "point 3"],
    "key_findings": ["finding 1", "finding 2"],
    "evidence_summary": "Brief summary based on your knowledge",
    "caveat": "Note that this is based on training data, not current web search"
}

Guidelines:
- TRUE: You're confident this is accurate based on established facts (confidence > 0.6)
- FALSE: You're confident this is false based on established facts (confidence > 0.6)
- MISLEADING: Partially true or requires context (confidence 0.4-0.6)
- UNVERIFIED: Too recent, obscure, or you don't have reliable information (confidence < 0.4)

Return ONLY the JSON, no additional text.`, claim)

	opts := llm.DefaultCompletionOptions()
	response, err := a.provider.Complete(ctx, prompt, opts)
	if err != nil {
		log.Warn().Err(err).Msg("Fallback analysis failed")
		return models.AIAnalysis{
			VerdictSuggestion: models.VerdictUnverified,
			Reasoning:         []string{"Unable to verify - no web search results available"},
			Analysis:          "No search results available and fallback failed",
			FallbackMode:      true,
		}
	}

	var reply analysisReply
	if err := decodeLLMJSON(response, &reply); err != nil {
		log.Warn().Err(err).Msg("Fallback analysis reply was not valid JSON")
		return models.AIAnalysis{
			VerdictSuggestion: models.VerdictUnverified,
			Reasoning:         []string{"Unable to verify - no web search results available"},
			Analysis:          "Error parsing AI response",
			FallbackMode:      true,
		}
	}

	caveat := reply.Caveat
	if caveat == "" {
		caveat = "Analysis based on AI training data (no live web search)"
	}

	analysis := reply.EvidenceSummary
	if analysis == "" {
		analysis = "Based on AI knowledge"
	}

	return models.AIAnalysis{
		VerdictSuggestion: models.ParseVerdictType(reply.Verdict),
		Confidence:        clamp01(reply.Confidence),
		Reasoning:         reply.Reasoning,
		KeyFindings:       reply.KeyFindings,
		Analysis:          analysis,
		SourcesAnalyzed:   0,
		FallbackMode:      true,
		Caveat:            caveat,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
