package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

const maxCitedPerSource = 3

// Explainer produces the plain-language explanation of a verdict.
type Explainer struct {
	provider llm.Provider
}

// NewExplainer creates a new explanation generator.
func NewExplainer(provider llm.Provider) *Explainer {
	return &Explainer{provider: provider}
}

type explanationReply struct {
	Summary        string `json:"real_news_summary"`
	Detailed       string `json:"detailed_explanation"`
	EvidencePoints []struct {
		Point  string `json:"point"`
		Source string `json:"source"`
	} `json:"evidence_points"`
}

// Explain generates a summary, detailed explanation and evidence points for
// the verdict, plus assembled source citations. On any LLM failure it falls
// back to a templated explanation, so a complete Explanation is always
// returned.
func (e *Explainer) Explain(ctx context.Context, originalClaim, extractedClaim string, bundle models.VerificationBundle, verdict models.Verdict) models.Explanation {
	prompt := e.buildPrompt(extractedClaim, bundle, verdict)

	opts := llm.DefaultCompletionOptions()
	response, err := e.provider.Complete(ctx, prompt, opts)
	if err != nil {
		log.Warn().Err(err).Msg("Explanation generation failed, using fallback")
		return e.fallback(bundle, verdict)
	}

	var reply explanationReply
	if err := decodeLLMJSON(response, &reply); err != nil {
		log.Warn().Err(err).Msg("Explanation reply was not valid JSON, using fallback")
		return e.fallback(bundle, verdict)
	}

	summary := reply.Summary
	if summary == "" {
		summary = "Unable to generate summary"
	}
	detailed := reply.Detailed
	if detailed == "" {
		detailed = "Unable to generate explanation"
	}

	points := make([]models.EvidencePoint, 0, len(reply.EvidencePoints))
	for _, ep := range reply.EvidencePoints {
		points = append(points, models.EvidencePoint{Point: ep.Point, Source: ep.Source})
	}

	return models.Explanation{
		Summary:        summary,
		DetailedText:   detailed,
		EvidencePoints: points,
		Sources:        citedSources(bundle),
		AgentReasoning: agentReasoning(verdict),
	}
}

func (e *Explainer) buildPrompt(extractedClaim string, bundle models.VerificationBundle, verdict models.Verdict) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CLAIM TO VERIFY: %s\n\n", extractedClaim)
	fmt.Fprintf(&b, "VERDICT: %s\nCONFIDENCE: %g\n\n", verdict.Verdict, verdict.Confidence)
	fmt.Fprintf(&b, "AI ANALYSIS:\n%s\n\nKEY FINDINGS:\n", valueOrNA(bundle.AIAnalysis.Analysis))
	for _, finding := range bundle.AIAnalysis.KeyFindings {
		fmt.Fprintf(&b, "- %s\n", finding)
	}

	b.WriteString("\nVERIFICATION SOURCES:\n")
	if len(bundle.FactCheck.Entries) > 0 {
		b.WriteString("\nFact Check Results:\n")
		for i, entry := range bundle.FactCheck.Entries {
			if i >= maxCitedPerSource {
				break
			}
			fmt.Fprintf(&b, "%d. %s - Rating: %s\n   Publisher: %s\n",
				i+1, valueOrNA(entry.ReviewTitle), valueOrNA(entry.Rating), valueOrNA(entry.Publisher))
		}
	}
	if len(bundle.Search.Results) > 0 {
		b.WriteString("\nWeb Search Results:\n")
		for i, result := range bundle.Search.Results {
			if i >= maxCitedPerSource {
				break
			}
			fmt.Fprintf(&b, "%d. %s\n   %s\n", i+1, valueOrNA(result.Title), valueOrNA(result.Snippet))
		}
	}

	var task string
	switch verdict.Verdict {
	case models.VerdictFalse:
		task = `Task: Generate a comprehensive explanation for why this claim is FALSE.

Provide a JSON response with:
1. "real_news_summary": A short (2-3 sentences) explanation of what the ACTUAL truth is
2. "detailed_explanation": A detailed explanation (3-4 sentences) of why the claim is false
3. "evidence_points": List of 2-3 key evidence points (each as {"point": "...", "source": "..."})

Be clear, factual, and helpful. Focus on educating the user.`
	case models.VerdictTrue:
		task = `Task: Generate a comprehensive explanation for why this claim is TRUE.

Provide a JSON response with:
1. "real_news_summary": A short (2-3 sentences) summary confirming the claim and providing context
2. "detailed_explanation": A detailed explanation (3-4 sentences) with additional context
3. "evidence_points": List of 2-3 key evidence points (each as {"point": "...", "source": "..."})

Be clear, factual, and provide helpful context.`
	case models.VerdictMisleading:
		task = `Task: Generate a comprehensive explanation for why this claim is MISLEADING.

Provide a JSON response with:
1. "real_news_summary": A short (2-3 sentences) explanation of what is true and what is exaggerated/false
2. "detailed_explanation": A detailed explanation (3-4 sentences) breaking down the misleading aspects
3. "evidence_points": List of 2-3 key evidence points (each as {"point": "...", "source": "..."})

Be clear about what's true vs. misleading.`
	default:
		task = `Task: Generate a response explaining that we couldn't verify this claim.

Provide a JSON response with:
1. "real_news_summary": A short explanation of why we couldn't verify this
2. "detailed_explanation": What the user should do (check credible sources, wait for more information)
3. "evidence_points": List of 1-2 suggestions (each as {"point": "...", "source": "..."})

Be helpful and guide the user.`
	}

	return b.String() + "\n" + task + `

IMPORTANT: Return ONLY valid JSON, no markdown formatting, no code blocks. Format:
{
  "real_news_summary": "...",
  "detailed_explanation": "...",
  "evidence_points": [
    {"point": "...", "source": "..."},
    {"point": "...", "source": "..."}
  ]
}`
}

// fallback builds a templated explanation from the verdict alone.
func (e *Explainer) fallback(bundle models.VerificationBundle, verdict models.Verdict) models.Explanation {
	return models.Explanation{
		Summary:      fmt.Sprintf("Verification completed with %s verdict.", verdict.Verdict),
		DetailedText: fmt.Sprintf("Based on available sources, the claim appears to be %s.", strings.ToLower(string(verdict.Verdict))),
		EvidencePoints: []models.EvidencePoint{
			{Point: "Multiple sources were consulted", Source: "Verification System"},
		},
		Sources:        citedSources(bundle),
		AgentReasoning: agentReasoning(verdict),
	}
}

// citedSources lists up to 3 fact-check entries followed by up to 3 search
// results; fact-check sources always come first.
func citedSources(bundle models.VerificationBundle) []models.Source {
	var sources []models.Source

	for i, entry := range bundle.FactCheck.Entries {
		if i >= maxCitedPerSource {
			break
		}
		title := entry.ReviewTitle
		if title == "" {
			title = "Fact Check"
		}
		sources = append(sources, models.Source{
			Title:     title,
			URL:       entry.URL,
			Publisher: entry.Publisher,
		})
	}

	for i, result := range bundle.Search.Results {
		if i >= maxCitedPerSource {
			break
		}
		title := result.Title
		if title == "" {
			title = "Search Result"
		}
		publisher := result.DisplayDomain
		if publisher == "" {
			publisher = "Unknown"
		}
		sources = append(sources, models.Source{
			Title:     title,
			URL:       result.URL,
			Publisher: publisher,
		})
	}

	return sources
}

func agentReasoning(verdict models.Verdict) string {
	if len(verdict.Reasoning) == 0 {
		return "AI-powered verification with multiple sources"
	}
	return strings.Join(verdict.Reasoning, " | ")
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
