// Package verify implements the claim verification pipeline.
package verify

import (
	"context"
	"fmt"
	"strings"

	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/textutil"
	"github.com/rs/zerolog/log"
)

// Extractor turns raw user input into a concise, verifiable claim.
type Extractor struct {
	provider llm.Provider
}

// NewExtractor creates a new claim extractor.
func NewExtractor(provider llm.Provider) *Extractor {
	return &Extractor{provider: provider}
}

// Extract asks the LLM to distill the core factual assertion from the raw
// input. Any failure falls back to the cleaned original input, so the
// returned claim is never empty for non-empty input.
func (e *Extractor) Extract(ctx context.Context, rawClaim string) string {
	prompt := fmt.Sprintf(`You are a claim extraction expert. Your job is to convert user input into a clear, verifiable factual claim.

User Input: "%s"

Task:
1. Extract the core factual claim from this input
2. Rewrite it as a clear, specific statement
3. Remove opinions, questions, or emotional language
4. Make it suitable for fact-checking

Rules:
- Keep it concise (1-2 sentences max)
- Make it specific and verifiable
- Remove any bias or loaded language
- If it's a question, convert it to a statement

Return ONLY the extracted claim, nothing else.`, rawClaim)

	opts := llm.DefaultCompletionOptions()
	response, err := e.provider.Complete(ctx, prompt, opts)
	if err != nil {
		log.Warn().Err(err).Msg("Claim extraction failed, falling back to raw input")
		return fallbackClaim(rawClaim)
	}

	extracted := strings.TrimSpace(response)
	extracted = strings.Trim(extracted, `"'`)
	if extracted == "" {
		return fallbackClaim(rawClaim)
	}

	return extracted
}

func fallbackClaim(rawClaim string) string {
	if cleaned := textutil.Clean(rawClaim); cleaned != "" {
		return cleaned
	}
	return strings.TrimSpace(rawClaim)
}
