package verify

import (
	"context"
	"time"

	"github.com/factcheckit/factcheckit/internal/config"
	"github.com/factcheckit/factcheckit/internal/evidence"
	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

// Engine drives the four-stage verification pipeline:
// extract -> gather -> adjudicate -> explain.
type Engine struct {
	extractor *Extractor
	gatherer  *Gatherer
	explainer *Explainer
}

// NewEngine creates a verification engine from configuration.
func NewEngine(cfg *config.Config, provider llm.Provider) *Engine {
	var searchClients []evidence.SearchClient
	if cfg.Search.Google {
		searchClients = append(searchClients, evidence.NewGoogleSearchClient(cfg.Google.SearchAPIKey, cfg.Google.SearchEngineID))
	}
	if cfg.Search.DuckDuckGo {
		searchClients = append(searchClients, evidence.NewDuckDuckGoClient())
	}

	searcher := evidence.NewSearcher(searchClients...)
	if !searcher.HasClients() {
		log.Warn().Msg("No search sources configured - AI analysis will run in knowledge-only mode")
	}

	factCheck := evidence.NewFactCheckClient(cfg.Google.FactCheckAPIKey)
	if !factCheck.Available() {
		log.Warn().Msg("No fact-check API key configured - registry lookups disabled")
	}

	return &Engine{
		extractor: NewExtractor(provider),
		gatherer:  NewGatherer(factCheck, searcher, NewAnalyzer(provider)),
		explainer: NewExplainer(provider),
	}
}

// NewEngineWithStages wires an engine from pre-built stages. Used by tests
// and callers that need custom gatherers.
func NewEngineWithStages(extractor *Extractor, gatherer *Gatherer, explainer *Explainer) *Engine {
	return &Engine{extractor: extractor, gatherer: gatherer, explainer: explainer}
}

// Verify runs a raw claim through the complete pipeline and returns the
// user-facing response.
func (e *Engine) Verify(ctx context.Context, rawClaim string) *models.VerifyResponse {
	startTime := time.Now()

	log.Info().Msg("Step 1: Extracting claim")
	extracted := e.extractor.Extract(ctx, rawClaim)
	log.Info().Str("claim", extracted).Msg("Claim extracted")

	log.Info().Msg("Step 2: Gathering evidence")
	bundle := e.gatherer.Gather(ctx, extracted)
	log.Info().
		Bool("fact_check_found", bundle.Summary.FactCheckFound).
		Int("search_count", bundle.Summary.SearchCount).
		Bool("fallback_mode", bundle.AIAnalysis.FallbackMode).
		Msg("Evidence gathered")

	log.Info().Msg("Step 3: Adjudicating verdict")
	verdict := Adjudicate(bundle)
	log.Info().
		Str("verdict", string(verdict.Verdict)).
		Float64("confidence", verdict.Confidence).
		Msg("Verdict determined")

	log.Info().Msg("Step 4: Generating explanation")
	explanation := e.explainer.Explain(ctx, rawClaim, extracted, bundle, verdict)

	log.Info().
		Str("verdict", string(verdict.Verdict)).
		Int("sources", verdict.TotalSources).
		Dur("duration", time.Since(startTime)).
		Msg("Verification complete")

	return &models.VerifyResponse{
		OriginalClaim:   rawClaim,
		ExtractedClaim:  extracted,
		Verdict:         verdict.Verdict,
		ConfidenceScore: verdict.Confidence,
		Summary:         explanation.Summary,
		DetailedText:    explanation.DetailedText,
		EvidencePoints:  explanation.EvidencePoints,
		Sources:         explanation.Sources,
		AgentReasoning:  explanation.AgentReasoning,
	}
}
