package verify

import (
	"context"
	"sync"

	"github.com/factcheckit/factcheckit/internal/evidence"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/factcheckit/factcheckit/internal/textutil"
)

// Gatherer runs the evidence lookups concurrently and feeds the results to
// the AI analyzer, assembling one VerificationBundle per claim.
type Gatherer struct {
	factCheck *evidence.FactCheckClient
	searcher  *evidence.Searcher
	analyzer  *Analyzer
}

// NewGatherer creates a new evidence gatherer.
func NewGatherer(factCheck *evidence.FactCheckClient, searcher *evidence.Searcher, analyzer *Analyzer) *Gatherer {
	return &Gatherer{
		factCheck: factCheck,
		searcher:  searcher,
		analyzer:  analyzer,
	}
}

// Gather collects evidence for the extracted claim. The two lookups run
// concurrently with no defined relative ordering; either branch failing
// degrades that one signal only. A bundle is always produced.
func (g *Gatherer) Gather(ctx context.Context, extractedClaim string) models.VerificationBundle {
	cleaned := textutil.Clean(extractedClaim)
	if cleaned == "" {
		cleaned = extractedClaim
	}

	var (
		wg         sync.WaitGroup
		factResult models.FactCheckResult
		searchRes  models.SearchLookupResult
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		factResult = g.factCheck.Lookup(ctx, cleaned)
	}()
	go func() {
		defer wg.Done()
		searchRes = g.searcher.Lookup(ctx, cleaned)
	}()
	wg.Wait()

	analysis := g.analyzer.Analyze(ctx, cleaned, searchRes.Results)

	return models.VerificationBundle{
		ExtractedClaim: cleaned,
		FactCheck:      factResult,
		Search:         searchRes,
		AIAnalysis:     analysis,
		Summary: models.VerificationSummary{
			FactCheckFound: len(factResult.Entries) > 0,
			SearchCount:    len(searchRes.Results),
			AIConfidence:   analysis.Confidence,
			TotalSources:   len(factResult.Entries) + len(searchRes.Results),
		},
	}
}
