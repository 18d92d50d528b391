// Package models defines the core data structures used throughout the application.
package models

import (
	"time"
)

// VerdictType is the categorical conclusion for a verified claim.
type VerdictType string

const (
	VerdictTrue       VerdictType = "TRUE"
	VerdictFalse      VerdictType = "FALSE"
	VerdictMisleading VerdictType = "MISLEADING"
	VerdictUnverified VerdictType = "UNVERIFIED"
)

// ParseVerdictType maps a raw string to a VerdictType, defaulting to UNVERIFIED.
func ParseVerdictType(s string) VerdictType {
	switch s {
	case "TRUE":
		return VerdictTrue
	case "FALSE":
		return VerdictFalse
	case "MISLEADING":
		return VerdictMisleading
	default:
		return VerdictUnverified
	}
}

// FactCheckEntry is one published fact-check article returned by the registry.
type FactCheckEntry struct {
	ClaimText   string `json:"claim_text"`
	Claimant    string `json:"claimant"`
	ReviewTitle string `json:"review_title"`
	Rating      string `json:"rating"`
	Publisher   string `json:"publisher"`
	URL         string `json:"url"`
	ReviewDate  string `json:"review_date"`
}

// FactCheckResult is the always-success shape of a fact-check lookup.
// On failure Entries is empty and Err carries the cause.
type FactCheckResult struct {
	Entries []FactCheckEntry `json:"entries"`
	Err     string           `json:"error,omitempty"`
}

// SearchResult is one normalized web-search hit.
type SearchResult struct {
	Title         string `json:"title"`
	Snippet       string `json:"snippet"`
	URL           string `json:"url"`
	DisplayDomain string `json:"display_domain"`
}

// SearchLookupResult is the always-success shape of a web-search lookup.
type SearchLookupResult struct {
	Results []SearchResult `json:"results"`
	Query   string         `json:"query,omitempty"`
	Err     string         `json:"error,omitempty"`
}

// AIAnalysis is the structured output of the AI evidence analyzer.
// FallbackMode is true iff no search evidence was supplied, in which case
// SourcesAnalyzed is 0.
type AIAnalysis struct {
	VerdictSuggestion VerdictType `json:"verdict_suggestion"`
	Confidence        float64     `json:"confidence"`
	Reasoning         []string    `json:"reasoning"`
	KeyFindings       []string    `json:"key_findings"`
	Analysis          string      `json:"analysis"`
	SourcesAnalyzed   int         `json:"sources_analyzed"`
	FallbackMode      bool        `json:"fallback_mode"`
	Caveat            string      `json:"caveat,omitempty"`
}

// VerificationSummary holds the per-request evidence counts.
type VerificationSummary struct {
	FactCheckFound bool    `json:"fact_check_found"`
	SearchCount    int     `json:"search_count"`
	AIConfidence   float64 `json:"ai_confidence"`
	TotalSources   int     `json:"total_sources"`
}

// VerificationBundle aggregates every evidence signal gathered for one claim.
// Built once per request and immutable thereafter.
type VerificationBundle struct {
	ExtractedClaim string              `json:"extracted_claim"`
	FactCheck      FactCheckResult     `json:"fact_check"`
	Search         SearchLookupResult  `json:"search"`
	AIAnalysis     AIAnalysis          `json:"ai_analysis"`
	Summary        VerificationSummary `json:"summary"`
}

// Verdict is the adjudicator's final decision.
type Verdict struct {
	Verdict      VerdictType `json:"verdict"`
	Confidence   float64     `json:"confidence_score"`
	Reasoning    []string    `json:"reasoning"`
	TotalSources int         `json:"total_sources"`
}

// EvidencePoint is one user-facing evidence bullet with an optional source label.
type EvidencePoint struct {
	Point  string `json:"point"`
	Source string `json:"source,omitempty"`
}

// Source is a cited source in the final explanation.
type Source struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Publisher string `json:"publisher,omitempty"`
}

// Explanation is the final user-facing payload built from verdict and bundle.
type Explanation struct {
	Summary        string          `json:"summary"`
	DetailedText   string          `json:"detailed_explanation"`
	EvidencePoints []EvidencePoint `json:"evidence_points"`
	Sources        []Source        `json:"sources"`
	AgentReasoning string          `json:"agent_reasoning"`
}

// VerifyRequest is the request body for the verify endpoint.
type VerifyRequest struct {
	Claim string `json:"claim"`
}

// VerifyResponse is the complete API response for a verification request.
type VerifyResponse struct {
	OriginalClaim   string          `json:"original_claim"`
	ExtractedClaim  string          `json:"extracted_claim"`
	Verdict         VerdictType     `json:"verdict"`
	ConfidenceScore float64         `json:"confidence_score"`
	Summary         string          `json:"summary"`
	DetailedText    string          `json:"detailed_explanation"`
	EvidencePoints  []EvidencePoint `json:"evidence_points"`
	Sources         []Source        `json:"sources"`
	AgentReasoning  string          `json:"agent_reasoning"`
}

// APIKey represents an API key for authentication.
type APIKey struct {
	ID                string     `json:"id"`
	KeyHash           string     `json:"-"` // Never expose
	Name              string     `json:"name"`
	RequestsPerMinute int        `json:"requests_per_minute"`
	CreatedAt         time.Time  `json:"created_at"`
	LastUsedAt        *time.Time `json:"last_used_at,omitempty"`
}

// AuditLog represents an API request audit entry.
type AuditLog struct {
	ID           string    `json:"id"`
	APIKeyID     string    `json:"api_key_id"`
	Endpoint     string    `json:"endpoint"`
	Method       string    `json:"method"`
	RequestSize  int64     `json:"request_size"`
	ResponseCode int       `json:"response_code"`
	DurationMs   int64     `json:"duration_ms"`
	Timestamp    time.Time `json:"timestamp"`
}
