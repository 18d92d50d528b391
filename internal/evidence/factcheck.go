// Package evidence provides the fact-check registry and web-search gatherers.
//
// Every gatherer collapses its failures to an empty-result record annotated
// with an error string; no error ever crosses a gatherer's boundary.
package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

const maxFactCheckEntries = 5

// FactCheckClient queries the Google Fact Check Tools claim registry.
type FactCheckClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewFactCheckClient creates a new fact-check registry client.
func NewFactCheckClient(apiKey string) *FactCheckClient {
	return &FactCheckClient{
		apiKey:     apiKey,
		baseURL:    "https://factchecktools.googleapis.com/v1alpha1/claims:search",
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the source name.
func (c *FactCheckClient) Name() string {
	return "Google Fact Check"
}

// Available returns whether this client is properly configured.
func (c *FactCheckClient) Available() bool {
	return c.apiKey != ""
}

type factCheckResponse struct {
	Claims []struct {
		Text        string `json:"text"`
		Claimant    string `json:"claimant"`
		ClaimReview []struct {
			Title         string `json:"title"`
			TextualRating string `json:"textualRating"`
			URL           string `json:"url"`
			ReviewDate    string `json:"reviewDate"`
			Publisher     struct {
				Name string `json:"name"`
			} `json:"publisher"`
		} `json:"claimReview"`
	} `json:"claims"`
}

// Lookup searches the registry for published fact checks of the claim.
// On any failure the result carries an empty entry list and the error string.
func (c *FactCheckClient) Lookup(ctx context.Context, claim string) models.FactCheckResult {
	if !c.Available() {
		return models.FactCheckResult{Err: "no fact-check API key configured"}
	}

	entries, err := c.search(ctx, claim)
	if err != nil {
		log.Warn().Err(err).Msg("Fact-check lookup failed")
		return models.FactCheckResult{Err: err.Error()}
	}

	return models.FactCheckResult{Entries: entries}
}

func (c *FactCheckClient) search(ctx context.Context, claim string) ([]models.FactCheckEntry, error) {
	params := url.Values{}
	params.Set("query", claim)
	params.Set("key", c.apiKey)
	params.Set("languageCode", "en")

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fact-check API status %d", resp.StatusCode)
	}

	var data factCheckResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode fact-check response: %w", err)
	}

	var entries []models.FactCheckEntry
	for _, cl := range data.Claims {
		if len(entries) >= maxFactCheckEntries {
			break
		}

		// Only the first review of each claim is kept
		entry := models.FactCheckEntry{
			ClaimText: cl.Text,
			Claimant:  cl.Claimant,
			Publisher: "Unknown",
		}
		if cl.Claimant == "" {
			entry.Claimant = "Unknown"
		}
		if len(cl.ClaimReview) > 0 {
			review := cl.ClaimReview[0]
			entry.ReviewTitle = review.Title
			entry.Rating = review.TextualRating
			entry.URL = review.URL
			entry.ReviewDate = review.ReviewDate
			if review.Publisher.Name != "" {
				entry.Publisher = review.Publisher.Name
			}
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
