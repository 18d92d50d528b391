package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/factcheckit/factcheckit/internal/models"
)

// GoogleSearchClient searches using the Google Custom Search API.
type GoogleSearchClient struct {
	apiKey         string
	searchEngineID string
	baseURL        string
	httpClient     *http.Client
}

// NewGoogleSearchClient creates a new Google Custom Search client.
func NewGoogleSearchClient(apiKey, searchEngineID string) *GoogleSearchClient {
	return &GoogleSearchClient{
		apiKey:         apiKey,
		searchEngineID: searchEngineID,
		baseURL:        "https://www.googleapis.com/customsearch/v1",
		httpClient:     &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the source name.
func (c *GoogleSearchClient) Name() string {
	return "Google Search"
}

// Available returns whether this client is properly configured.
func (c *GoogleSearchClient) Available() bool {
	return c.apiKey != "" && c.searchEngineID != ""
}

type googleSearchResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Snippet     string `json:"snippet"`
		Link        string `json:"link"`
		DisplayLink string `json:"displayLink"`
	} `json:"items"`
}

// Search queries Google Custom Search and normalizes the results.
func (c *GoogleSearchClient) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.searchEngineID)
	params.Set("q", query)
	params.Set("num", strconv.Itoa(maxResults))

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
		return nil, fmt.Errorf("search API status %d", resp.StatusCode)
	}

	var data googleSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	var results []models.SearchResult
	for _, item := range data.Items {
		if len(results) >= maxResults {
			break
		}
		results = append(results, models.SearchResult{
			Title:         item.Title,
			Snippet:       item.Snippet,
			URL:           item.Link,
			DisplayDomain: item.DisplayLink,
		})
	}

	return results, nil
}
