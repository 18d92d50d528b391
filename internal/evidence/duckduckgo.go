package evidence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// DuckDuckGoClient is a keyless fallback search source. It combines the
// Instant Answer API with the HTML results page.
type DuckDuckGoClient struct {
	httpClient *http.Client
}

// NewDuckDuckGoClient creates a new DuckDuckGo client.
func NewDuckDuckGoClient() *DuckDuckGoClient {
	return &DuckDuckGoClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Name returns the source name.
func (c *DuckDuckGoClient) Name() string {
	return "DuckDuckGo"
}

// Available returns true as DuckDuckGo requires no API key.
func (c *DuckDuckGoClient) Available() bool {
	return true
}

type ddgResponse struct {
	Abstract      string `json:"Abstract"`
	AbstractURL   string `json:"AbstractURL"`
	Heading       string `json:"Heading"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

// Search queries DuckDuckGo and normalizes the results.
func (c *DuckDuckGoClient) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	var results []models.SearchResult
	var lastErr error

	instant, err := c.searchInstantAnswer(ctx, query, maxResults)
	if err != nil {
		lastErr = err
		log.Debug().Err(err).Msg("DuckDuckGo instant answer failed")
	} else {
		results = append(results, instant...)
	}

	if len(results) < maxResults {
		htmlResults, err := c.searchHTML(ctx, query, maxResults)
		if err != nil {
			lastErr = err
			log.Debug().Err(err).Msg("DuckDuckGo HTML search failed")
		} else {
			results = append(results, htmlResults...)
		}
	}

	// Deduplicate by URL
	seen := make(map[string]bool)
	var unique []models.SearchResult
	for _, r := range results {
		if r.URL == "" || seen[r.URL] {
			continue
		}
		seen[r.URL] = true
		unique = append(unique, r)
		if len(unique) >= maxResults {
			break
		}
	}

	if len(unique) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return unique, nil
}

func (c *DuckDuckGoClient) searchInstantAnswer(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	u := fmt.Sprintf("https://api.duckduckgo.com/?q=%s&format=json&no_html=1&skip_disambig=1",
		url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	var data ddgResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}

	var results []models.SearchResult

	if data.Abstract != "" {
		results = append(results, models.SearchResult{
			Title:         data.Heading,
			Snippet:       data.Abstract,
			URL:           data.AbstractURL,
			DisplayDomain: displayDomain(data.AbstractURL),
		})
	}

	for _, topic := range data.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text != "" && topic.FirstURL != "" {
			results = append(results, models.SearchResult{
				Title:         topic.Text,
				Snippet:       topic.Text,
				URL:           topic.FirstURL,
				DisplayDomain: displayDomain(topic.FirstURL),
			})
		}
	}

	return results, nil
}

var (
	ddgLinkRe    = regexp.MustCompile(`<a[^>]*class="result__a"[^>]*href="([^"]*)"[^>]*>([^<]+)</a>`)
	ddgSnippetRe = regexp.MustCompile(`<a[^>]*class="result__snippet"[^>]*>([^<]+)</a>`)
)

func (c *DuckDuckGoClient) searchHTML(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	u := fmt.Sprintf("https://html.duckduckgo.com/html/?q=%s", url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 500*1024))
	if err != nil {
		return nil, err
	}

	page := string(body)
	linkMatches := ddgLinkRe.FindAllStringSubmatch(page, -1)
	snippetMatches := ddgSnippetRe.FindAllStringSubmatch(page, -1)

	var results []models.SearchResult
	for i, match := range linkMatches {
		if len(results) >= maxResults {
			break
		}
		if len(match) < 3 {
			continue
		}

		actualURL := decodeRedirectURL(match[1])
		if actualURL == "" || strings.HasPrefix(actualURL, "//duckduckgo.com") {
			continue
		}

		snippet := ""
		if i < len(snippetMatches) && len(snippetMatches[i]) >= 2 {
			snippet = strings.TrimSpace(html.UnescapeString(snippetMatches[i][1]))
		}

		results = append(results, models.SearchResult{
			Title:         strings.TrimSpace(html.UnescapeString(match[2])),
			Snippet:       snippet,
			URL:           actualURL,
			DisplayDomain: displayDomain(actualURL),
		})
	}

	return results, nil
}

// decodeRedirectURL extracts the actual URL from a DuckDuckGo redirect.
func decodeRedirectURL(rawURL string) string {
	if !strings.Contains(rawURL, "uddg=") {
		return rawURL
	}

	decoded, err := url.QueryUnescape(rawURL)
	if err != nil {
		return rawURL
	}
	idx := strings.Index(decoded, "uddg=")
	if idx < 0 {
		return rawURL
	}

	actualURL := decoded[idx+5:]
	if ampIdx := strings.Index(actualURL, "&"); ampIdx >= 0 {
		actualURL = actualURL[:ampIdx]
	}
	if decodedURL, err := url.QueryUnescape(actualURL); err == nil {
		return decodedURL
	}
	return actualURL
}

// displayDomain extracts the hostname from a URL for source attribution.
func displayDomain(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "Web"
	}
	host := parsed.Hostname()
	if host == "" {
		return "Web"
	}
	return strings.TrimPrefix(host, "www.")
}
