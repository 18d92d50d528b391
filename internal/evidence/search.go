package evidence

import (
	"context"
	"fmt"

	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/rs/zerolog/log"
)

const maxSearchResults = 5

// SearchClient defines the interface for web-search providers.
type SearchClient interface {
	// Search searches for results related to the query.
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)

	// Name returns the source name.
	Name() string

	// Available returns whether this client is properly configured.
	Available() bool
}

// Searcher runs the web-search lookup against the first available client,
// falling through to the next on failure or empty results.
type Searcher struct {
	clients []SearchClient
}

// NewSearcher creates a searcher over the available clients, in order.
func NewSearcher(clients ...SearchClient) *Searcher {
	available := make([]SearchClient, 0, len(clients))
	for _, c := range clients {
		if c.Available() {
			available = append(available, c)
		}
	}
	return &Searcher{clients: available}
}

// HasClients returns whether any search clients are available.
func (s *Searcher) HasClients() bool {
	return len(s.clients) > 0
}

// Lookup searches the web for fact-checking coverage of the claim. Failures
// never propagate; the result carries empty results and an error string.
func (s *Searcher) Lookup(ctx context.Context, claim string) models.SearchLookupResult {
	query := fmt.Sprintf("%s fact check", claim)

	if len(s.clients) == 0 {
		return models.SearchLookupResult{Query: query, Err: "no search sources configured"}
	}

	var lastErr error
	for _, client := range s.clients {
		results, err := client.Search(ctx, query, maxSearchResults)
		if err != nil {
			log.Warn().Err(err).Str("source", client.Name()).Msg("Web search failed")
			lastErr = err
			continue
		}
		if len(results) > 0 {
			return models.SearchLookupResult{Results: results, Query: query}
		}
	}

	if lastErr != nil {
		return models.SearchLookupResult{Query: query, Err: lastErr.Error()}
	}
	return models.SearchLookupResult{Query: query}
}
