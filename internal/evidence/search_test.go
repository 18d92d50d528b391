package evidence

import (
	"context"
	"errors"
	"testing"

	"github.com/factcheckit/factcheckit/internal/models"
)

type fakeClient struct {
	name      string
	available bool
	results   []models.SearchResult
	err       error
	calls     int
}

func (c *fakeClient) Search(_ context.Context, _ string, _ int) ([]models.SearchResult, error) {
	c.calls++
	return c.results, c.err
}

func (c *fakeClient) Name() string    { return c.name }
func (c *fakeClient) Available() bool { return c.available }

func TestSearcherQuerySuffix(t *testing.T) {
	primary := &fakeClient{name: "primary", available: true, results: []models.SearchResult{{URL: "https://a"}}}
	searcher := NewSearcher(primary)

	result := searcher.Lookup(context.Background(), "the moon is made of cheese")
	if result.Query != "the moon is made of cheese fact check" {
		t.Errorf("query = %q", result.Query)
	}
}

func TestSearcherFallsThroughOnFailure(t *testing.T) {
	broken := &fakeClient{name: "broken", available: true, err: errors.New("rate limited")}
	fallback := &fakeClient{name: "fallback", available: true, results: []models.SearchResult{{URL: "https://b"}}}
	searcher := NewSearcher(broken, fallback)

	result := searcher.Lookup(context.Background(), "claim")

	if result.Err != "" {
		t.Errorf("error = %q, want none after fallback succeeds", result.Err)
	}
	if len(result.Results) != 1 || result.Results[0].URL != "https://b" {
		t.Errorf("results = %+v", result.Results)
	}
	if broken.calls != 1 || fallback.calls != 1 {
		t.Errorf("calls = %d/%d, want both clients tried", broken.calls, fallback.calls)
	}
}

func TestSearcherFallsThroughOnEmptyResults(t *testing.T) {
	empty := &fakeClient{name: "empty", available: true}
	fallback := &fakeClient{name: "fallback", available: true, results: []models.SearchResult{{URL: "https://c"}}}
	searcher := NewSearcher(empty, fallback)

	result := searcher.Lookup(context.Background(), "claim")
	if len(result.Results) != 1 {
		t.Errorf("results = %+v", result.Results)
	}
}

func TestSearcherSkipsUnavailableClients(t *testing.T) {
	unavailable := &fakeClient{name: "unconfigured", available: false}
	searcher := NewSearcher(unavailable)

	if searcher.HasClients() {
		t.Error("unavailable client should be filtered out")
	}

	result := searcher.Lookup(context.Background(), "claim")
	if result.Err != "no search sources configured" {
		t.Errorf("error = %q", result.Err)
	}
	if unavailable.calls != 0 {
		t.Error("unavailable client should never be called")
	}
}

func TestSearcherReportsLastError(t *testing.T) {
	first := &fakeClient{name: "first", available: true, err: errors.New("boom one")}
	second := &fakeClient{name: "second", available: true, err: errors.New("boom two")}
	searcher := NewSearcher(first, second)

	result := searcher.Lookup(context.Background(), "claim")

	if len(result.Results) != 0 {
		t.Errorf("results = %+v", result.Results)
	}
	if result.Err != "boom two" {
		t.Errorf("error = %q, want last failure", result.Err)
	}
}
