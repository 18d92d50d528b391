package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/factcheckit/factcheckit/internal/database"
	"github.com/factcheckit/factcheckit/internal/evidence"
	"github.com/factcheckit/factcheckit/internal/llm"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/factcheckit/factcheckit/internal/verify"
)

// fakeStore is an in-memory database.Store for handler tests. Auth and
// audit middleware write to it from background goroutines, hence the mutex.
type fakeStore struct {
	mu   sync.Mutex
	keys map[string]*models.APIKey // by hash
	logs []*models.AuditLog
}

func newFakeStore() *fakeStore {
	return &fakeStore{keys: make(map[string]*models.APIKey)}
}

func (s *fakeStore) CreateAPIKey(_ context.Context, key *models.APIKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys[key.KeyHash] = key
	return nil
}

func (s *fakeStore) GetAPIKeyByHash(_ context.Context, hash string) (*models.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.keys[hash], nil
}

func (s *fakeStore) UpdateAPIKeyLastUsed(_ context.Context, id string, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range s.keys {
		if key.ID == id {
			key.LastUsedAt = &t
		}
	}
	return nil
}

func (s *fakeStore) DeleteAPIKey(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for hash, key := range s.keys {
		if key.ID == id {
			delete(s.keys, hash)
		}
	}
	return nil
}

func (s *fakeStore) ListAPIKeys(_ context.Context) ([]*models.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.APIKey
	for _, key := range s.keys {
		out = append(out, key)
	}
	return out, nil
}

func (s *fakeStore) LogRequest(_ context.Context, log *models.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeStore) GetAuditLogs(_ context.Context, limit, offset int) ([]*models.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logs, nil
}

func (s *fakeStore) keyCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.keys)
}

func (s *fakeStore) Close() error   { return nil }
func (s *fakeStore) Migrate() error { return nil }

var _ database.Store = (*fakeStore)(nil)

// stubProvider answers each pipeline stage by recognizing its prompt.
type stubProvider struct{}

func (stubProvider) Complete(_ context.Context, prompt string, _ llm.CompletionOptions) (string, error) {
	switch {
	case strings.Contains(prompt, "claim extraction expert"):
		return "The claim under test.", nil
	case strings.Contains(prompt, "expert fact-checker"):
		return `{"verdict": "FALSE", "confidence": 0.8, "reasoning": ["debunked"]}`, nil
	default:
		return `{"real_news_summary": "Summary.", "detailed_explanation": "Details.", "evidence_points": []}`, nil
	}
}

func (p stubProvider) CompleteWithSystem(ctx context.Context, _, user string, opts llm.CompletionOptions) (string, error) {
	return p.Complete(ctx, user, opts)
}

func (stubProvider) Name() string { return "stub" }

func testEngine() *verify.Engine {
	p := stubProvider{}
	gatherer := verify.NewGatherer(
		evidence.NewFactCheckClient(""),
		evidence.NewSearcher(),
		verify.NewAnalyzer(p),
	)
	return verify.NewEngineWithStages(verify.NewExtractor(p), gatherer, verify.NewExplainer(p))
}

func TestHealthCheck(t *testing.T) {
	h := NewHandler(testEngine(), newFakeStore())

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	rec := httptest.NewRecorder()
	h.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestVerifyClaim(t *testing.T) {
	h := NewHandler(testEngine(), newFakeStore())

	body := `{"claim": "the earth is flat and NASA hides it"}`
	req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.VerifyClaim(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp models.VerifyResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if resp.OriginalClaim != "the earth is flat and NASA hides it" {
		t.Errorf("original claim = %q", resp.OriginalClaim)
	}
	if resp.Verdict != models.VerdictFalse {
		t.Errorf("verdict = %s, want FALSE", resp.Verdict)
	}
	if resp.Summary == "" {
		t.Error("summary should not be empty")
	}
}

func TestVerifyClaimValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{"claim": `},
		{"too short", `{"claim": "too short"}`},
		{"too long", `{"claim": "` + strings.Repeat("x", 1001) + `"}`},
		{"empty claim", `{}`},
	}

	h := NewHandler(testEngine(), newFakeStore())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.VerifyClaim(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestVerifyClaimCountsRunes(t *testing.T) {
	h := NewHandler(testEngine(), newFakeStore())

	// Length limits apply to runes, not bytes
	body := `{"claim": "das ist völlig falsch"}`
	req := httptest.NewRequest("POST", "/api/v1/verify", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.VerifyClaim(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200 for multi-byte claim", rec.Code)
	}
}

func TestCreateAPIKey(t *testing.T) {
	store := newFakeStore()
	h := NewHandler(testEngine(), store)

	req := httptest.NewRequest("POST", "/api/v1/admin/keys", strings.NewReader(`{"name": "ci"}`))
	rec := httptest.NewRecorder()
	h.CreateAPIKey(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	rawKey, _ := body["key"].(string)
	if !strings.HasPrefix(rawKey, "fck_") {
		t.Errorf("key = %q, want fck_ prefix", rawKey)
	}
	if body["requests_per_minute"] != float64(60) {
		t.Errorf("requests_per_minute = %v, want default 60", body["requests_per_minute"])
	}
	if store.keyCount() != 1 {
		t.Errorf("stored keys = %d, want 1", store.keyCount())
	}
	for _, key := range store.keys {
		if key.KeyHash == rawKey {
			t.Error("raw key must not be stored")
		}
	}
}

func TestCreateAPIKeyRequiresName(t *testing.T) {
	h := NewHandler(testEngine(), newFakeStore())

	req := httptest.NewRequest("POST", "/api/v1/admin/keys", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	h.CreateAPIKey(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestGetAuditLogsDefaults(t *testing.T) {
	store := newFakeStore()
	store.logs = []*models.AuditLog{{ID: "1", Endpoint: "/api/v1/verify"}}
	h := NewHandler(testEngine(), store)

	req := httptest.NewRequest("GET", "/api/v1/audit?limit=0", nil)
	rec := httptest.NewRecorder()
	h.GetAuditLogs(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body struct {
		Logs   []*models.AuditLog `json:"logs"`
		Limit  int                `json:"limit"`
		Offset int                `json:"offset"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body.Limit != 50 {
		t.Errorf("limit = %d, want default 50", body.Limit)
	}
	if len(body.Logs) != 1 {
		t.Errorf("logs = %d, want 1", len(body.Logs))
	}
}
