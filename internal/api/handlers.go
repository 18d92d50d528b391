// Package api provides HTTP API handlers.
package api

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/factcheckit/factcheckit/internal/database"
	"github.com/factcheckit/factcheckit/internal/models"
	"github.com/factcheckit/factcheckit/internal/verify"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	minClaimLength = 10
	maxClaimLength = 1000

	// Upper bound for one full pipeline run; beyond this the request is
	// reported as an upstream timeout.
	verifyTimeout = 90 * time.Second
)

// Handler contains all HTTP handlers.
type Handler struct {
	engine *verify.Engine
	store  database.Store
}

// NewHandler creates a new handler.
func NewHandler(engine *verify.Engine, store database.Store) *Handler {
	return &Handler{
		engine: engine,
		store:  store,
	}
}

// HealthCheck returns the service health status.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"version":   "1.0.0",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	writeJSON(w, http.StatusOK, response)
}

// VerifyClaim handles claim verification requests.
func (h *Handler) VerifyClaim(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	length := utf8.RuneCountInString(req.Claim)
	if length < minClaimLength {
		writeError(w, http.StatusBadRequest, "Claim must be at least 10 characters")
		return
	}
	if length > maxClaimLength {
		writeError(w, http.StatusBadRequest, "Claim must be at most 1000 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), verifyTimeout)
	defer cancel()

	result := h.engine.Verify(ctx, req.Claim)

	if err := ctx.Err(); errors.Is(err, context.DeadlineExceeded) {
		log.Error().Str("claim", req.Claim).Msg("Verification timed out")
		writeError(w, http.StatusGatewayTimeout, "Verification timed out waiting for upstream services")
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// GetAuditLogs returns paginated audit logs.
func (h *Handler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	logs, err := h.store.GetAuditLogs(r.Context(), limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Failed to get audit logs")
		writeError(w, http.StatusInternalServerError, "Failed to get audit logs")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"logs":   logs,
		"limit":  limit,
		"offset": offset,
	})
}

// CreateAPIKey creates a new API key.
func (h *Handler) CreateAPIKey(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name              string `json:"name"`
		RequestsPerMinute int    `json:"requests_per_minute"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	// Generate random API key
	keyBytes := make([]byte, 32)
	if _, err := rand.Read(keyBytes); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate key")
		return
	}
	rawKey := "fck_" + base64.URLEncoding.EncodeToString(keyBytes)

	// Hash for storage
	hash := sha256.Sum256([]byte(rawKey))
	keyHash := hex.EncodeToString(hash[:])

	if req.RequestsPerMinute <= 0 {
		req.RequestsPerMinute = 60
	}

	apiKey := &models.APIKey{
		ID:                uuid.New().String(),
		KeyHash:           keyHash,
		Name:              req.Name,
		RequestsPerMinute: req.RequestsPerMinute,
		CreatedAt:         time.Now(),
	}

	if err := h.store.CreateAPIKey(r.Context(), apiKey); err != nil {
		log.Error().Err(err).Msg("Failed to create API key")
		writeError(w, http.StatusInternalServerError, "Failed to create API key")
		return
	}

	// Return the raw key only once
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"id":                  apiKey.ID,
		"key":                 rawKey, // Only returned on creation
		"name":                apiKey.Name,
		"requests_per_minute": apiKey.RequestsPerMinute,
		"created_at":          apiKey.CreatedAt,
	})
}

// ListAPIKeys lists all API keys (without the actual keys).
func (h *Handler) ListAPIKeys(w http.ResponseWriter, r *http.Request) {
	keys, err := h.store.ListAPIKeys(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list API keys")
		writeError(w, http.StatusInternalServerError, "Failed to list API keys")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"keys": keys,
	})
}

// DeleteAPIKey deletes an API key.
func (h *Handler) DeleteAPIKey(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "ID is required")
		return
	}

	if err := h.store.DeleteAPIKey(r.Context(), id); err != nil {
		log.Error().Err(err).Msg("Failed to delete API key")
		writeError(w, http.StatusInternalServerError, "Failed to delete API key")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
