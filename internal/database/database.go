// Package database provides the data access layer for operational state.
//
// Verification results are deliberately not persisted; only API keys and
// request audit logs live here.
package database

import (
	"context"
	"time"

	"github.com/factcheckit/factcheckit/internal/models"
)

// Store defines the interface for data persistence.
type Store interface {
	// API Keys
	CreateAPIKey(ctx context.Context, key *models.APIKey) error
	GetAPIKeyByHash(ctx context.Context, hash string) (*models.APIKey, error)
	UpdateAPIKeyLastUsed(ctx context.Context, id string, t time.Time) error
	DeleteAPIKey(ctx context.Context, id string) error
	ListAPIKeys(ctx context.Context) ([]*models.APIKey, error)

	// Audit logs
	LogRequest(ctx context.Context, log *models.AuditLog) error
	GetAuditLogs(ctx context.Context, limit, offset int) ([]*models.AuditLog, error)

	// Lifecycle
	Close() error
	Migrate() error
}
