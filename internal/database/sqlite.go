// Package database provides SQLite implementation of the Store interface.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/factcheckit/factcheckit/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Migrate runs database migrations.
func (s *SQLiteStore) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS api_keys (
			id TEXT PRIMARY KEY,
			key_hash TEXT UNIQUE NOT NULL,
			name TEXT NOT NULL,
			requests_per_minute INTEGER NOT NULL,
			created_at DATETIME NOT NULL,
			last_used_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_api_keys_hash ON api_keys(key_hash)`,
		`CREATE TABLE IF NOT EXISTS audit_logs (
			id TEXT PRIMARY KEY,
			api_key_id TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			method TEXT NOT NULL,
			request_size INTEGER NOT NULL,
			response_code INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			timestamp DATETIME NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_audit_timestamp ON audit_logs(timestamp)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateAPIKey stores a new API key.
func (s *SQLiteStore) CreateAPIKey(ctx context.Context, key *models.APIKey) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO api_keys (id, key_hash, name, requests_per_minute, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		key.ID, key.KeyHash, key.Name, key.RequestsPerMinute, key.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}
	return nil
}

// GetAPIKeyByHash looks up an API key by its hash.
func (s *SQLiteStore) GetAPIKeyByHash(ctx context.Context, hash string) (*models.APIKey, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, key_hash, name, requests_per_minute, created_at, last_used_at
		FROM api_keys WHERE key_hash = ?`, hash)

	var key models.APIKey
	var lastUsed sql.NullTime
	err := row.Scan(&key.ID, &key.KeyHash, &key.Name, &key.RequestsPerMinute, &key.CreatedAt, &lastUsed)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get API key: %w", err)
	}
	if lastUsed.Valid {
		key.LastUsedAt = &lastUsed.Time
	}
	return &key, nil
}

// UpdateAPIKeyLastUsed records the last use timestamp of a key.
func (s *SQLiteStore) UpdateAPIKeyLastUsed(ctx context.Context, id string, t time.Time) error {
	_, err := s.db.ExecContext(ctx, `UPDATE api_keys SET last_used_at = ? WHERE id = ?`, t, id)
	if err != nil {
		return fmt.Errorf("failed to update API key: %w", err)
	}
	return nil
}

// DeleteAPIKey removes an API key.
func (s *SQLiteStore) DeleteAPIKey(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM api_keys WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete API key: %w", err)
	}
	return nil
}

// ListAPIKeys returns all API keys.
func (s *SQLiteStore) ListAPIKeys(ctx context.Context) ([]*models.APIKey, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, key_hash, name, requests_per_minute, created_at, last_used_at
		FROM api_keys ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list API keys: %w", err)
	}
	defer rows.Close()

	var keys []*models.APIKey
	for rows.Next() {
		var key models.APIKey
		var lastUsed sql.NullTime
		if err := rows.Scan(&key.ID, &key.KeyHash, &key.Name, &key.RequestsPerMinute, &key.CreatedAt, &lastUsed); err != nil {
			return nil, fmt.Errorf("failed to scan API key: %w", err)
		}
		if lastUsed.Valid {
			key.LastUsedAt = &lastUsed.Time
		}
		keys = append(keys, &key)
	}
	return keys, rows.Err()
}

// LogRequest stores an audit log entry.
func (s *SQLiteStore) LogRequest(ctx context.Context, entry *models.AuditLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (id, api_key_id, endpoint, method, request_size, response_code, duration_ms, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.APIKeyID, entry.Endpoint, entry.Method, entry.RequestSize,
		entry.ResponseCode, entry.DurationMs, entry.Timestamp)
	if err != nil {
		return fmt.Errorf("failed to log request: %w", err)
	}
	return nil
}

// GetAuditLogs returns paginated audit log entries, newest first.
func (s *SQLiteStore) GetAuditLogs(ctx context.Context, limit, offset int) ([]*models.AuditLog, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, api_key_id, endpoint, method, request_size, response_code, duration_ms, timestamp
		FROM audit_logs ORDER BY timestamp DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to get audit logs: %w", err)
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var entry models.AuditLog
		if err := rows.Scan(&entry.ID, &entry.APIKeyID, &entry.Endpoint, &entry.Method,
			&entry.RequestSize, &entry.ResponseCode, &entry.DurationMs, &entry.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan audit log: %w", err)
		}
		logs = append(logs, &entry)
	}
	return logs, rows.Err()
}
