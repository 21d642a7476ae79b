// Package turso persists experiment records in a libSQL database and
// answers the report queries over them.
package turso

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/go-libsql"

	"github.com/emiliopalmerini/promptlab/internal/config"
)

// NewDB opens a libSQL connection. The URL may be a local file database
// or a remote Turso URL with an auth token.
func NewDB(cfg config.Database) (*sql.DB, error) {
	connStr := cfg.URL
	if cfg.AuthToken != "" {
		connStr += "?authToken=" + cfg.AuthToken
	}

	db, err := sql.Open("libsql", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Minimal idle connections: Turso aggressively closes idle streams,
	// causing "stream not found" errors on stale connections.
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(0)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
