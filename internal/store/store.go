// Package store persists feedback reports and child curricula, and owns
// the G2P cache and drift-baseline tables. FeedbackReports, ChildCurricula,
// and child_lexicon are owned by an external schema (this package only
// reads/writes rows); child_g2p_cache and worker_drift_baseline are owned
// here, created idempotently on first Open.
package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "github.com/mattn/go-sqlite3"    // registers the "sqlite3" driver
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Store wraps a database/sql handle with driver-aware bind-variable
// rewriting so the same query text runs against Postgres (pgx) and
// SQLite (mattn/go-sqlite3).
type Store struct {
	db     *sql.DB
	driver string // "pgx" or "sqlite3"
}

// Open connects to the storage backend named by dsn. A "postgres://" or
// "postgresql://" scheme selects the pgx driver; anything else (a file
// path, or ":memory:") selects sqlite3, which backs local/dev use and
// tests against the same code path.
func Open(dsn string) (*Store, error) {
	driver := "sqlite3"
	conn := dsn
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		driver = "pgx"
	}
	if conn == "" {
		conn = ":memory:"
	}

	db, err := sql.Open(driver, conn)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", driver, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", driver, err)
	}

	s := &Store{db: db, driver: driver}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Exec runs a driver-rebound statement directly against the underlying
// database. It exists for callers that need to touch tables this package
// doesn't own (tests provisioning the externally-owned FeedbackReports /
// ChildCurricula / child_lexicon schema) rather than for core query paths.
func (s *Store) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.db.ExecContext(ctx, s.rebind(query), args...)
}

func (s *Store) migrate() error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}
	for _, e := range entries {
		data, err := migrationFS.ReadFile("migrations/" + e.Name())
		if err != nil {
			return fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		for _, stmt := range splitStatements(string(data)) {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("apply migration %s: %w", e.Name(), err)
			}
		}
	}
	return nil
}

// splitStatements splits a migration file into individual statements on
// ";" — sufficient for the simple CREATE TABLE statements this package
// ships, and avoids pulling in a SQL-aware splitter for two tables.
func splitStatements(sqlText string) []string {
	var out []string
	for _, part := range strings.Split(sqlText, ";") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// rebind rewrites "?" placeholders to "$1", "$2", ... when the driver is
// pgx; sqlite3 accepts "?" as-is.
func (s *Store) rebind(query string) string {
	if s.driver != "pgx" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
