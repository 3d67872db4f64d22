// Package sqlite implements the repository contracts on an embedded SQLite
// database via the pure-Go modernc.org/sqlite driver.
//
// The default DSN is ":memory:", which keeps the data process-local exactly
// like the simulated backend while still exercising a real SQL storage
// layer. A file path can be passed instead for a database that survives
// restarts.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps the sql.DB pool and carries the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and prepares the schema.
// Use ":memory:" for a database that lives only as long as the process.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// SQLite allows one writer at a time, and an in-memory DSN gives each
	// pooled connection its own private database. A single connection
	// sidesteps both problems at this scale.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			id   INTEGER PRIMARY KEY,
			name TEXT NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS orders (
			id      INTEGER PRIMARY KEY,
			user_id INTEGER NOT NULL,
			total   REAL NOT NULL DEFAULT 0
		)`)
	if err != nil {
		return fmt.Errorf("creating orders table: %w", err)
	}

	return nil
}

// Seed inserts the given rows if the corresponding table is empty. The
// server uses it so a fresh in-memory database starts with the same data
// set as the simulated backend.
func (db *DB) seedCount(table string) (int64, error) {
	var n int64
	// table names come from our own callers, never from input
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting %s: %w", table, err)
	}
	return n, nil
}
