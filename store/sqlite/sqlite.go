/*
Package sqlite provides the SQLite-backed persistence adapter.

PURPOSE:
  Persists the document fields (attendance map, quotas, preferences) as
  JSON rows in a single table. The semantics are deliberately those of a
  key-value store: load at startup, replace wholesale on save, last write
  wins. There is no partial-write recovery; a failed save leaves the
  previous row intact and the in-memory state stays authoritative.

SCHEMA:
  document(field TEXT PRIMARY KEY, body TEXT NOT NULL, updated_at TEXT)

WAL MODE:
  The database is opened with WAL for better crash recovery and so the
  occasional concurrent HTTP read never blocks a save.

USAGE:
  adapter, err := sqlite.New("./data/shiftledger.db")
  if err != nil { ... }
  defer adapter.Close()
  st := ledger.Open(adapter, logger)

SEE ALSO:
  - store/adapter.go: the contract
  - store/memory: in-memory implementation for tests
*/
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Adapter implements store.Adapter on SQLite.
type Adapter struct {
	db *sql.DB
	mu sync.Mutex
}

const schema = `
CREATE TABLE IF NOT EXISTS document (
	field      TEXT PRIMARY KEY,
	body       TEXT NOT NULL,
	updated_at TEXT NOT NULL
);`

// New opens (or creates) the database at path and ensures the schema.
// Use ":memory:" for an ephemeral database.
func New(path string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Adapter{db: db}, nil
}

// Load reads the field's JSON body into out.
func (a *Adapter) Load(field string, out any) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var body string
	err := a.db.QueryRow(`SELECT body FROM document WHERE field = ?`, field).Scan(&body)
	switch {
	case err == sql.ErrNoRows:
		return false, nil
	case err != nil:
		return false, fmt.Errorf("load %s: %w", field, err)
	}
	if err := json.Unmarshal([]byte(body), out); err != nil {
		return false, fmt.Errorf("decode %s: %w", field, err)
	}
	return true, nil
}

// Save upserts the field wholesale. Last write wins.
func (a *Adapter) Save(field string, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", field, err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	_, err = a.db.Exec(`
		INSERT INTO document (field, body, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(field) DO UPDATE SET body = excluded.body, updated_at = excluded.updated_at`,
		field, string(body), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save %s: %w", field, err)
	}
	return nil
}

// Close closes the database.
func (a *Adapter) Close() error {
	return a.db.Close()
}
