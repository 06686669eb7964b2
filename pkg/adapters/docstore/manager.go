// Package docstore persists note collections in a SQLite-backed document
// table, one logical collection per category.
//
// Notes are stored as JSON payloads keyed by id; the relational surface is
// only id, category and creation timestamp, which is what listing and
// upsert-by-id need.
package docstore

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/aretw0/pxnote/pkg/core"
)

const schema = `
CREATE TABLE IF NOT EXISTS notes (
	id         TEXT NOT NULL,
	category   TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TEXT NOT NULL,
	PRIMARY KEY (id, category)
);
CREATE INDEX IF NOT EXISTS idx_notes_category_created_at
	ON notes(category, created_at DESC);
`

// Manager owns the database handle: explicitly constructed, lazily
// initialized, idempotent. There is no package-level client; acquisition is
// always scoped through a Manager instance.
type Manager struct {
	dsn    string
	logger *slog.Logger

	once sync.Once

	mu  sync.Mutex
	db  *sql.DB
	err error
}

// NewManager validates the DSN and returns an unopened manager. The
// connection is established on first use.
//
// Configuration failures never echo the DSN: it may embed credentials when
// pointing at a remote-capable backend.
func NewManager(dsn string, logger *slog.Logger) (*Manager, error) {
	if dsn == "" {
		return nil, fmt.Errorf("docstore: %w: database DSN is required (set PXNOTE_DB)", core.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{dsn: dsn, logger: logger}, nil
}

// DB returns the shared handle, opening it and bootstrapping the schema on
// first call. Safe for concurrent use; every call after the first returns
// the same handle (or the same initialization error).
func (m *Manager) DB(ctx context.Context) (*sql.DB, error) {
	m.once.Do(func() {
		db, err := m.open(ctx)
		m.mu.Lock()
		m.db, m.err = db, err
		m.mu.Unlock()
	})
	return m.handle()
}

func (m *Manager) open(ctx context.Context) (*sql.DB, error) {
	db, err := sql.Open("sqlite", m.dsn)
	if err != nil {
		return nil, fmt.Errorf("docstore: failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("docstore: failed to connect: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("docstore: failed to bootstrap schema: %w", err)
	}
	m.logger.Debug("document store ready")
	return db, nil
}

// handle reads the shared state under the lock. DB, Close and State all
// go through it; health probes may run concurrently with the first open.
func (m *Manager) handle() (*sql.DB, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.db, m.err
}

// Close releases the handle. A never-opened manager closes cleanly.
func (m *Manager) Close() error {
	db, _ := m.handle()
	if db == nil {
		return nil
	}
	return db.Close()
}

// Collection returns the document collection for a category.
func (m *Manager) Collection(category core.Category) *Collection {
	return &Collection{manager: m, category: category}
}
