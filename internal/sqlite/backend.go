// Package sqlite implements the event-type store on SQLite.
//
// JSONL files in the data directory are the source of truth. On Attach the
// database is rebuilt from them; every write goes to SQLite first and is then
// persisted back to JSONL according to the configured sync strategy.
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// Backend implements types.Store using SQLite as the query engine and JSONL
// files as the source of truth.
type Backend struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	dataDir  string
	db       *sql.DB
	tables   map[string]*table
	dirty    map[string]bool
	logger   *zap.Logger
}

// Option configures a Backend.
type Option func(*Backend)

// WithLogger sets the backend logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBackend creates a new SQLite backend instance.
// The backend is not attached; call Attach with a Config to initialize.
func NewBackend(opts ...Option) *Backend {
	b := &Backend{
		tables: make(map[string]*table),
		dirty:  make(map[string]bool),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// GetTable returns the Table for the given name.
// Returns ErrStoreDetached if the backend is not attached and
// ErrTableNotFound if the name is not recognized.
func (b *Backend) GetTable(name string) (types.Table, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if !b.attached {
		return nil, types.ErrStoreDetached
	}
	t, ok := b.tables[name]
	if !ok {
		return nil, types.ErrTableNotFound
	}
	return t, nil
}

// Attach initializes the backend with the given configuration.
// Creates DataDir if it does not exist, builds a fresh SQLite schema and
// loads the JSONL files into it.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	// The database is a cache of the JSONL files and is rebuilt every time.
	dbPath := filepath.Join(dataDir, dbFile)
	_ = os.Remove(dbPath)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening %s: %w", dbPath, err)
	}
	for _, ddl := range append(append([]string{}, schemaDDL...), indexDDL...) {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	if err := initJSONLFile(filepath.Join(dataDir, eventTypesJSONL)); err != nil {
		db.Close()
		return err
	}
	if err := loadAllJSONL(db, dataDir, b.logger); err != nil {
		db.Close()
		return fmt.Errorf("load JSONL: %w", err)
	}

	b.db = db
	b.config = config
	b.dataDir = dataDir
	b.dirty = make(map[string]bool)
	b.attached = true
	for _, name := range types.StandardTableNames {
		b.tables[name] = newTable(b, name)
	}

	b.logger.Debug("store attached",
		zap.String("data_dir", dataDir),
		zap.String("sync", config.SyncStrategy()))
	return nil
}

// Detach flushes pending JSONL writes and closes the SQLite connection.
// After Detach, all operations return ErrStoreDetached.
// Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}

	for name := range b.dirty {
		if err := b.writeTableJSONL(name); err != nil {
			return fmt.Errorf("flush pending writes: %w", err)
		}
		delete(b.dirty, name)
	}

	if err := b.db.Close(); err != nil {
		return err
	}
	b.db = nil
	b.attached = false
	b.tables = make(map[string]*table)

	b.logger.Debug("store detached", zap.String("data_dir", b.dataDir))
	return nil
}

// persist writes a table back to its JSONL file, or marks it for the flush on
// Detach under the on_close strategy. The caller must hold b.mu.
func (b *Backend) persist(name string) error {
	if b.config.SyncStrategy() == types.SyncOnClose {
		b.dirty[name] = true
		return nil
	}
	return b.writeTableJSONL(name)
}

// writeTableJSONL rewrites the JSONL file of a table from SQLite.
// The caller must hold b.mu.
func (b *Backend) writeTableJSONL(name string) error {
	if name != types.EventTypesTable {
		return types.ErrTableNotFound
	}
	rows, err := b.db.Query("SELECT payload FROM event_types ORDER BY created_at, slug")
	if err != nil {
		return fmt.Errorf("reading event types for JSONL: %w", err)
	}
	defer rows.Close()

	var records []json.RawMessage
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return fmt.Errorf("scanning event type for JSONL: %w", err)
		}
		records = append(records, json.RawMessage(payload))
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return writeJSONL(filepath.Join(b.dataDir, eventTypesJSONL), records)
}
