package sqlite

import (
	"database/sql"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
)

// loadStats counts the outcome of loading one JSONL file.
type loadStats struct {
	loaded  int
	skipped int
}

// loadAllJSONL reads every JSONL file from dataDir into SQLite inside one
// transaction: either all files load or the database stays empty. Malformed
// lines, records that fail validation and records that violate a constraint
// are skipped. Unknown JSON attributes are kept in the payload.
func loadAllJSONL(db *sql.DB, dataDir string, logger *zap.Logger) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	path := filepath.Join(dataDir, eventTypesJSONL)
	stats, err := loadEventTypes(tx, path)
	if err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}

	logger.Debug("loaded jsonl",
		zap.String("file", eventTypesJSONL),
		zap.Int("loaded", stats.loaded),
		zap.Int("skipped", stats.skipped))
	if stats.skipped > 0 {
		logger.Warn("skipped unreadable event type records",
			zap.String("file", path),
			zap.Int("skipped", stats.skipped))
	}
	return nil
}

func loadEventTypes(tx *sql.Tx, path string) (loadStats, error) {
	records, malformed, err := readJSONL(path)
	if err != nil {
		return loadStats{}, err
	}
	stats := loadStats{skipped: malformed}

	stmt, err := tx.Prepare(insertEventTypeSQL)
	if err != nil {
		return stats, fmt.Errorf("preparing event type insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		e, err := hydrateEventType(rec)
		if err != nil || e.Validate() != nil {
			stats.skipped++
			continue
		}
		if e.ID == "" {
			e.ID = newUUID()
		}
		payload, err := dehydrateEventType(e)
		if err != nil {
			stats.skipped++
			continue
		}
		if _, err := stmt.Exec(eventTypeArgs(e, payload)...); err != nil {
			// Duplicate id or slug: first record wins.
			stats.skipped++
			continue
		}
		stats.loaded++
	}
	return stats, nil
}
