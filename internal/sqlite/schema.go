package sqlite

// Schema DDL. The payload column holds the full event type as JSON; the other
// columns exist for lookups and ordering.
const (
	createEventTypes = `CREATE TABLE event_types (
    id TEXT PRIMARY KEY,
    slug TEXT NOT NULL UNIQUE,
    title TEXT NOT NULL,
    length_in_minutes INTEGER NOT NULL,
    hidden INTEGER NOT NULL DEFAULT 0,
    payload TEXT NOT NULL,
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

	idxEventTypesTitle   = `CREATE INDEX idx_event_types_title ON event_types(title);`
	idxEventTypesCreated = `CREATE INDEX idx_event_types_created ON event_types(created_at);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createEventTypes,
}

// indexDDL lists all CREATE INDEX statements.
var indexDDL = []string{
	idxEventTypesTitle,
	idxEventTypesCreated,
}

// JSONL file names in DataDir.
const (
	eventTypesJSONL = "event_types.jsonl"
)

// dbFile is the SQLite database rebuilt from JSONL on every Attach.
const dbFile = "bookingfields.db"
