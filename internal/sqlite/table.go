package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

const insertEventTypeSQL = `
	INSERT INTO event_types (id, slug, title, length_in_minutes, hidden, payload, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

const upsertEventTypeSQL = insertEventTypeSQL + `
	ON CONFLICT(id) DO UPDATE SET
		slug = excluded.slug,
		title = excluded.title,
		length_in_minutes = excluded.length_in_minutes,
		hidden = excluded.hidden,
		payload = excluded.payload,
		updated_at = excluded.updated_at`

// Filter keys accepted by Fetch.
const (
	FilterSlug   = "slug"
	FilterTitle  = "title"
	FilterHidden = "hidden"
	FilterLimit  = "limit"
)

// table implements types.Table for event types.
type table struct {
	name    string
	backend *Backend
}

func newTable(b *Backend, name string) *table {
	return &table{name: name, backend: b}
}

// newUUID generates a UUID v7 string.
func newUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func eventTypeArgs(e *types.EventType, payload json.RawMessage) []any {
	return []any{
		e.ID, e.Slug, e.Title, e.LengthInMinutes, e.Hidden, string(payload),
		formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	}
}

// Get retrieves an event type by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Get(id string) (any, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	var payload string
	err := t.backend.db.QueryRow("SELECT payload FROM event_types WHERE id = ?", id).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, types.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading event type %s: %w", id, err)
	}
	return hydrateEventType([]byte(payload))
}

// Set creates or updates an event type. If both id and the entity's ID are
// empty a UUID v7 is generated. The entity's ID and timestamps are updated
// in place once the row is written; on error the entity is left unchanged.
// Returns ErrDuplicateSlug if another event type owns the slug.
func (t *table) Set(id string, data any) (string, error) {
	e, ok := data.(*types.EventType)
	if !ok || e == nil {
		return "", types.ErrInvalidData
	}
	if err := e.Validate(); err != nil {
		return "", err
	}

	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return "", types.ErrStoreDetached
	}

	if id == "" {
		id = e.ID
	}
	now := time.Now().UTC()
	createdAt := e.CreatedAt
	if id == "" {
		id = newUUID()
		createdAt = now
	} else {
		var stored string
		err := t.backend.db.QueryRow("SELECT created_at FROM event_types WHERE id = ?", id).Scan(&stored)
		switch {
		case err == nil:
			if ts, perr := time.Parse(timeFormat, stored); perr == nil {
				createdAt = ts
			}
		case errors.Is(err, sql.ErrNoRows):
			if createdAt.IsZero() {
				createdAt = now
			}
		default:
			return "", fmt.Errorf("reading event type %s: %w", id, err)
		}
	}

	var owner string
	err := t.backend.db.QueryRow("SELECT id FROM event_types WHERE slug = ? AND id != ?", e.Slug, id).Scan(&owner)
	if err == nil {
		return "", fmt.Errorf("%w: %s", types.ErrDuplicateSlug, e.Slug)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("checking slug %s: %w", e.Slug, err)
	}

	rec := *e
	rec.ID = id
	rec.CreatedAt = createdAt
	rec.UpdatedAt = now
	payload, err := dehydrateEventType(&rec)
	if err != nil {
		return "", err
	}
	if _, err := t.backend.db.Exec(upsertEventTypeSQL, eventTypeArgs(&rec, payload)...); err != nil {
		return "", fmt.Errorf("upserting event type: %w", err)
	}
	e.ID, e.CreatedAt, e.UpdatedAt = rec.ID, rec.CreatedAt, rec.UpdatedAt

	if err := t.backend.persist(t.name); err != nil {
		return "", err
	}
	return id, nil
}

// Delete removes an event type by ID.
// Returns ErrInvalidID if id is empty, ErrNotFound if not found.
func (t *table) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}
	t.backend.mu.Lock()
	defer t.backend.mu.Unlock()
	if !t.backend.attached {
		return types.ErrStoreDetached
	}

	res, err := t.backend.db.Exec("DELETE FROM event_types WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting event type %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting event type %s: %w", id, err)
	}
	if n == 0 {
		return types.ErrNotFound
	}
	return t.backend.persist(t.name)
}

// Fetch returns event types matching the filter, oldest first. Supported keys
// are slug and title (string), hidden (bool) and limit (int). Unknown keys or
// wrongly typed values return ErrInvalidFilter.
func (t *table) Fetch(filter map[string]any) ([]any, error) {
	query, args, err := buildFetchQuery(filter)
	if err != nil {
		return nil, err
	}

	t.backend.mu.RLock()
	defer t.backend.mu.RUnlock()
	if !t.backend.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := t.backend.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching event types: %w", err)
	}
	defer rows.Close()

	results := []any{}
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scanning event type: %w", err)
		}
		e, err := hydrateEventType([]byte(payload))
		if err != nil {
			return nil, err
		}
		results = append(results, e)
	}
	return results, rows.Err()
}

func buildFetchQuery(filter map[string]any) (string, []any, error) {
	query := "SELECT payload FROM event_types"
	var conditions []string
	var args []any
	limit := 0

	for key, val := range filter {
		switch key {
		case FilterSlug, FilterTitle:
			s, ok := val.(string)
			if !ok {
				return "", nil, fmt.Errorf("%w: %s must be a string", types.ErrInvalidFilter, key)
			}
			conditions = append(conditions, key+" = ?")
			args = append(args, s)
		case FilterHidden:
			h, ok := val.(bool)
			if !ok {
				return "", nil, fmt.Errorf("%w: %s must be a bool", types.ErrInvalidFilter, key)
			}
			conditions = append(conditions, "hidden = ?")
			args = append(args, h)
		case FilterLimit:
			l, ok := toInt(val)
			if !ok || l < 0 {
				return "", nil, fmt.Errorf("%w: %s must be a non-negative integer", types.ErrInvalidFilter, key)
			}
			limit = l
		default:
			return "", nil, fmt.Errorf("%w: unknown key %q", types.ErrInvalidFilter, key)
		}
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at, slug"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return query, args, nil
}

// toInt converts filter values decoded from JSON or typed by callers.
func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != float64(int(n)) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}
