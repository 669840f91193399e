package sqlite

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

// timeFormat is fixed width so created_at columns sort lexically.
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

// dehydrateEventType encodes an event type as one JSONL record. The record
// shape is the API shape, so import files and data files are interchangeable.
func dehydrateEventType(e *types.EventType) (json.RawMessage, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("encoding event type %s: %w", e.Slug, err)
	}
	return b, nil
}

// hydrateEventType decodes one JSONL record or payload column.
func hydrateEventType(raw []byte) (*types.EventType, error) {
	var e types.EventType
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("decoding event type: %w", err)
	}
	return &e, nil
}
