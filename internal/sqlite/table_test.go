package sqlite

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func sampleEventType(slug string) *types.EventType {
	return &types.EventType{
		Slug:            slug,
		Title:           "Meeting " + slug,
		LengthInMinutes: 30,
		BookingFields: []types.Field{
			{Name: "email", Label: "Work email", Required: types.Bool(true)},
			{Name: "company", Type: types.FieldTypeText, Editable: types.EditableUser},
		},
		Users: []types.User{{ID: 1, Username: "ada"}},
	}
}

func TestTable_SetGeneratesUUIDv7(t *testing.T) {
	b, _ := attachTemp(t, "")
	e := sampleEventType("intro")

	id, err := eventTypes(t, b).Set("", e)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		t.Fatalf("id %q is not a UUID: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Errorf("expected UUID v7, got v%d", parsed.Version())
	}
	if e.ID != id {
		t.Errorf("entity ID not updated: %q != %q", e.ID, id)
	}
	if e.CreatedAt.IsZero() || e.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestTable_GetRoundTrip(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)
	in := sampleEventType("intro")

	id, err := tbl.Set("", in)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	got, err := tbl.Get(id)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	e := got.(*types.EventType)
	if e.Title != in.Title || e.LengthInMinutes != 30 {
		t.Errorf("unexpected event type: %+v", e)
	}
	if len(e.BookingFields) != 2 || e.BookingFields[0].Label != "Work email" || !e.BookingFields[0].IsRequired() {
		t.Errorf("booking fields not preserved: %+v", e.BookingFields)
	}
	if !e.CreatedAt.Equal(in.CreatedAt) {
		t.Errorf("created_at %v, want %v", e.CreatedAt, in.CreatedAt)
	}
}

func TestTable_GetErrors(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	if _, err := tbl.Get(""); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
	if _, err := tbl.Get("missing"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTable_SetUpdatePreservesCreatedAt(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)
	e := sampleEventType("intro")

	id, err := tbl.Set("", e)
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	created := e.CreatedAt

	update := sampleEventType("intro")
	update.Title = "Renamed"
	if _, err := tbl.Set(id, update); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !update.CreatedAt.Equal(created) {
		t.Errorf("created_at changed on update: %v != %v", update.CreatedAt, created)
	}

	got, _ := tbl.Get(id)
	if got.(*types.EventType).Title != "Renamed" {
		t.Errorf("title not updated")
	}
	all, _ := tbl.Fetch(nil)
	if len(all) != 1 {
		t.Errorf("update created a second row: %d rows", len(all))
	}
}

func TestTable_SetValidation(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	tests := []struct {
		name string
		data any
		want error
	}{
		{"wrong type", "not an event type", types.ErrInvalidData},
		{"nil", (*types.EventType)(nil), types.ErrInvalidData},
		{"no slug", &types.EventType{Title: "x", LengthInMinutes: 15}, types.ErrInvalidSlug},
		{"no title", &types.EventType{Slug: "x", LengthInMinutes: 15}, types.ErrInvalidName},
		{"no length", &types.EventType{Slug: "x", Title: "x"}, types.ErrInvalidLength},
		{"unnamed field", &types.EventType{Slug: "x", Title: "x", LengthInMinutes: 15,
			BookingFields: []types.Field{{Label: "?"}}}, types.ErrInvalidField},
		{"unknown field type", &types.EventType{Slug: "x", Title: "x", LengthInMinutes: 15,
			BookingFields: []types.Field{{Name: "company", Type: "hologram"}}}, types.ErrInvalidField},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tbl.Set("", tt.data); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestTable_SetDuplicateSlug(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	if _, err := tbl.Set("", sampleEventType("intro")); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	dup := sampleEventType("intro")
	_, err := tbl.Set("", dup)
	if !errors.Is(err, types.ErrDuplicateSlug) {
		t.Errorf("expected ErrDuplicateSlug, got %v", err)
	}
	if dup.ID != "" || !dup.CreatedAt.IsZero() || !dup.UpdatedAt.IsZero() {
		t.Errorf("failed Set modified the entity: id=%q created=%v updated=%v", dup.ID, dup.CreatedAt, dup.UpdatedAt)
	}
}

func TestTable_Delete(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	id, err := tbl.Set("", sampleEventType("intro"))
	if err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := tbl.Delete(id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := tbl.Get(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := tbl.Delete(id); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
	if err := tbl.Delete(""); !errors.Is(err, types.ErrInvalidID) {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}

func TestTable_Fetch(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	for _, slug := range []string{"a", "b", "c"} {
		e := sampleEventType(slug)
		e.Hidden = slug == "b"
		if _, err := tbl.Set("", e); err != nil {
			t.Fatalf("Set %s failed: %v", slug, err)
		}
	}

	tests := []struct {
		name   string
		filter map[string]any
		want   []string
	}{
		{"all", nil, []string{"a", "b", "c"}},
		{"by slug", map[string]any{FilterSlug: "b"}, []string{"b"}},
		{"by title", map[string]any{FilterTitle: "Meeting c"}, []string{"c"}},
		{"hidden", map[string]any{FilterHidden: true}, []string{"b"}},
		{"limit", map[string]any{FilterLimit: 2}, []string{"a", "b"}},
		{"json limit", map[string]any{FilterLimit: float64(1)}, []string{"a"}},
		{"no match", map[string]any{FilterSlug: "zzz"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tbl.Fetch(tt.filter)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			slugs := []string{}
			for _, g := range got {
				slugs = append(slugs, g.(*types.EventType).Slug)
			}
			if fmt.Sprint(slugs) != fmt.Sprint(tt.want) {
				t.Errorf("got %v, want %v", slugs, tt.want)
			}
		})
	}
}

func TestTable_FetchInvalidFilter(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	filters := []map[string]any{
		{"state": "open"},
		{FilterSlug: 42},
		{FilterHidden: "yes"},
		{FilterLimit: -1},
		{FilterLimit: 1.5},
	}
	for _, f := range filters {
		if _, err := tbl.Fetch(f); !errors.Is(err, types.ErrInvalidFilter) {
			t.Errorf("Fetch(%v): expected ErrInvalidFilter, got %v", f, err)
		}
	}
}

func TestTable_ConcurrentAccess(t *testing.T) {
	b, _ := attachTemp(t, "")
	tbl := eventTypes(t, b)

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			if _, err := tbl.Set("", sampleEventType(fmt.Sprintf("slug-%d", i))); err != nil {
				errs <- err
			}
		}(i)
		go func() {
			defer wg.Done()
			if _, err := tbl.Fetch(nil); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Errorf("concurrent operation failed: %v", err)
	}

	all, _ := tbl.Fetch(nil)
	if len(all) != 10 {
		t.Errorf("expected 10 event types, got %d", len(all))
	}
}
