package sqlite

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mesh-intelligence/bookingfields/pkg/types"
)

func writeDataFile(t *testing.T, dir string, lines ...string) {
	t.Helper()
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, eventTypesJSONL), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_SkipsBadRecords(t *testing.T) {
	dir := t.TempDir()
	writeDataFile(t, dir,
		`{"id":"1","slug":"intro","title":"Intro","lengthInMinutes":15,"bookingFields":[{"name":"email","x-custom":true}]}`,
		`{broken`,
		`{"id":"2","slug":"","title":"No slug","lengthInMinutes":15}`,
		`{"id":"3","slug":"intro","title":"Duplicate slug","lengthInMinutes":15}`,
		`{"slug":"noid","title":"No id","lengthInMinutes":45}`,
	)

	core, logs := observer.New(zap.DebugLevel)
	b := NewBackend(WithLogger(zap.New(core)))
	if err := b.Attach(types.Config{Backend: types.BackendSQLite, DataDir: dir}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	all, err := eventTypes(t, b).Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 loaded event types, got %d", len(all))
	}

	got, err := eventTypes(t, b).Get("1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	e := got.(*types.EventType)
	if e.Title != "Intro" {
		t.Errorf("first record with a slug should win, got %q", e.Title)
	}
	if _, ok := e.BookingFields[0].Extra["x-custom"]; !ok {
		t.Error("unknown field attribute dropped on load")
	}

	noID, _ := eventTypes(t, b).Fetch(map[string]any{FilterSlug: "noid"})
	if len(noID) != 1 || noID[0].(*types.EventType).ID == "" {
		t.Error("record without id should load with a generated id")
	}

	warns := logs.FilterMessage("skipped unreadable event type records").All()
	if len(warns) != 1 {
		t.Fatalf("expected one skip warning, got %d", len(warns))
	}
	if warns[0].ContextMap()["skipped"] != int64(3) {
		t.Errorf("expected 3 skipped, got %v", warns[0].ContextMap()["skipped"])
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	b, _ := attachTemp(t, "")
	all, err := eventTypes(t, b).Fetch(nil)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected empty store, got %d", len(all))
	}
}
