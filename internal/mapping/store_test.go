package mapping_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gallerysync/internal/logging"
	"gallerysync/internal/mapping"
	"gallerysync/internal/services"
)

func newTestStore(t *testing.T) *mapping.Store {
	t.Helper()
	return mapping.NewStore(filepath.Join(t.TempDir(), "mapping.json"), logging.NewNop())
}

func testEvent(t *testing.T, name, date, folder string) mapping.Event {
	t.Helper()
	ev, err := mapping.NewEvent(name, date, folder, "https://res.example/"+folder+"/",
		[]string{"https://res.example/image/upload/" + folder + "/1.jpg"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return ev
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)
	events, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(events) != 0 {
		t.Fatalf("expected empty collection, got %d", len(events))
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store := mapping.NewStore(path, logging.NewNop())
	if _, err := store.Load(); !errors.Is(err, services.ErrStoreCorrupt) {
		t.Fatalf("expected ErrStoreCorrupt, got %v", err)
	}
}

func TestPutRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ev := testEvent(t, "Diwali 2024", "2024-11-02", "diwali-2024")
	if _, err := store.Put(ctx, ev, false); err != nil {
		t.Fatalf("put: %v", err)
	}

	events, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1", len(events))
	}
	got := events[0]
	if got.ID != ev.ID || got.Name != ev.Name || got.Date != ev.Date ||
		got.Folder != ev.Folder || got.PhotoCount != ev.PhotoCount ||
		got.FolderURL != ev.FolderURL || got.PhotoURLs[0] != ev.PhotoURLs[0] {
		t.Fatalf("round-trip mismatch:\n got %+v\nwant %+v", got, ev)
	}
}

func TestPutKeepsCollectionSortedNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for _, ev := range []mapping.Event{
		testEvent(t, "Holi", "2024-03-25", "holi-2024"),
		testEvent(t, "Diwali", "2024-11-02", "diwali-2024"),
		testEvent(t, "Sankranti", "2025-01-14", "sankranti-2025"),
	} {
		if _, err := store.Put(ctx, ev, false); err != nil {
			t.Fatal(err)
		}
	}

	events, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	var dates []string
	for _, ev := range events {
		dates = append(dates, ev.Date)
	}
	want := []string{"2025-01-14", "2024-11-02", "2024-03-25"}
	for i := range want {
		if dates[i] != want[i] {
			t.Fatalf("dates = %v, want %v", dates, want)
		}
	}
}

func TestPutTiesPreserveInsertionOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := testEvent(t, "Morning Session", "2024-06-15", "summer-am")
	second := testEvent(t, "Evening Session", "2024-06-15", "summer-pm")
	if _, err := store.Put(ctx, first, false); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Put(ctx, second, false); err != nil {
		t.Fatal(err)
	}

	events, err := store.Load()
	if err != nil {
		t.Fatal(err)
	}
	if events[0].Folder != "summer-am" || events[1].Folder != "summer-pm" {
		t.Fatalf("tie order changed: %s, %s", events[0].Folder, events[1].Folder)
	}
}

func TestPutRejectsDuplicateFolder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, testEvent(t, "Diwali", "2024-11-02", "diwali-2024"), false); err != nil {
		t.Fatal(err)
	}
	_, err := store.Put(ctx, testEvent(t, "Diwali Again", "2024-11-03", "diwali-2024"), false)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation for duplicate folder, got %v", err)
	}
	if !strings.Contains(err.Error(), "diwali-2024") {
		t.Fatalf("error should name the folder: %v", err)
	}
}

func TestPutReplaceSwapsExistingRecord(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Put(ctx, testEvent(t, "Diwali", "2024-11-02", "diwali-2024"), false); err != nil {
		t.Fatal(err)
	}
	refreshed := testEvent(t, "Diwali 2024", "2024-11-02", "diwali-2024")
	events, err := store.Put(ctx, refreshed, true)
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1 after replace", len(events))
	}
	if events[0].ID != refreshed.ID || events[0].Name != "Diwali 2024" {
		t.Fatalf("replace kept stale record: %+v", events[0])
	}
}

func TestPersistedFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mapping.json")
	store := mapping.NewStore(path, logging.NewNop())

	if _, err := store.Put(context.Background(), testEvent(t, "Diwali", "2024-11-02", "diwali-2024"), false); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	text := string(raw)
	if !strings.HasPrefix(text, "[\n  {\n    \"event_id\"") {
		t.Fatalf("unexpected file prefix %q", text[:40])
	}
	if !strings.HasSuffix(text, "]\n") {
		t.Fatalf("file should end with ]\\n, got %q", text[len(text)-4:])
	}
}
