package mapping_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"gallerysync/internal/mapping"
	"gallerysync/internal/services"
)

func TestNewEventDerivesCountAndID(t *testing.T) {
	urls := []string{"https://res.example/u/1.jpg", "https://res.example/u/2.jpg"}
	ev, err := mapping.NewEvent("Diwali 2024", "2024-11-02", "diwali-2024", "https://res.example/u/", urls, nil)
	if err != nil {
		t.Fatalf("NewEvent: %v", err)
	}
	if ev.PhotoCount != 2 {
		t.Fatalf("photo count = %d, want 2", ev.PhotoCount)
	}
	if ev.ID == "" || len(ev.ID) < 32 {
		t.Fatalf("expected UUID identifier, got %q", ev.ID)
	}
	if ev.VideoLinks != nil {
		t.Fatalf("unexpected video links %v", ev.VideoLinks)
	}
}

func TestNewEventRejectsInvalidInput(t *testing.T) {
	urls := []string{"https://res.example/u/1.jpg"}
	tests := []struct {
		name            string
		eventName, date string
		folder          string
		urls            []string
	}{
		{"empty name", "", "2024-11-02", "f", urls},
		{"empty folder", "Diwali", "2024-11-02", "", urls},
		{"bad date", "Diwali", "02-11-2024", "f", urls},
		{"no photos", "Diwali", "2024-11-02", "f", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := mapping.NewEvent(tt.eventName, tt.date, tt.folder, "", tt.urls, nil)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestDisplayDate(t *testing.T) {
	if got := mapping.DisplayDate("2024-11-02"); got != "Nov'24" {
		t.Fatalf("DisplayDate = %q, want Nov'24", got)
	}
	if got := mapping.DisplayDate("not-a-date"); got != "not-a-date" {
		t.Fatalf("fallback = %q", got)
	}
}

func TestSortByDateDescIsStable(t *testing.T) {
	events := []mapping.Event{
		{ID: "a", Date: "2024-01-01"},
		{ID: "b", Date: "2024-11-02"},
		{ID: "c", Date: "2024-01-01"},
		{ID: "d", Date: "2025-03-08"},
	}
	mapping.SortByDateDesc(events)

	order := make([]string, 0, len(events))
	for _, ev := range events {
		order = append(order, ev.ID)
	}
	if got := strings.Join(order, ""); got != "dbac" {
		t.Fatalf("order = %s, want dbac (ties keep input order)", got)
	}
}

func TestEncodeIndented(t *testing.T) {
	events := []mapping.Event{{
		ID:         "1730000000",
		Name:       "Holi & Rangoli",
		Date:       "2024-03-25",
		Folder:     "holi-2024",
		PhotoCount: 1,
		PhotoURLs:  []string{"https://res.example/image/upload/archived-events/holi-2024/a.jpg?x=1&y=2"},
		FolderURL:  "https://res.example/image/upload/archived-events/holi-2024/",
	}}

	data, err := mapping.EncodeIndented(events)
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	if strings.Contains(text, `&`) {
		t.Fatal("ampersands must not be HTML-escaped in the mapping serialization")
	}
	if !strings.HasPrefix(text, "[\n  {\n") {
		t.Fatalf("expected 2-space indentation, got prefix %q", text[:12])
	}
	if strings.HasSuffix(text, "\n") {
		t.Fatal("serialization must not carry a trailing newline")
	}

	var decoded []mapping.Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("round-trip decode: %v", err)
	}
	if decoded[0].Name != "Holi & Rangoli" {
		t.Fatalf("round-trip name = %q", decoded[0].Name)
	}
}

func TestEncodeIndentedNil(t *testing.T) {
	data, err := mapping.EncodeIndented(nil)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "[]" {
		t.Fatalf("nil collection = %q, want []", data)
	}
}
