package mapping

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"gallerysync/internal/services"
)

// DateLayout is the calendar format every event date is stored in. Lexical
// order of this layout coincides with chronological order.
const DateLayout = "2006-01-02"

const displayDateLayout = "Jan'06"

// Event is one gallery entry: event metadata plus the resolved media URLs
// fetched from the host. Field names mirror the persisted mapping format
// consumed by the browser artifact.
type Event struct {
	ID         string   `json:"event_id"`
	Name       string   `json:"event_name"`
	Date       string   `json:"event_date"`
	Folder     string   `json:"cloudinary_folder"`
	PhotoCount int      `json:"photo_count"`
	PhotoURLs  []string `json:"cloudinary_urls"`
	FolderURL  string   `json:"folder_url"`
	VideoLinks []string `json:"video_links,omitempty"`
}

// NewEvent assembles a validated event record with a fresh random identifier.
// PhotoCount is always derived from the URL list, never supplied.
func NewEvent(name, date, folder, folderURL string, photoURLs, videoLinks []string) (Event, error) {
	ev := Event{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(name),
		Date:       strings.TrimSpace(date),
		Folder:     strings.TrimSpace(folder),
		PhotoCount: len(photoURLs),
		PhotoURLs:  photoURLs,
		FolderURL:  folderURL,
		VideoLinks: videoLinks,
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Validate checks the record invariants.
func (e Event) Validate() error {
	if e.Name == "" {
		return services.Wrap(services.ErrValidation, "mapping", "event", "name must not be empty", nil)
	}
	if e.Folder == "" {
		return services.Wrap(services.ErrValidation, "mapping", "event", "folder must not be empty", nil)
	}
	if _, err := time.Parse(DateLayout, e.Date); err != nil {
		return services.Wrap(services.ErrValidation, "mapping", "event",
			fmt.Sprintf("date %q is not in YYYY-MM-DD form", e.Date), nil)
	}
	if len(e.PhotoURLs) == 0 {
		return services.Wrap(services.ErrValidation, "mapping", "event", "at least one photo is required", nil)
	}
	if e.PhotoCount != len(e.PhotoURLs) {
		return services.Wrap(services.ErrValidation, "mapping", "event",
			fmt.Sprintf("photo_count %d does not match %d urls", e.PhotoCount, len(e.PhotoURLs)), nil)
	}
	return nil
}

// DisplayDate renders a stored date as the compact listing label (e.g. Nov'24).
// Unparseable dates fall back to the raw string.
func DisplayDate(date string) string {
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format(displayDateLayout)
}

// SortByDateDesc orders events newest first. The sort is stable so equal dates
// keep their pre-sort relative order.
func SortByDateDesc(events []Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date > events[j].Date
	})
}

// EncodeIndented serializes events with 2-space indentation and without HTML
// escaping, matching the persisted store format and the embedded artifact
// literal. A nil slice encodes as an empty array. The result has no trailing
// newline.
func EncodeIndented(events []Event) ([]byte, error) {
	if events == nil {
		events = []Event{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(events); err != nil {
		return nil, fmt.Errorf("encode mapping: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
