package submission_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"gallerysync/internal/services"
	"gallerysync/internal/submission"
)

const fullBody = `### Event Name

Diwali 2024

### Location

The Hague

### Event Date

2024-11-02

### Cloudinary Folder Name

diwali-2024

### Number of Photos

about 40

### Video Links (Optional)

https://youtu.be/abc123
not a link
https://vimeo.com/987
`

func TestParseFullSubmission(t *testing.T) {
	sub, err := submission.Parse(fullBody)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Name != "Diwali 2024" {
		t.Fatalf("name = %q", sub.Name)
	}
	if sub.Location != "The Hague" {
		t.Fatalf("location = %q", sub.Location)
	}
	if sub.Date != "2024-11-02" {
		t.Fatalf("date = %q", sub.Date)
	}
	if sub.Folder != "diwali-2024" {
		t.Fatalf("folder = %q", sub.Folder)
	}
	if sub.PhotoCount != "about 40" {
		t.Fatalf("photo count = %q", sub.PhotoCount)
	}
	want := []string{"https://youtu.be/abc123", "https://vimeo.com/987"}
	if !reflect.DeepEqual(sub.VideoLinks, want) {
		t.Fatalf("video links = %v, want %v", sub.VideoLinks, want)
	}
}

func TestParseAggregatesAllMissingFields(t *testing.T) {
	body := `### Event Name

_No response_

### Location

No Response

### Event Date

2024-11-02

### Cloudinary Folder Name

`
	_, err := submission.Parse(body)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	msg := err.Error()
	for _, field := range []string{"event_name", "location", "cloudinary_folder"} {
		if !strings.Contains(msg, field) {
			t.Fatalf("error %q should name %s", msg, field)
		}
	}
	if strings.Contains(msg, "event_date") {
		t.Fatalf("error %q should not report the present date field", msg)
	}
}

func TestPlaceholderTokens(t *testing.T) {
	tests := []string{"No response", "no response", "_No Response_", "_no response_", ""}
	for _, placeholder := range tests {
		t.Run("token "+placeholder, func(t *testing.T) {
			body := "### Event Name\n\n" + placeholder + "\n\n### Location\n\nDelft\n\n### Event Date\n\n2024-05-01\n\n### Cloudinary Folder Name\n\nx\n"
			_, err := submission.Parse(body)
			if !errors.Is(err, services.ErrValidation) {
				t.Fatalf("placeholder %q should read as absent, got err=%v", placeholder, err)
			}
			if !strings.Contains(err.Error(), "event_name") {
				t.Fatalf("error should name event_name: %v", err)
			}
		})
	}
}

func TestParseVideoLinks(t *testing.T) {
	tests := []struct {
		name  string
		block string
		want  []string
	}{
		{"empty", "", nil},
		{"whitespace only", "  \n\t\n", nil},
		{
			"mixed validity keeps order",
			"https://a.example/1\nftp://b.example\n\n  http://c.example/2  \njunk",
			[]string{"https://a.example/1", "http://c.example/2"},
		},
		{"all invalid", "one\ntwo", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := submission.ParseVideoLinks(tt.block)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("links = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseIgnoresUnknownSections(t *testing.T) {
	body := fullBody + "\n### Anything Else\n\nfree text\n"
	sub, err := submission.Parse(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if sub.Name != "Diwali 2024" {
		t.Fatalf("name = %q", sub.Name)
	}
}
