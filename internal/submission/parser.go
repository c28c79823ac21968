package submission

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"gallerysync/internal/services"
)

// Submission holds the fields extracted from one issue-form body. Location is
// captured for completeness but is not part of the persisted event record.
type Submission struct {
	Name       string
	Location   string
	Date       string
	Folder     string
	PhotoCount string
	VideoLinks []string
}

// Form field labels as issued by the submission template.
const (
	labelName       = "event name"
	labelLocation   = "location"
	labelDate       = "event date"
	labelFolder     = "cloudinary folder name"
	labelPhotoCount = "number of photos"
	labelVideoLinks = "video links (optional)"
)

var headingPattern = regexp.MustCompile(`(?m)^###[ \t]+(.+?)[ \t]*$`)

// Parse extracts the event fields from a submission body. Every missing
// required field is reported in a single validation error.
func Parse(body string) (Submission, error) {
	fold := cases.Fold()

	var sub Submission
	var videoBlock string

	matches := headingPattern.FindAllStringSubmatchIndex(body, -1)
	for i, m := range matches {
		label := fold.String(strings.TrimSpace(body[m[2]:m[3]]))
		sectionEnd := len(body)
		if i+1 < len(matches) {
			sectionEnd = matches[i+1][0]
		}
		section := body[m[1]:sectionEnd]

		switch label {
		case labelName:
			sub.Name = scalarValue(section)
		case labelLocation:
			sub.Location = scalarValue(section)
		case labelDate:
			sub.Date = scalarValue(section)
		case labelFolder:
			sub.Folder = scalarValue(section)
		case labelPhotoCount:
			sub.PhotoCount = scalarValue(section)
		case labelVideoLinks:
			videoBlock = strings.TrimSpace(section)
			if isPlaceholder(videoBlock) {
				videoBlock = ""
			}
		}
	}

	var missing []string
	if sub.Name == "" {
		missing = append(missing, "event_name")
	}
	if sub.Location == "" {
		missing = append(missing, "location")
	}
	if sub.Date == "" {
		missing = append(missing, "event_date")
	}
	if sub.Folder == "" {
		missing = append(missing, "cloudinary_folder")
	}
	if len(missing) > 0 {
		return Submission{}, services.Wrap(services.ErrValidation, "submission", "parse",
			"missing required fields: "+strings.Join(missing, ", "), nil)
	}

	sub.VideoLinks = ParseVideoLinks(videoBlock)
	return sub, nil
}

// scalarValue extracts the first non-empty line of a section, treating
// placeholder tokens as absent.
func scalarValue(section string) string {
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if isPlaceholder(line) {
			return ""
		}
		return line
	}
	return ""
}

// isPlaceholder reports whether value is one of the "no answer" tokens the
// issue form emits for unfilled fields, compared case-insensitively.
func isPlaceholder(value string) bool {
	folded := cases.Fold().String(strings.TrimSpace(value))
	switch folded {
	case "", "no response", "_no response_":
		return true
	}
	return false
}

// ParseVideoLinks splits a free-text block into absolute http(s) URLs, one per
// line, preserving order. Malformed lines are dropped silently.
func ParseVideoLinks(block string) []string {
	if strings.TrimSpace(block) == "" {
		return nil
	}
	var links []string
	for _, line := range strings.Split(block, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://") {
			links = append(links, line)
		}
	}
	return links
}
