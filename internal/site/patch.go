package site

import (
	"bytes"

	"gallerysync/internal/mapping"
)

// MappingMarker identifies the embedded constant whose array literal the
// patcher replaces inside the browser script artifact.
const MappingMarker = "const EVENT_MAPPING = "

// PatchEventMapping replaces the EVENT_MAPPING array literal in content with a
// fresh serialization of events, leaving every byte outside the value span
// untouched. The second return is false when no unambiguous target was found,
// in which case content is returned unchanged; callers surface that as a
// staleness warning, not a failure.
func PatchEventMapping(content []byte, events []mapping.Event) ([]byte, bool, error) {
	markerIdx := bytes.Index(content, []byte(MappingMarker))
	if markerIdx < 0 {
		return content, false, nil
	}

	valueStart := markerIdx + len(MappingMarker)
	valueStart = skipSpaces(content, valueStart)
	if valueStart >= len(content) || content[valueStart] != '[' {
		return content, false, nil
	}

	valueEnd, ok := scanArrayLiteral(content, valueStart)
	if !ok {
		return content, false, nil
	}

	terminator := skipSpaces(content, valueEnd)
	if terminator >= len(content) || content[terminator] != ';' {
		return content, false, nil
	}

	serialized, err := mapping.EncodeIndented(events)
	if err != nil {
		return content, false, err
	}

	out := make([]byte, 0, len(content)-(terminator-valueStart)+len(serialized))
	out = append(out, content[:valueStart]...)
	out = append(out, serialized...)
	out = append(out, content[terminator:]...)
	return out, true, nil
}

func skipSpaces(content []byte, idx int) int {
	for idx < len(content) {
		switch content[idx] {
		case ' ', '\t', '\n', '\r':
			idx++
		default:
			return idx
		}
	}
	return idx
}

// scanArrayLiteral walks a JS/JSON array literal starting at the opening
// bracket and returns the index just past its matching close bracket. String
// literals are honored so brackets inside them do not affect nesting depth.
func scanArrayLiteral(content []byte, start int) (int, bool) {
	depth := 0
	i := start
	for i < len(content) {
		switch ch := content[i]; ch {
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1, true
			}
		case '"', '\'', '`':
			end, ok := scanStringLiteral(content, i, ch)
			if !ok {
				return 0, false
			}
			i = end
			continue
		}
		i++
	}
	return 0, false
}

func scanStringLiteral(content []byte, start int, quote byte) (int, bool) {
	for i := start + 1; i < len(content); i++ {
		switch content[i] {
		case '\\':
			i++
		case quote:
			return i + 1, true
		}
	}
	return 0, false
}
