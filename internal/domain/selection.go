package domain

import "strings"

// ExtractSelection cuts the half-open rune range [start, end) out of buffer
// and trims surrounding whitespace. It returns ok=false (not an error) when
// the range is out of bounds, inverted, or the trimmed result is empty.
//
// Offsets count runes, not bytes: selections come from user-facing text
// positions and the buffers are foreign-language text.
func ExtractSelection(buffer string, start, end int) (string, bool) {
	if start < 0 || end <= start {
		return "", false
	}

	runes := []rune(buffer)
	if end > len(runes) {
		return "", false
	}

	selected := strings.TrimSpace(string(runes[start:end]))
	if selected == "" {
		return "", false
	}
	return selected, true
}
