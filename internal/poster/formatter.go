package poster

import (
	"strings"
	"unicode/utf8"
)

// TwitterMaxLength is the maximum character count for a tweet.
const TwitterMaxLength = 280

// FitsInLimit checks if the text fits within the limit.
func FitsInLimit(text string, limit int) bool {
	return utf8.RuneCountInString(text) <= limit
}

// Truncate shortens text to fit within a character limit, preferring a word
// boundary and appending an ellipsis.
func Truncate(text string, limit int) string {
	if FitsInLimit(text, limit) {
		return text
	}

	available := limit - 3 // room for the ellipsis
	runes := []rune(text)
	truncated := string(runes[:available])

	// Find last space to avoid cutting mid-word
	lastSpace := strings.LastIndex(truncated, " ")
	if lastSpace > available/2 { // Only use word boundary if not too far back
		truncated = truncated[:lastSpace]
	}

	return strings.TrimRight(truncated, " .,;:!?") + "..."
}
