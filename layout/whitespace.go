package layout

import (
	"strings"
	"unicode"
)

// IsWhitespace reports whether text is one or more whitespace characters and
// nothing else.
func IsWhitespace(text string) bool {
	if text == "" {
		return false
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsHardBreak reports whether text is whitespace that contains a newline.
func IsHardBreak(text string) bool {
	return strings.ContainsRune(text, '\n') && IsWhitespace(text)
}
