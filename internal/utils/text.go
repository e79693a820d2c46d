package utils

import (
	"strings"
	"unicode/utf8"
)

// TruncateUTF8 truncates text to at most maxLen bytes without splitting a
// UTF-8 sequence. A maxLen <= 0 means no limit.
func TruncateUTF8(text string, maxLen int) string {
	if maxLen <= 0 || len(text) <= maxLen {
		return text
	}

	truncated := text[:maxLen]
	for !utf8.ValidString(truncated) && len(truncated) > 0 {
		truncated = truncated[:len(truncated)-1]
	}
	return truncated
}

// SanitizeUTF8 replaces invalid UTF-8 sequences so downstream JSON
// encoding never sees broken input
func SanitizeUTF8(text string) string {
	if utf8.ValidString(text) {
		return text
	}
	return strings.ToValidUTF8(text, "")
}

// CollapseWhitespace folds runs of whitespace into single spaces and trims
// the ends. Rendered page text arrives with layout whitespace baked in.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
