package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "abc", TruncateUTF8("abc", 10))
	assert.Equal(t, "ab", TruncateUTF8("abcdef", 2))
	assert.Equal(t, "abcdef", TruncateUTF8("abcdef", 0), "non-positive limit means unlimited")
	assert.Equal(t, "abcdef", TruncateUTF8("abcdef", -1))
}

func TestTruncateUTF8NeverSplitsRune(t *testing.T) {
	// "héllo" with é as two bytes; cutting at 2 would split it
	s := "héllo"
	got := TruncateUTF8(s, 2)
	assert.Equal(t, "h", got)
	assert.True(t, utf8.ValidString(got))

	got = TruncateUTF8(strings.Repeat("€", 10), 7) // 3-byte euro signs
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 6, len(got))
}

func TestSanitizeUTF8(t *testing.T) {
	assert.Equal(t, "clean", SanitizeUTF8("clean"))

	dirty := "bad\xffbyte"
	got := SanitizeUTF8(dirty)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "badbyte", got)
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \t b\n\n c  "))
	assert.Equal(t, "", CollapseWhitespace("   \n\t  "))
	assert.Equal(t, "already clean", CollapseWhitespace("already clean"))
}
