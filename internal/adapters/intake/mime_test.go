package intake

import (
	"net/mail"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseMessage(t *testing.T, raw string) *mail.Message {
	t.Helper()
	msg, err := mail.ReadMessage(strings.NewReader(raw))
	require.NoError(t, err)
	return msg
}

func TestExtractTextPlainMessage(t *testing.T) {
	msg := parseMessage(t, "From: jane@acme.com\r\nSubject: Hi\r\n\r\nplain body here")

	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "plain body here", text)
}

func TestExtractTextMultipart(t *testing.T) {
	raw := strings.Join([]string{
		"From: jane@acme.com",
		"Subject: Offer",
		`Content-Type: multipart/alternative; boundary="BOUNDARY"`,
		"",
		"--BOUNDARY",
		"Content-Type: text/plain; charset=utf-8",
		"",
		"the plain part",
		"--BOUNDARY",
		"Content-Type: text/html; charset=utf-8",
		"",
		"<p>the html part</p>",
		"--BOUNDARY--",
		"",
	}, "\r\n")

	msg := parseMessage(t, raw)
	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Contains(t, text, "the plain part")
	assert.NotContains(t, text, "html part")
}

func TestExtractTextMultipartWithoutBoundaryFallsBack(t *testing.T) {
	raw := "From: jane@acme.com\r\nContent-Type: multipart/mixed\r\n\r\nraw fallback body"

	msg := parseMessage(t, raw)
	text, err := extractTextFromMessage(msg)
	require.NoError(t, err)
	assert.Equal(t, "raw fallback body", text)
}
