package prefilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

func record(subject, body string) *core.EmailRecord {
	return &core.EmailRecord{Identity: "id-1", Subject: subject, Body: body}
}

func TestIsCandidate(t *testing.T) {
	p := New(nil, zap.NewNop())

	tests := []struct {
		name    string
		subject string
		body    string
		want    bool
	}{
		{"keyword in subject", "Sponsorship opportunity", "hello", true},
		{"keyword in body", "Hello", "we would like a collaboration with you", true},
		{"case insensitive", "SPONSOR inquiry", "", true},
		{"multi-word keyword", "Hi", "interested in a brand deal?", true},
		{"no keyword", "Lunch on Friday?", "see you at noon", false},
		{"empty record", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.IsCandidate(record(tt.subject, tt.body)))
		})
	}
}

func TestIsCandidateCaseFolding(t *testing.T) {
	p := New([]string{"Sponsor"}, zap.NewNop())

	assert.True(t, p.IsCandidate(record("sponsor us", "")))
	assert.True(t, p.IsCandidate(record("SPONSOR US", "")))
}

func TestCustomKeywords(t *testing.T) {
	p := New([]string{"werbung"}, zap.NewNop())

	assert.True(t, p.IsCandidate(record("Werbung anfrage", "")))
	assert.False(t, p.IsCandidate(record("Sponsorship opportunity", "")),
		"custom keywords replace the defaults")
}

func TestEmptyKeywordListUsesDefaults(t *testing.T) {
	p := New([]string{}, zap.NewNop())
	assert.True(t, p.IsCandidate(record("paid promotion offer", "")))
}
