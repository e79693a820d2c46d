package extract

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creatorops/sponsor-scout/internal/core"
)

type stubAdapter struct {
	subject string
	sender  string
}

func (s *stubAdapter) Candidates(ctx context.Context) ([]*core.Node, error) { return nil, nil }
func (s *stubAdapter) Subject(node *core.Node) string                       { return s.subject }
func (s *stubAdapter) Sender(node *core.Node) string                        { return s.sender }

func TestRecordRejectsShortText(t *testing.T) {
	e := New(&stubAdapter{})

	record, ok := e.Record(&core.Node{Text: "too short"})
	assert.False(t, ok)
	assert.Nil(t, record)

	_, ok = e.Record(&core.Node{Text: "   \n\t  "})
	assert.False(t, ok)
}

func TestRecordStructuredFieldsWin(t *testing.T) {
	e := New(&stubAdapter{subject: "Partnership proposal", sender: "jane@acme.com"})

	node := &core.Node{
		Text:      "Subject: something else entirely\nHello, we want to work with you.",
		SourceURL: "https://mail.example.com/inbox",
	}
	record, ok := e.Record(node)
	require.True(t, ok)

	assert.Equal(t, "Partnership proposal", record.Subject)
	assert.Equal(t, "jane@acme.com", record.Sender)
	assert.Equal(t, "https://mail.example.com/inbox", record.SourceURL)
	assert.False(t, record.CapturedAt.IsZero())
}

func TestRecordSubjectFallsBackToMarker(t *testing.T) {
	e := New(&stubAdapter{})

	record, ok := e.Record(&core.Node{
		Text: "some preamble text here\nSubject: Sponsorship for your channel\nbody follows",
	})
	require.True(t, ok)
	assert.Equal(t, "Sponsorship for your channel", record.Subject)
}

func TestRecordSubjectFallsBackToFirstLine(t *testing.T) {
	e := New(&stubAdapter{})

	record, ok := e.Record(&core.Node{
		Text: "hi\nWe have an exciting collaboration offer for you\nmore text",
	})
	require.True(t, ok)
	assert.Equal(t, "We have an exciting collaboration offer for you", record.Subject)
}

func TestRecordSenderFallsBackToAddressInText(t *testing.T) {
	e := New(&stubAdapter{})

	record, ok := e.Record(&core.Node{
		Text: "Please reach out to partnerships@brand.co for details on this offer.",
	})
	require.True(t, ok)
	assert.Equal(t, "partnerships@brand.co", record.Sender)
}

func TestRecordSenderUnknownWhenNoAddress(t *testing.T) {
	e := New(&stubAdapter{})

	record, ok := e.Record(&core.Node{
		Text: "A message without any address in it, long enough to pass.",
	})
	require.True(t, ok)
	assert.Equal(t, "unknown", record.Sender)
}

func TestRecordEnforcesFieldCaps(t *testing.T) {
	longSubject := strings.Repeat("s", core.MaxSubjectLen+50)
	e := New(&stubAdapter{subject: longSubject, sender: strings.Repeat("a", core.MaxSenderLen+10)})

	record, ok := e.Record(&core.Node{Text: strings.Repeat("b", core.MaxBodyLen+500)})
	require.True(t, ok)

	assert.Len(t, record.Subject, core.MaxSubjectLen)
	assert.Len(t, record.Sender, core.MaxSenderLen)
	assert.Len(t, record.Body, core.MaxBodyLen)
}

func TestCompany(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"inc suffix", "We represent Acme Inc and its brands", "Acme Inc"},
		{"llc with period", "Budget approved by Widget Partners LLC.", "Widget Partners LLC."},
		{"gmbh", "Greetings from Muster GmbH, Berlin", "Muster GmbH"},
		{"no company", "just a plain email with no legal entity", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Company(tt.text))
		})
	}
}

func TestWebsite(t *testing.T) {
	assert.Equal(t, "https://acme.com/sponsor", Website("Visit https://acme.com/sponsor, thanks"))
	assert.Equal(t, "http://brand.co", Website("see http://brand.co."))
	assert.Equal(t, "", Website("no links here"))
}

func TestMoney(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"dollar amount", "we can pay $500 per post", "$500"},
		{"with thousands separator", "a budget of $1,500.50 total", "$1,500.50"},
		{"euro", "offering €2000 for the series", "€2000"},
		{"currency code", "roughly 500 USD per video", "500 USD"},
		{"k suffix", "our budget is $5k for this", "$5k"},
		{"nothing", "no budget mentioned", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Money(tt.text))
		})
	}
}

func TestInfo(t *testing.T) {
	record := &core.EmailRecord{
		Subject: "Partnership with Acme Inc",
		Sender:  "jane@acme.com",
		Body:    "Check https://acme.com and we offer $1000 upfront.",
	}

	info := Info(record)
	assert.Equal(t, "Acme Inc", info.CompanyName)
	assert.Equal(t, "https://acme.com", info.Website)
	assert.Equal(t, "jane@acme.com", info.ContactPerson)
	assert.Equal(t, "$1000", info.Offer)
}

func TestAgenda(t *testing.T) {
	record := &core.EmailRecord{
		Subject: "Hello there",
		Body:    "Hi!\nWe would love a sponsorship deal with your channel.\nKind regards",
	}

	agenda := Agenda(record, []string{"sponsorship"})
	assert.Equal(t, "We would love a sponsorship deal with your channel.", agenda)

	// No keyword line falls back to the subject
	assert.Equal(t, "Hello there", Agenda(record, []string{"unrelated"}))
}

func TestAgendaTruncates(t *testing.T) {
	record := &core.EmailRecord{
		Subject: "s",
		Body:    "We propose a sponsorship " + strings.Repeat("x", core.MaxAgendaLen*2),
	}

	agenda := Agenda(record, []string{"sponsorship"})
	assert.Len(t, agenda, core.MaxAgendaLen)
}

func TestDetailPrefersRemoteFields(t *testing.T) {
	record := &core.EmailRecord{
		Subject: "Partnership with Acme Inc",
		Sender:  "jane@acme.com",
		Body:    "We offer $500 via https://acme.com for a sponsorship slot.",
	}
	result := &core.AnalysisResult{
		RiskScore: 25,
		Info: core.ExtractedInfo{
			CompanyName: "Acme Corporation",
			Website:     "https://acme.example",
		},
	}

	detail := Detail(record, result, []string{"sponsorship"})
	assert.Equal(t, "Acme Corporation", detail.CompanyName, "remote value wins")
	assert.Equal(t, "https://acme.example", detail.Website, "remote value wins")
	assert.Equal(t, "jane@acme.com", detail.ContactPerson, "local heuristics fill the gap")
	assert.Equal(t, "$500", detail.MoneyOffered, "local heuristics fill the gap")
	assert.Equal(t, 25, detail.RiskScore)
	assert.Equal(t, "Partnership with Acme Inc", detail.EmailSubject)
}
