package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

type stubGate struct{ candidate bool }

func (s *stubGate) IsCandidate(record *core.EmailRecord) bool { return s.candidate }

func TestSynthesize(t *testing.T) {
	record := &core.EmailRecord{
		Identity: "msg-1",
		Subject:  "Partnership with Acme Inc",
		Sender:   "jane@acme.com",
		Body:     "We offer $750 for a video, see https://acme.com",
	}

	f := NewFallback(&stubGate{candidate: true}, zap.NewNop())
	result := f.Synthesize(record)

	assert.Equal(t, 50, result.RiskScore)
	assert.Equal(t, core.StatusWarning, result.Status)
	assert.True(t, result.IsSponsor, "sponsor decision degrades to the keyword gate")
	assert.Equal(t, "fallback", result.ModelUsed)
	assert.False(t, result.AnalyzedAt.IsZero())

	require.Len(t, result.Flags, 1)
	assert.Equal(t, core.FlagCaution, result.Flags[0].Kind)
	assert.Equal(t, FallbackMessage, result.Flags[0].Message)

	assert.Equal(t, "Acme Inc", result.Info.CompanyName)
	assert.Equal(t, "https://acme.com", result.Info.Website)
	assert.Equal(t, "jane@acme.com", result.Info.ContactPerson)
	assert.Equal(t, "$750", result.Info.Offer)
}

func TestSynthesizeNonCandidate(t *testing.T) {
	f := NewFallback(&stubGate{candidate: false}, zap.NewNop())
	result := f.Synthesize(&core.EmailRecord{Identity: "msg-2", Body: "hello"})
	assert.False(t, result.IsSponsor)
}

func TestDetailBuilder(t *testing.T) {
	b := NewDetailBuilder([]string{"sponsorship"})

	record := &core.EmailRecord{
		Subject: "Offer",
		Sender:  "jane@acme.com",
		Body:    "A sponsorship slot for $300.",
	}
	result := &core.AnalysisResult{
		RiskScore: 30,
		Info:      core.ExtractedInfo{CompanyName: "Acme Corp"},
	}

	detail := b.Build(record, result)
	assert.Equal(t, "Acme Corp", detail.CompanyName)
	assert.Equal(t, 30, detail.RiskScore)
	assert.Equal(t, "A sponsorship slot for $300.", detail.Agenda)
	assert.Equal(t, "$300", detail.MoneyOffered)
}
