// Package analysis holds the pipeline-side analysis helpers that are not
// tied to a provider: the local fallback result and the export detail
// builder.
package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/extract"
)

// FallbackMessage is the caution flag attached to every fallback result
const FallbackMessage = "analysis unavailable, using fallback"

// fallbackRisk is the neutral score assigned when no remote analysis is
// available
const fallbackRisk = 50

// Fallback synthesizes analysis results locally when the remote
// classifier is unreachable. The sponsor decision degrades to the
// prefilter verdict and the extracted info to the regex heuristics.
type Fallback struct {
	gate   core.CandidateGate
	logger *zap.Logger
}

// NewFallback creates a fallback synthesizer
func NewFallback(gate core.CandidateGate, logger *zap.Logger) *Fallback {
	return &Fallback{gate: gate, logger: logger}
}

// Synthesize builds the fallback result for a record
func (f *Fallback) Synthesize(record *core.EmailRecord) *core.AnalysisResult {
	f.logger.Debug("Synthesizing fallback analysis result",
		zap.String("identity", record.Identity))

	return &core.AnalysisResult{
		RiskScore: fallbackRisk,
		Status:    core.StatusWarning,
		IsSponsor: f.gate.IsCandidate(record),
		Info:      extract.Info(record),
		Flags: []core.Flag{
			{Kind: core.FlagCaution, Message: FallbackMessage},
		},
		AnalyzedAt: time.Now(),
		ModelUsed:  "fallback",
	}
}

// DetailBuilder flattens records and results into SponsorDetail export
// records using the shared extraction heuristics
type DetailBuilder struct {
	keywords []string
}

// NewDetailBuilder creates a detail builder. The keywords steer the
// agenda derivation toward the sponsorship ask.
func NewDetailBuilder(keywords []string) *DetailBuilder {
	return &DetailBuilder{keywords: keywords}
}

// Build derives the export record
func (b *DetailBuilder) Build(record *core.EmailRecord, result *core.AnalysisResult) *core.SponsorDetail {
	return extract.Detail(record, result, b.keywords)
}
