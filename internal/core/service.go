package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Risk thresholds for sponsor reconciliation and confidence tiers
const (
	sponsorRiskCeiling = 50
	highTierCeiling    = 30
	mediumTierCeiling  = 50
)

// Reconcile merges the analysis result with extraction heuristics into a
// final verdict. IsSponsor is a deliberate OR-combination: any strong
// positive signal overrides an otherwise ambiguous score, so a clean
// business lead is not hidden behind a moderate risk score.
func Reconcile(record *EmailRecord, result *AnalysisResult) Verdict {
	isSponsor := result.IsSponsor ||
		result.Info.CompanyName != "" ||
		result.Info.Offer != "" ||
		result.RiskScore < sponsorRiskCeiling

	if !isSponsor {
		for _, f := range result.Flags {
			if f.Kind == FlagPositive {
				isSponsor = true
				break
			}
		}
	}

	// The medium band includes 50 so the neutral fallback score does not
	// read as low confidence.
	var tier ConfidenceTier
	switch {
	case result.RiskScore < highTierCeiling:
		tier = ConfidenceHigh
	case result.RiskScore <= mediumTierCeiling:
		tier = ConfidenceMedium
	default:
		tier = ConfidenceLow
	}

	return Verdict{IsSponsor: isSponsor, ConfidenceTier: tier}
}

// Normalize enforces the data-model invariants on a result: the risk
// score is clamped to [0,100] and a missing status is derived from it.
func (r *AnalysisResult) Normalize() {
	r.RiskScore = ClampRisk(r.RiskScore)
	if r.Status == "" {
		r.Status = StatusForRisk(r.RiskScore)
	}
	if r.AnalyzedAt.IsZero() {
		r.AnalyzedAt = time.Now()
	}
}

// PipelineService runs nodes through the full intake and classification
// pipeline: extract, dedupe, prefilter, analyze, reconcile, emit.
type PipelineService struct {
	extractor Extractor
	gate      CandidateGate
	ignores   SenderWhitelist
	ledger    ProcessedLedger
	analyzer  AnalysisClient
	fallback  FallbackSynthesizer
	details   DetailBuilder
	publisher Publisher
	exporter  Exporter
	stats     *SessionStats
	logger    *zap.Logger
}

// NewPipelineService creates the pipeline service
func NewPipelineService(
	extractor Extractor,
	gate CandidateGate,
	ignores SenderWhitelist,
	ledger ProcessedLedger,
	analyzer AnalysisClient,
	fallback FallbackSynthesizer,
	details DetailBuilder,
	publisher Publisher,
	exporter Exporter,
	stats *SessionStats,
	logger *zap.Logger,
) *PipelineService {
	return &PipelineService{
		extractor: extractor,
		gate:      gate,
		ignores:   ignores,
		ledger:    ledger,
		analyzer:  analyzer,
		fallback:  fallback,
		details:   details,
		publisher: publisher,
		exporter:  exporter,
		stats:     stats,
		logger:    logger,
	}
}

// Process runs a node through the pipeline synchronously. It returns nil
// when the node was skipped before the prefilter (no usable content, or
// identity already processed).
func (s *PipelineService) Process(ctx context.Context, node *Node) *Outcome {
	record, ok := s.admit(ctx, node)
	if !ok {
		return nil
	}
	return s.complete(ctx, record)
}

// ProcessAsync runs the synchronous stages inline and the analysis stage
// in a goroutine. The ledger insert happens before the goroutine is
// spawned, so no two invocations can be in flight for the same identity.
func (s *PipelineService) ProcessAsync(ctx context.Context, node *Node) {
	record, ok := s.admit(ctx, node)
	if !ok {
		return
	}
	go s.complete(ctx, record)
}

// admit is the synchronous front of the pipeline: extraction and the
// dedupe gate. The identity is marked processed here, before any remote
// work, which is what makes the analysis at-most-once.
func (s *PipelineService) admit(ctx context.Context, node *Node) (*EmailRecord, bool) {
	s.stats.AddScanned()

	record, ok := s.extractor.Record(node)
	if !ok {
		s.stats.AddExtractionMiss()
		return nil, false
	}

	if !s.ledger.ShouldProcess(record.Identity) {
		s.stats.AddDuplicate()
		return nil, false
	}
	s.ledger.MarkProcessed(ctx, record.Identity)

	return record, true
}

// complete runs the prefilter, analysis, reconciliation and emission
// stages for an admitted record
func (s *PipelineService) complete(ctx context.Context, record *EmailRecord) *Outcome {
	outcome := &Outcome{
		Record:       *record,
		ProcessingID: uuid.NewString(),
		ProcessedAt:  time.Now(),
	}

	if s.ignores != nil && s.ignores.IsWhitelisted(record.Sender) {
		s.stats.AddNonCandidate()
		outcome.Skipped = true
		outcome.SkipReason = SkipIgnoredSender
		s.publisher.Publish(outcome)
		return outcome
	}

	if !s.gate.IsCandidate(record) {
		s.stats.AddNonCandidate()
		outcome.Skipped = true
		outcome.SkipReason = SkipNotCandidate
		s.publisher.Publish(outcome)
		return outcome
	}

	result, err := s.analyzer.Analyze(ctx, record)
	if err != nil {
		s.logger.Warn("Remote analysis failed, using local fallback",
			zap.String("identity", record.Identity),
			zap.Error(err))
		result = s.fallback.Synthesize(record)
		s.stats.AddFallback()
	}
	result.Normalize()
	s.stats.AddAnalyzed()

	outcome.Result = result
	outcome.Verdict = Reconcile(record, result)

	s.logger.Info("Email classified",
		zap.String("identity", record.Identity),
		zap.Int("risk_score", result.RiskScore),
		zap.String("status", string(result.Status)),
		zap.Bool("is_sponsor", outcome.Verdict.IsSponsor),
		zap.String("confidence", string(outcome.Verdict.ConfidenceTier)))

	s.publisher.Publish(outcome)

	if outcome.Verdict.IsSponsor {
		s.stats.AddSponsor()
		s.export(ctx, record, result)
	}

	return outcome
}

func (s *PipelineService) export(ctx context.Context, record *EmailRecord, result *AnalysisResult) {
	if s.exporter == nil {
		return
	}

	detail := s.details.Build(record, result)
	if err := s.exporter.Export(ctx, detail); err != nil {
		s.stats.AddExportFailure()
		s.logger.Error("Failed to export sponsor detail",
			zap.String("identity", record.Identity),
			zap.Error(err))
	}
}

// Reset clears the processed set and the session counters
func (s *PipelineService) Reset(ctx context.Context) error {
	s.stats.Reset()
	return s.ledger.Reset(ctx)
}

// Stats returns the current session counters
func (s *PipelineService) Stats() StatsSnapshot {
	return s.stats.Snapshot()
}
