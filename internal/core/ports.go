package core

import (
	"context"
)

// AnalysisClient defines the interface for remote email analysis.
// Implementations may fail; the pipeline wraps them so failures degrade
// to a locally synthesized fallback result.
type AnalysisClient interface {
	// Analyze classifies an email and extracts sponsorship details
	Analyze(ctx context.Context, record *EmailRecord) (*AnalysisResult, error)
}

// KeyValueStore defines the storage collaborator used to persist the
// processed-set ledger and session state. Read-after-write within one
// session is the only consistency required.
type KeyValueStore interface {
	// Get retrieves a value, returning ok=false when the key is absent
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores a value
	Set(ctx context.Context, key, value string) error

	// Delete removes a key
	Delete(ctx context.Context, key string) error

	// Keys lists the keys matching a prefix
	Keys(ctx context.Context, prefix string) ([]string, error)
}

// PageAdapter abstracts the concrete host page structure away from the
// pipeline: it locates candidate nodes and reads structured fields where
// the page exposes them.
type PageAdapter interface {
	// Candidates returns the nodes believed to each contain one email
	Candidates(ctx context.Context) ([]*Node, error)

	// Subject returns the structured subject for a node, or "" when the
	// page exposes none
	Subject(node *Node) string

	// Sender returns the structured sender for a node, or "" when the
	// page exposes none
	Sender(node *Node) string
}

// Extractor derives normalized email records from page nodes
type Extractor interface {
	// Record extracts a record, returning ok=false for nodes with no
	// usable content
	Record(node *Node) (*EmailRecord, bool)
}

// CandidateGate decides whether a record is worth remote analysis
type CandidateGate interface {
	IsCandidate(record *EmailRecord) bool
}

// SenderWhitelist names senders and domains that are never classified,
// typically the creator's own contacts and newsletters
type SenderWhitelist interface {
	IsWhitelisted(sender string) bool
}

// ProcessedLedger tracks identities already seen this session
type ProcessedLedger interface {
	// ShouldProcess reports whether the identity is absent from the set
	ShouldProcess(identity string) bool

	// MarkProcessed inserts the identity; idempotent, persistence is
	// best-effort
	MarkProcessed(ctx context.Context, identity string)

	// Reset clears the set for a fresh start within the session
	Reset(ctx context.Context) error
}

// FallbackSynthesizer builds the locally derived analysis result used
// when the remote classifier is unreachable
type FallbackSynthesizer interface {
	Synthesize(record *EmailRecord) *AnalysisResult
}

// DetailBuilder flattens a record and its result into the export shape
type DetailBuilder interface {
	Build(record *EmailRecord, result *AnalysisResult) *SponsorDetail
}

// Publisher delivers outcomes to presentation collaborators with
// at-most-once, best-effort semantics. No retry, no guaranteed delivery.
type Publisher interface {
	Publish(outcome *Outcome)
}

// Exporter receives sponsor details for off-pipeline archival. Invoked
// only for sponsor verdicts.
type Exporter interface {
	Export(ctx context.Context, detail *SponsorDetail) error
}
