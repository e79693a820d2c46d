package core

import (
	"time"
)

// Field limits enforced on every EmailRecord
const (
	MaxSubjectLen = 200
	MaxSenderLen  = 100
	MaxBodyLen    = 5000
	MaxAgendaLen  = 120

	// MinNodeTextLen is the minimum visible text length for a node to be
	// treated as email content at all
	MinNodeTextLen = 20
)

// Status is the coarse risk bucket for an analyzed email
type Status string

const (
	StatusSafe    Status = "safe"
	StatusWarning Status = "warning"
	StatusDanger  Status = "danger"
)

// StatusForRisk maps a risk score onto a status when the analysis provider
// did not supply one
func StatusForRisk(riskScore int) Status {
	switch {
	case riskScore <= 40:
		return StatusSafe
	case riskScore <= 70:
		return StatusWarning
	default:
		return StatusDanger
	}
}

// ClampRisk forces a risk score into the valid [0,100] range
func ClampRisk(riskScore int) int {
	if riskScore < 0 {
		return 0
	}
	if riskScore > 100 {
		return 100
	}
	return riskScore
}

// FlagKind classifies an analysis flag
type FlagKind string

const (
	FlagPositive FlagKind = "positive"
	FlagCaution  FlagKind = "caution"
	FlagNegative FlagKind = "negative"
)

// Flag is a single signal attached to an analysis result. Order is
// preserved as delivered by the provider.
type Flag struct {
	Kind    FlagKind
	Message string
}

// EmailRecord is a normalized email extracted from a page node. It lives
// only for the duration of one pipeline invocation; retention is the
// collaborators' concern.
type EmailRecord struct {
	Identity   string
	Subject    string
	Sender     string
	Body       string
	SourceURL  string
	CapturedAt time.Time
}

// ExtractedInfo holds the business details pulled out of a sponsorship
// email, either by the remote analysis or by local heuristics.
type ExtractedInfo struct {
	CompanyName   string
	Website       string
	ContactPerson string
	Offer         string
}

// AnalysisResult is the canonical shape every analysis outcome is mapped
// onto, remote or fallback.
type AnalysisResult struct {
	RiskScore  int
	Status     Status
	IsSponsor  bool
	Info       ExtractedInfo
	Flags      []Flag
	Summary    string
	AnalyzedAt time.Time
	ModelUsed  string
}

// ConfidenceTier is a presentation-only label derived from the risk score
type ConfidenceTier string

const (
	ConfidenceHigh   ConfidenceTier = "HIGH"
	ConfidenceMedium ConfidenceTier = "MEDIUM"
	ConfidenceLow    ConfidenceTier = "LOW"
)

// Verdict is the reconciled output of remote result and local heuristics
type Verdict struct {
	IsSponsor      bool
	ConfidenceTier ConfidenceTier
}

// SponsorDetail is the flattened record handed to export collaborators.
// It is derived from an EmailRecord plus its AnalysisResult and never
// created independently.
type SponsorDetail struct {
	CompanyName   string
	Website       string
	Agenda        string
	RiskScore     int
	ContactPerson string
	MoneyOffered  string
	EmailSubject  string
	CapturedAt    time.Time
}

// SkipReason says why a record never reached remote analysis
type SkipReason string

const (
	SkipNone          SkipReason = ""
	SkipNotCandidate  SkipReason = "not_candidate"
	SkipIgnoredSender SkipReason = "ignored_sender"
)

// Outcome is the record that crosses the pipeline boundary to
// presentation and export collaborators.
type Outcome struct {
	Record       EmailRecord
	Result       *AnalysisResult
	Verdict      Verdict
	Skipped      bool
	SkipReason   SkipReason
	ProcessingID string
	ProcessedAt  time.Time
}

// Node is an opaque content node handed to the pipeline by a page
// adapter. Attrs carries whatever stable attributes the host page exposes
// (thread ids, message ids, element ids); SiblingIndex is the node's
// ordinal position among its siblings, used by the fallback identity.
type Node struct {
	Text         string
	Attrs        map[string]string
	SiblingIndex int
	SourceURL    string
}

// Attr returns the named attribute or "" when absent
func (n *Node) Attr(name string) string {
	if n.Attrs == nil {
		return ""
	}
	return n.Attrs[name]
}
