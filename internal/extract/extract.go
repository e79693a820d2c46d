// Package extract turns raw page nodes into normalized email records and
// provides the shared heuristics for pulling sponsorship details out of
// email text. The heuristics live here and only here; every caller that
// needs a company name, website, contact or money figure goes through
// these functions.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/utils"
)

var (
	reSubjectMarker = regexp.MustCompile(`(?im)^\s*subject:\s*(.+)$`)
	reEmailAddr     = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}`)
	reCompany       = regexp.MustCompile(`\b((?:[A-Z][A-Za-z0-9&.\-]*\s)+(?:Inc|LLC|Corp|Corporation|Ltd|GmbH|Co)\.?)(?:\s|[,.;:]|$)`)
	reURL           = regexp.MustCompile(`https?://[^\s"'<>)]+`)
	reMoney         = regexp.MustCompile(`[$€£]\s?\d[\d,]*(?:\.\d+)?\s?[kK]?|\b\d[\d,]*\s?(?:USD|EUR|GBP|dollars)\b`)
)

// minLineLen is the shortest trimmed line accepted as a derived subject
const minLineLen = 6

// Extractor derives EmailRecords from page nodes. Structured field
// lookups are delegated to the page adapter so the extraction logic stays
// independent of the host page.
type Extractor struct {
	adapter core.PageAdapter
}

// New creates an extractor bound to a page adapter
func New(adapter core.PageAdapter) *Extractor {
	return &Extractor{adapter: adapter}
}

// Record extracts a normalized email record from a node. It returns
// ok=false for nodes whose visible text is too short to be an email;
// that is a silent skip, not an error.
func (e *Extractor) Record(node *core.Node) (*core.EmailRecord, bool) {
	text := strings.TrimSpace(node.Text)
	if len(text) < core.MinNodeTextLen {
		return nil, false
	}

	record := &core.EmailRecord{
		Identity:   Identity(node),
		Subject:    utils.TruncateUTF8(e.subject(node, text), core.MaxSubjectLen),
		Sender:     utils.TruncateUTF8(e.sender(node, text), core.MaxSenderLen),
		Body:       utils.TruncateUTF8(utils.SanitizeUTF8(text), core.MaxBodyLen),
		SourceURL:  node.SourceURL,
		CapturedAt: time.Now(),
	}
	return record, true
}

// subject tries the structured lookup, then a literal Subject: marker,
// then the first non-trivial line. The first candidate to produce a
// non-empty value wins.
func (e *Extractor) subject(node *core.Node, text string) string {
	if s := strings.TrimSpace(e.adapter.Subject(node)); s != "" {
		return s
	}

	if m := reSubjectMarker.FindStringSubmatch(text); m != nil {
		if s := strings.TrimSpace(m[1]); s != "" {
			return s
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if len(line) >= minLineLen {
			return line
		}
	}
	return "(no subject)"
}

// sender tries the structured lookup, then the first address-shaped token
// in the text
func (e *Extractor) sender(node *core.Node, text string) string {
	if s := strings.TrimSpace(e.adapter.Sender(node)); s != "" {
		return s
	}
	if addr := reEmailAddr.FindString(text); addr != "" {
		return addr
	}
	return "unknown"
}

// Company returns the first company-suffix match (Inc/LLC/Corp/...) in
// the text, or ""
func Company(text string) string {
	if m := reCompany.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// Website returns the first URL in the text, or ""
func Website(text string) string {
	return strings.TrimRight(reURL.FindString(text), ".,;")
}

// Money returns the first money figure in the text, or ""
func Money(text string) string {
	return strings.TrimSpace(reMoney.FindString(text))
}

// Info runs the local best-effort extraction over a record. It backs the
// fallback analysis result when the remote classifier is unreachable.
func Info(record *core.EmailRecord) core.ExtractedInfo {
	text := record.Subject + "\n" + record.Body
	return core.ExtractedInfo{
		CompanyName:   Company(text),
		Website:       Website(text),
		ContactPerson: record.Sender,
		Offer:         Money(text),
	}
}

// Agenda derives a short description of what the sender wants: the first
// line mentioning one of the given keywords, else the subject.
func Agenda(record *core.EmailRecord, keywords []string) string {
	for _, line := range strings.Split(record.Body, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < minLineLen {
			continue
		}
		lower := strings.ToLower(trimmed)
		for _, kw := range keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				return utils.TruncateUTF8(trimmed, core.MaxAgendaLen)
			}
		}
	}
	return utils.TruncateUTF8(record.Subject, core.MaxAgendaLen)
}

// Detail flattens a record and its analysis result into the export shape.
// Remote-extracted fields win; local heuristics fill the gaps.
func Detail(record *core.EmailRecord, result *core.AnalysisResult, keywords []string) *core.SponsorDetail {
	local := Info(record)

	detail := &core.SponsorDetail{
		CompanyName:   result.Info.CompanyName,
		Website:       result.Info.Website,
		ContactPerson: result.Info.ContactPerson,
		MoneyOffered:  result.Info.Offer,
		Agenda:        Agenda(record, keywords),
		RiskScore:     result.RiskScore,
		EmailSubject:  record.Subject,
		CapturedAt:    record.CapturedAt,
	}
	if detail.CompanyName == "" {
		detail.CompanyName = local.CompanyName
	}
	if detail.Website == "" {
		detail.Website = local.Website
	}
	if detail.ContactPerson == "" {
		detail.ContactPerson = local.ContactPerson
	}
	if detail.MoneyOffered == "" {
		detail.MoneyOffered = local.Offer
	}
	return detail
}
