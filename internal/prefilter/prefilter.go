// Package prefilter implements the cheap keyword gate that keeps the
// large majority of non-candidate emails away from remote analysis.
package prefilter

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/cases"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// DefaultKeywords are the terms signaling a sponsorship or partnership
// solicitation. The gate is recall-biased: false positives just cost one
// remote call, false negatives are skipped for the session.
var DefaultKeywords = []string{
	"sponsor",
	"sponsorship",
	"partnership",
	"partner",
	"collaboration",
	"collab",
	"brand deal",
	"brand ambassador",
	"paid promotion",
	"promo code",
	"affiliate",
	"influencer",
	"marketing opportunity",
	"work with you",
	"per post",
}

// Prefilter is a case-insensitive substring gate over subject and body
type Prefilter struct {
	keywords []string
	logger   *zap.Logger
}

// New creates a prefilter. Empty keyword lists fall back to the defaults.
func New(keywords []string, logger *zap.Logger) *Prefilter {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}

	folder := cases.Fold()
	folded := make([]string, len(keywords))
	for i, kw := range keywords {
		folded[i] = folder.String(strings.TrimSpace(kw))
	}

	return &Prefilter{
		keywords: folded,
		logger:   logger,
	}
}

// IsCandidate reports whether the record contains at least one keyword
// and is therefore worth a remote analysis call
func (p *Prefilter) IsCandidate(record *core.EmailRecord) bool {
	haystack := cases.Fold().String(record.Subject + " " + record.Body)

	for _, kw := range p.keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(haystack, kw) {
			p.logger.Debug("Prefilter matched keyword",
				zap.String("identity", record.Identity),
				zap.String("keyword", kw))
			return true
		}
	}
	return false
}
