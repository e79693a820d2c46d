package core

import (
	"sync"
)

// StatsSnapshot is a point-in-time copy of the session counters
type StatsSnapshot struct {
	Scanned         int `json:"scanned"`
	ExtractionMiss  int `json:"extractionMisses"`
	Duplicates      int `json:"duplicates"`
	NonCandidates   int `json:"nonCandidates"`
	Analyzed        int `json:"analyzed"`
	Fallbacks       int `json:"fallbacks"`
	Sponsors        int `json:"sponsors"`
	ExportFailures  int `json:"exportFailures"`
	PersistFailures int `json:"persistFailures"`
}

// SessionStats holds the pipeline counters for one session. It is an
// explicit store passed into the pipeline by injection, with its own
// reset, rather than ambient package state.
type SessionStats struct {
	mu   sync.Mutex
	snap StatsSnapshot
}

// NewSessionStats creates zeroed counters
func NewSessionStats() *SessionStats {
	return &SessionStats{}
}

// Snapshot returns a copy of the current counters
func (s *SessionStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Reset zeroes all counters
func (s *SessionStats) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = StatsSnapshot{}
}

func (s *SessionStats) add(f func(*StatsSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f(&s.snap)
}

// AddScanned counts one node handed to the pipeline
func (s *SessionStats) AddScanned() { s.add(func(x *StatsSnapshot) { x.Scanned++ }) }

// AddExtractionMiss counts a node with no usable content
func (s *SessionStats) AddExtractionMiss() { s.add(func(x *StatsSnapshot) { x.ExtractionMiss++ }) }

// AddDuplicate counts an identity already in the processed set
func (s *SessionStats) AddDuplicate() { s.add(func(x *StatsSnapshot) { x.Duplicates++ }) }

// AddNonCandidate counts a record rejected by the keyword gate
func (s *SessionStats) AddNonCandidate() { s.add(func(x *StatsSnapshot) { x.NonCandidates++ }) }

// AddAnalyzed counts a completed analysis, remote or fallback
func (s *SessionStats) AddAnalyzed() { s.add(func(x *StatsSnapshot) { x.Analyzed++ }) }

// AddFallback counts an analysis served by the local fallback
func (s *SessionStats) AddFallback() { s.add(func(x *StatsSnapshot) { x.Fallbacks++ }) }

// AddSponsor counts a sponsor verdict
func (s *SessionStats) AddSponsor() { s.add(func(x *StatsSnapshot) { x.Sponsors++ }) }

// AddExportFailure counts a failed export call
func (s *SessionStats) AddExportFailure() { s.add(func(x *StatsSnapshot) { x.ExportFailures++ }) }
