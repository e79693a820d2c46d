// Package page implements the page adapter: it holds the most recent DOM
// snapshot delivered by the browser collaborator and answers the
// pipeline's structured-field lookups, keeping the extraction logic
// independent of the concrete host page.
package page

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// Attribute candidates consulted for structured fields, in priority
// order. These follow the conventions webmail DOMs and the snapshot
// collaborator expose.
var (
	subjectAttrs = []string{"data-subject", "subject"}
	senderAttrs  = []string{"data-sender-email", "data-sender", "email", "from"}
)

// SnapshotDoc is the wire shape of one DOM snapshot
type SnapshotDoc struct {
	SourceURL string         `json:"sourceUrl"`
	Nodes     []SnapshotNode `json:"nodes"`
}

// SnapshotNode is one candidate content node in a snapshot
type SnapshotNode struct {
	Text  string            `json:"text"`
	Attrs map[string]string `json:"attrs"`
	Index int               `json:"index"`
}

// SnapshotAdapter serves candidate nodes from the most recently loaded
// snapshot. Loading replaces the previous snapshot wholesale; the
// browser side always sends the full current view.
type SnapshotAdapter struct {
	mu     sync.RWMutex
	nodes  []*core.Node
	logger *zap.Logger
}

// NewSnapshotAdapter creates an empty snapshot adapter
func NewSnapshotAdapter(logger *zap.Logger) *SnapshotAdapter {
	return &SnapshotAdapter{logger: logger}
}

// Load replaces the current snapshot
func (a *SnapshotAdapter) Load(doc *SnapshotDoc) {
	nodes := make([]*core.Node, 0, len(doc.Nodes))
	for i, n := range doc.Nodes {
		// An omitted index decodes as 0; the slice position is the ordinal.
		idx := n.Index
		if idx == 0 {
			idx = i
		}
		nodes = append(nodes, &core.Node{
			Text:         n.Text,
			Attrs:        n.Attrs,
			SiblingIndex: idx,
			SourceURL:    doc.SourceURL,
		})
	}

	a.mu.Lock()
	a.nodes = nodes
	a.mu.Unlock()

	a.logger.Debug("Snapshot loaded",
		zap.String("source_url", doc.SourceURL),
		zap.Int("nodes", len(nodes)))
}

// LoadJSON decodes and loads a snapshot document
func (a *SnapshotAdapter) LoadJSON(r io.Reader) error {
	var doc SnapshotDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return fmt.Errorf("failed to decode snapshot document: %w", err)
	}
	a.Load(&doc)
	return nil
}

// Candidates returns the nodes of the current snapshot
func (a *SnapshotAdapter) Candidates(ctx context.Context) ([]*core.Node, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	out := make([]*core.Node, len(a.nodes))
	copy(out, a.nodes)
	return out, nil
}

// Subject returns the structured subject attribute, or ""
func (a *SnapshotAdapter) Subject(node *core.Node) string {
	for _, attr := range subjectAttrs {
		if v := node.Attr(attr); v != "" {
			return v
		}
	}
	return ""
}

// Sender returns the structured sender attribute, or ""
func (a *SnapshotAdapter) Sender(node *core.Node) string {
	for _, attr := range senderAttrs {
		if v := node.Attr(attr); v != "" {
			return v
		}
	}
	return ""
}
