package page

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

func TestLoadReplacesSnapshotWholesale(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())
	ctx := context.Background()

	a.Load(&SnapshotDoc{
		SourceURL: "https://mail.example.com",
		Nodes: []SnapshotNode{
			{Text: "first email"},
			{Text: "second email"},
		},
	})

	nodes, err := a.Candidates(ctx)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "https://mail.example.com", nodes[0].SourceURL)
	assert.Equal(t, 0, nodes[0].SiblingIndex)
	assert.Equal(t, 1, nodes[1].SiblingIndex)

	a.Load(&SnapshotDoc{Nodes: []SnapshotNode{{Text: "only email"}}})
	nodes, err = a.Candidates(ctx)
	require.NoError(t, err)
	assert.Len(t, nodes, 1, "the previous snapshot is gone")
}

func TestLoadJSON(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())

	doc := `{
		"sourceUrl": "https://mail.example.com/inbox",
		"nodes": [
			{"text": "an email", "attrs": {"data-thread-id": "t1", "data-subject": "Hi"}, "index": 3}
		]
	}`
	require.NoError(t, a.LoadJSON(strings.NewReader(doc)))

	nodes, err := a.Candidates(context.Background())
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "t1", nodes[0].Attr("data-thread-id"))
	assert.Equal(t, 3, nodes[0].SiblingIndex)
}

func TestLoadJSONMalformed(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())
	assert.Error(t, a.LoadJSON(strings.NewReader("{not json")))
}

func TestSubjectAttrPriority(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())

	node := &core.Node{Attrs: map[string]string{"subject": "plain", "data-subject": "structured"}}
	assert.Equal(t, "structured", a.Subject(node))

	node = &core.Node{Attrs: map[string]string{"subject": "plain"}}
	assert.Equal(t, "plain", a.Subject(node))

	assert.Equal(t, "", a.Subject(&core.Node{}))
}

func TestSenderAttrPriority(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())

	node := &core.Node{Attrs: map[string]string{"from": "x@y.com", "data-sender-email": "jane@acme.com"}}
	assert.Equal(t, "jane@acme.com", a.Sender(node))

	node = &core.Node{Attrs: map[string]string{"email": "e@y.com"}}
	assert.Equal(t, "e@y.com", a.Sender(node))
}

func TestCandidatesReturnsCopy(t *testing.T) {
	a := NewSnapshotAdapter(zap.NewNop())
	a.Load(&SnapshotDoc{Nodes: []SnapshotNode{{Text: "one"}, {Text: "two"}}})

	nodes, err := a.Candidates(context.Background())
	require.NoError(t, err)
	nodes[0] = nil

	again, err := a.Candidates(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, again[0], "callers cannot mutate the held snapshot slice")
}
