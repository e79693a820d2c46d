package ledger

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/store"
)

// failingStore always errors, standing in for an unavailable backend
type failingStore struct{}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (f *failingStore) Set(ctx context.Context, key, value string) error {
	return errors.New("store down")
}
func (f *failingStore) Delete(ctx context.Context, key string) error {
	return errors.New("store down")
}
func (f *failingStore) Keys(ctx context.Context, prefix string) ([]string, error) {
	return nil, errors.New("store down")
}

func TestShouldProcessOncePerIdentity(t *testing.T) {
	l := New(store.NewMemoryStore(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	assert.True(t, l.ShouldProcess("msg-1"))
	l.MarkProcessed(ctx, "msg-1")
	assert.False(t, l.ShouldProcess("msg-1"))
	assert.True(t, l.ShouldProcess("msg-2"))
	assert.Equal(t, 1, l.Size())
}

func TestMarkProcessedIsIdempotent(t *testing.T) {
	l := New(store.NewMemoryStore(zap.NewNop()), zap.NewNop())
	ctx := context.Background()

	l.MarkProcessed(ctx, "msg-1")
	l.MarkProcessed(ctx, "msg-1")
	assert.Equal(t, 1, l.Size())
}

func TestMarkProcessedPersists(t *testing.T) {
	mem := store.NewMemoryStore(zap.NewNop())
	l := New(mem, zap.NewNop())
	ctx := context.Background()

	l.MarkProcessed(ctx, "msg-1")

	keys, err := mem.Keys(ctx, "processed:"+l.SessionID()+":")
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.True(t, strings.HasSuffix(keys[0], ":msg-1"))
}

func TestStoreFailureDoesNotBlockDedupe(t *testing.T) {
	l := New(&failingStore{}, zap.NewNop())
	ctx := context.Background()

	l.MarkProcessed(ctx, "msg-1")
	assert.False(t, l.ShouldProcess("msg-1"), "in-memory dedupe survives persistence failure")
}

func TestReset(t *testing.T) {
	mem := store.NewMemoryStore(zap.NewNop())
	l := New(mem, zap.NewNop())
	ctx := context.Background()

	l.MarkProcessed(ctx, "msg-1")
	l.MarkProcessed(ctx, "msg-2")
	require.NoError(t, l.Reset(ctx))

	assert.True(t, l.ShouldProcess("msg-1"))
	assert.Equal(t, 0, l.Size())

	keys, err := mem.Keys(ctx, "processed:")
	require.NoError(t, err)
	assert.Empty(t, keys, "persisted entries are removed on reset")
}

func TestResetPropagatesStoreError(t *testing.T) {
	l := New(&failingStore{}, zap.NewNop())
	assert.Error(t, l.Reset(context.Background()))
}
