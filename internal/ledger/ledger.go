// Package ledger tracks which message identities have already been
// through the pipeline, guaranteeing at most one remote analysis per
// identity per session.
package ledger

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

const keyPrefix = "processed:"

// Ledger is a session-scoped processed set. Membership lives in memory;
// every insertion is additionally persisted to the storage collaborator
// on a best-effort basis. A persistence failure never blocks the
// pipeline, it only risks re-analysis after a restart.
type Ledger struct {
	mu        sync.Mutex
	seen      map[string]struct{}
	store     core.KeyValueStore
	logger    *zap.Logger
	sessionID string
}

// New creates an empty ledger for a fresh session. The session boundary
// is the process start timestamp.
func New(store core.KeyValueStore, logger *zap.Logger) *Ledger {
	return &Ledger{
		seen:      make(map[string]struct{}),
		store:     store,
		logger:    logger,
		sessionID: strconv.FormatInt(time.Now().Unix(), 10),
	}
}

// SessionID returns the identifier scoping this ledger's entries
func (l *Ledger) SessionID() string {
	return l.sessionID
}

// ShouldProcess reports whether an identity has not been seen this
// session. The check is purely in-memory and safe to call before any
// asynchronous work is scheduled.
func (l *Ledger) ShouldProcess(identity string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, ok := l.seen[identity]
	return !ok
}

// MarkProcessed records an identity as seen. The in-memory insert is
// idempotent and always succeeds; the storage write may fail, which is
// logged and otherwise ignored.
func (l *Ledger) MarkProcessed(ctx context.Context, identity string) {
	l.mu.Lock()
	l.seen[identity] = struct{}{}
	l.mu.Unlock()

	if err := l.store.Set(ctx, l.key(identity), "1"); err != nil {
		l.logger.Warn("Failed to persist processed identity, continuing with in-memory dedupe",
			zap.String("identity", identity),
			zap.Error(err))
	}
}

// Size returns the number of identities marked this session
func (l *Ledger) Size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.seen)
}

// Reset clears the processed set and removes this session's persisted
// entries
func (l *Ledger) Reset(ctx context.Context) error {
	l.mu.Lock()
	l.seen = make(map[string]struct{})
	l.mu.Unlock()

	prefix := keyPrefix + l.sessionID + ":"
	keys, err := l.store.Keys(ctx, prefix)
	if err != nil {
		return fmt.Errorf("failed to list persisted ledger keys: %w", err)
	}
	for _, k := range keys {
		if err := l.store.Delete(ctx, k); err != nil {
			return fmt.Errorf("failed to delete ledger key %q: %w", k, err)
		}
	}

	l.logger.Info("Processed set reset", zap.Int("removed", len(keys)))
	return nil
}

func (l *Ledger) key(identity string) string {
	return keyPrefix + l.sessionID + ":" + identity
}
