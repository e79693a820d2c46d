package scanner

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// countingAdapter records how many scan passes touched it
type countingAdapter struct {
	mu    sync.Mutex
	calls int
}

func (a *countingAdapter) Candidates(ctx context.Context) ([]*core.Node, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls++
	return nil, nil
}

func (a *countingAdapter) Subject(node *core.Node) string { return "" }
func (a *countingAdapter) Sender(node *core.Node) string  { return "" }

func (a *countingAdapter) callCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.calls
}

func TestNotifyBurstCoalescesIntoOneScan(t *testing.T) {
	adapter := &countingAdapter{}
	s := New(adapter, nil, 50*time.Millisecond, zap.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	for i := 0; i < 10; i++ {
		s.Notify()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return adapter.callCount() == 1
	}, time.Second, 10*time.Millisecond, "a notify burst produces exactly one scan")

	// Nothing further without new notifications
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, adapter.callCount())
}

func TestSeparatedNotifiesScanSeparately(t *testing.T) {
	adapter := &countingAdapter{}
	s := New(adapter, nil, 20*time.Millisecond, zap.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	s.Notify()
	require.Eventually(t, func() bool { return adapter.callCount() == 1 }, time.Second, 5*time.Millisecond)

	s.Notify()
	require.Eventually(t, func() bool { return adapter.callCount() == 2 }, time.Second, 5*time.Millisecond)
}

func TestStopDuringDebounce(t *testing.T) {
	adapter := &countingAdapter{}
	s := New(adapter, nil, time.Hour, zap.NewNop())

	require.NoError(t, s.Start())
	s.Notify()
	time.Sleep(10 * time.Millisecond)

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not return while a debounce was pending")
	}
	assert.Equal(t, 0, adapter.callCount())
}

func TestNonPositiveDebounceUsesDefault(t *testing.T) {
	s := New(&countingAdapter{}, nil, 0, zap.NewNop())
	assert.Equal(t, DefaultDebounce, s.debounce)
}
