// Package scanner drives the pipeline from page-change notifications. A
// fixed debounce coalesces notification bursts into one re-scan pass.
package scanner

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
)

// DefaultDebounce is the coalescing window for change notifications
const DefaultDebounce = 1000 * time.Millisecond

// Scanner re-scans the page adapter whenever the page changes. Per node,
// the dedupe gate runs synchronously in the scan pass and the analysis
// runs asynchronously; in-flight analyses are never cancelled.
type Scanner struct {
	adapter  core.PageAdapter
	pipeline *core.PipelineService
	debounce time.Duration
	notifyCh chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	logger   *zap.Logger
}

// New creates a scanner. A non-positive debounce uses the default.
func New(adapter core.PageAdapter, pipeline *core.PipelineService, debounce time.Duration, logger *zap.Logger) *Scanner {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Scanner{
		adapter:  adapter,
		pipeline: pipeline,
		debounce: debounce,
		notifyCh: make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		logger:   logger,
	}
}

// Notify signals that the page changed. Non-blocking; notifications
// arriving while one is pending are coalesced.
func (s *Scanner) Notify() {
	select {
	case s.notifyCh <- struct{}{}:
	default:
	}
}

// Start runs the scan loop until Stop
func (s *Scanner) Start() error {
	go s.loop()
	return nil
}

// Stop terminates the scan loop. In-flight analyses keep running; their
// results are published whenever they land.
func (s *Scanner) Stop() error {
	close(s.stopCh)
	<-s.doneCh
	return nil
}

func (s *Scanner) loop() {
	defer close(s.doneCh)

	for {
		select {
		case <-s.stopCh:
			return
		case <-s.notifyCh:
			timer := time.NewTimer(s.debounce)
		coalesce:
			for {
				select {
				case <-s.notifyCh:
					// absorbed into the pending pass
				case <-timer.C:
					break coalesce
				case <-s.stopCh:
					timer.Stop()
					return
				}
			}
			s.scan()
		}
	}
}

func (s *Scanner) scan() {
	ctx := context.Background()

	nodes, err := s.adapter.Candidates(ctx)
	if err != nil {
		s.logger.Error("Failed to read candidate nodes", zap.Error(err))
		return
	}

	s.logger.Debug("Scanning page", zap.Int("candidates", len(nodes)))
	for _, node := range nodes {
		s.pipeline.ProcessAsync(ctx, node)
	}
}
