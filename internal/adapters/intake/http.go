// Package intake implements the inbound surfaces that feed the pipeline.
package intake

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/page"
	"github.com/creatorops/sponsor-scout/internal/bus"
	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/scanner"
)

// outcomeBufferSize bounds the recent-outcomes buffer served to polling
// presentation collaborators
const outcomeBufferSize = 100

// HTTPIntake receives DOM snapshots from the browser collaborator and
// serves pipeline state back to it
type HTTPIntake struct {
	listenAddr  string
	adapter     *page.SnapshotAdapter
	scan        *scanner.Scanner
	pipeline    *core.PipelineService
	events      *bus.Bus
	logger      *zap.Logger
	server      *http.Server
	unsubscribe func()

	mu     sync.Mutex
	recent []*core.Outcome
}

// NewHTTPIntake creates the HTTP intake
func NewHTTPIntake(
	listenAddr string,
	adapter *page.SnapshotAdapter,
	scan *scanner.Scanner,
	pipeline *core.PipelineService,
	events *bus.Bus,
	logger *zap.Logger,
) *HTTPIntake {
	return &HTTPIntake{
		listenAddr: listenAddr,
		adapter:    adapter,
		scan:       scan,
		pipeline:   pipeline,
		events:     events,
		logger:     logger,
	}
}

// Start begins serving and collecting outcomes
func (h *HTTPIntake) Start() error {
	ch, unsubscribe := h.events.Subscribe(outcomeBufferSize)
	h.unsubscribe = unsubscribe
	go h.collect(ch)

	h.server = &http.Server{
		Addr:    h.listenAddr,
		Handler: h.routes(),
	}

	h.logger.Info("HTTP intake starting", zap.String("address", h.listenAddr))
	go func() {
		if err := h.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			h.logger.Error("HTTP intake server error", zap.Error(err))
		}
	}()
	return nil
}

// Stop shuts the server down
func (h *HTTPIntake) Stop() error {
	if h.unsubscribe != nil {
		h.unsubscribe()
	}
	if h.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return h.server.Shutdown(ctx)
}

func (h *HTTPIntake) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/healthz", h.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/snapshots", h.handleSnapshot)
		r.Get("/outcomes", h.handleOutcomes)
		r.Get("/stats", h.handleStats)
		r.Post("/reset", h.handleReset)
	})
	return r
}

func (h *HTTPIntake) collect(ch <-chan *core.Outcome) {
	for outcome := range ch {
		h.mu.Lock()
		h.recent = append(h.recent, outcome)
		if len(h.recent) > outcomeBufferSize {
			h.recent = h.recent[len(h.recent)-outcomeBufferSize:]
		}
		h.mu.Unlock()
	}
}

func (h *HTTPIntake) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSnapshot replaces the current page snapshot and schedules a
// debounced re-scan
func (h *HTTPIntake) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	if err := h.adapter.LoadJSON(r.Body); err != nil {
		h.logger.Warn("Rejected malformed snapshot", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	h.scan.Notify()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (h *HTTPIntake) handleOutcomes(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	outcomes := make([]*core.Outcome, len(h.recent))
	copy(outcomes, h.recent)
	h.mu.Unlock()

	dtos := make([]outcomeDTO, 0, len(outcomes))
	for _, o := range outcomes {
		dtos = append(dtos, toOutcomeDTO(o))
	}
	writeJSON(w, http.StatusOK, dtos)
}

func (h *HTTPIntake) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.pipeline.Stats())
}

func (h *HTTPIntake) handleReset(w http.ResponseWriter, r *http.Request) {
	if err := h.pipeline.Reset(r.Context()); err != nil {
		h.logger.Error("Failed to reset session", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	h.mu.Lock()
	h.recent = nil
	h.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type outcomeDTO struct {
	ProcessingID   string    `json:"processingId"`
	Identity       string    `json:"identity"`
	Subject        string    `json:"subject"`
	Sender         string    `json:"sender"`
	SourceURL      string    `json:"sourceUrl"`
	Skipped        bool      `json:"skipped"`
	SkipReason     string    `json:"skipReason,omitempty"`
	RiskScore      *int      `json:"riskScore,omitempty"`
	Status         string    `json:"status,omitempty"`
	IsSponsor      bool      `json:"isSponsor"`
	ConfidenceTier string    `json:"confidenceTier,omitempty"`
	Summary        string    `json:"summary,omitempty"`
	ProcessedAt    time.Time `json:"processedAt"`
}

func toOutcomeDTO(o *core.Outcome) outcomeDTO {
	dto := outcomeDTO{
		ProcessingID: o.ProcessingID,
		Identity:     o.Record.Identity,
		Subject:      o.Record.Subject,
		Sender:       o.Record.Sender,
		SourceURL:    o.Record.SourceURL,
		Skipped:      o.Skipped,
		SkipReason:   string(o.SkipReason),
		IsSponsor:    o.Verdict.IsSponsor,
		ProcessedAt:  o.ProcessedAt,
	}
	if o.Result != nil {
		risk := o.Result.RiskScore
		dto.RiskScore = &risk
		dto.Status = string(o.Result.Status)
		dto.Summary = o.Result.Summary
		dto.ConfidenceTier = string(o.Verdict.ConfidenceTier)
	}
	return dto
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
