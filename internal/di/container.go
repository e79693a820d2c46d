package di

import (
	"fmt"

	"go.uber.org/dig"
	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/analysis"
	"github.com/creatorops/sponsor-scout/internal/adapters/intake"
	"github.com/creatorops/sponsor-scout/internal/adapters/page"
	"github.com/creatorops/sponsor-scout/internal/bus"
	"github.com/creatorops/sponsor-scout/internal/config"
	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/extract"
	"github.com/creatorops/sponsor-scout/internal/factory"
	"github.com/creatorops/sponsor-scout/internal/ledger"
	"github.com/creatorops/sponsor-scout/internal/logging"
	"github.com/creatorops/sponsor-scout/internal/ports"
	"github.com/creatorops/sponsor-scout/internal/prefilter"
	"github.com/creatorops/sponsor-scout/internal/scanner"
	"github.com/creatorops/sponsor-scout/internal/whitelist"
)

// BuildContainer creates and configures a dependency injection container
func BuildContainer() (*dig.Container, error) {
	container := dig.New()

	// Register configuration
	if err := container.Provide(config.New); err != nil {
		return nil, err
	}

	// Register logger
	if err := container.Provide(logging.InitLogger); err != nil {
		return nil, err
	}

	// Register factories
	if err := container.Provide(factory.NewAnalysisFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewStoreFactory); err != nil {
		return nil, err
	}
	if err := container.Provide(factory.NewExportFactory); err != nil {
		return nil, err
	}

	// Register analysis client
	if err := container.Provide(func(f *factory.AnalysisFactory) (core.AnalysisClient, error) {
		return f.CreateAnalysisClient()
	}); err != nil {
		return nil, err
	}

	// Register key-value store
	if err := container.Provide(func(f *factory.StoreFactory) (core.KeyValueStore, error) {
		return f.CreateKeyValueStore()
	}); err != nil {
		return nil, err
	}

	// Register exporter
	if err := container.Provide(func(f *factory.ExportFactory) (core.Exporter, error) {
		return f.CreateExporter()
	}); err != nil {
		return nil, err
	}

	// Register page adapter
	if err := container.Provide(page.NewSnapshotAdapter); err != nil {
		return nil, err
	}
	if err := container.Provide(func(a *page.SnapshotAdapter) core.PageAdapter {
		return a
	}); err != nil {
		return nil, err
	}

	// Register extractor
	if err := container.Provide(func(a core.PageAdapter) core.Extractor {
		return extract.New(a)
	}); err != nil {
		return nil, err
	}

	// Register prefilter
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) *prefilter.Prefilter {
		keywords := cfg.GetStringSlice("prefilter.keywords")
		if len(keywords) > 0 {
			logger.Info("Loaded prefilter keywords", zap.Int("count", len(keywords)))
		}
		return prefilter.New(keywords, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(p *prefilter.Prefilter) core.CandidateGate {
		return p
	}); err != nil {
		return nil, err
	}

	// Register sender whitelist
	if err := container.Provide(func(cfg *config.Config, logger *zap.Logger) core.SenderWhitelist {
		entries := cfg.GetStringSlice("prefilter.ignored_senders")
		if len(entries) > 0 {
			logger.Info("Loaded ignored senders", zap.Strings("entries", entries))
		}
		return whitelist.NewChecker(entries, logger)
	}); err != nil {
		return nil, err
	}

	// Register processed-set ledger
	if err := container.Provide(func(store core.KeyValueStore, logger *zap.Logger) core.ProcessedLedger {
		return ledger.New(store, logger)
	}); err != nil {
		return nil, err
	}

	// Register fallback synthesizer and detail builder
	if err := container.Provide(func(gate core.CandidateGate, logger *zap.Logger) core.FallbackSynthesizer {
		return analysis.NewFallback(gate, logger)
	}); err != nil {
		return nil, err
	}
	if err := container.Provide(func(cfg *config.Config) core.DetailBuilder {
		return analysis.NewDetailBuilder(cfg.GetStringSlice("prefilter.keywords"))
	}); err != nil {
		return nil, err
	}

	// Register event bus
	if err := container.Provide(bus.New); err != nil {
		return nil, err
	}
	if err := container.Provide(func(b *bus.Bus) core.Publisher {
		return b
	}); err != nil {
		return nil, err
	}

	// Register session stats
	if err := container.Provide(core.NewSessionStats); err != nil {
		return nil, err
	}

	// Register pipeline service
	if err := container.Provide(core.NewPipelineService); err != nil {
		return nil, err
	}

	// Register scanner
	if err := container.Provide(func(cfg *config.Config, a core.PageAdapter, pipeline *core.PipelineService, logger *zap.Logger) (*scanner.Scanner, error) {
		debounce, err := cfg.GetDuration("scanner.debounce")
		if err != nil {
			return nil, fmt.Errorf("invalid scanner debounce: %w", err)
		}
		return scanner.New(a, pipeline, debounce, logger), nil
	}); err != nil {
		return nil, err
	}

	// Register intakes
	if err := container.Provide(func(
		cfg *config.Config,
		adapter *page.SnapshotAdapter,
		scan *scanner.Scanner,
		pipeline *core.PipelineService,
		events *bus.Bus,
		logger *zap.Logger,
	) []ports.Intake {
		var intakes []ports.Intake
		if cfg.GetBool("intake.http.enabled") {
			intakes = append(intakes, intake.NewHTTPIntake(
				cfg.GetString("intake.http.listen_address"),
				adapter, scan, pipeline, events, logger))
		}
		if cfg.GetBool("intake.smtp.enabled") {
			intakes = append(intakes, intake.NewSMTPIntake(
				cfg.GetString("intake.smtp.listen_address"),
				pipeline, logger))
		}
		return intakes
	}); err != nil {
		return nil, err
	}

	return container, nil
}
