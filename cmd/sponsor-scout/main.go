package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/di"
	"github.com/creatorops/sponsor-scout/internal/ports"
	"github.com/creatorops/sponsor-scout/internal/scanner"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	intakes []ports.Intake,
	scan *scanner.Scanner,
	analyzer core.AnalysisClient,
	store core.KeyValueStore,
	exporter core.Exporter,
) error {
	defer logger.Sync()

	if len(intakes) == 0 {
		logger.Fatal("No intakes enabled")
	}

	// Start the scanner and the intakes
	if err := scan.Start(); err != nil {
		logger.Fatal("Failed to start scanner", zap.Error(err))
		return err
	}
	for _, in := range intakes {
		if err := in.Start(); err != nil {
			logger.Fatal("Failed to start intake", zap.Error(err))
			return err
		}
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	for _, in := range intakes {
		if err := in.Stop(); err != nil {
			logger.Error("Failed to stop intake", zap.Error(err))
		}
	}
	if err := scan.Stop(); err != nil {
		logger.Error("Failed to stop scanner", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := analyzer.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close analysis client", zap.Error(err))
		}
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close store", zap.Error(err))
		}
	}
	if closer, ok := exporter.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close exporter", zap.Error(err))
		}
	}

	logger.Info("Shutdown complete")
	return nil
}
