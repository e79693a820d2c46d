package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/config"
	"github.com/creatorops/sponsor-scout/internal/core"
	"github.com/creatorops/sponsor-scout/internal/export"
)

// ExportFactory creates sponsor detail exporters based on configuration
type ExportFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewExportFactory creates a new export factory
func NewExportFactory(cfg *config.Config, logger *zap.Logger) *ExportFactory {
	return &ExportFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateExporter creates an exporter based on the configuration
func (f *ExportFactory) CreateExporter() (core.Exporter, error) {
	exportType := f.cfg.GetString("export.type")

	switch exportType {
	case "jsonl":
		jsonlPath := f.cfg.GetString("export.jsonl_path")
		if err := os.MkdirAll(filepath.Dir(jsonlPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		return export.NewJSONLExporter(jsonlPath, f.logger)
	case "sqlite":
		sqlitePath := f.cfg.GetString("export.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create export directory: %w", err)
		}
		return export.NewSQLiteExporter(sqlitePath, f.logger)
	default:
		return nil, fmt.Errorf("unsupported export type: %s", exportType)
	}
}
