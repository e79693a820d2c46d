package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/creatorops/sponsor-scout/internal/adapters/store"
	"github.com/creatorops/sponsor-scout/internal/config"
	"github.com/creatorops/sponsor-scout/internal/core"
)

// StoreFactory creates key-value stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateKeyValueStore creates a key-value store based on the configuration
func (f *StoreFactory) CreateKeyValueStore() (core.KeyValueStore, error) {
	storeType := f.cfg.GetString("store.type")

	switch storeType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("store.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		mysqlDSN := f.cfg.GetString("store.mysql_dsn")
		return store.NewMySQLStore(mysqlDSN, f.logger)
	case "redis":
		return store.NewRedisStore(
			f.cfg.GetString("store.redis_addr"),
			f.cfg.GetString("store.redis_password"),
			f.cfg.GetInt("store.redis_db"),
			f.cfg.GetString("store.redis_prefix"),
			f.logger,
		)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}
