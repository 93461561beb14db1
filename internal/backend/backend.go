// Package backend opens the configured blob store implementation.
package backend

import (
	"fmt"

	"stunden/internal/blob"
	"stunden/internal/config"
	"stunden/internal/log"
)

// Type identifies a blob store implementation.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
)

// IsValid returns true if the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Types returns all valid backend types.
func Types() []Type {
	return []Type{FileBackend, SQLiteBackend}
}

// Open creates the blob store selected by the configuration.
func Open(cfg *config.Config, logger *log.Logger) (blob.Store, error) {
	backendType := Type(cfg.DataBackend)
	if !backendType.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s (valid: %v)", cfg.DataBackend, Types())
	}

	logger = logger.WithComponent(log.ComponentBackend)

	switch backendType {
	case FileBackend:
		store, err := blob.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initialize file backend: %w", err)
		}
		logger.Info("Initialized file backend", "data_dir", cfg.DataDir)
		return store, nil

	case SQLiteBackend:
		store, err := blob.NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite backend: %w", err)
		}
		logger.Info("Initialized sqlite backend", "db_path", cfg.SQLiteDBPath)
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported backend type: %s", backendType)
	}
}
