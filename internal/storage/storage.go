// Package storage opens the configured key-value backend and builds the
// task store on top of it.
package storage

import (
	"fmt"
	"log/slog"

	"todo/internal/config"
	"todo/internal/kv"
	"todo/internal/kv/badgerkv"
	"todo/internal/kv/sqlitekv"
	"todo/internal/persist"
	"todo/internal/store"
)

// Session is an opened store and the backend it persists to. Close it when
// the process is done with the store.
type Session struct {
	Store   *store.Store
	Adapter *persist.Adapter
	KV      kv.Store
}

// Close closes the backend.
func (s *Session) Close() error {
	return s.KV.Close()
}

// OpenKV opens the backend named by cfg.
func OpenKV(cfg *config.Config, logger *slog.Logger) (kv.Store, error) {
	switch cfg.Backend {
	case config.BackendBadger:
		bc := badgerkv.DefaultConfig(cfg.DataPath())
		bc.Logger = logger
		return badgerkv.Open(bc)
	case config.BackendSQLite:
		return sqlitekv.OpenDir(cfg.DataPath())
	case config.BackendMemory:
		return kv.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}

// Open opens the backend and loads the task store from it.
func Open(cfg *config.Config, logger *slog.Logger, opts ...store.Option) (*Session, error) {
	backend, err := OpenKV(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}
	return NewSession(backend, cfg.StorageKey, logger, opts...), nil
}

// NewSession builds a store over an already opened backend.
func NewSession(backend kv.Store, key string, logger *slog.Logger, opts ...store.Option) *Session {
	adapter := persist.New(backend, key, logger)
	opts = append([]store.Option{store.WithLogger(logger)}, opts...)
	return &Session{
		Store:   store.New(adapter, opts...),
		Adapter: adapter,
		KV:      backend,
	}
}
