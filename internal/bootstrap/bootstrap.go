// Package bootstrap opens the configured storage and builds the service
// container shared by the desktop app and storyctl.
package bootstrap

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	"storyloom/internal/config"
	"storyloom/internal/database"
	"storyloom/internal/repositories"
	"storyloom/internal/services"
)

// Store bundles the services with the handles that must be closed on exit.
type Store struct {
	Services *services.DbServices

	closers []func() error
}

// Open initializes SQLite (always: fonts and dialogues live there) and,
// when cfg.Storage is bolt, a bbolt file for the profile collections.
func Open(cfg *config.Config, log *zap.Logger) (*Store, error) {
	if log == nil {
		log = zap.NewNop()
	}

	db, err := database.Init(database.Config{
		Path:     cfg.DBPath,
		LogLevel: gormLevel(cfg.LogLevel),
		Logger:   log,
	})
	if err != nil {
		return nil, err
	}
	store := &Store{}
	if sqlDB, err := db.DB(); err == nil {
		store.closers = append(store.closers, sqlDB.Close)
	}

	opts := services.Options{
		FontCSSBase:     cfg.FontCSSBase,
		RecentChatLimit: cfg.RecentChatLimit,
		Logger:          log,
	}
	if cfg.Storage == config.StorageBolt {
		bolt, err := database.OpenBolt(cfg.BoltPath)
		if err != nil {
			_ = store.Close()
			return nil, err
		}
		store.closers = append(store.closers, bolt.Close)
		opts.Data = repositories.NewBoltDataRepository(bolt)
	}

	store.Services = services.NewDbServices(db, opts)
	log.Info("storage ready",
		zap.String("storage", cfg.Storage),
		zap.String("db", cfg.DBPath),
		zap.String("bolt", cfg.BoltPath))
	return store, nil
}

// Close releases every handle, last opened first.
func (s *Store) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("close storage: %w", errors.Join(errs...))
	}
	return nil
}

func gormLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return gormlogger.Info
	case "error":
		return gormlogger.Error
	default:
		return gormlogger.Warn
	}
}
