package cmd

import (
	"fmt"

	"change-sync/core/config"
	"change-sync/core/database"
	"change-sync/core/journal"
	"change-sync/core/logger"

	"go.uber.org/zap"
)

// setup loads configuration and builds the application logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, l, nil
}

// openJournal connects to the run history database. The returned close
// function is never nil.
func openJournal(cfg database.Config) (*journal.Journal, func(), error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, func() {}, err
	}

	closeDB := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}

	j, err := journal.New(db)
	if err != nil {
		closeDB()
		return nil, func() {}, err
	}
	return j, closeDB, nil
}
