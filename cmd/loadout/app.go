package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/jask/loadout/internal/config"
	"github.com/jask/loadout/internal/database"
	"github.com/jask/loadout/internal/service"
)

type app struct {
	cfg config.Config
	db  *sql.DB
}

// openApp loads config, migrates and opens the database.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if dbPathFlag != "" {
		cfg.Database.Path = dbPathFlag
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if err := database.RunMigrationsWithDB(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &app{cfg: cfg, db: db}, nil
}

func (a *app) Close() {
	_ = a.db.Close()
}

// session loads the saved state, warning about references that no longer resolve.
func (a *app) session(ctx context.Context) (*service.Session, error) {
	s := service.NewSession(a.db)
	if err := s.Load(ctx, a.cfg.UI.Store); err != nil {
		return nil, err
	}
	for _, missing := range s.Missing() {
		log.Printf("warn: dropped %s", missing)
	}
	return s, nil
}
