// Comando seed: carga datos de demostración en Postgres.
//
//	CLINIC_DATABASE_DSN=postgres://... go run ./cmd/seed -owners 40 -months 6
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	pg "pet-clinic-analytics/internal/adapters/storage/postgres"
	"pet-clinic-analytics/internal/config"
	"pet-clinic-analytics/internal/platform/logger"
	"pet-clinic-analytics/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	owners := flag.Int("owners", cfg.Seed.Owners, "cantidad de dueños")
	months := flag.Int("months", cfg.Seed.Months, "meses de historia")
	randomSeed := flag.Int64("seed", cfg.Seed.RandomSeed, "semilla del generador")
	flag.Parse()

	if cfg.Database.DSN == "" {
		return errors.New("database.dsn is required (CLINIC_DATABASE_DSN or DB_DSN)")
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.ParseFormat(cfg.Log.Format),
		Output: cfg.Log.Output,
		App:    "seed",
	})

	acfg, err := cfg.AnalyticsConfig()
	if err != nil {
		return err
	}

	sqlDB, err := pg.Open(cfg.Database.DSN, pg.PoolConfig{})
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer sqlDB.Close()

	db, err := pg.OpenGorm(sqlDB)
	if err != nil {
		return err
	}
	if err := pg.AutoMigrate(db); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ds := seed.Generate(seed.Options{
		Now:           time.Now(),
		Location:      acfg.Location,
		Practitioners: cfg.Seed.Practitioners,
		Owners:        *owners,
		Months:        *months,
		RandomSeed:    *randomSeed,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := pg.Import(ctx, db, ds); err != nil {
		return err
	}

	log.Info("seed loaded", map[string]any{
		"owners":        len(ds.Owners),
		"pets":          len(ds.Pets),
		"encounters":    len(ds.Encounters),
		"events":        len(ds.ScheduledEvents),
		"prescriptions": len(ds.Prescriptions),
	})
	return nil
}
