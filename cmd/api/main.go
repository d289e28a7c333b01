// @title Pet Clinic Analytics API
// @version 1.0
// @description Métricas agregadas del dashboard de la clínica veterinaria.
// @BasePath /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	rediscache "pet-clinic-analytics/internal/adapters/cache/redis"
	mem "pet-clinic-analytics/internal/adapters/storage/memory"
	pg "pet-clinic-analytics/internal/adapters/storage/postgres"
	"pet-clinic-analytics/internal/config"
	"pet-clinic-analytics/internal/domain/analytics"
	"pet-clinic-analytics/internal/domain/clinic"
	"pet-clinic-analytics/internal/domain/tips"
	"pet-clinic-analytics/internal/platform/logger"
	"pet-clinic-analytics/internal/router"
	"pet-clinic-analytics/internal/seed"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		Format: logger.ParseFormat(cfg.Log.Format),
		Output: cfg.Log.Output,
		App:    cfg.App.Name,
	})
	if s, ok := log.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	acfg, err := cfg.AnalyticsConfig()
	if err != nil {
		return err
	}

	gw, closeStore, err := openGateway(cfg, acfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var cache analytics.PayloadCache
	if cfg.Redis.Addr != "" {
		c, err := rediscache.New(rediscache.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			// sin cache seguimos sirviendo: cada request lee del almacén
			log.Warn("redis unavailable, payload cache disabled", map[string]any{"error": err})
		} else {
			defer c.Close()
			cache = c
		}
	}

	r := router.NewRouter(router.Options{
		Gateway:   gw,
		Analytics: acfg,
		Tips:      tips.NewService(tips.DefaultTips, cfg.Tips.TTL),
		Cache:     cache,
		Logger:    log,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.App.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openGateway: con DSN usa Postgres; sin DSN, memoria con datos demo.
func openGateway(cfg *config.Config, acfg analytics.Config, log logger.Logger) (clinic.Gateway, func(), error) {
	if cfg.Database.DSN == "" {
		ds := seed.Generate(seed.Options{
			Now:           time.Now(),
			Location:      acfg.Location,
			Practitioners: cfg.Seed.Practitioners,
			Owners:        cfg.Seed.Owners,
			Months:        cfg.Seed.Months,
			RandomSeed:    cfg.Seed.RandomSeed,
		})
		log.Info("using in-memory store with demo data", map[string]any{
			"owners":     len(ds.Owners),
			"pets":       len(ds.Pets),
			"encounters": len(ds.Encounters),
		})
		return mem.NewRecordsRepoFrom(ds), func() {}, nil
	}

	sqlDB, err := pg.Open(cfg.Database.DSN, pg.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	closeDB := func() { _ = sqlDB.Close() }

	db, err := pg.OpenGorm(sqlDB)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("open gorm: %w", err)
	}
	if cfg.Database.AutoMigrate {
		if err := pg.AutoMigrate(db); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
	}

	log.Info("using postgres store", nil)
	return pg.NewRecordsRepo(db), closeDB, nil
}
