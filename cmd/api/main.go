package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	jwtadapter "pet-care-tracker/internal/adapters/auth/jwtauth"
	pg "pet-care-tracker/internal/adapters/storage/postgres"
	"pet-care-tracker/internal/platform/config"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"
	"pet-care-tracker/internal/router"
)

// @title Pet Care Tracker API
// @version 1.0
// @description Backend de registro de cuidados de mascotas por usuario.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	opts := router.Options{Logger: log}

	if cfg.DBDSN != "" {
		db, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("postgres unavailable", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("no DB_DSN set, using in-memory storage", nil)
	}

	var verifier auth.AuthVerifier
	if cfg.JWTSecret != "" {
		verifier = jwtadapter.NewVerifier(cfg.JWTSecret)
	} else {
		log.Warn("no JWT_SECRET set, accepting X-Debug-User-ID (dev mode)", nil)
	}
	opts.AuthVerifier = verifier

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
