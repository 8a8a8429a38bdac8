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

	"github.com/isdelr/contactos-api/internal/api"
	"github.com/isdelr/contactos-api/internal/auth"
	"github.com/isdelr/contactos-api/internal/config"
	"github.com/isdelr/contactos-api/internal/database"
	"github.com/isdelr/contactos-api/internal/logger"
	"github.com/isdelr/contactos-api/internal/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	ctx := context.Background()

	// Set up database
	db, err := database.New(ctx, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	hasher, err := auth.NewPasswordHasher(cfg.PasswordHasher)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up password hashing")
	}

	// Set up services
	contactService := services.NewContactService(db)
	authService := services.NewAuthService(db, hasher, cfg.TokenTTL)

	// Set up router
	router := api.NewRouter(contactService, authService, api.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AuthEnabled:    cfg.AuthEnabled,
	})

	// Set up server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().
			Int("port", cfg.ServerPort).
			Str("dialect", string(db.Dialect)).
			Bool("auth_enabled", cfg.AuthEnabled).
			Msg("Server starting")
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("ListenAndServe failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
