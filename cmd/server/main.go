// Package main hosts the challenges as remote services: one challenge over
// raw TCP, and optionally an HTTP API, with every attempt recorded in the
// attempt log.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/flaggate/internal/challenge"
	"github.com/atinyakov/flaggate/internal/config"
	"github.com/atinyakov/flaggate/internal/db"
	"github.com/atinyakov/flaggate/internal/logger"
	"github.com/atinyakov/flaggate/internal/repository"
	"github.com/atinyakov/flaggate/internal/server/handler/http"
	"github.com/atinyakov/flaggate/internal/server/tcp"
	"github.com/atinyakov/flaggate/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	if options.ShowVersion {
		fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
		fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))
		return
	}

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	zapLogger := log.Log.With(zap.String("version", cmp.Or(version, "N/A")))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Attempt log: PostgreSQL when a DSN is given, memory otherwise.
	var repo service.AttemptRepository
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		defer postgresDB.Close()

		db.StartAttemptCleaner(ctx, postgresDB,
			time.Hour,                // interval
			options.AttemptRetention, // retention
			zapLogger,
		)
		repo = repository.NewPostgresAttemptRepository(postgresDB)
	} else {
		zapLogger.Warn("no database configured, attempts are kept in memory")
		repo = repository.NewMemoryAttemptRepository()
	}

	attempts := service.NewAttemptService(repo, zapLogger,
		challenge.ReadIt(options.FlagFile),
		challenge.Lockbox(""),
	)
	if !slices.Contains(attempts.Challenges(), options.Challenge) {
		zapLogger.Fatal("unknown challenge",
			zap.String("challenge", options.Challenge),
			zap.Strings("available", attempts.Challenges()))
	}

	if options.HTTPAddress != "" {
		handler := &http.AttemptHandler{AttemptService: attempts, Logger: zapLogger}
		server := &nethttp.Server{
			Addr:              options.HTTPAddress,
			Handler:           http.NewRouter(handler, zapLogger),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			zapLogger.Info("starting HTTP server", zap.String("addr", options.HTTPAddress))
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
				zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Shutdown(shutdownCtx)
		}()
	}

	tcpServer := &tcp.Server{
		Addr:           options.Address,
		Challenge:      options.Challenge,
		Player:         attempts,
		Logger:         zapLogger,
		SessionTimeout: 5 * time.Minute,
	}
	if err := tcpServer.ListenAndServe(ctx); err != nil {
		zapLogger.Error("challenge server stopped", zap.Error(err))
		return
	}
	zapLogger.Info("shut down")
}
