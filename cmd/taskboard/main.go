package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/warpwanderer/project-management/internal/auth"
	"github.com/warpwanderer/project-management/internal/server"
	"github.com/warpwanderer/project-management/internal/storage/sqlite"
	"github.com/warpwanderer/project-management/internal/util"
)

func main() {
	addrFlag := flag.String("addr", util.EnvOrDefault("TASKBOARD_ADDR", ":8080"), "HTTP listen address")
	dbFlag := flag.String("db", util.EnvOrDefault("TASKBOARD_DB_PATH", "data/taskboard.db"), "Path to sqlite database file")
	staticFlag := flag.String("static", util.EnvOrDefault("TASKBOARD_STATIC_DIR", "web/dist"), "Directory with built frontend")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	logger.Info("taskboard backend starting")

	store, err := sqlite.Open(*dbFlag, logger)
	if err != nil {
		logger.Error("unable to open database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer store.Close()

	tokenCfg := auth.DefaultConfig()
	if secret := os.Getenv("TASKBOARD_JWT_SECRET"); secret != "" {
		tokenCfg.SecretKey = secret
	} else {
		logger.Warn("TASKBOARD_JWT_SECRET not set; using development secret")
	}
	if lifetime := os.Getenv("TASKBOARD_ACCESS_LIFETIME"); lifetime != "" {
		d, err := time.ParseDuration(lifetime)
		if err != nil || d <= 0 {
			logger.Error("invalid TASKBOARD_ACCESS_LIFETIME", slog.String("value", lifetime))
			os.Exit(1)
		}
		tokenCfg.AccessLifetime = d
	}
	tokens := auth.NewManager(tokenCfg)

	srv := server.New(store, tokens, logger, *staticFlag)

	httpServer := &http.Server{
		Addr:    *addrFlag,
		Handler: srv.Engine(),
	}

	go func() {
		logger.Info("starting server", slog.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", slog.String("error", err.Error()))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown server", slog.String("error", err.Error()))
	}

	logger.Info("server stopped")
}
