package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"

	"tidv/internal/guid"
	"tidv/internal/platform/config"
	"tidv/internal/platform/httpserver"
	"tidv/internal/platform/logger"
	"tidv/internal/platform/middleware"
)

func main() {
	cfg := config.GUIDFromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(log))
	guid.New(cfg.NINO, log).Register(r)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting guid resolver", "addr", cfg.Addr)
	if err := httpserver.Run(ctx, httpserver.New(cfg.Addr, r), cfg.ShutdownTimeout, log); err != nil {
		log.Error("guid resolver exited", "error", err)
		os.Exit(1)
	}
}
