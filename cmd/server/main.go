package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	flowhandler "tidv/internal/flow/handler"
	"tidv/internal/identity/reference"
	"tidv/internal/identity/session"
	"tidv/internal/platform/config"
	"tidv/internal/platform/httpserver"
	"tidv/internal/platform/logger"
	"tidv/internal/platform/metrics"
	"tidv/internal/platform/middleware"
	httptransport "tidv/internal/transport/http"
	"tidv/internal/verification"
	verificationhandler "tidv/internal/verification/handler"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	data, err := loadReferenceData(cfg.ReferenceDataFile, log)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(reg)

	svc := verification.New(data, log, verification.WithMetrics(m))
	completion := session.Completion{
		AuthorizationCode: session.DefaultAuthorizationCode,
		State:             session.DefaultOAuthState,
	}
	machine := session.NewTokenMachine(session.WithCompletion(completion.AuthorizationCode, completion.State))
	flow := flowhandler.New(flowhandler.Config{
		Base:           cfg.Base,
		BenefitsBase:   cfg.BenefitsBase,
		KongBase:       cfg.KongBase,
		AccessBase:     cfg.AccessBase,
		RedirectMode:   cfg.RedirectMode,
		ForceAuthLevel: cfg.ForceAuthLevel,
		Completion:     completion,
	}, machine, data, log, m)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:             log,
		Metrics:            m,
		Throttle:           middleware.NewThrottle(cfg.RateLimitRPS, cfg.RateLimitBurst, m, log),
		BearerToken:        cfg.BearerToken,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Flow:               flow,
		Verification:       verificationhandler.New(svc, log),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("starting dth simulator",
		"addr", cfg.Addr,
		"base", cfg.Base,
		"redirect_mode", cfg.RedirectMode,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Run(ctx, httpserver.New(cfg.Addr, router), cfg.ShutdownTimeout, log)
	})
	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		g.Go(func() error {
			return httpserver.Run(ctx, httpserver.New(cfg.MetricsAddr, mux), cfg.ShutdownTimeout, log)
		})
	}
	return g.Wait()
}

func loadReferenceData(path string, log *slog.Logger) (*reference.Data, error) {
	if path == "" {
		return reference.Default(), nil
	}
	data, err := reference.Load(path)
	if err != nil {
		return nil, err
	}
	log.Info("loaded reference data", "path", path)
	return data, nil
}
