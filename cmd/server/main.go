package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akorchak/pathfinder/internal/api"
	"github.com/akorchak/pathfinder/internal/cache"
	"github.com/akorchak/pathfinder/internal/config"
	"github.com/akorchak/pathfinder/internal/dispatch"
	"github.com/akorchak/pathfinder/internal/graph"
	"github.com/akorchak/pathfinder/internal/metrics"
	"github.com/akorchak/pathfinder/internal/solver"
)

func main() {
	addr := flag.String("addr", "", "HTTP listen address (overrides config)")
	cfgPath := flag.String("config", "configs/pathfinder.yaml", "Path to service YAML config")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// ── Load config ──────────────────────────────────────────────────────────
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		slog.Error("config validation failed", "err", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	// ── Load initial graph ────────────────────────────────────────────────────
	store := graph.NewStore()
	loader := graph.NewLoader(cfg.Graph.Path)
	def, err := loader.Load()
	if err != nil {
		slog.Error("failed to read graph definition", "err", err)
		os.Exit(1)
	}
	snap, err := store.Load(def)
	if err != nil {
		slog.Error("graph definition invalid", "err", err)
		os.Exit(1)
	}
	metrics.GraphNodes.Set(float64(snap.NodeCount()))
	metrics.GraphVersion.Set(float64(snap.Version()))
	slog.Info("graph loaded", "version", snap.Version(), "nodes", snap.NodeCount(), "edges", snap.EdgeCount())

	// ── Dispatcher ────────────────────────────────────────────────────────────
	var solverOpts []solver.Option
	if cfg.Graph.Heuristic == "euclidean" {
		solverOpts = append(solverOpts, solver.WithHeuristic(solver.EuclideanHeuristic))
	}
	disp := dispatch.New(store, cache.New(cfg.Cache.Capacity), dispatch.Conf{
		SolveTimeout:  time.Duration(cfg.Solver.TimeoutMs) * time.Millisecond,
		RateRequests:  cfg.RateLimit.Requests,
		RateWindow:    time.Duration(cfg.RateLimit.WindowSeconds) * time.Second,
		RateBurst:     cfg.RateLimit.Burst,
		SolverOptions: solverOpts,
	})

	// ── Hot-reload watcher ────────────────────────────────────────────────────
	loader.OnChange(func(def *graph.Definition) {
		snap, err := store.Load(def)
		if err != nil {
			metrics.GraphReloads.WithLabelValues("invalid").Inc()
			slog.Warn("hot-reload skipped: graph invalid, previous snapshot kept", "err", err)
			return
		}
		metrics.GraphReloads.WithLabelValues("ok").Inc()
		metrics.GraphNodes.Set(float64(snap.NodeCount()))
		metrics.GraphVersion.Set(float64(snap.Version()))
		slog.Info("graph hot-reloaded", "version", snap.Version(), "nodes", snap.NodeCount())
	})
	stopWatch, err := loader.Watch()
	if err != nil {
		slog.Warn("graph watcher unavailable (hot-reload disabled)", "err", err)
	} else {
		defer stopWatch()
	}

	// ── HTTP server ───────────────────────────────────────────────────────────
	handler := api.New(disp, store, loader)
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutMs) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutMs) * time.Millisecond,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeoutMs) * time.Millisecond,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("shutting down…")

	shutCtx, shutCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutCancel()
	_ = srv.Shutdown(shutCtx)
	slog.Info("goodbye")
}
