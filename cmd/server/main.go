package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"google.golang.org/grpc"

	"github.com/xtding233/volcano-backend/internal/api"
	"github.com/xtding233/volcano-backend/internal/game"
	"github.com/xtding233/volcano-backend/internal/logger"
	"github.com/xtding233/volcano-backend/internal/mapdata"
	"github.com/xtding233/volcano-backend/internal/store"
)

func main() {
	configFile := flag.String("config", "config/server.yaml", "Path to server config YAML file")
	loggingConfig := flag.String("logging", "config/logging.yaml", "Path to logging config YAML file")
	httpAddr := flag.String("addr", "", "HTTP listen address (overrides config)")
	grpcAddr := flag.String("grpc-addr", "", "gRPC listen address (overrides config)")
	dataDir := flag.String("data-dir", "", "Directory with layouts.bin and set_pieces.yaml (overrides config)")
	noCache := flag.Bool("no-cache", false, "Do not cache predictions in the database")
	flag.Parse()

	logConfig, _ := logger.LoadConfig(*loggingConfig)
	if err := logger.Initialize(logConfig); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	cfg, err := LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load server config: %v", err)
	}
	if *httpAddr != "" {
		cfg.HTTPAddr = *httpAddr
	}
	if *grpcAddr != "" {
		cfg.GRPCAddr = *grpcAddr
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tables := mapdata.NewLoader(cfg.DataDir)
	t, err := tables.Load()
	if err != nil {
		log.Fatalf("Failed to load map tables: %v", err)
	}
	logger.Info("Map tables loaded", "data_dir", cfg.DataDir, "layouts", t.NumLayouts(), "version", t.Version())

	profiles := game.NewLoader(cfg.ConfigDir)

	var cache api.PredictionCache
	if !*noCache {
		st, err := store.Open(ctx, cfg.Store)
		if err != nil {
			log.Fatalf("Failed to open prediction cache: %v", err)
		}
		defer st.Close()
		if n, err := st.PurgeStale(ctx, t.Version()); err != nil {
			logger.Warning("Failed to purge stale predictions", "error", err)
		} else if n > 0 {
			logger.Info("Purged stale predictions", "count", n)
		}
		cache = st
	}

	svc := api.NewService(tables, profiles, cache)

	if cfg.WatchInterval > 0 {
		paths := append(tables.Paths(), profiles.Paths(profileNames(cfg.ConfigDir)...)...)
		w := game.NewFileWatcher(paths, cfg.WatchInterval, func(path string) {
			if err := svc.Reload(ctx); err != nil {
				logger.Error("Reload failed", "path", path, "error", err)
			}
		})
		go w.Run(ctx)
	}

	httpSrv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           api.NewHandler(svc, cfg.WebSocket),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("HTTP server listening", "address", cfg.HTTPAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	var grpcSrv *grpc.Server
	if cfg.GRPCAddr != "" {
		lis, err := net.Listen("tcp", cfg.GRPCAddr)
		if err != nil {
			log.Fatalf("Failed to listen on %s: %v", cfg.GRPCAddr, err)
		}
		grpcSrv = grpc.NewServer()
		api.RegisterPredictorServer(grpcSrv, api.NewGRPCServer(svc))
		go func() {
			logger.Info("gRPC server listening", "address", cfg.GRPCAddr)
			if err := grpcSrv.Serve(lis); err != nil {
				logger.Error("gRPC server stopped", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP shutdown failed", "error", err)
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
}

// profileNames lists the profiles present at startup so the watcher polls them too.
func profileNames(configDir string) []string {
	matches, _ := filepath.Glob(filepath.Join(configDir, "profiles", "*.yaml"))
	var names []string
	for _, m := range matches {
		name := filepath.Base(m)
		name = name[:len(name)-len(".yaml")]
		if name != "default" {
			names = append(names, name)
		}
	}
	return names
}
