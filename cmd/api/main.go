package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/config"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/pump"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/raydium"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/poolengine"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/rpc"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/server"
)

// env bootstrap function
func loadEnv(logger *logrus.Logger) {
	// Get the project root directory (where go.mod is)
	_, filename, _, _ := runtime.Caller(0)
	projectRoot := filepath.Join(filepath.Dir(filename), "../..")
	envPath := filepath.Join(projectRoot, ".env")

	if err := godotenv.Load(envPath); err != nil {
		logger.Warnf("no .env file found at %s, using system environment variables", envPath)
	} else {
		logger.Infof("loaded .env from %s", envPath)
	}
}

// main initializes the pool engine and serves it over HTTP with graceful
// shutdown and a periodic cache sweep.
func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.InfoLevel)

	// load .env BEFORE anything reads os.Getenv
	loadEnv(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	// One RPC client is shared read-only by the fetcher and every adapter
	rpcClient := rpc.NewClient(rpc.ClientConfig{
		BaseURL:           cfg.RPCUrl,
		Timeout:           cfg.RPCTimeout,
		RequestsPerSecond: 10,
		Burst:             5,
		Logger:            logger,
	})

	registry := dex.NewRegistry()
	registry.Register(pump.New(pump.Config{Reader: rpcClient, BatchSize: cfg.BatchSize, Logger: logger}))
	registry.Register(raydium.New(raydium.Config{Reader: rpcClient, BatchSize: cfg.BatchSize, Logger: logger}))

	engine := poolengine.NewEngine(rpcClient, registry, poolengine.EngineConfig{
		MaxRetries:    cfg.MaxRetries,
		RetryDelay:    cfg.RetryDelay,
		FetchTimeout:  cfg.FetchTimeout,
		EnableCaching: cfg.EnableCaching,
		CacheTTL:      cfg.CacheTTL,
		Logger:        logger,
	})

	handlers := &server.Handlers{
		Engine:  engine,
		DevMode: cfg.DevMode,
		Logger:  logger,
	}

	srv, err := server.NewServer(server.ServerDeps{
		Handlers: handlers,
		Config: server.ServerConfig{
			Addr:    cfg.APIAddr,
			DevMode: cfg.DevMode,
			APIKey:  cfg.APIKey,
		},
	})
	if err != nil {
		logger.WithError(err).Fatal("failed to create server")
	}

	// Periodic cache sweep; the read path never evicts on its own
	if cfg.EnableCaching && cfg.CacheSweepEvery > 0 {
		go func() {
			ticker := time.NewTicker(cfg.CacheSweepEvery)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if removed := handlers.SweepCache(); removed > 0 {
						logger.WithField("removed", removed).Debug("swept expired cache entries")
					}
				}
			}
		}()
	}

	go func() {
		logger.WithField("addr", cfg.APIAddr).Info("starting API server")
		if err := srv.Start(); err != nil {
			logger.WithError(err).Info("server stopped")
		}
	}()

	<-sigCh
	logger.Info("shutting down")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("shutdown failed")
	}
}
