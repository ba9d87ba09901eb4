package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/config"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/pump"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/raydium"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/poolengine"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/rpc"
)

// splitCSV turns a comma-separated flag value into a pool address list.
// An absent flag yields nil, which the engine reads as "not configured".
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// main performs one pool-data fetch and prints the aggregate as JSON
func main() {
	mint := flag.String("mint", "", "mint address to fetch pool data for (required)")
	wallet := flag.String("wallet", "", "wallet address the aggregate is assembled for (required)")
	raydiumPools := flag.String("raydium-pools", "", "comma-separated Raydium pool addresses")
	pumpPools := flag.String("pump-pools", "", "comma-separated pump pool addresses")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetOutput(os.Stderr) // keep stdout clean for the JSON result

	if *mint == "" || *wallet == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file found, using system environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

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
		EnableCaching: false, // one-shot invocation, nothing to reuse
		CacheTTL:      cfg.CacheTTL,
		Logger:        logger,
	})

	data, err := engine.FetchPoolData(context.Background(), poolengine.FetchRequest{
		Mint:         *mint,
		Wallet:       *wallet,
		RaydiumPools: splitCSV(*raydiumPools),
		PumpPools:    splitCSV(*pumpPools),
	})
	if err != nil {
		logger.WithError(err).Fatal("pool fetch failed")
	}

	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		logger.WithError(err).Fatal("failed to encode result")
	}
	fmt.Println(string(out))
}
