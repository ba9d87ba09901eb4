// Package poolengine orchestrates pool-data acquisition: cache check, mint
// account fetch, token-program resolution, per-exchange pool retrieval
// through the adapter registry, record conversion, and cache write.
package poolengine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/pump"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/raydium"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/poolcache"
)

// EngineConfig holds configuration for the pool engine
type EngineConfig struct {
	MaxRetries    int
	RetryDelay    time.Duration
	FetchTimeout  time.Duration
	EnableCaching bool
	CacheTTL      time.Duration
	Logger        *logrus.Logger
}

// DefaultEngineConfig returns sensible defaults
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		MaxRetries:    3,
		RetryDelay:    1000 * time.Millisecond,
		FetchTimeout:  30 * time.Second,
		EnableCaching: true,
		CacheTTL:      300 * time.Second,
	}
}

// FetchRequest is the inbound call contract: the queried mint, the wallet
// the aggregate is assembled for, and an optional ordered pool-address list
// per supported exchange. A nil list means the exchange is not configured
// for this mint and is skipped.
type FetchRequest struct {
	Mint   string
	Wallet string

	RaydiumPools []string
	PumpPools    []string
}

// Engine assembles and caches per-mint pool aggregates. One Engine instance
// serves one caller at a time; neither the cache nor the registry is
// internally synchronized, so concurrent integrations must serialize access.
type Engine struct {
	fetcher  *chain.Fetcher
	registry *dex.Registry
	cache    *poolcache.Cache[MintPoolData]

	enableCaching bool
	fetchTimeout  time.Duration
	logger        *logrus.Logger
}

// NewEngine creates a pool engine over the given registry. The retrying
// fetcher wraps reader for the mint lookup only; adapters read pool accounts
// through reader directly.
func NewEngine(reader chain.AccountReader, registry *dex.Registry, cfg EngineConfig) *Engine {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}

	return &Engine{
		fetcher: chain.NewFetcher(reader, chain.FetcherConfig{
			MaxRetries: cfg.MaxRetries,
			RetryDelay: cfg.RetryDelay,
			Logger:     cfg.Logger,
		}),
		registry:      registry,
		cache:         poolcache.New[MintPoolData](cfg.CacheTTL),
		enableCaching: cfg.EnableCaching,
		fetchTimeout:  cfg.FetchTimeout,
		logger:        cfg.Logger,
	}
}

// FetchPoolData assembles the pool aggregate for a mint. A cached live
// aggregate is returned as-is. Mint fetch and program resolution failures
// are fatal; a single exchange failing is logged and leaves that exchange's
// pool list empty without failing the call.
func (e *Engine) FetchPoolData(ctx context.Context, req FetchRequest) (*MintPoolData, error) {
	cacheKey := req.Mint + "_" + req.Wallet

	if e.enableCaching {
		if data, ok := e.cache.Get(cacheKey); ok {
			e.logger.WithField("mint", req.Mint).Info("using cached pool data")
			return &data, nil
		}
	}

	if e.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.fetchTimeout)
		defer cancel()
	}

	e.logger.WithField("mint", req.Mint).Info("initializing pool data")
	start := time.Now()

	mintKey, err := chain.ParseAddress(req.Mint)
	if err != nil {
		return nil, err
	}
	walletKey, err := chain.ParseAddress(req.Wallet)
	if err != nil {
		return nil, err
	}

	mintAccount, err := e.fetcher.Fetch(ctx, mintKey)
	if err != nil {
		return nil, err
	}

	tokenProgram, err := chain.ResolveTokenProgram(mintAccount, req.Mint)
	if err != nil {
		return nil, err
	}
	e.logger.WithFields(logrus.Fields{
		"mint":          req.Mint,
		"token_program": tokenProgram.String(),
	}).Info("detected token program")

	data := &MintPoolData{
		Mint:         mintKey,
		Wallet:       walletKey,
		TokenProgram: tokenProgram,
	}

	// Exchanges are visited in this fixed order so aggregate ordering is
	// deterministic regardless of which fetches succeed.
	poolConfigs := []struct {
		name      string
		addresses []string
	}{
		{pump.Name, req.PumpPools},
		{raydium.Name, req.RaydiumPools},
	}

	for _, cfg := range poolConfigs {
		if cfg.addresses == nil {
			continue
		}
		adapter, ok := e.registry.Get(cfg.name)
		if !ok {
			e.logger.WithField("dex", cfg.name).Warn("no adapter registered for configured DEX, skipping")
			continue
		}

		pools, err := adapter.FetchPools(ctx, cfg.addresses, mintKey)
		if err != nil {
			e.logger.WithField("dex", cfg.name).WithError(err).Warn("failed to fetch pools")
			continue
		}

		e.convertAndAppend(data, cfg.name, pools)
		e.logger.WithFields(logrus.Fields{
			"dex":   cfg.name,
			"count": len(pools),
		}).Info("fetched pools")
	}

	if e.enableCaching {
		e.cache.Put(cacheKey, *data)
	}

	e.logger.WithFields(logrus.Fields{
		"mint":    req.Mint,
		"elapsed": time.Since(start),
	}).Info("pool data initialization completed")

	return data, nil
}

// SweepCache removes expired cache entries and reports how many were removed
func (e *Engine) SweepCache() int {
	return e.cache.Sweep()
}

// CacheStats reports total and expired-but-present cache entry counts
func (e *Engine) CacheStats() (total, expired int) {
	return e.cache.Stats()
}
