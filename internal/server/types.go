package server

import "github.com/aman-zulfiqar/solana-pool-engine/internal/poolengine"

// ErrorResponse is the standardized error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Details any    `json:"details,omitempty"` // dev mode only
}

// HealthResponse represents the health check response
type HealthResponse struct {
	OK bool `json:"ok"`
}

// PoolFetchRequest asks the engine for one mint's pool aggregate. The
// per-exchange lists are optional; omitting one skips that exchange.
type PoolFetchRequest struct {
	Mint         string   `json:"mint"`
	Wallet       string   `json:"wallet"`
	RaydiumPools []string `json:"raydium_pools,omitempty"`
	PumpPools    []string `json:"pump_pools,omitempty"`
}

// PoolFetchResponse wraps the assembled aggregate
type PoolFetchResponse struct {
	Data poolengine.MintPoolData `json:"data"`
}

// CacheStatsResponse reports cache entry counts
type CacheStatsResponse struct {
	TotalEntries   int `json:"total_entries"`
	ExpiredEntries int `json:"expired_entries"`
}
