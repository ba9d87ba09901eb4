package server

import (
	"errors"
	"net/http"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/poolengine"
)

// Handlers contains all dependencies for API endpoint handlers.
//
// The engine (with its cache and registry) is single-caller by contract, so
// the handlers serialize every engine call behind engineMu.
type Handlers struct {
	Engine  *poolengine.Engine
	DevMode bool
	Logger  *logrus.Logger

	engineMu sync.Mutex
}

// err returns a standardized JSON error response; details are only included
// in dev mode.
func (h *Handlers) err(c echo.Context, code int, msg string, details any) error {
	resp := ErrorResponse{Error: msg, Code: code}
	if h.DevMode && details != nil {
		resp.Details = details
	}
	return c.JSON(code, resp)
}

// Health returns a simple health check
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{OK: true})
}

// PoolFetch assembles the pool aggregate for the requested mint
func (h *Handlers) PoolFetch(c echo.Context) error {
	var req PoolFetchRequest
	if err := c.Bind(&req); err != nil {
		return h.err(c, http.StatusBadRequest, "invalid json", nil)
	}
	if strings.TrimSpace(req.Mint) == "" {
		return h.err(c, http.StatusBadRequest, "mint is required", nil)
	}
	if strings.TrimSpace(req.Wallet) == "" {
		return h.err(c, http.StatusBadRequest, "wallet is required", nil)
	}

	h.engineMu.Lock()
	data, err := h.Engine.FetchPoolData(c.Request().Context(), poolengine.FetchRequest{
		Mint:         req.Mint,
		Wallet:       req.Wallet,
		RaydiumPools: req.RaydiumPools,
		PumpPools:    req.PumpPools,
	})
	h.engineMu.Unlock()

	if err != nil {
		var invalidAddr *chain.InvalidAddressError
		var unknownProgram *chain.UnknownTokenProgramError
		switch {
		case errors.As(err, &invalidAddr):
			return h.err(c, http.StatusBadRequest, "invalid address", err.Error())
		case errors.As(err, &unknownProgram):
			return h.err(c, http.StatusUnprocessableEntity, "unknown token program", err.Error())
		default:
			h.Logger.WithError(err).Error("pool fetch failed")
			return h.err(c, http.StatusBadGateway, "failed to fetch pool data", err.Error())
		}
	}

	return c.JSON(http.StatusOK, PoolFetchResponse{Data: *data})
}

// CacheStats reports current cache entry counts
func (h *Handlers) CacheStats(c echo.Context) error {
	h.engineMu.Lock()
	total, expired := h.Engine.CacheStats()
	h.engineMu.Unlock()

	return c.JSON(http.StatusOK, CacheStatsResponse{
		TotalEntries:   total,
		ExpiredEntries: expired,
	})
}

// CacheSweep removes expired cache entries
func (h *Handlers) CacheSweep(c echo.Context) error {
	h.engineMu.Lock()
	removed := h.Engine.SweepCache()
	h.engineMu.Unlock()

	return c.JSON(http.StatusOK, map[string]any{"removed": removed})
}

// SweepCache is used by the background sweep loop in cmd/api
func (h *Handlers) SweepCache() int {
	h.engineMu.Lock()
	defer h.engineMu.Unlock()
	return h.Engine.SweepCache()
}
