// Package dex defines the per-exchange adapter contract and the registry the
// pool engine uses to look adapters up by name. Adding an exchange means
// implementing Adapter in a subpackage and registering it; the engine itself
// never names concrete adapter types.
package dex

import (
	"context"

	"github.com/gagliardetto/solana-go"
)

// PoolInfo is the protocol-agnostic view of one liquidity pool.
//
// TokenMint always denotes the side of the pool matching the mint the caller
// asked for, regardless of how the two sides are ordered on chain; adapters
// reorient the decoded fields before returning.
type PoolInfo struct {
	PoolAddress solana.PublicKey
	TokenMint   solana.PublicKey
	BaseMint    solana.PublicKey
	TokenVault  solana.PublicKey
	BaseVault   solana.PublicKey
	FeeWallet   *solana.PublicKey
	// AuxAccounts carries adapter-defined extra addresses (creator-fee
	// vaults and the like), keyed by adapter-chosen field names.
	AuxAccounts map[string]solana.PublicKey
}

// PriceQuote holds price information for one pool
type PriceQuote struct {
	Price     float64
	Liquidity uint64
	Fee       float64
}

// Adapter is the capability set every exchange integration provides.
type Adapter interface {
	// Name is the stable registry key for this exchange
	Name() string

	// ProgramID is the on-chain program that must own this exchange's pools
	ProgramID() solana.PublicKey

	// FetchPools resolves the given pool addresses into descriptors oriented
	// to tokenMint. A failure on one address is logged and that address is
	// skipped; the batch itself only fails on systemic errors.
	FetchPools(ctx context.Context, poolAddresses []string, tokenMint solana.PublicKey) ([]PoolInfo, error)

	// Quote computes price information for a pool. Exchange-specific math is
	// pluggable per adapter; stub values are allowed where not yet defined.
	Quote(pool *PoolInfo) (PriceQuote, error)

	// SwapInstructionData encodes the exchange's swap instruction payload.
	// Adapters without an encoding yet return an empty payload.
	SwapInstructionData(pool *PoolInfo, amountIn, minimumOut uint64) ([]byte, error)
}
