// Package raydium implements the dex.Adapter contract for Raydium AMM v4
// constant-product pools.
package raydium

import (
	"context"
	"encoding/binary"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
)

const (
	// Name is the registry key for this adapter
	Name = "raydium"

	// swapBaseIn is the AMM v4 swap instruction tag
	swapBaseIn = 9

	// Raydium standard trade fee
	swapFee = 0.0025
)

// ProgramID is the Raydium AMM v4 program
var ProgramID = solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")

// Adapter fetches and decodes Raydium AMM v4 pools
type Adapter struct {
	reader    chain.AccountReader
	batchSize int
	logger    *logrus.Logger
}

// Config holds dependencies for the Raydium adapter
type Config struct {
	Reader    chain.AccountReader
	BatchSize int
	Logger    *logrus.Logger
}

// New creates a Raydium adapter
func New(cfg Config) *Adapter {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 1
	}
	return &Adapter{
		reader:    cfg.Reader,
		batchSize: cfg.BatchSize,
		logger:    cfg.Logger,
	}
}

func (a *Adapter) Name() string {
	return Name
}

func (a *Adapter) ProgramID() solana.PublicKey {
	return ProgramID
}

// FetchPools resolves pool addresses into descriptors oriented to tokenMint.
// Addresses are processed in batches of the configured size; a failure on one
// address is logged and skipped without failing the batch.
func (a *Adapter) FetchPools(ctx context.Context, poolAddresses []string, tokenMint solana.PublicKey) ([]dex.PoolInfo, error) {
	pools := make([]dex.PoolInfo, 0, len(poolAddresses))

	for start := 0; start < len(poolAddresses); start += a.batchSize {
		end := start + a.batchSize
		if end > len(poolAddresses) {
			end = len(poolAddresses)
		}
		a.logger.WithFields(logrus.Fields{
			"dex":   Name,
			"batch": poolAddresses[start:end],
		}).Debug("fetching pool batch")

		for _, address := range poolAddresses[start:end] {
			pool, err := a.fetchSinglePool(ctx, address, tokenMint)
			if err != nil {
				a.logger.WithFields(logrus.Fields{
					"dex":  Name,
					"pool": address,
				}).WithError(err).Error("failed to fetch pool, skipping")
				continue
			}
			pools = append(pools, *pool)
		}
	}

	return pools, nil
}

func (a *Adapter) fetchSinglePool(ctx context.Context, address string, tokenMint solana.PublicKey) (*dex.PoolInfo, error) {
	poolKey, err := chain.ParseAddress(address)
	if err != nil {
		return nil, err
	}

	account, err := a.reader.GetAccount(ctx, poolKey)
	if err != nil {
		return nil, err
	}
	if !account.Owner.Equals(ProgramID) {
		return nil, &dex.OwnershipError{Address: address, Owner: account.Owner, Want: ProgramID}
	}

	info, err := DecodeAmmInfo(account.Data, address)
	if err != nil {
		return nil, err
	}

	// The vault holding wrapped SOL is the base side; a pool with no SOL
	// leg keeps the on-chain coin/pc order.
	tokenVault, baseVault := info.CoinVault, info.PcVault
	if solana.WrappedSol.Equals(info.CoinMint) {
		tokenVault, baseVault = info.PcVault, info.CoinVault
	}

	tokenMintFinal, baseMint := info.CoinMint, info.PcMint
	if !tokenMint.Equals(info.CoinMint) {
		tokenMintFinal, baseMint = info.PcMint, info.CoinMint
	}

	return &dex.PoolInfo{
		PoolAddress: poolKey,
		TokenMint:   tokenMintFinal,
		BaseMint:    baseMint,
		TokenVault:  tokenVault,
		BaseVault:   baseVault,
		// Raydium has no separate fee wallet; fees accrue in the vaults
		FeeWallet:   nil,
		AuxAccounts: map[string]solana.PublicKey{},
	}, nil
}

// Quote returns price information for a pool.
// TODO: compute price and liquidity from the vault reserves
// (getTokenAccountBalance on TokenVault/BaseVault).
func (a *Adapter) Quote(pool *dex.PoolInfo) (dex.PriceQuote, error) {
	return dex.PriceQuote{
		Price:     0,
		Liquidity: 0,
		Fee:       swapFee,
	}, nil
}

// SwapInstructionData encodes the AMM v4 swap_base_in payload:
// one tag byte followed by amount_in and minimum_amount_out as u64 LE.
func (a *Adapter) SwapInstructionData(pool *dex.PoolInfo, amountIn, minimumOut uint64) ([]byte, error) {
	data := make([]byte, 17)
	data[0] = swapBaseIn
	binary.LittleEndian.PutUint64(data[1:9], amountIn)
	binary.LittleEndian.PutUint64(data[9:17], minimumOut)
	return data, nil
}
