// Package pump implements the dex.Adapter contract for pump.fun AMM pools.
package pump

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
)

const (
	// Name is the registry key for this adapter
	Name = "pump"

	// Pump AMM trade fee
	swapFee = 0.01
)

// Auxiliary field names this adapter publishes in PoolInfo.AuxAccounts.
// Downstream conversion looks them up by these keys.
const (
	AuxCreatorVaultATA       = "coin_creator_vault_ata"
	AuxCreatorVaultAuthority = "coin_creator_vault_authority"
)

var (
	// ProgramID is the pump.fun AMM program
	ProgramID = solana.MustPublicKeyFromBase58("pAMMBay6oceH9fJKBRHGP5D4bD4sWpmSwMn52FMfXEA")

	// feeWallet is the pump AMM protocol fee recipient
	feeWallet = solana.MustPublicKeyFromBase58("62qc2CNXwrYqQScmEdiZFFAnJR262PxWEuNQtxfafNgV")

	creatorVaultSeed = []byte("creator_vault")
)

// Adapter fetches and decodes pump AMM pools
type Adapter struct {
	reader    chain.AccountReader
	batchSize int
	logger    *logrus.Logger
}

// Config holds dependencies for the pump adapter
type Config struct {
	Reader    chain.AccountReader
	BatchSize int
	Logger    *logrus.Logger
}

// New creates a pump adapter
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

	info, err := DecodePoolAccount(account.Data, address)
	if err != nil {
		return nil, err
	}

	// The vault holding wrapped SOL is the base side; a pool with no SOL
	// leg keeps the on-chain base/quote order.
	tokenVault, baseVault := info.PoolBaseTokenAccount, info.PoolQuoteTokenAccount
	if solana.WrappedSol.Equals(info.BaseMint) {
		tokenVault, baseVault = info.PoolQuoteTokenAccount, info.PoolBaseTokenAccount
	}

	tokenMintFinal, baseMint := info.BaseMint, info.QuoteMint
	if !tokenMint.Equals(info.BaseMint) {
		tokenMintFinal, baseMint = info.QuoteMint, info.BaseMint
	}

	// Protocol fees are collected into the fee wallet's quote-mint ATA.
	feeTokenWallet, _, err := solana.FindAssociatedTokenAddress(feeWallet, info.QuoteMint)
	if err != nil {
		return nil, &dex.ParseError{Address: address, Reason: "fee wallet ATA derivation failed", Err: err}
	}

	// The creator vault authority is a PDA of the coin creator recorded in
	// the pool account itself, so both creator accounts are derivable here
	// without extra reads. A zeroed authority would produce an unusable
	// vault address, so derivation failure rejects the pool.
	authority, vaultATA, err := deriveCreatorVault(info.CoinCreator, info.QuoteMint)
	if err != nil {
		return nil, &dex.ParseError{Address: address, Reason: "creator vault derivation failed", Err: err}
	}

	return &dex.PoolInfo{
		PoolAddress: poolKey,
		TokenMint:   tokenMintFinal,
		BaseMint:    baseMint,
		TokenVault:  tokenVault,
		BaseVault:   baseVault,
		FeeWallet:   &feeTokenWallet,
		AuxAccounts: map[string]solana.PublicKey{
			AuxCreatorVaultATA:       vaultATA,
			AuxCreatorVaultAuthority: authority,
		},
	}, nil
}

// deriveCreatorVault computes the creator vault authority PDA and its
// quote-mint ATA from already-known addresses.
func deriveCreatorVault(coinCreator, quoteMint solana.PublicKey) (authority, vaultATA solana.PublicKey, err error) {
	authority, _, err = solana.FindProgramAddress(
		[][]byte{creatorVaultSeed, coinCreator.Bytes()},
		ProgramID,
	)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}

	vaultATA, _, err = solana.FindAssociatedTokenAddress(authority, quoteMint)
	if err != nil {
		return solana.PublicKey{}, solana.PublicKey{}, err
	}
	return authority, vaultATA, nil
}

// Quote returns price information for a pool.
// TODO: implement the pump bonding-curve price from the pool reserves.
func (a *Adapter) Quote(pool *dex.PoolInfo) (dex.PriceQuote, error) {
	return dex.PriceQuote{
		Price:     0,
		Liquidity: 0,
		Fee:       swapFee,
	}, nil
}

// SwapInstructionData is not implemented for pump yet; the engine treats an
// empty payload as "no encoding available".
func (a *Adapter) SwapInstructionData(pool *dex.PoolInfo, amountIn, minimumOut uint64) ([]byte, error) {
	return []byte{}, nil
}
