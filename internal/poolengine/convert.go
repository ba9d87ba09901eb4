package poolengine

import (
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/pump"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/raydium"
)

// MissingFieldError reports a required auxiliary address absent from a
// descriptor during conversion. Conversion never fills such a field with a
// zero address.
type MissingFieldError struct {
	Exchange string
	Pool     solana.PublicKey
	Field    string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s pool %s is missing auxiliary field %q", e.Exchange, e.Pool, e.Field)
}

// convertAndAppend turns fetched descriptors into the per-exchange record
// shape and appends them to the aggregate. A pool whose conversion fails is
// logged and omitted; an unknown exchange name is logged and ignored.
func (e *Engine) convertAndAppend(data *MintPoolData, exchange string, pools []dex.PoolInfo) {
	switch exchange {
	case raydium.Name:
		for i := range pools {
			data.RaydiumPools = append(data.RaydiumPools, RaydiumPool{
				Pool:       pools[i].PoolAddress,
				TokenVault: pools[i].TokenVault,
				SolVault:   pools[i].BaseVault,
				TokenMint:  pools[i].TokenMint,
				BaseMint:   pools[i].BaseMint,
			})
		}
	case pump.Name:
		for i := range pools {
			record, err := convertPumpPool(&pools[i])
			if err != nil {
				e.logger.WithField("pool", pools[i].PoolAddress.String()).
					WithError(err).Error("dropping pool from aggregate")
				continue
			}
			data.PumpPools = append(data.PumpPools, *record)
		}
	default:
		e.logger.WithField("dex", exchange).Warn("unknown DEX type, ignoring pools")
	}
}

func convertPumpPool(pool *dex.PoolInfo) (*PumpPool, error) {
	vaultATA, ok := pool.AuxAccounts[pump.AuxCreatorVaultATA]
	if !ok {
		return nil, &MissingFieldError{Exchange: pump.Name, Pool: pool.PoolAddress, Field: pump.AuxCreatorVaultATA}
	}
	authority, ok := pool.AuxAccounts[pump.AuxCreatorVaultAuthority]
	if !ok {
		return nil, &MissingFieldError{Exchange: pump.Name, Pool: pool.PoolAddress, Field: pump.AuxCreatorVaultAuthority}
	}

	record := &PumpPool{
		Pool:                      pool.PoolAddress,
		TokenVault:                pool.TokenVault,
		SolVault:                  pool.BaseVault,
		CoinCreatorVaultATA:       vaultATA,
		CoinCreatorVaultAuthority: authority,
		TokenMint:                 pool.TokenMint,
		BaseMint:                  pool.BaseMint,
	}
	if pool.FeeWallet != nil {
		record.FeeTokenWallet = *pool.FeeWallet
	}
	return record, nil
}
