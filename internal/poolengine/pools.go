package poolengine

import (
	"github.com/gagliardetto/solana-go"
)

// RaydiumPool is the record shape downstream trade logic expects for a
// Raydium AMM v4 pool.
type RaydiumPool struct {
	Pool       solana.PublicKey `json:"pool"`
	TokenVault solana.PublicKey `json:"token_vault"`
	SolVault   solana.PublicKey `json:"sol_vault"`
	TokenMint  solana.PublicKey `json:"token_mint"`
	BaseMint   solana.PublicKey `json:"base_mint"`
}

// PumpPool is the record shape downstream trade logic expects for a pump
// AMM pool.
type PumpPool struct {
	Pool                      solana.PublicKey `json:"pool"`
	TokenVault                solana.PublicKey `json:"token_vault"`
	SolVault                  solana.PublicKey `json:"sol_vault"`
	FeeTokenWallet            solana.PublicKey `json:"fee_token_wallet"`
	CoinCreatorVaultATA       solana.PublicKey `json:"coin_creator_vault_ata"`
	CoinCreatorVaultAuthority solana.PublicKey `json:"coin_creator_vault_authority"`
	TokenMint                 solana.PublicKey `json:"token_mint"`
	BaseMint                  solana.PublicKey `json:"base_mint"`
}

// MintPoolData is the per-mint aggregate assembled by one engine call:
// the resolved token program plus one ordered pool list per supported
// exchange. It is mutated only while being assembled; cached copies are
// snapshots and never change afterwards.
type MintPoolData struct {
	Mint         solana.PublicKey `json:"mint"`
	Wallet       solana.PublicKey `json:"wallet"`
	TokenProgram solana.PublicKey `json:"token_program"`

	RaydiumPools []RaydiumPool `json:"raydium_pools"`
	PumpPools    []PumpPool    `json:"pump_pools"`
}

// Clone returns a deep copy of the aggregate. Pool records are plain
// values, so copying the slices is sufficient.
func (d MintPoolData) Clone() MintPoolData {
	out := d
	if d.RaydiumPools != nil {
		out.RaydiumPools = make([]RaydiumPool, len(d.RaydiumPools))
		copy(out.RaydiumPools, d.RaydiumPools)
	}
	if d.PumpPools != nil {
		out.PumpPools = make([]PumpPool, len(d.PumpPools))
		copy(out.PumpPools, d.PumpPools)
	}
	return out
}
