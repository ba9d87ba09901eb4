package raydium

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
)

// Raydium AMM v4 state is a raw C-style layout with no discriminator and
// large reserved regions. Only the offsets listed in the schema below are
// trusted, and only after the minimum-length check; everything between them
// is padding from this adapter's point of view.
const ammInfoMinLen = 752

// AmmInfo is the decoded subset of a Raydium AMM v4 pool account
type AmmInfo struct {
	Status     uint64
	CoinVault  solana.PublicKey
	PcVault    solana.PublicKey
	CoinMint   solana.PublicKey
	PcMint     solana.PublicKey
	LpMint     solana.PublicKey
	OpenOrders solana.PublicKey
	Market     solana.PublicKey
}

type pubkeyField struct {
	offset int
	dst    *solana.PublicKey
}

// schema returns the ordered public-key field list of the v4 layout,
// bound to the destination struct.
func (a *AmmInfo) schema() []pubkeyField {
	return []pubkeyField{
		{336, &a.CoinVault},
		{368, &a.PcVault},
		{400, &a.CoinMint},
		{432, &a.PcMint},
		{464, &a.LpMint},
		{496, &a.OpenOrders},
		{528, &a.Market},
	}
}

// DecodeAmmInfo validates and decodes a Raydium AMM v4 pool account.
// poolAddress is used only for error reporting.
func DecodeAmmInfo(data []byte, poolAddress string) (*AmmInfo, error) {
	if len(data) < ammInfoMinLen {
		return nil, &dex.ParseError{
			Address: poolAddress,
			Reason:  "account data too short for AMM v4 layout",
		}
	}

	info := &AmmInfo{
		Status: binary.LittleEndian.Uint64(data[0:8]),
	}
	for _, f := range info.schema() {
		*f.dst = solana.PublicKeyFromBytes(data[f.offset : f.offset+solana.PublicKeyLength])
	}

	return info, nil
}
