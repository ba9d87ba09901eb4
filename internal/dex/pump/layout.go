package pump

import (
	"bytes"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
)

// poolDiscriminator is the Anchor account tag for the pump AMM Pool account
// (sha256("account:Pool")[0:8]).
var poolDiscriminator = []byte{241, 154, 109, 4, 17, 177, 109, 188}

// poolAccountMinLen covers the discriminator plus every field of PoolAccount
const poolAccountMinLen = 8 + 1 + 2 + 6*32 + 8 + 32

// PoolAccount is the borsh body of a pump AMM pool account, after the
// 8-byte discriminator.
type PoolAccount struct {
	PoolBump              uint8
	Index                 uint16
	Creator               solana.PublicKey
	BaseMint              solana.PublicKey
	QuoteMint             solana.PublicKey
	LpMint                solana.PublicKey
	PoolBaseTokenAccount  solana.PublicKey
	PoolQuoteTokenAccount solana.PublicKey
	LpSupply              uint64
	CoinCreator           solana.PublicKey
}

// DecodePoolAccount validates the discriminator and minimum length, then
// borsh-decodes the pool account body. poolAddress is used only for error
// reporting.
func DecodePoolAccount(data []byte, poolAddress string) (*PoolAccount, error) {
	if len(data) < poolAccountMinLen {
		return nil, &dex.ParseError{
			Address: poolAddress,
			Reason:  "account data too short for pump pool layout",
		}
	}
	if !bytes.Equal(data[:8], poolDiscriminator) {
		return nil, &dex.ParseError{
			Address: poolAddress,
			Reason:  "account discriminator does not match pump pool",
		}
	}

	var pool PoolAccount
	if err := bin.NewBorshDecoder(data[8:]).Decode(&pool); err != nil {
		return nil, &dex.ParseError{Address: poolAddress, Reason: "borsh decode failed", Err: err}
	}
	return &pool, nil
}
