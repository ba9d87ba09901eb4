package chain

import (
	"context"
	"errors"

	"github.com/gagliardetto/solana-go"
)

// ErrAccountNotFound is returned by an AccountReader when the address has no
// account on the ledger.
var ErrAccountNotFound = errors.New("account not found")

// Account is the decoded view of a ledger account as returned by the RPC node.
type Account struct {
	Owner    solana.PublicKey
	Data     []byte
	Lamports uint64
}

// AccountReader is the single point-lookup contract this package consumes.
// The RPC client implements it; tests substitute fakes.
type AccountReader interface {
	GetAccount(ctx context.Context, address solana.PublicKey) (*Account, error)
}
