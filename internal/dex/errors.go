package dex

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
)

// OwnershipError reports a pool account whose owner is not the adapter's
// declared program. It guards against spoofed or stale pool addresses.
type OwnershipError struct {
	Address string
	Owner   solana.PublicKey
	Want    solana.PublicKey
}

func (e *OwnershipError) Error() string {
	return fmt.Sprintf("pool %s is owned by %s, expected program %s", e.Address, e.Owner, e.Want)
}

// ParseError reports a pool account whose binary layout failed validation
// or decoding.
type ParseError struct {
	Address string
	Reason  string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to parse pool %s: %s: %v", e.Address, e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to parse pool %s: %s", e.Address, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
