package chain

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// InvalidAddressError reports a malformed base58 account address string.
type InvalidAddressError struct {
	Address string
	Err     error
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid account address %q: %v", e.Address, e.Err)
}

func (e *InvalidAddressError) Unwrap() error {
	return e.Err
}

// ParseAddress decodes a base58 account address into a public key.
// Decoding is done explicitly so that a wrong payload length is reported
// the same way as a bad character set.
func ParseAddress(address string) (solana.PublicKey, error) {
	raw, err := base58.Decode(address)
	if err != nil {
		return solana.PublicKey{}, &InvalidAddressError{Address: address, Err: err}
	}
	if len(raw) != solana.PublicKeyLength {
		return solana.PublicKey{}, &InvalidAddressError{
			Address: address,
			Err:     fmt.Errorf("decoded to %d bytes, want %d", len(raw), solana.PublicKeyLength),
		}
	}
	return solana.PublicKeyFromBytes(raw), nil
}
