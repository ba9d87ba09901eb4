package rpc

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/gagliardetto/solana-go"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
)

// GetAccount fetches a ledger account via getAccountInfo and decodes it into
// the chain boundary type. Implements chain.AccountReader.
func (c *Client) GetAccount(ctx context.Context, address solana.PublicKey) (*chain.Account, error) {
	params := []interface{}{
		address.String(),
		map[string]interface{}{
			"encoding":   "base64",
			"commitment": "confirmed",
		},
	}

	var result AccountInfoResponse
	if err := c.Call(ctx, "getAccountInfo", params, &result); err != nil {
		return nil, err
	}
	if result.Error != nil {
		return nil, result.Error
	}
	if result.Result.Value == nil {
		return nil, fmt.Errorf("account %s: %w", address, chain.ErrAccountNotFound)
	}

	value := result.Result.Value
	owner, err := solana.PublicKeyFromBase58(value.Owner)
	if err != nil {
		return nil, fmt.Errorf("invalid owner in RPC response for %s: %w", address, err)
	}

	if len(value.Data) < 2 || value.Data[1] != "base64" {
		return nil, fmt.Errorf("unexpected account data encoding for %s", address)
	}
	data, err := base64.StdEncoding.DecodeString(value.Data[0])
	if err != nil {
		return nil, fmt.Errorf("failed to decode account data for %s: %w", address, err)
	}

	return &chain.Account{
		Owner:    owner,
		Data:     data,
		Lamports: value.Lamports,
	}, nil
}
