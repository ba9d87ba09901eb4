package dex

import (
	"context"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAdapter is a minimal Adapter for registry tests
type stubAdapter struct {
	name string
	id   int // distinguishes instances registered under the same name
}

func (s *stubAdapter) Name() string                { return s.name }
func (s *stubAdapter) ProgramID() solana.PublicKey { return solana.PublicKey{} }
func (s *stubAdapter) Quote(*PoolInfo) (PriceQuote, error) {
	return PriceQuote{}, nil
}
func (s *stubAdapter) SwapInstructionData(*PoolInfo, uint64, uint64) ([]byte, error) {
	return nil, nil
}
func (s *stubAdapter) FetchPools(context.Context, []string, solana.PublicKey) ([]PoolInfo, error) {
	return nil, nil
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry()

	_, ok := r.Get("pump")
	assert.False(t, ok)

	pump := &stubAdapter{name: "pump"}
	r.Register(pump)

	got, ok := r.Get("pump")
	require.True(t, ok)
	assert.Same(t, pump, got)
}

func TestRegistry_ReRegisterReplaces(t *testing.T) {
	r := NewRegistry()

	r.Register(&stubAdapter{name: "pump", id: 1})
	replacement := &stubAdapter{name: "pump", id: 2}
	r.Register(replacement)

	got, ok := r.Get("pump")
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Len(t, r.All(), 1)
}

func TestRegistry_AllPreservesRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(&stubAdapter{name: "pump"})
	r.Register(&stubAdapter{name: "raydium"})
	r.Register(&stubAdapter{name: "pump", id: 2}) // replacement keeps position

	all := r.All()
	require.Len(t, all, 2)
	assert.Equal(t, "pump", all[0].Name())
	assert.Equal(t, "raydium", all[1].Name())
}
