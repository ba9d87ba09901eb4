package poolengine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aman-zulfiqar/solana-pool-engine/internal/chain"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/pump"
	"github.com/aman-zulfiqar/solana-pool-engine/internal/dex/raydium"
)

var (
	testMint   = solana.MustPublicKeyFromBase58("DezXAZ8z7PnrnRJjz3wXBoRgixCa6xjnB7YaB1pPB263")
	testWallet = solana.MustPublicKeyFromBase58("JUPyiwrYJFskUPiHa7hkeR8VUtAeFoSYbKedZNsDvCN")
)

// fakeReader serves the mint account and counts reads
type fakeReader struct {
	owner solana.PublicKey
	err   error
	calls int
}

func (f *fakeReader) GetAccount(_ context.Context, _ solana.PublicKey) (*chain.Account, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &chain.Account{Owner: f.owner}, nil
}

// fakeAdapter returns canned pools under a configurable exchange name
type fakeAdapter struct {
	name       string
	pools      []dex.PoolInfo
	err        error
	fetchCalls int
}

func (f *fakeAdapter) Name() string                { return f.name }
func (f *fakeAdapter) ProgramID() solana.PublicKey { return solana.PublicKey{} }
func (f *fakeAdapter) Quote(*dex.PoolInfo) (dex.PriceQuote, error) {
	return dex.PriceQuote{}, nil
}
func (f *fakeAdapter) SwapInstructionData(*dex.PoolInfo, uint64, uint64) ([]byte, error) {
	return nil, nil
}
func (f *fakeAdapter) FetchPools(_ context.Context, _ []string, _ solana.PublicKey) ([]dex.PoolInfo, error) {
	f.fetchCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pools, nil
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func testConfig() EngineConfig {
	return EngineConfig{
		MaxRetries:    3,
		RetryDelay:    time.Millisecond,
		EnableCaching: true,
		CacheTTL:      300 * time.Second,
		Logger:        quietLogger(),
	}
}

func raydiumPool(tag byte) dex.PoolInfo {
	key := func(b byte) solana.PublicKey {
		var raw [32]byte
		raw[0] = b
		return solana.PublicKeyFromBytes(raw[:])
	}
	return dex.PoolInfo{
		PoolAddress: key(tag),
		TokenMint:   testMint,
		BaseMint:    solana.WrappedSol,
		TokenVault:  key(tag + 1),
		BaseVault:   key(tag + 2),
		AuxAccounts: map[string]solana.PublicKey{},
	}
}

func pumpPool(tag byte, withAux bool) dex.PoolInfo {
	info := raydiumPool(tag)
	if withAux {
		info.AuxAccounts = map[string]solana.PublicKey{
			pump.AuxCreatorVaultATA:       info.TokenVault,
			pump.AuxCreatorVaultAuthority: info.BaseVault,
		}
	}
	return info
}

func TestFetchPoolData_HappyPath(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	registry := dex.NewRegistry()
	registry.Register(&fakeAdapter{name: raydium.Name, pools: []dex.PoolInfo{raydiumPool(1)}})

	engine := NewEngine(reader, registry, testConfig())

	data, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"pool1"},
	})
	require.NoError(t, err)

	assert.Equal(t, solana.TokenProgramID, data.TokenProgram)
	assert.Equal(t, testMint, data.Mint)
	assert.Equal(t, testWallet, data.Wallet)
	require.Len(t, data.RaydiumPools, 1)
	assert.Equal(t, testMint, data.RaydiumPools[0].TokenMint)
	assert.Empty(t, data.PumpPools)
}

func TestFetchPoolData_RetryExhaustion(t *testing.T) {
	reader := &fakeReader{err: errors.New("rpc down")}
	engine := NewEngine(reader, dex.NewRegistry(), testConfig())

	_, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:   testMint.String(),
		Wallet: testWallet.String(),
	})
	require.Error(t, err)

	var rpcErr *chain.RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 3, rpcErr.Attempts)
	assert.Equal(t, 3, reader.calls)
}

func TestFetchPoolData_UnknownTokenProgram(t *testing.T) {
	reader := &fakeReader{owner: solana.SystemProgramID}
	adapter := &fakeAdapter{name: raydium.Name, pools: []dex.PoolInfo{raydiumPool(1)}}
	registry := dex.NewRegistry()
	registry.Register(adapter)

	engine := NewEngine(reader, registry, testConfig())

	_, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"pool1"},
	})
	require.Error(t, err)

	var unknownErr *chain.UnknownTokenProgramError
	require.ErrorAs(t, err, &unknownErr)
	assert.Zero(t, adapter.fetchCalls, "resolution failure must precede all pool fetches")
}

func TestFetchPoolData_PartialFailureIsolation(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	registry := dex.NewRegistry()
	registry.Register(&fakeAdapter{name: pump.Name, err: errors.New("pump adapter broken")})
	registry.Register(&fakeAdapter{name: raydium.Name, pools: []dex.PoolInfo{raydiumPool(1), raydiumPool(4)}})

	engine := NewEngine(reader, registry, testConfig())

	data, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"r1", "r2"},
		PumpPools:    []string{"p1"},
	})
	require.NoError(t, err, "one exchange failing must never fail the call")

	assert.Len(t, data.RaydiumPools, 2)
	assert.Empty(t, data.PumpPools)
}

func TestFetchPoolData_UnconfiguredExchangeSkipped(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	pumpAdapter := &fakeAdapter{name: pump.Name, pools: []dex.PoolInfo{pumpPool(1, true)}}
	registry := dex.NewRegistry()
	registry.Register(pumpAdapter)

	engine := NewEngine(reader, registry, testConfig())

	// no pool lists at all: every exchange is unconfigured
	data, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:   testMint.String(),
		Wallet: testWallet.String(),
	})
	require.NoError(t, err)
	assert.Zero(t, pumpAdapter.fetchCalls)
	assert.Empty(t, data.PumpPools)
}

func TestFetchPoolData_MissingAuxFieldDropsPool(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	registry := dex.NewRegistry()
	registry.Register(&fakeAdapter{name: pump.Name, pools: []dex.PoolInfo{
		pumpPool(1, true),
		pumpPool(4, false), // no creator vault accounts
	}})

	engine := NewEngine(reader, registry, testConfig())

	data, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:      testMint.String(),
		Wallet:    testWallet.String(),
		PumpPools: []string{"p1", "p2"},
	})
	require.NoError(t, err)
	require.Len(t, data.PumpPools, 1, "pool without required auxiliary fields must be dropped, not zero-filled")
	assert.False(t, data.PumpPools[0].CoinCreatorVaultAuthority.IsZero())
}

func TestFetchPoolData_CacheBypassOnHit(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	adapter := &fakeAdapter{name: raydium.Name, pools: []dex.PoolInfo{raydiumPool(1)}}
	registry := dex.NewRegistry()
	registry.Register(adapter)

	engine := NewEngine(reader, registry, testConfig())
	req := FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"pool1"},
	}

	first, err := engine.FetchPoolData(context.Background(), req)
	require.NoError(t, err)
	readsAfterFirst := reader.calls

	second, err := engine.FetchPoolData(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, readsAfterFirst, reader.calls, "cache hit must issue zero account reads")
	assert.Equal(t, 1, adapter.fetchCalls)
	assert.Equal(t, *first, *second)

	// the cached snapshot must be isolated from the returned aggregates
	first.RaydiumPools[0].TokenMint = solana.PublicKey{}
	third, err := engine.FetchPoolData(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, testMint, third.RaydiumPools[0].TokenMint)
}

func TestFetchPoolData_CachingDisabled(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	adapter := &fakeAdapter{name: raydium.Name, pools: []dex.PoolInfo{raydiumPool(1)}}
	registry := dex.NewRegistry()
	registry.Register(adapter)

	cfg := testConfig()
	cfg.EnableCaching = false
	engine := NewEngine(reader, registry, cfg)
	req := FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"pool1"},
	}

	_, err := engine.FetchPoolData(context.Background(), req)
	require.NoError(t, err)
	_, err = engine.FetchPoolData(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 2, reader.calls, "disabled cache must refetch every call")
	assert.Equal(t, 2, adapter.fetchCalls)

	total, _ := engine.CacheStats()
	assert.Zero(t, total)
}

func TestFetchPoolData_InvalidMintAddress(t *testing.T) {
	engine := NewEngine(&fakeReader{owner: solana.TokenProgramID}, dex.NewRegistry(), testConfig())

	_, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:   "definitely not base58 0OIl",
		Wallet: testWallet.String(),
	})
	require.Error(t, err)

	var invalidErr *chain.InvalidAddressError
	assert.ErrorAs(t, err, &invalidErr)
}

func TestSweepCacheAndStats(t *testing.T) {
	reader := &fakeReader{owner: solana.TokenProgramID}
	registry := dex.NewRegistry()
	registry.Register(&fakeAdapter{name: raydium.Name})

	engine := NewEngine(reader, registry, testConfig())

	_, err := engine.FetchPoolData(context.Background(), FetchRequest{
		Mint:         testMint.String(),
		Wallet:       testWallet.String(),
		RaydiumPools: []string{"pool1"},
	})
	require.NoError(t, err)

	total, expired := engine.CacheStats()
	assert.Equal(t, 1, total)
	assert.Zero(t, expired)
	assert.Zero(t, engine.SweepCache(), "live entries must survive a sweep")
}
