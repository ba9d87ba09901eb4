package chain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader returns canned results and counts calls
type fakeReader struct {
	calls   int
	account *Account
	err     error
	failFor int // fail this many calls before succeeding; -1 = always fail
}

func (f *fakeReader) GetAccount(_ context.Context, _ solana.PublicKey) (*Account, error) {
	f.calls++
	if f.failFor < 0 || f.calls <= f.failFor {
		return nil, f.err
	}
	return f.account, nil
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestFetcher_SuccessFirstAttempt(t *testing.T) {
	want := &Account{Owner: solana.TokenProgramID, Data: []byte{1, 2, 3}}
	reader := &fakeReader{account: want}

	f := NewFetcher(reader, FetcherConfig{MaxRetries: 3, RetryDelay: time.Hour, Logger: testLogger()})

	got, err := f.Fetch(context.Background(), solana.WrappedSol)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 1, reader.calls, "success must not trigger retries")
}

func TestFetcher_RetriesThenSucceeds(t *testing.T) {
	want := &Account{Owner: solana.TokenProgramID}
	reader := &fakeReader{account: want, err: errors.New("rpc down"), failFor: 2}

	f := NewFetcher(reader, FetcherConfig{MaxRetries: 3, RetryDelay: time.Millisecond, Logger: testLogger()})

	got, err := f.Fetch(context.Background(), solana.WrappedSol)
	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, 3, reader.calls)
}

func TestFetcher_Exhaustion(t *testing.T) {
	underlying := errors.New("rpc down")
	reader := &fakeReader{err: underlying, failFor: -1}
	delay := 5 * time.Millisecond

	f := NewFetcher(reader, FetcherConfig{MaxRetries: 3, RetryDelay: delay, Logger: testLogger()})

	start := time.Now()
	_, err := f.Fetch(context.Background(), solana.WrappedSol)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.Equal(t, 3, reader.calls, "must make exactly MaxRetries attempts")

	var rpcErr *RPCError
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 3, rpcErr.Attempts)
	assert.Equal(t, solana.WrappedSol, rpcErr.Address)
	assert.ErrorIs(t, err, underlying)

	// MaxRetries-1 fixed delays between attempts
	assert.GreaterOrEqual(t, elapsed, 2*delay)
}

func TestFetcher_ContextCancelledDuringDelay(t *testing.T) {
	reader := &fakeReader{err: errors.New("rpc down"), failFor: -1}

	f := NewFetcher(reader, FetcherConfig{MaxRetries: 3, RetryDelay: time.Hour, Logger: testLogger()})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := f.Fetch(ctx, solana.WrappedSol)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, reader.calls, "cancellation during the delay must stop further attempts")
}
