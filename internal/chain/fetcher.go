package chain

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/sirupsen/logrus"
)

// RPCError is returned when an account read exhausted its retry budget.
type RPCError struct {
	Address  solana.PublicKey
	Attempts int
	Err      error
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("failed to fetch account %s after %d attempts: %v", e.Address, e.Attempts, e.Err)
}

func (e *RPCError) Unwrap() error {
	return e.Err
}

// FetcherConfig holds retry settings for the account fetcher
type FetcherConfig struct {
	MaxRetries int           // total attempts, must be >= 1
	RetryDelay time.Duration // fixed delay between attempts
	Logger     *logrus.Logger
}

// Fetcher wraps an AccountReader with bounded retry and a fixed
// inter-attempt delay. The delay never backs off.
type Fetcher struct {
	reader     AccountReader
	maxRetries int
	retryDelay time.Duration
	logger     *logrus.Logger
}

// NewFetcher creates a retrying account fetcher
func NewFetcher(reader AccountReader, cfg FetcherConfig) *Fetcher {
	if cfg.Logger == nil {
		cfg.Logger = logrus.New()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 1
	}

	return &Fetcher{
		reader:     reader,
		maxRetries: cfg.MaxRetries,
		retryDelay: cfg.RetryDelay,
		logger:     cfg.Logger,
	}
}

// Fetch reads the account at address, retrying on failure. Success on any
// attempt returns immediately; after MaxRetries consecutive failures it
// returns an RPCError carrying the last underlying error.
func (f *Fetcher) Fetch(ctx context.Context, address solana.PublicKey) (*Account, error) {
	var lastErr error

	for attempt := 0; attempt < f.maxRetries; attempt++ {
		account, err := f.reader.GetAccount(ctx, address)
		if err == nil {
			return account, nil
		}
		lastErr = err

		if attempt < f.maxRetries-1 {
			f.logger.WithFields(logrus.Fields{
				"address": address.String(),
				"attempt": attempt + 1,
				"max":     f.maxRetries,
				"delay":   f.retryDelay,
			}).WithError(err).Warn("account fetch failed, retrying")

			select {
			case <-ctx.Done():
				return nil, &RPCError{Address: address, Attempts: attempt + 1, Err: ctx.Err()}
			case <-time.After(f.retryDelay):
			}
		}
	}

	return nil, &RPCError{Address: address, Attempts: f.maxRetries, Err: lastErr}
}
