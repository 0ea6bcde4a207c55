package solana

import (
	"context"
	"errors"
	"fmt"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/metrics"
)

const (
	methodGetSignatures        = "getSignaturesForAddress"
	methodGetParsedTransaction = "getParsedTransaction"
	methodGetHealth            = "getHealth"
)

// Client wraps the Solana JSON-RPC client with retry logic and conversion to
// domain types. It implements repositories.ChainRepository.
type Client struct {
	rpc     *rpc.Client
	config  config.SolanaConfig
	logger  *zap.Logger
	metrics *metrics.AnalyzerMetrics
}

// NewClient creates a new Solana RPC client
func NewClient(cfg config.SolanaConfig, m *metrics.AnalyzerMetrics, logger *zap.Logger) *Client {
	logger.Info("Using Solana RPC endpoint",
		zap.String("rpc_url", cfg.RPCURL),
		zap.String("commitment", cfg.Commitment),
	)

	return &Client{
		rpc:     rpc.New(cfg.RPCURL),
		config:  cfg,
		logger:  logger,
		metrics: m,
	}
}

// Close closes the underlying RPC transport
func (c *Client) Close() error {
	return c.rpc.Close()
}

// ValidateAddress checks that address is a base58 public key
func ValidateAddress(address string) error {
	if _, err := solanago.PublicKeyFromBase58(address); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrInvalidAddress, address)
	}
	return nil
}

// ValidateSignature checks that signature is a base58 transaction signature
func ValidateSignature(signature string) error {
	if _, err := solanago.SignatureFromBase58(signature); err != nil {
		return fmt.Errorf("%w: %s", entities.ErrInvalidSignature, signature)
	}
	return nil
}

// GetSignatures returns up to limit signatures for address, most recent first
func (c *Client) GetSignatures(ctx context.Context, address string, limit int) ([]entities.SignatureInfo, error) {
	pubkey, err := solanago.PublicKeyFromBase58(address)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidAddress, address)
	}

	opts := &rpc.GetSignaturesForAddressOpts{
		Limit:      &limit,
		Commitment: c.commitment(),
	}

	var sigs []*rpc.TransactionSignature
	err = c.withRetry(ctx, methodGetSignatures, func(ctx context.Context) error {
		var callErr error
		sigs, callErr = c.rpc.GetSignaturesForAddressWithOpts(ctx, pubkey, opts)
		return callErr
	}, zap.String("address", address))
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures for %s: %w", address, err)
	}

	return ConvertSignatures(sigs), nil
}

// GetParsedTransaction returns the jsonParsed transaction for signature.
// A transaction unknown to the node yields nil without error.
func (c *Client) GetParsedTransaction(ctx context.Context, signature string) (*entities.ParsedTransaction, error) {
	sig, err := solanago.SignatureFromBase58(signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrInvalidSignature, signature)
	}

	version := uint64(0)
	opts := &rpc.GetParsedTransactionOpts{
		Commitment:                     c.commitment(),
		MaxSupportedTransactionVersion: &version,
	}

	var result *rpc.GetParsedTransactionResult
	err = c.withRetry(ctx, methodGetParsedTransaction, func(ctx context.Context) error {
		var callErr error
		result, callErr = c.rpc.GetParsedTransaction(ctx, sig, opts)
		return callErr
	}, zap.String("signature", signature))
	if errors.Is(err, rpc.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %s: %w", signature, err)
	}

	return ConvertParsedTransaction(signature, result), nil
}

// HealthCheck checks if the RPC node reports itself healthy
func (c *Client) HealthCheck(ctx context.Context) error {
	start := time.Now()
	_, err := c.rpc.GetHealth(ctx)
	c.metrics.ObserveRPC(methodGetHealth, time.Since(start).Seconds(), err)
	return err
}

func (c *Client) commitment() rpc.CommitmentType {
	if c.config.Commitment == "" {
		return rpc.CommitmentConfirmed
	}
	return rpc.CommitmentType(c.config.Commitment)
}

// withRetry runs call up to MaxRetries+1 times, each bounded by RequestTimeout.
// Not-found responses are returned immediately.
func (c *Client) withRetry(ctx context.Context, method string, call func(context.Context) error, fields ...zap.Field) error {
	var err error

	for i := 0; i <= c.config.MaxRetries; i++ {
		err = c.attempt(ctx, method, call)
		if err == nil || errors.Is(err, rpc.ErrNotFound) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		c.logger.Warn("Solana RPC call failed, retrying",
			append(fields,
				zap.String("method", method),
				zap.Int("attempt", i+1),
				zap.Error(err),
			)...,
		)

		if i < c.config.MaxRetries {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}
	}

	return fmt.Errorf("%s failed after %d retries: %w", method, c.config.MaxRetries, err)
}

func (c *Client) attempt(ctx context.Context, method string, call func(context.Context) error) error {
	if c.config.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	err := call(ctx)
	c.metrics.ObserveRPC(method, time.Since(start).Seconds(), err)
	return err
}
