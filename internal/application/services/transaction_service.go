package services

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/domain/classifier"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/repositories"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/metrics"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/solana"
)

const detailsCacheName = "transaction"

// TransactionService provides single-transaction lookups
type TransactionService struct {
	chain   repositories.ChainRepository
	cache   *cache.RedisCache
	metrics *metrics.AnalyzerMetrics
	logger  *zap.Logger
}

// NewTransactionService creates a new transaction service. The Redis cache is optional.
func NewTransactionService(
	chain repositories.ChainRepository,
	redisCache *cache.RedisCache,
	m *metrics.AnalyzerMetrics,
	logger *zap.Logger,
) *TransactionService {
	return &TransactionService{
		chain:   chain,
		cache:   redisCache,
		metrics: m,
		logger:  logger,
	}
}

// GetTransactionDetails returns the detail view of signature
func (s *TransactionService) GetTransactionDetails(ctx context.Context, signature string) (*entities.TransactionDetails, error) {
	if err := solana.ValidateSignature(signature); err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, err := s.cache.GetTransactionDetails(ctx, signature)
		if err == nil {
			s.metrics.CacheHit(detailsCacheName)
			s.logger.Debug("Cache hit", zap.String("signature", signature))
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("Failed to read transaction cache", zap.Error(err))
		}
		s.metrics.CacheMiss(detailsCacheName)
	}

	tx, err := s.chain.GetParsedTransaction(ctx, signature)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	if tx == nil {
		return nil, fmt.Errorf("%w: %s", entities.ErrTransactionNotFound, signature)
	}

	details := classifier.Details(signature, tx)

	if s.cache != nil {
		if err := s.cache.SetTransactionDetails(ctx, &details); err != nil {
			s.logger.Warn("Failed to cache transaction details", zap.Error(err))
		}
	}

	return &details, nil
}
