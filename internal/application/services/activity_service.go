package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/domain/classifier"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/repositories"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/metrics"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/solana"
)

const walletCacheName = "wallet"

// ActivityService fetches, classifies and caches a wallet's recent activity
type ActivityService struct {
	chain   repositories.ChainRepository
	cache   *cache.WalletCache
	config  config.AnalyticsConfig
	metrics *metrics.AnalyzerMetrics
	logger  *zap.Logger
	now     func() time.Time
}

// NewActivityService creates a new activity service
func NewActivityService(
	chain repositories.ChainRepository,
	walletCache *cache.WalletCache,
	cfg config.AnalyticsConfig,
	m *metrics.AnalyzerMetrics,
	logger *zap.Logger,
) *ActivityService {
	return &ActivityService{
		chain:   chain,
		cache:   walletCache,
		config:  cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for activities without a block time
func (s *ActivityService) WithClock(now func() time.Time) *ActivityService {
	s.now = now
	return s
}

// NormalizeLimit applies the default and maximum activity limits
func (s *ActivityService) NormalizeLimit(limit int) int {
	if limit <= 0 {
		return s.config.DefaultLimit
	}
	if s.config.MaxLimit > 0 && limit > s.config.MaxLimit {
		return s.config.MaxLimit
	}
	return limit
}

// FetchActivities returns up to limit activities for address, most recent first.
// A fresh cache entry is served without contacting the chain. Fetch failures
// are logged and yield an empty list with the cache left untouched.
func (s *ActivityService) FetchActivities(ctx context.Context, address string, limit int) []entities.Activity {
	limit = s.NormalizeLimit(limit)

	if activities, ok := s.cached(address, limit); ok {
		return activities
	}

	unlock := s.cache.Lock(address)
	defer unlock()

	// Another request may have refreshed the entry while we waited
	if activities, ok := s.cached(address, limit); ok {
		return activities
	}
	s.metrics.CacheMiss(walletCacheName)

	start := time.Now()
	activities, err := s.fetch(ctx, address, limit)
	if err != nil {
		s.metrics.FetchFailed()
		s.logger.Error("Failed to fetch wallet activity",
			zap.String("address", address),
			zap.Int("limit", limit),
			zap.Error(err),
		)
		return []entities.Activity{}
	}
	s.metrics.FetchCompleted(time.Since(start).Seconds())

	generation := s.cache.ReplaceActivities(address, activities)

	s.logger.Info("Fetched wallet activity",
		zap.String("address", address),
		zap.Int("activity_count", len(activities)),
		zap.Uint64("generation", generation),
		zap.Duration("duration", time.Since(start)),
	)

	return activities
}

func (s *ActivityService) cached(address string, limit int) ([]entities.Activity, bool) {
	if s.cache.IsStale(address, s.config.CacheMaxAge) {
		return nil, false
	}
	entry, ok := s.cache.Get(address)
	if !ok {
		return nil, false
	}
	s.metrics.CacheHit(walletCacheName)

	activities := entry.Activities
	if limit < len(activities) {
		activities = activities[:limit]
	}
	out := make([]entities.Activity, len(activities))
	copy(out, activities)
	return out, true
}

func (s *ActivityService) fetch(ctx context.Context, address string, limit int) ([]entities.Activity, error) {
	sigs, err := s.chain.GetSignatures(ctx, address, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get signatures: %w", err)
	}

	batches := solana.SplitSignatures(sigs, s.config.BatchSize)
	activities := make([]entities.Activity, 0, len(sigs))

	for i, batch := range batches {
		txs, err := s.fetchBatch(ctx, batch)
		if err != nil {
			return nil, err
		}

		for j, tx := range txs {
			if tx == nil {
				s.logger.Debug("Transaction body unavailable, skipping",
					zap.String("signature", batch[j].Signature),
				)
				continue
			}

			activity := classifier.ToActivity(batch[j].Signature, batch[j].BlockTime, tx, s.now().UnixMilli())
			s.metrics.Classified(string(activity.Type))
			activities = append(activities, activity)
		}

		if i < len(batches)-1 {
			if err := sleep(ctx, s.config.BatchDelay); err != nil {
				return nil, err
			}
		}
	}

	return activities, nil
}

// fetchBatch retrieves every transaction of batch concurrently. The result is
// index-aligned with batch; unknown transactions are nil.
func (s *ActivityService) fetchBatch(ctx context.Context, batch []entities.SignatureInfo) ([]*entities.ParsedTransaction, error) {
	txs := make([]*entities.ParsedTransaction, len(batch))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(len(batch))

	for i, sig := range batch {
		i, sig := i, sig // capture
		g.Go(func() error {
			tx, err := s.chain.GetParsedTransaction(ctx, sig.Signature)
			if err != nil {
				return fmt.Errorf("failed to get transaction %s: %w", sig.Signature, err)
			}
			txs[i] = tx
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return txs, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
