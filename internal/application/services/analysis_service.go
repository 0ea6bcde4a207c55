package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/application/analytics"
	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/metrics"
)

// AnalysisService derives and memoizes profiles and positions for cached wallets
type AnalysisService struct {
	activities *ActivityService
	cache      *cache.WalletCache
	config     config.AnalyticsConfig
	metrics    *metrics.AnalyzerMetrics
	logger     *zap.Logger
	now        func() time.Time
	random     func() float64
}

// AnalysisOption customizes an AnalysisService
type AnalysisOption func(*AnalysisService)

// WithAnalysisClock sets the clock used for position timestamps
func WithAnalysisClock(now func() time.Time) AnalysisOption {
	return func(s *AnalysisService) {
		s.now = now
	}
}

// WithRandom sets the source of the heuristic APY draws
func WithRandom(random func() float64) AnalysisOption {
	return func(s *AnalysisService) {
		s.random = random
	}
}

// NewAnalysisService creates a new analysis service
func NewAnalysisService(
	activities *ActivityService,
	walletCache *cache.WalletCache,
	cfg config.AnalyticsConfig,
	m *metrics.AnalyzerMetrics,
	logger *zap.Logger,
	opts ...AnalysisOption,
) *AnalysisService {
	s := &AnalysisService{
		activities: activities,
		cache:      walletCache,
		config:     cfg,
		metrics:    m,
		logger:     logger,
		now:        time.Now,
		random:     rand.Float64,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateProfile returns the memoized profile of address, computing it from
// activities when the current cache generation has none
func (s *AnalysisService) GenerateProfile(address string, activities []entities.Activity) entities.WalletProfile {
	if profile, ok := s.cache.Profile(address); ok {
		return *profile
	}

	if len(activities) == 0 {
		return analytics.EmptyProfile(address)
	}

	profile := analytics.BuildProfile(address, activities)

	entry, cached := s.cache.Get(address)
	if cached && !s.cache.SetProfile(address, entry.Generation, profile) {
		s.logger.Debug("Wallet refreshed during profile generation, not memoizing",
			zap.String("address", address),
		)
	}

	return profile
}

// ReconstructPositions returns the memoized DeFi positions of address,
// rebuilding them from the cached activities when needed. Failures yield an
// empty list.
func (s *AnalysisService) ReconstructPositions(address string) (positions []entities.DeFiPosition) {
	if memoized, ok := s.cache.Positions(address); ok {
		return memoized
	}

	defer func() {
		if r := recover(); r != nil {
			s.metrics.DerivationFailed()
			s.logger.Error("Failed to reconstruct positions",
				zap.String("address", address),
				zap.Error(fmt.Errorf("panic: %v", r)),
			)
			positions = []entities.DeFiPosition{}
		}
	}()

	entry, cached := s.cache.Get(address)
	positions = analytics.ReconstructPositions(entry.Activities, s.now(), s.random)

	if cached {
		s.cache.SetPositions(address, entry.Generation, positions)
	}

	return positions
}

// AnalyzeWallet runs the full pipeline for address
func (s *AnalysisService) AnalyzeWallet(ctx context.Context, address string) entities.WalletAnalysis {
	activities := s.activities.FetchActivities(ctx, address, s.config.AnalyzeLimit)

	profile := s.GenerateProfile(address, activities)
	patterns := analytics.DetectPatterns(activities)
	positions := s.ReconstructPositions(address)
	recommendations := analytics.Recommend(activities, &profile)

	recent := activities
	if len(recent) > s.config.RecentActivities {
		recent = recent[:s.config.RecentActivities]
	}

	s.logger.Info("Analyzed wallet",
		zap.String("address", address),
		zap.Int("activity_count", len(activities)),
		zap.String("risk_profile", string(profile.RiskProfile)),
		zap.Int("position_count", len(positions)),
	)

	return entities.WalletAnalysis{
		Profile:          profile,
		Patterns:         patterns,
		Positions:        positions,
		Recommendations:  recommendations,
		RecentActivities: recent,
	}
}
