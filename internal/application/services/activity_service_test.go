package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/bimakw/wallet-analyzer/internal/config"
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
	"github.com/bimakw/wallet-analyzer/internal/infrastructure/cache"
	"github.com/bimakw/wallet-analyzer/internal/testutil"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: testutil.BaseTime}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func testAnalyticsConfig() config.AnalyticsConfig {
	cfg := config.DefaultAnalytics()
	cfg.BatchDelay = 0
	return cfg
}

// seedWallet registers n transactions for address, most recent first
func seedWallet(repo *testutil.MockChainRepository, address string, n int, opts ...testutil.TransactionOption) []string {
	sigs := make([]string, 0, n)
	for i := 0; i < n; i++ {
		sig := testutil.SignatureA + string(rune('a'+i%26)) + string(rune('A'+i/26))
		bt := testutil.BaseTime.Add(-time.Duration(i) * time.Hour).Unix()
		all := append([]testutil.TransactionOption{testutil.TxWithSignature(sig), testutil.TxWithBlockTime(&bt)}, opts...)
		repo.AddTransaction(address, testutil.CreateTestTransaction(all...))
		sigs = append(sigs, sig)
	}
	return sigs
}

func TestActivityService_FetchActivities(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	t.Run("fetches and classifies in signature order", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		sigs := seedWallet(repo, testutil.WalletAddress, 12)
		walletCache := cache.NewWalletCache()

		service := NewActivityService(repo, walletCache, testAnalyticsConfig(), nil, logger)

		activities := service.FetchActivities(ctx, testutil.WalletAddress, 12)

		if len(activities) != 12 {
			t.Fatalf("expected 12 activities, got %d", len(activities))
		}
		for i, a := range activities {
			if a.Signature != sigs[i] {
				t.Errorf("activity %d: expected signature %s, got %s", i, sigs[i], a.Signature)
			}
		}
		first := activities[0]
		if first.Type != entities.ActivityTransfer {
			t.Errorf("expected Transfer, got %s", first.Type)
		}
		if first.Description != "Transfer transaction" {
			t.Errorf("unexpected description %q", first.Description)
		}
		if first.Timestamp != testutil.BaseTime.UnixMilli() {
			t.Errorf("expected block time in ms, got %d", first.Timestamp)
		}
		if first.Value == nil {
			t.Error("expected value to be estimated")
		}
		if first.ProgramID != protocols.SystemProgramID {
			t.Errorf("expected system program, got %s", first.ProgramID)
		}
		if !first.Success {
			t.Error("expected success")
		}

		if got := repo.CallCount("GetParsedTransaction"); got != 12 {
			t.Errorf("expected 12 transaction lookups, got %d", got)
		}

		entry, ok := walletCache.Get(testutil.WalletAddress)
		if !ok || len(entry.Activities) != 12 {
			t.Error("expected activities to be cached")
		}
	})

	t.Run("serves fresh cache without contacting the chain", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 8)
		walletCache := cache.NewWalletCache()
		service := NewActivityService(repo, walletCache, testAnalyticsConfig(), nil, logger)

		service.FetchActivities(ctx, testutil.WalletAddress, 8)
		activities := service.FetchActivities(ctx, testutil.WalletAddress, 3)

		if len(activities) != 3 {
			t.Errorf("expected cached activities truncated to 3, got %d", len(activities))
		}
		if got := repo.CallCount("GetSignatures"); got != 1 {
			t.Errorf("expected 1 signature lookup, got %d", got)
		}

		activities = service.FetchActivities(ctx, testutil.WalletAddress, 50)
		if len(activities) != 8 {
			t.Errorf("expected all 8 cached activities, got %d", len(activities))
		}
		if got := repo.CallCount("GetSignatures"); got != 1 {
			t.Errorf("larger limit must still be served from fresh cache, got %d lookups", got)
		}
	})

	t.Run("refetches stale cache", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 2)
		clock := newTestClock()
		walletCache := cache.NewWalletCacheWithClock(clock.Now)
		service := NewActivityService(repo, walletCache, testAnalyticsConfig(), nil, logger)

		service.FetchActivities(ctx, testutil.WalletAddress, 10)
		clock.Advance(4 * time.Minute)
		service.FetchActivities(ctx, testutil.WalletAddress, 10)
		if got := repo.CallCount("GetSignatures"); got != 1 {
			t.Fatalf("expected cache hit after 4 minutes, got %d lookups", got)
		}

		clock.Advance(2 * time.Minute)
		service.FetchActivities(ctx, testutil.WalletAddress, 10)
		if got := repo.CallCount("GetSignatures"); got != 2 {
			t.Errorf("expected refetch after 6 minutes, got %d lookups", got)
		}
	})

	t.Run("skips missing transaction bodies", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		repo.AddTransaction(testutil.WalletAddress, testutil.CreateTestTransaction(testutil.TxWithSignature(testutil.SignatureA)))
		repo.AddSignature(testutil.WalletAddress, entities.SignatureInfo{Signature: testutil.SignatureB})
		repo.AddTransaction(testutil.WalletAddress, testutil.CreateTestTransaction(testutil.TxWithSignature(testutil.SignatureC)))

		service := NewActivityService(repo, cache.NewWalletCache(), testAnalyticsConfig(), nil, logger)

		activities := service.FetchActivities(ctx, testutil.WalletAddress, 10)

		if len(activities) != 2 {
			t.Fatalf("expected 2 activities, got %d", len(activities))
		}
		if activities[0].Signature != testutil.SignatureA || activities[1].Signature != testutil.SignatureC {
			t.Errorf("unexpected signatures: %s, %s", activities[0].Signature, activities[1].Signature)
		}
	})

	t.Run("uses the clock when block time is absent", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		repo.AddTransaction(testutil.WalletAddress, testutil.CreateTestTransaction(testutil.TxWithBlockTime(nil)))
		now := testutil.BaseTime.Add(time.Hour)

		service := NewActivityService(repo, cache.NewWalletCache(), testAnalyticsConfig(), nil, logger).
			WithClock(func() time.Time { return now })

		activities := service.FetchActivities(ctx, testutil.WalletAddress, 10)

		if len(activities) != 1 || activities[0].Timestamp != now.UnixMilli() {
			t.Errorf("expected wall clock timestamp, got %v", activities)
		}
	})

	t.Run("returns empty list and keeps cache on signature failure", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		repo.GetSignaturesFunc = func(ctx context.Context, address string, limit int) ([]entities.SignatureInfo, error) {
			return nil, errors.New("rpc unavailable")
		}
		walletCache := cache.NewWalletCache()
		service := NewActivityService(repo, walletCache, testAnalyticsConfig(), nil, logger)

		activities := service.FetchActivities(ctx, testutil.WalletAddress, 10)

		if activities == nil || len(activities) != 0 {
			t.Errorf("expected empty non-nil list, got %v", activities)
		}
		if walletCache.Size() != 0 {
			t.Error("cache must not be written on failure")
		}
	})

	t.Run("returns empty list when a transaction lookup fails", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 7)
		repo.GetParsedTransactionFunc = func(ctx context.Context, signature string) (*entities.ParsedTransaction, error) {
			return nil, errors.New("timeout")
		}
		service := NewActivityService(repo, cache.NewWalletCache(), testAnalyticsConfig(), nil, logger)

		activities := service.FetchActivities(ctx, testutil.WalletAddress, 7)

		if len(activities) != 0 {
			t.Errorf("expected no partial results, got %d", len(activities))
		}
	})

	t.Run("fetches in bounded concurrent batches", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 12)

		var inFlight, peak int32
		repo.GetParsedTransactionFunc = func(ctx context.Context, signature string) (*entities.ParsedTransaction, error) {
			n := atomic.AddInt32(&inFlight, 1)
			defer atomic.AddInt32(&inFlight, -1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(5 * time.Millisecond)
			return testutil.CreateTestTransaction(testutil.TxWithSignature(signature)), nil
		}

		cfg := testAnalyticsConfig()
		cfg.BatchDelay = 10 * time.Millisecond
		service := NewActivityService(repo, cache.NewWalletCache(), cfg, nil, logger)

		start := time.Now()
		activities := service.FetchActivities(ctx, testutil.WalletAddress, 12)
		elapsed := time.Since(start)

		if len(activities) != 12 {
			t.Fatalf("expected 12 activities, got %d", len(activities))
		}
		if peak > int32(cfg.BatchSize) {
			t.Errorf("expected at most %d concurrent lookups, got %d", cfg.BatchSize, peak)
		}
		if elapsed < 2*cfg.BatchDelay {
			t.Errorf("expected two inter-batch pauses, finished in %v", elapsed)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 10)

		cfg := testAnalyticsConfig()
		cfg.BatchDelay = time.Hour
		service := NewActivityService(repo, cache.NewWalletCache(), cfg, nil, logger)

		cctx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()

		activities := service.FetchActivities(cctx, testutil.WalletAddress, 10)

		if len(activities) != 0 {
			t.Errorf("expected empty result after cancellation, got %d", len(activities))
		}
	})

	t.Run("concurrent requests for one wallet fetch once", func(t *testing.T) {
		repo := testutil.NewMockChainRepository()
		seedWallet(repo, testutil.WalletAddress, 5)
		service := NewActivityService(repo, cache.NewWalletCache(), testAnalyticsConfig(), nil, logger)

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				service.FetchActivities(ctx, testutil.WalletAddress, 5)
			}()
		}
		wg.Wait()

		if got := repo.CallCount("GetSignatures"); got != 1 {
			t.Errorf("expected 1 signature lookup, got %d", got)
		}
	})
}

func TestActivityService_NormalizeLimit(t *testing.T) {
	service := NewActivityService(testutil.NewMockChainRepository(), cache.NewWalletCache(), testAnalyticsConfig(), nil, zap.NewNop())

	tests := []struct {
		input    int
		expected int
	}{
		{0, 20},
		{-5, 20},
		{50, 50},
		{5000, 1000},
	}

	for _, tt := range tests {
		if got := service.NormalizeLimit(tt.input); got != tt.expected {
			t.Errorf("NormalizeLimit(%d) = %d, want %d", tt.input, got, tt.expected)
		}
	}
}
