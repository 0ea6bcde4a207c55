package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
	"github.com/bimakw/wallet-analyzer/internal/testutil"
)

func strategyNames(strategies []entities.Strategy) []string {
	out := make([]string, 0, len(strategies))
	for _, s := range strategies {
		out = append(out, s.Strategy)
	}
	return out
}

func profileWith(risk entities.RiskProfile) *entities.WalletProfile {
	return &entities.WalletProfile{RiskProfile: risk}
}

func TestRecommend(t *testing.T) {
	transfers := testutil.CreateActivities(3, time.Hour)
	withProtocol := func(name string) []entities.Activity {
		return append(testutil.CreateActivities(2, time.Hour), testutil.CreateTestActivity(testutil.WithProtocol(name)))
	}

	tests := []struct {
		name       string
		activities []entities.Activity
		profile    *entities.WalletProfile
		expected   []string
	}{
		{"no activity", nil, profileWith(entities.RiskAggressive), []string{"Start DeFi"}},
		{"conservative", transfers, profileWith(entities.RiskConservative), []string{"Staking SOL", "Liquid Staking"}},
		{"conservative with marinade", withProtocol(protocols.MarinadeStaking), profileWith(entities.RiskConservative), []string{"Staking SOL"}},
		{"moderate", transfers, profileWith(entities.RiskModerate), []string{"Supply Stablecoins", "Diversified LP"}},
		{"moderate with solend", withProtocol(protocols.Solend), profileWith(entities.RiskModerate), []string{"Diversified LP"}},
		{"nil profile defaults to moderate", transfers, nil, []string{"Supply Stablecoins", "Diversified LP"}},
		{"aggressive", transfers, profileWith(entities.RiskAggressive), []string{"Leveraged Farming", "Perpetual Trading"}},
		{"aggressive with mango", withProtocol(protocols.MangoMarkets), profileWith(entities.RiskAggressive), []string{"Leveraged Farming"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, strategyNames(Recommend(tt.activities, tt.profile)))
		})
	}
}

func TestRecommend_StartDeFiDetails(t *testing.T) {
	strategies := Recommend(nil, nil)

	assert.Equal(t, []entities.Strategy{{
		Strategy:        "Start DeFi",
		Description:     "Begin with small positions in established protocols.",
		RiskLevel:       entities.RiskLevelLow,
		PotentialReturn: "3-5% APY",
	}}, strategies)
}

func TestRecommend_Idempotent(t *testing.T) {
	activities := testutil.CreateActivities(8, time.Hour, testutil.WithType(entities.ActivitySwap), testutil.WithProtocol(protocols.OrcaSwap))
	profile := BuildProfile(testutil.WalletAddress, activities)

	first := Recommend(activities, &profile)
	second := Recommend(activities, &profile)

	assert.Equal(t, first, second)
}
