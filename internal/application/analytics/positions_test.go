package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
	"github.com/bimakw/wallet-analyzer/internal/testutil"
)

func fixedRandom(v float64) func() float64 {
	return func() float64 { return v }
}

func TestReconstructPositions_Empty(t *testing.T) {
	positions := ReconstructPositions(nil, testutil.BaseTime, fixedRandom(0))

	assert.NotNil(t, positions)
	assert.Empty(t, positions)
}

func TestReconstructPositions_Staking(t *testing.T) {
	activities := []entities.Activity{
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityStaking),
			testutil.WithProtocol(protocols.MarinadeStaking),
			testutil.WithValue(10),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityStaking),
			testutil.WithProtocol(protocols.MarinadeStaking),
			testutil.WithSuccess(false),
		),
	}

	positions := ReconstructPositions(activities, testutil.BaseTime, fixedRandom(0.5))

	require.Len(t, positions, 1)
	p := positions[0]
	assert.Equal(t, protocols.MarinadeStaking, p.Protocol)
	assert.Equal(t, entities.PositionStaking, p.Type)
	require.NotNil(t, p.Value)
	assert.Equal(t, 10.0, *p.Value)
	require.NotNil(t, p.APY)
	assert.InDelta(t, 6.5, *p.APY, 1e-9)
	assert.Equal(t, testutil.BaseTime.UnixMilli(), p.Timestamp)
}

func TestReconstructPositions_Trading(t *testing.T) {
	now := testutil.BaseTime
	activities := []entities.Activity{
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivitySwap),
			testutil.WithProtocol(protocols.RaydiumSwap),
			testutil.WithTimestamp(now.Add(-time.Hour)),
			testutil.WithValue(1),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityOther),
			testutil.WithProtocol(protocols.Fluxbeam),
			testutil.WithTimestamp(now.Add(-2*time.Hour)),
			testutil.WithValue(2),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivitySwap),
			testutil.WithProtocol(protocols.OrcaSwap),
			testutil.WithTimestamp(now.Add(-48*time.Hour)),
			testutil.WithValue(4),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivitySwap),
			testutil.WithTimestamp(now.Add(-30*time.Minute)),
			testutil.WithValue(100),
			testutil.WithSuccess(false),
		),
	}

	positions := ReconstructPositions(activities, now, fixedRandom(0))

	require.Len(t, positions, 2)

	recent := positions[0]
	assert.Equal(t, entities.PositionTrading, recent.Type)
	assert.Equal(t, protocols.Fluxbeam, recent.Protocol)
	require.NotNil(t, recent.Value)
	assert.InDelta(t, 3.0, *recent.Value, 1e-9)
	assert.Equal(t, now.Add(-time.Hour).UnixMilli(), recent.Timestamp)
	assert.Nil(t, recent.APY)

	stats := positions[1]
	assert.Equal(t, entities.PositionTradingStatistics, stats.Type)
	assert.Equal(t, AggregateProtocol, stats.Protocol)
	assert.Equal(t, "Multiple", stats.TokenA)
	require.NotNil(t, stats.Value)
	assert.InDelta(t, 7.0, *stats.Value, 1e-9)
	assert.Equal(t, now.UnixMilli(), stats.Timestamp)
}

func TestReconstructPositions_OnlyOldSwaps(t *testing.T) {
	now := testutil.BaseTime
	activities := testutil.CreateActivities(3, 24*time.Hour,
		testutil.WithType(entities.ActivitySwap),
		testutil.WithTimestamp(now.Add(-72*time.Hour)),
	)

	positions := ReconstructPositions(activities, now, fixedRandom(0))

	require.Len(t, positions, 1)
	assert.Equal(t, entities.PositionTradingStatistics, positions[0].Type)
	assert.InDelta(t, 1.5, *positions[0].Value, 1e-9)
}

func TestReconstructPositions_LendingAndLiquidity(t *testing.T) {
	activities := []entities.Activity{
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityLending),
			testutil.WithProtocol(protocols.Solend),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityAccountCreation),
			testutil.WithProtocol(protocols.OrcaSwap),
			testutil.WithSuccess(false),
		),
		testutil.CreateTestActivity(
			testutil.WithType(entities.ActivityAccountCreation),
			testutil.WithProtocol(protocols.AssociatedTokenProgram),
		),
	}

	positions := ReconstructPositions(activities, testutil.BaseTime, fixedRandom(0.25))

	require.Len(t, positions, 2)

	assert.Equal(t, entities.PositionLending, positions[0].Type)
	assert.Equal(t, protocols.Solend, positions[0].Protocol)
	assert.InDelta(t, 4.0, *positions[0].APY, 1e-9)

	assert.Equal(t, entities.PositionLiquidity, positions[1].Type)
	assert.Equal(t, protocols.OrcaSwap, positions[1].Protocol, "liquidity does not require success")
	assert.InDelta(t, 9.0, *positions[1].APY, 1e-9)
}

func TestReconstructPositions_APYBands(t *testing.T) {
	activities := []entities.Activity{
		testutil.CreateTestActivity(testutil.WithType(entities.ActivityStaking), testutil.WithProtocol(protocols.MarinadeStaking)),
		testutil.CreateTestActivity(testutil.WithType(entities.ActivityLending), testutil.WithProtocol(protocols.Solend)),
		testutil.CreateTestActivity(testutil.WithType(entities.ActivityAccountCreation), testutil.WithProtocol(protocols.RaydiumSwap)),
	}
	bands := map[entities.PositionType][2]float64{
		entities.PositionStaking:   {5, 8},
		entities.PositionLending:   {3, 7},
		entities.PositionLiquidity: {8, 12},
	}

	for _, r := range []float64{0, 0.3, 0.999999} {
		for _, p := range ReconstructPositions(activities, testutil.BaseTime, fixedRandom(r)) {
			band := bands[p.Type]
			require.NotNil(t, p.APY)
			assert.GreaterOrEqual(t, *p.APY, band[0])
			assert.Less(t, *p.APY, band[1])
		}
	}
}

func TestReconstructPositions_DoesNotAliasValues(t *testing.T) {
	activities := []entities.Activity{
		testutil.CreateTestActivity(testutil.WithType(entities.ActivityStaking), testutil.WithValue(3)),
	}

	positions := ReconstructPositions(activities, testutil.BaseTime, fixedRandom(0))
	*positions[0].Value = 99

	assert.Equal(t, 3.0, *activities[0].Value)
}
