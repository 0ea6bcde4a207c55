package analytics

import (
	"time"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

const (
	// AggregateProtocol labels the all-time trading statistics position
	AggregateProtocol = "Aggregate"
	multipleTokens    = "Multiple"
	recentTradingSpan = 24 * time.Hour
)

// APY bands as [min, min+spread)
type apyBand struct {
	min    float64
	spread float64
}

var (
	stakingAPY   = apyBand{min: 5.0, spread: 3.0}
	lendingAPY   = apyBand{min: 3.0, spread: 4.0}
	liquidityAPY = apyBand{min: 8.0, spread: 4.0}
)

func (b apyBand) draw(random func() float64) *float64 {
	v := b.min + random()*b.spread
	return &v
}

// ReconstructPositions infers DeFi positions from activities. random must return
// values in [0, 1) and drives the heuristic APY figures.
func ReconstructPositions(activities []entities.Activity, now time.Time, random func() float64) []entities.DeFiPosition {
	positions := make([]entities.DeFiPosition, 0)
	nowMs := now.UnixMilli()

	for _, a := range activities {
		if a.Type == entities.ActivityStaking && a.Success {
			positions = append(positions, entities.DeFiPosition{
				Protocol:  protocols.Identify(a.ProgramID),
				Type:      entities.PositionStaking,
				TokenA:    a.Token,
				Value:     copyValue(a.Value),
				APY:       stakingAPY.draw(random),
				Timestamp: a.Timestamp,
			})
		}
	}

	swaps := swapActivities(activities)

	var recentVolume float64
	var latest int64
	recent := 0
	for _, a := range swaps {
		if nowMs-a.Timestamp < recentTradingSpan.Milliseconds() {
			if recent == 0 || a.Timestamp > latest {
				latest = a.Timestamp
			}
			recentVolume += a.ValueOrZero()
			recent++
		}
	}
	if recent > 0 {
		positions = append(positions, entities.DeFiPosition{
			Protocol:  protocols.Fluxbeam,
			Type:      entities.PositionTrading,
			Value:     &recentVolume,
			Timestamp: latest,
		})
	}

	for _, a := range activities {
		if a.Type == entities.ActivityLending && a.Success {
			positions = append(positions, entities.DeFiPosition{
				Protocol:  protocols.Identify(a.ProgramID),
				Type:      entities.PositionLending,
				TokenA:    a.Token,
				Value:     copyValue(a.Value),
				APY:       lendingAPY.draw(random),
				Timestamp: a.Timestamp,
			})
		}
	}

	for _, a := range activities {
		if a.Type != entities.ActivityAccountCreation {
			continue
		}
		protocol := protocols.Identify(a.ProgramID)
		if protocol == protocols.RaydiumSwap || protocol == protocols.OrcaSwap {
			positions = append(positions, entities.DeFiPosition{
				Protocol:  protocol,
				Type:      entities.PositionLiquidity,
				Value:     copyValue(a.Value),
				APY:       liquidityAPY.draw(random),
				Timestamp: a.Timestamp,
			})
		}
	}

	if len(swaps) > 0 {
		var total float64
		for _, a := range swaps {
			total += a.ValueOrZero()
		}
		positions = append(positions, entities.DeFiPosition{
			Protocol:  AggregateProtocol,
			Type:      entities.PositionTradingStatistics,
			TokenA:    multipleTokens,
			Value:     &total,
			Timestamp: nowMs,
		})
	}

	return positions
}

// swapActivities returns successful swaps and successful Fluxbeam activities
func swapActivities(activities []entities.Activity) []entities.Activity {
	var swaps []entities.Activity
	for _, a := range activities {
		if !a.Success {
			continue
		}
		if a.Type == entities.ActivitySwap || protocols.Identify(a.ProgramID) == protocols.Fluxbeam {
			swaps = append(swaps, a)
		}
	}
	return swaps
}

func copyValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
