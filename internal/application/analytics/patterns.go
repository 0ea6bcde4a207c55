package analytics

import (
	"math"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

const (
	minPatternActivities = 5
	minDCASwaps          = 3
	dcaMaxVariation      = 0.3
	yieldFarmingStakes   = 2
)

var (
	insufficientDataPattern = entities.TransactionPattern{
		PatternType: entities.PatternInsufficientData,
		Confidence:  0,
		Description: "Not enough transaction history to establish patterns.",
	}
	dcaPattern = entities.TransactionPattern{
		PatternType: entities.PatternDCA,
		Confidence:  0.7,
		Description: "Regular token purchases suggest a dollar-cost averaging strategy.",
	}
	lendingActivePattern = entities.TransactionPattern{
		PatternType: entities.PatternLendingActive,
		Confidence:  0.9,
		Description: "Active lending positions detected. Monitor collateral ratios to avoid liquidation.",
	}
	yieldFarmingPattern = entities.TransactionPattern{
		PatternType: entities.PatternYieldFarming,
		Confidence:  0.8,
		Description: "Multiple staking activities suggest active yield farming strategy.",
	}
	generalPattern = entities.TransactionPattern{
		PatternType: entities.PatternGeneral,
		Confidence:  0.5,
		Description: "No specific pattern detected in transaction history.",
	}
)

// DetectPatterns runs the pattern checks over activities, most recent first.
// The result is never empty.
func DetectPatterns(activities []entities.Activity) []entities.TransactionPattern {
	if len(activities) < minPatternActivities {
		return []entities.TransactionPattern{insufficientDataPattern}
	}

	var patterns []entities.TransactionPattern

	if isDCA(activities) {
		patterns = append(patterns, dcaPattern)
	}
	if entities.CountByType(activities, entities.ActivityLending) > 0 {
		patterns = append(patterns, lendingActivePattern)
	}
	if entities.CountByType(activities, entities.ActivityStaking) > yieldFarmingStakes {
		patterns = append(patterns, yieldFarmingPattern)
	}

	if len(patterns) == 0 {
		return []entities.TransactionPattern{generalPattern}
	}
	return patterns
}

func isDCA(activities []entities.Activity) bool {
	var swaps []int64
	for _, a := range activities {
		if a.Type == entities.ActivitySwap {
			swaps = append(swaps, a.Timestamp)
		}
	}
	if len(swaps) < minDCASwaps {
		return false
	}

	gaps := make([]float64, 0, len(swaps)-1)
	for i := 1; i < len(swaps); i++ {
		gaps = append(gaps, float64(swaps[i-1]-swaps[i]))
	}

	ratio, ok := VariationCoefficient(gaps)
	return ok && ratio < dcaMaxVariation
}

// VariationCoefficient returns the population standard deviation of values
// divided by their mean. The mean keeps its sign, so gaps taken from an
// oldest-first list produce a negative ratio. It is undefined for an empty
// input or a zero mean.
func VariationCoefficient(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 0, false
	}

	var squares float64
	for _, v := range values {
		squares += (v - mean) * (v - mean)
	}
	stdDev := math.Sqrt(squares / float64(len(values)))

	return stdDev / mean, true
}
