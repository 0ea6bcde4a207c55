// Package analytics derives profiles, patterns, positions and strategy
// recommendations from a wallet's classified activity history. Every function
// here is pure: caching and memoization live in the services layer.
package analytics

import (
	"sort"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

const (
	favoriteProtocolLimit      = 3
	aggressiveTradingCount     = 5
	moderateSwapCount          = 10
	diversificationPerProtocol = 10
	maxDiversification         = 100
)

// EmptyProfile is the profile of a wallet with no activity
func EmptyProfile(address string) entities.WalletProfile {
	return entities.WalletProfile{
		Address:           address,
		FavoriteProtocols: []entities.ProtocolCount{},
		RiskProfile:       entities.RiskConservative,
	}
}

// BuildProfile summarises activities into a wallet profile
func BuildProfile(address string, activities []entities.Activity) entities.WalletProfile {
	if len(activities) == 0 {
		return EmptyProfile(address)
	}

	profile := entities.WalletProfile{
		Address:       address,
		ActivityCount: len(activities),
	}

	for _, a := range activities {
		if a.Timestamp <= 0 {
			continue
		}
		if profile.FirstActivityDate == 0 || a.Timestamp < profile.FirstActivityDate {
			profile.FirstActivityDate = a.Timestamp
		}
		if a.Timestamp > profile.LastActivityDate {
			profile.LastActivityDate = a.Timestamp
		}
	}

	counts := countProtocols(activities)
	profile.FavoriteProtocols = favoriteProtocols(counts)

	for _, a := range activities {
		if a.Value != nil {
			profile.TransactionVolume += *a.Value
		}
	}

	profile.RiskProfile = RiskProfileOf(activities)
	profile.PortfolioDiversification = Diversification(len(counts))

	return profile
}

// RiskProfileOf scores activities into a risk tier
func RiskProfileOf(activities []entities.Activity) entities.RiskProfile {
	if entities.CountByType(activities, entities.ActivityTrading) > aggressiveTradingCount || usesProtocol(activities, protocols.MangoMarkets) {
		return entities.RiskAggressive
	}
	if entities.CountByType(activities, entities.ActivitySwap) > moderateSwapCount || entities.CountByType(activities, entities.ActivityLending) > 0 {
		return entities.RiskModerate
	}
	return entities.RiskConservative
}

// Diversification maps a distinct-protocol count to a 0-100 score
func Diversification(distinctProtocols int) int {
	score := distinctProtocols * diversificationPerProtocol
	if score > maxDiversification {
		return maxDiversification
	}
	return score
}

// countProtocols counts activities per protocol in first-encounter order.
// Unknown programs are counted too.
func countProtocols(activities []entities.Activity) []entities.ProtocolCount {
	index := make(map[string]int)
	var counts []entities.ProtocolCount

	for _, a := range activities {
		name := protocols.Identify(a.ProgramID)
		if i, ok := index[name]; ok {
			counts[i].Count++
			continue
		}
		index[name] = len(counts)
		counts = append(counts, entities.ProtocolCount{Name: name, Count: 1})
	}

	return counts
}

func favoriteProtocols(counts []entities.ProtocolCount) []entities.ProtocolCount {
	favorites := make([]entities.ProtocolCount, 0, len(counts))
	for _, c := range counts {
		if c.Name != protocols.Unknown {
			favorites = append(favorites, c)
		}
	}

	sort.SliceStable(favorites, func(i, j int) bool {
		return favorites[i].Count > favorites[j].Count
	})

	if len(favorites) > favoriteProtocolLimit {
		favorites = favorites[:favoriteProtocolLimit]
	}
	return favorites
}

func usesProtocol(activities []entities.Activity, name string) bool {
	for _, a := range activities {
		if protocols.Identify(a.ProgramID) == name {
			return true
		}
	}
	return false
}
