package analytics

import (
	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

var (
	startDeFi = entities.Strategy{
		Strategy:        "Start DeFi",
		Description:     "Begin with small positions in established protocols.",
		RiskLevel:       entities.RiskLevelLow,
		PotentialReturn: "3-5% APY",
	}
	stakingSOL = entities.Strategy{
		Strategy:        "Staking SOL",
		Description:     "Stake SOL with a validator for steady returns.",
		RiskLevel:       entities.RiskLevelLow,
		PotentialReturn: "5-7% APY",
	}
	liquidStaking = entities.Strategy{
		Strategy:        "Liquid Staking",
		Description:     "Use Marinade Finance for liquid staking to earn staking rewards while maintaining liquidity.",
		RiskLevel:       entities.RiskLevelLow,
		PotentialReturn: "6-8% APY",
	}
	supplyStablecoins = entities.Strategy{
		Strategy:        "Supply Stablecoins",
		Description:     "Supply USDC or USDT to Solend to earn lending interest.",
		RiskLevel:       entities.RiskLevelMedium,
		PotentialReturn: "8-12% APY",
	}
	diversifiedLP = entities.Strategy{
		Strategy:        "Diversified LP",
		Description:     "Provide liquidity to stable pairs on Raydium or Orca.",
		RiskLevel:       entities.RiskLevelMedium,
		PotentialReturn: "10-20% APY",
	}
	leveragedFarming = entities.Strategy{
		Strategy:        "Leveraged Farming",
		Description:     "Use leverage on Solend or Mango Markets for amplified yields.",
		RiskLevel:       entities.RiskLevelHigh,
		PotentialReturn: "20-40% APY with risk",
	}
	perpetualTrading = entities.Strategy{
		Strategy:        "Perpetual Trading",
		Description:     "Trade perpetual futures on Mango Markets or Drift Protocol.",
		RiskLevel:       entities.RiskLevelHigh,
		PotentialReturn: "Variable",
	}
)

// Recommend suggests strategies for a wallet. A nil profile is treated as moderate.
func Recommend(activities []entities.Activity, profile *entities.WalletProfile) []entities.Strategy {
	if len(activities) == 0 {
		return []entities.Strategy{startDeFi}
	}

	risk := entities.RiskModerate
	if profile != nil && profile.RiskProfile != "" {
		risk = profile.RiskProfile
	}

	used := usedProtocols(activities)
	var strategies []entities.Strategy

	switch risk {
	case entities.RiskConservative:
		strategies = append(strategies, stakingSOL)
		if !used[protocols.MarinadeStaking] {
			strategies = append(strategies, liquidStaking)
		}
	case entities.RiskModerate:
		if !used[protocols.Solend] {
			strategies = append(strategies, supplyStablecoins)
		}
		strategies = append(strategies, diversifiedLP)
	default:
		strategies = append(strategies, leveragedFarming)
		if !used[protocols.MangoMarkets] {
			strategies = append(strategies, perpetualTrading)
		}
	}

	return strategies
}

func usedProtocols(activities []entities.Activity) map[string]bool {
	used := make(map[string]bool)
	for _, a := range activities {
		if a.ProgramID != "" && a.ProgramID != entities.UnknownProgram {
			used[protocols.Identify(a.ProgramID)] = true
		}
	}
	return used
}
