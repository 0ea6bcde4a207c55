package entities

// RiskProfile is the coarse behavioral tier of a wallet
type RiskProfile string

const (
	RiskConservative RiskProfile = "conservative"
	RiskModerate     RiskProfile = "moderate"
	RiskAggressive   RiskProfile = "aggressive"
)

// ProtocolCount is the number of activities attributed to a protocol
type ProtocolCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// WalletProfile summarises a wallet's activity history
type WalletProfile struct {
	Address                  string          `json:"address"`
	ActivityCount            int             `json:"activityCount"`
	FirstActivityDate        int64           `json:"firstActivityDate"` // epoch ms, 0 when unknown
	LastActivityDate         int64           `json:"lastActivityDate"`  // epoch ms, 0 when unknown
	FavoriteProtocols        []ProtocolCount `json:"favoriteProtocols"`
	TransactionVolume        float64         `json:"transactionVolume"`
	RiskProfile              RiskProfile     `json:"riskProfile"`
	PortfolioDiversification int             `json:"portfolioDiversification"`
}

// PositionType is the kind of a reconstructed DeFi position
type PositionType string

const (
	PositionStaking           PositionType = "Staking"
	PositionLending           PositionType = "Lending"
	PositionLiquidity         PositionType = "Liquidity"
	PositionTrading           PositionType = "Trading"
	PositionTradingStatistics PositionType = "Trading Statistics"
)

// DeFiPosition is a best-effort open position inferred from activity history
type DeFiPosition struct {
	Protocol  string       `json:"protocol"`
	Type      PositionType `json:"type"`
	TokenA    string       `json:"tokenA,omitempty"`
	TokenB    string       `json:"tokenB,omitempty"`
	Value     *float64     `json:"value,omitempty"`
	APY       *float64     `json:"apy,omitempty"`
	Timestamp int64        `json:"timestamp"` // epoch ms
}

// PatternType names a detected behavioral pattern
type PatternType string

const (
	PatternInsufficientData PatternType = "insufficient_data"
	PatternDCA              PatternType = "dca"
	PatternLendingActive    PatternType = "lending_active"
	PatternYieldFarming     PatternType = "yield_farming"
	PatternGeneral          PatternType = "general"
)

// TransactionPattern is a behavioral pattern with a fixed confidence
type TransactionPattern struct {
	PatternType PatternType `json:"patternType"`
	Confidence  float64     `json:"confidence"`
	Description string      `json:"description"`
}

// RiskLevel is the risk tier of a recommended strategy
type RiskLevel string

const (
	RiskLevelLow    RiskLevel = "low"
	RiskLevelMedium RiskLevel = "medium"
	RiskLevelHigh   RiskLevel = "high"
)

// Strategy is a suggested next action for a wallet
type Strategy struct {
	Strategy        string    `json:"strategy"`
	Description     string    `json:"description"`
	RiskLevel       RiskLevel `json:"riskLevel"`
	PotentialReturn string    `json:"potentialReturn"`
}

// WalletAnalysis bundles every derived view of a wallet
type WalletAnalysis struct {
	Profile          WalletProfile        `json:"profile"`
	Patterns         []TransactionPattern `json:"patterns"`
	Positions        []DeFiPosition       `json:"positions"`
	Recommendations  []Strategy           `json:"recommendations"`
	RecentActivities []Activity           `json:"recentActivities"`
}
