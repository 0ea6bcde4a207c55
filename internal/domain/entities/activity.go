package entities

// ActivityType is the semantic category assigned to a classified transaction
type ActivityType string

const (
	ActivityTransfer        ActivityType = "Transfer"
	ActivitySwap            ActivityType = "Swap"
	ActivityMint            ActivityType = "Mint"
	ActivityStaking         ActivityType = "Staking"
	ActivityTrading         ActivityType = "Trading"
	ActivityLending         ActivityType = "Lending"
	ActivityAccountCreation ActivityType = "Account Creation"
	ActivityAuthorityUpdate ActivityType = "Authority Update"
	ActivityTokenCreation   ActivityType = "Token Creation"
	ActivityNFTMint         ActivityType = "NFT Mint"
	ActivityOther           ActivityType = "Other"
	ActivityUnknown         ActivityType = "Unknown"
)

// UnknownProgram is the program id recorded when no instruction names a program
const UnknownProgram = "Unknown"

// Activity is one classified, value-estimated transaction of a wallet
type Activity struct {
	Timestamp   int64        `json:"timestamp"` // epoch milliseconds
	Signature   string       `json:"signature"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Value       *float64     `json:"value,omitempty"` // SOL, absent when not recoverable
	Token       string       `json:"token,omitempty"`
	ProgramID   string       `json:"programId"`
	Success     bool         `json:"success"`
}

// ValueOrZero returns the estimated value, or 0 when it is absent
func (a Activity) ValueOrZero() float64 {
	if a.Value == nil {
		return 0
	}
	return *a.Value
}

// CountByType returns the number of activities with the given type
func CountByType(activities []Activity, t ActivityType) int {
	n := 0
	for _, a := range activities {
		if a.Type == t {
			n++
		}
	}
	return n
}
