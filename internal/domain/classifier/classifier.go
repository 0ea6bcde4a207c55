// Package classifier turns parsed Solana transactions into wallet activities.
package classifier

import (
	"math"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

// Parser program names as reported by jsonParsed encoding
const (
	programSPLToken               = "spl-token"
	programSystem                 = "system"
	programAssociatedTokenAccount = "spl-associated-token-account"
)

var dexPrograms = map[string]struct{}{
	protocols.MustAddress(protocols.RaydiumSwap):       {},
	protocols.MustAddress(protocols.OrcaSwap):          {},
	protocols.MustAddress(protocols.JupiterAggregator): {},
	protocols.MustAddress(protocols.SerumDexV3):        {},
	protocols.MustAddress(protocols.Fluxbeam):          {},
}

var (
	metaplexProgram = protocols.MustAddress(protocols.Metaplex)
	marinadeProgram = protocols.MustAddress(protocols.MarinadeStaking)
	solendProgram   = protocols.MustAddress(protocols.Solend)
)

// rule matches a single instruction. A transaction gets the result of the first
// rule that matches any of its instructions.
type rule struct {
	name   string
	match  func(ix entities.ParsedInstruction) bool
	result entities.ActivityType
}

// rules is evaluated top to bottom; order decides the outcome for transactions
// that mix instruction kinds (e.g. a swap wrapped in account creation).
var rules = []rule{
	{
		name: "token creation",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.Type == "initializeMint" || ix.Type == "initializeMint2" || ix.Type == "initializeTokenMetadata"
		},
		result: entities.ActivityTokenCreation,
	},
	{
		name: "nft mint",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.ProgramID == metaplexProgram || (ix.Program == programSPLToken && ix.Type == "mintTo")
		},
		result: entities.ActivityNFTMint,
	},
	{
		name: "dex",
		match: func(ix entities.ParsedInstruction) bool {
			_, ok := dexPrograms[ix.ProgramID]
			return ok
		},
		result: entities.ActivitySwap,
	},
	{
		name: "staking",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.ProgramID == marinadeProgram
		},
		result: entities.ActivityStaking,
	},
	{
		name: "lending",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.ProgramID == solendProgram
		},
		result: entities.ActivityLending,
	},
	{
		name: "transfer",
		match: func(ix entities.ParsedInstruction) bool {
			switch ix.Program {
			case programSPLToken:
				return ix.Type == "transfer" || ix.Type == "transferChecked"
			case programSystem:
				return ix.Type == "transfer"
			}
			return false
		},
		result: entities.ActivityTransfer,
	},
	{
		name: "account creation",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.Program == programAssociatedTokenAccount || (ix.Program == programSystem && ix.Type == "createAccount")
		},
		result: entities.ActivityAccountCreation,
	},
	{
		name: "authority update",
		match: func(ix entities.ParsedInstruction) bool {
			return ix.Type == "setAuthority" || ix.Type == "approve" || ix.Type == "revoke"
		},
		result: entities.ActivityAuthorityUpdate,
	},
}

// Classify returns the activity type of tx
func Classify(tx *entities.ParsedTransaction) entities.ActivityType {
	if tx == nil || len(tx.Instructions) == 0 {
		return entities.ActivityUnknown
	}

	for _, r := range rules {
		for _, ix := range tx.Instructions {
			if r.match(ix) {
				return r.result
			}
		}
	}

	return entities.ActivityOther
}

// EstimateValue returns the absolute SOL balance change of the fee payer
// (first account key). It reports false when balances are unavailable.
func EstimateValue(tx *entities.ParsedTransaction) (float64, bool) {
	if tx == nil || tx.Meta == nil {
		return 0, false
	}

	pre, post := tx.Meta.PreBalances, tx.Meta.PostBalances
	if len(pre) == 0 || len(post) == 0 || len(tx.AccountKeys) == 0 {
		return 0, false
	}

	feePayer := tx.AccountKeys[0]
	idx := -1
	for i, key := range tx.AccountKeys {
		if key == feePayer {
			idx = i
			break
		}
	}
	if idx < 0 || idx >= len(pre) || idx >= len(post) {
		return 0, false
	}

	diff := math.Abs(float64(pre[idx]) - float64(post[idx]))
	return diff / entities.LamportsPerSOL, true
}

// PrimaryProgram returns the first instruction's program id, or UnknownProgram
func PrimaryProgram(tx *entities.ParsedTransaction) string {
	if tx == nil {
		return entities.UnknownProgram
	}
	for _, ix := range tx.Instructions {
		if ix.ProgramID != "" {
			return ix.ProgramID
		}
	}
	return entities.UnknownProgram
}

// ToActivity classifies tx into an Activity. blockTime is the signature's block
// time in unix seconds; nowMs is used when it is absent.
func ToActivity(signature string, blockTime *int64, tx *entities.ParsedTransaction, nowMs int64) entities.Activity {
	timestamp := nowMs
	if blockTime != nil && *blockTime != 0 {
		timestamp = *blockTime * 1000
	}

	activityType := Classify(tx)
	activity := entities.Activity{
		Timestamp:   timestamp,
		Signature:   signature,
		Type:        activityType,
		Description: string(activityType) + " transaction",
		ProgramID:   PrimaryProgram(tx),
		Success:     tx.Succeeded(),
	}

	if value, ok := EstimateValue(tx); ok {
		activity.Value = &value
	}

	return activity
}

// Details builds the detail view for a single transaction
func Details(signature string, tx *entities.ParsedTransaction) entities.TransactionDetails {
	details := entities.TransactionDetails{
		Signature:  signature,
		Status:     entities.StatusFailed,
		Type:       Classify(tx),
		Accounts:   append([]string(nil), tx.AccountKeys...),
		ProgramIDs: make([]entities.ProgramInfo, 0, len(tx.Instructions)),
	}

	if tx.BlockTime != nil {
		details.BlockTime = *tx.BlockTime * 1000
	}
	if tx.Meta != nil {
		details.Fee = float64(tx.Meta.Fee) / entities.LamportsPerSOL
	}
	if tx.Succeeded() {
		details.Status = entities.StatusSuccess
	}

	for _, ix := range tx.Instructions {
		if ix.ProgramID == "" {
			continue
		}
		details.ProgramIDs = append(details.ProgramIDs, entities.ProgramInfo{
			ID:   ix.ProgramID,
			Name: protocols.Identify(ix.ProgramID),
		})
	}

	return details
}
