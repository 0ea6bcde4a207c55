package entities

// LamportsPerSOL is the number of lamports in one SOL
const LamportsPerSOL = 1_000_000_000

// SignatureInfo is a signature reference returned for an address
type SignatureInfo struct {
	Signature string
	Slot      uint64
	BlockTime *int64 // unix seconds
}

// ParsedInstruction is the subset of a jsonParsed instruction the classifier reads
type ParsedInstruction struct {
	ProgramID string // base58 program address
	Program   string // parser name, e.g. "spl-token", "system"
	Type      string // parsed instruction type, e.g. "transfer"
}

// TransactionMeta holds execution results of a transaction
type TransactionMeta struct {
	Err          interface{}
	Fee          uint64
	PreBalances  []uint64
	PostBalances []uint64
}

// ParsedTransaction is a chain-agnostic view of a jsonParsed Solana transaction
type ParsedTransaction struct {
	Signature    string
	Slot         uint64
	BlockTime    *int64 // unix seconds
	AccountKeys  []string
	Instructions []ParsedInstruction
	Meta         *TransactionMeta
}

// Succeeded reports whether the chain recorded the transaction without an error
func (tx *ParsedTransaction) Succeeded() bool {
	return tx != nil && tx.Meta != nil && tx.Meta.Err == nil
}

// ProgramInfo pairs a program address with its registry name
type ProgramInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TransactionDetails is the detail view of a single transaction
type TransactionDetails struct {
	Signature  string        `json:"signature"`
	BlockTime  int64         `json:"blockTime"` // epoch milliseconds
	Fee        float64       `json:"fee"`       // SOL
	Status     string        `json:"status"`
	Type       ActivityType  `json:"type"`
	Accounts   []string      `json:"accounts"`
	ProgramIDs []ProgramInfo `json:"programIds"`
}

// Transaction status values
const (
	StatusSuccess = "Success"
	StatusFailed  = "Failed"
)
