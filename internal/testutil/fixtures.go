package testutil

import (
	"time"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
)

// Common test addresses and signatures (valid base58)
const (
	WalletAddress = "6atmHfEydp2PHF9QPhhzzApJfnKzJonKTFcE99oYea5L"
	OtherAddress  = "4wBqpZM9xaSheZzJSMawUKKwhdpChKbZ5eu5ky4Vigw"
	ThirdAddress  = "3hmiRZikDbAH9BKnK65RHcR5TtqfUB6aLzeVMaiRdiGW"

	SignatureA = "LnrbZDPq59Ywk2Ddy9zVxg7KVaDBPRpikn7V7A3ZWgEb2JK6JYLkQKJCbqyeji46k7svBPp5UsFu4v4mh1DGzTJ"
	SignatureB = "gaiC7Rnf9J6tV3SGwJyzvMDdz9RMmreSWZDyDK682MUB3bdBc5gVodbQCgxJUR7CVEkqMnd9xjWo8q8YP1RYyub"
	SignatureC = "22NZnfeBVDSeqE4euuTyVt2KxUidYAHUAGLLTKU8gY2hm4twGud2FCwtboXvxD8AJEMdkYBSESbmhCkCK51dpyMt"
)

// BaseTime is a fixed reference time for deterministic fixtures
var BaseTime = time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

// ProgramID returns the registered address of a protocol name
func ProgramID(name string) string {
	return protocols.MustAddress(name)
}

// CreateTestActivity creates a successful Transfer activity with default values
func CreateTestActivity(opts ...ActivityOption) entities.Activity {
	value := 0.5
	a := entities.Activity{
		Timestamp:   BaseTime.UnixMilli(),
		Signature:   SignatureA,
		Type:        entities.ActivityTransfer,
		Description: "Transfer transaction",
		Value:       &value,
		ProgramID:   protocols.SystemProgramID,
		Success:     true,
	}

	for _, opt := range opts {
		opt(&a)
	}

	return a
}

type ActivityOption func(*entities.Activity)

func WithType(t entities.ActivityType) ActivityOption {
	return func(a *entities.Activity) {
		a.Type = t
		a.Description = string(t) + " transaction"
	}
}

func WithSignature(sig string) ActivityOption {
	return func(a *entities.Activity) {
		a.Signature = sig
	}
}

func WithTimestamp(ts time.Time) ActivityOption {
	return func(a *entities.Activity) {
		a.Timestamp = ts.UnixMilli()
	}
}

func WithValue(v float64) ActivityOption {
	return func(a *entities.Activity) {
		a.Value = &v
	}
}

func WithoutValue() ActivityOption {
	return func(a *entities.Activity) {
		a.Value = nil
	}
}

func WithProgram(programID string) ActivityOption {
	return func(a *entities.Activity) {
		a.ProgramID = programID
	}
}

func WithProtocol(name string) ActivityOption {
	return func(a *entities.Activity) {
		a.ProgramID = protocols.MustAddress(name)
	}
}

func WithSuccess(success bool) ActivityOption {
	return func(a *entities.Activity) {
		a.Success = success
	}
}

// CreateActivities creates n activities spaced by gap, most recent first
func CreateActivities(n int, gap time.Duration, opts ...ActivityOption) []entities.Activity {
	activities := make([]entities.Activity, 0, n)
	for i := 0; i < n; i++ {
		ts := BaseTime.Add(-time.Duration(i) * gap)
		all := append([]ActivityOption{WithTimestamp(ts)}, opts...)
		activities = append(activities, CreateTestActivity(all...))
	}
	return activities
}

// CreateTestTransaction creates a successful parsed SOL transfer
func CreateTestTransaction(opts ...TransactionOption) *entities.ParsedTransaction {
	blockTime := BaseTime.Unix()
	tx := &entities.ParsedTransaction{
		Signature:   SignatureA,
		Slot:        250000000,
		BlockTime:   &blockTime,
		AccountKeys: []string{WalletAddress, OtherAddress, protocols.SystemProgramID},
		Instructions: []entities.ParsedInstruction{
			{ProgramID: protocols.SystemProgramID, Program: "system", Type: "transfer"},
		},
		Meta: &entities.TransactionMeta{
			Fee:          5000,
			PreBalances:  []uint64{2_000_000_000, 0, 1},
			PostBalances: []uint64{1_499_995_000, 500_000_000, 1},
		},
	}

	for _, opt := range opts {
		opt(tx)
	}

	return tx
}

type TransactionOption func(*entities.ParsedTransaction)

func TxWithSignature(sig string) TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.Signature = sig
	}
}

func TxWithInstructions(ixs ...entities.ParsedInstruction) TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.Instructions = ixs
	}
}

func TxWithError(err interface{}) TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.Meta.Err = err
	}
}

func TxWithoutMeta() TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.Meta = nil
	}
}

func TxWithBalances(pre, post []uint64) TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.Meta.PreBalances = pre
		tx.Meta.PostBalances = post
	}
}

func TxWithBlockTime(ts *int64) TransactionOption {
	return func(tx *entities.ParsedTransaction) {
		tx.BlockTime = ts
	}
}

// ProgramInstruction is an unparsed instruction targeting programID
func ProgramInstruction(programID string) entities.ParsedInstruction {
	return entities.ParsedInstruction{ProgramID: programID}
}

// ParsedIx is a parsed instruction from a known parser
func ParsedIx(program, ixType string) entities.ParsedInstruction {
	programID := ""
	switch program {
	case "system":
		programID = protocols.SystemProgramID
	case "spl-token":
		programID = protocols.MustAddress(protocols.TokenProgram)
	case "spl-associated-token-account":
		programID = protocols.MustAddress(protocols.AssociatedTokenProgram)
	}
	return entities.ParsedInstruction{ProgramID: programID, Program: program, Type: ixType}
}
