package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
	"github.com/bimakw/wallet-analyzer/internal/domain/protocols"
	"github.com/bimakw/wallet-analyzer/internal/testutil"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ixs      []entities.ParsedInstruction
		expected entities.ActivityType
	}{
		{
			name:     "no instructions",
			ixs:      nil,
			expected: entities.ActivityUnknown,
		},
		{
			name:     "system transfer",
			ixs:      []entities.ParsedInstruction{testutil.ParsedIx("system", "transfer")},
			expected: entities.ActivityTransfer,
		},
		{
			name:     "spl token transferChecked",
			ixs:      []entities.ParsedInstruction{testutil.ParsedIx("spl-token", "transferChecked")},
			expected: entities.ActivityTransfer,
		},
		{
			name: "swap wrapped in account creation and transfer",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("spl-associated-token-account", "create"),
				testutil.ParsedIx("system", "transfer"),
				testutil.ProgramInstruction(testutil.ProgramID(protocols.JupiterAggregator)),
				testutil.ParsedIx("spl-token", "closeAccount"),
			},
			expected: entities.ActivitySwap,
		},
		{
			name:     "fluxbeam is a dex",
			ixs:      []entities.ParsedInstruction{testutil.ProgramInstruction(testutil.ProgramID(protocols.Fluxbeam))},
			expected: entities.ActivitySwap,
		},
		{
			name: "token creation beats nft mint",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("spl-token", "mintTo"),
				testutil.ParsedIx("spl-token", "initializeMint"),
			},
			expected: entities.ActivityTokenCreation,
		},
		{
			name: "nft mint beats swap",
			ixs: []entities.ParsedInstruction{
				testutil.ProgramInstruction(testutil.ProgramID(protocols.RaydiumSwap)),
				testutil.ProgramInstruction(testutil.ProgramID(protocols.Metaplex)),
			},
			expected: entities.ActivityNFTMint,
		},
		{
			name: "swap beats staking",
			ixs: []entities.ParsedInstruction{
				testutil.ProgramInstruction(testutil.ProgramID(protocols.MarinadeStaking)),
				testutil.ProgramInstruction(testutil.ProgramID(protocols.OrcaSwap)),
			},
			expected: entities.ActivitySwap,
		},
		{
			name: "staking beats lending",
			ixs: []entities.ParsedInstruction{
				testutil.ProgramInstruction(testutil.ProgramID(protocols.Solend)),
				testutil.ProgramInstruction(testutil.ProgramID(protocols.MarinadeStaking)),
			},
			expected: entities.ActivityStaking,
		},
		{
			name: "lending beats transfer",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("spl-token", "transfer"),
				testutil.ProgramInstruction(testutil.ProgramID(protocols.Solend)),
			},
			expected: entities.ActivityLending,
		},
		{
			name: "transfer beats account creation",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("system", "createAccount"),
				testutil.ParsedIx("system", "transfer"),
			},
			expected: entities.ActivityTransfer,
		},
		{
			name:     "associated token account creation",
			ixs:      []entities.ParsedInstruction{testutil.ParsedIx("spl-associated-token-account", "create")},
			expected: entities.ActivityAccountCreation,
		},
		{
			name: "authority update",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("spl-token", "approve"),
			},
			expected: entities.ActivityAuthorityUpdate,
		},
		{
			name: "account creation beats authority update",
			ixs: []entities.ParsedInstruction{
				testutil.ParsedIx("spl-token", "setAuthority"),
				testutil.ParsedIx("system", "createAccount"),
			},
			expected: entities.ActivityAccountCreation,
		},
		{
			name:     "unrecognised program",
			ixs:      []entities.ParsedInstruction{testutil.ProgramInstruction(protocols.ComputeBudgetProgramID)},
			expected: entities.ActivityOther,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := testutil.CreateTestTransaction(testutil.TxWithInstructions(tt.ixs...))
			assert.Equal(t, tt.expected, Classify(tx))
		})
	}
}

func TestClassify_Deterministic(t *testing.T) {
	tx := testutil.CreateTestTransaction(testutil.TxWithInstructions(
		testutil.ParsedIx("spl-associated-token-account", "create"),
		testutil.ProgramInstruction(testutil.ProgramID(protocols.SerumDexV3)),
	))

	first := Classify(tx)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, Classify(tx))
	}
}

func TestClassify_Nil(t *testing.T) {
	assert.Equal(t, entities.ActivityUnknown, Classify(nil))
}

func TestEstimateValue(t *testing.T) {
	t.Run("fee payer balance change", func(t *testing.T) {
		tx := testutil.CreateTestTransaction()
		value, ok := EstimateValue(tx)
		require.True(t, ok)
		assert.InDelta(t, 0.500005, value, 1e-12)
	})

	t.Run("balance increase is absolute", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(testutil.TxWithBalances(
			[]uint64{1_000_000_000}, []uint64{3_000_000_000},
		))
		value, ok := EstimateValue(tx)
		require.True(t, ok)
		assert.InDelta(t, 2.0, value, 1e-12)
	})

	t.Run("missing meta", func(t *testing.T) {
		_, ok := EstimateValue(testutil.CreateTestTransaction(testutil.TxWithoutMeta()))
		assert.False(t, ok)
	})

	t.Run("empty balances", func(t *testing.T) {
		_, ok := EstimateValue(testutil.CreateTestTransaction(testutil.TxWithBalances(nil, nil)))
		assert.False(t, ok)
	})

	t.Run("no account keys", func(t *testing.T) {
		tx := testutil.CreateTestTransaction()
		tx.AccountKeys = nil
		_, ok := EstimateValue(tx)
		assert.False(t, ok)
	})
}

func TestToActivity(t *testing.T) {
	blockTime := testutil.BaseTime.Unix()

	t.Run("uses block time", func(t *testing.T) {
		tx := testutil.CreateTestTransaction()
		a := ToActivity(testutil.SignatureA, &blockTime, tx, 1)

		assert.Equal(t, blockTime*1000, a.Timestamp)
		assert.Equal(t, testutil.SignatureA, a.Signature)
		assert.Equal(t, entities.ActivityTransfer, a.Type)
		assert.Equal(t, "Transfer transaction", a.Description)
		assert.Equal(t, protocols.SystemProgramID, a.ProgramID)
		assert.True(t, a.Success)
		require.NotNil(t, a.Value)
	})

	t.Run("falls back to observation time", func(t *testing.T) {
		tx := testutil.CreateTestTransaction()
		a := ToActivity(testutil.SignatureA, nil, tx, 42)
		assert.Equal(t, int64(42), a.Timestamp)
	})

	t.Run("failed transaction", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(testutil.TxWithError(map[string]interface{}{"InstructionError": []interface{}{0, "Custom"}}))
		a := ToActivity(testutil.SignatureA, &blockTime, tx, 0)
		assert.False(t, a.Success)
	})

	t.Run("no instructions", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(testutil.TxWithInstructions())
		a := ToActivity(testutil.SignatureA, &blockTime, tx, 0)
		assert.Equal(t, entities.ActivityUnknown, a.Type)
		assert.Equal(t, entities.UnknownProgram, a.ProgramID)
	})

	t.Run("missing meta has no value and is not successful", func(t *testing.T) {
		tx := testutil.CreateTestTransaction(testutil.TxWithoutMeta())
		a := ToActivity(testutil.SignatureA, &blockTime, tx, 0)
		assert.Nil(t, a.Value)
		assert.False(t, a.Success)
	})
}

func TestDetails(t *testing.T) {
	tx := testutil.CreateTestTransaction(testutil.TxWithInstructions(
		testutil.ProgramInstruction(protocols.ComputeBudgetProgramID),
		testutil.ProgramInstruction(testutil.ProgramID(protocols.JupiterAggregator)),
	))

	details := Details(testutil.SignatureB, tx)

	assert.Equal(t, testutil.SignatureB, details.Signature)
	assert.Equal(t, testutil.BaseTime.UnixMilli(), details.BlockTime)
	assert.InDelta(t, 0.000005, details.Fee, 1e-12)
	assert.Equal(t, entities.StatusSuccess, details.Status)
	assert.Equal(t, entities.ActivitySwap, details.Type)
	assert.Equal(t, tx.AccountKeys, details.Accounts)
	require.Len(t, details.ProgramIDs, 2)
	assert.Equal(t, protocols.Unknown, details.ProgramIDs[0].Name)
	assert.Equal(t, protocols.JupiterAggregator, details.ProgramIDs[1].Name)

	failed := Details(testutil.SignatureB, testutil.CreateTestTransaction(testutil.TxWithError("boom")))
	assert.Equal(t, entities.StatusFailed, failed.Status)
}
