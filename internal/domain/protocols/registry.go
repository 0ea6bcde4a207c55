// Package protocols maps known Solana program addresses to protocol names.
package protocols

import (
	"github.com/gagliardetto/solana-go"
)

// Unknown is returned for any program address missing from the registry
const Unknown = "Unknown"

// Registered protocol names
const (
	RaydiumSwap            = "RAYDIUM_SWAP"
	OrcaSwap               = "ORCA_SWAP"
	JupiterAggregator      = "JUPITER_AGGREGATOR"
	MarinadeStaking        = "MARINADE_STAKING"
	SerumDexV3             = "SERUM_DEX_V3"
	Solend                 = "SOLEND"
	MangoMarkets           = "MANGO_MARKETS"
	TokenProgram           = "TOKEN_PROGRAM"
	AssociatedTokenProgram = "ASSOCIATED_TOKEN_PROGRAM"
	Metaplex               = "METAPLEX"
	Fluxbeam               = "FLUXBEAM"
)

// Well-known non-protocol program addresses
var (
	SystemProgramID        = solana.SystemProgramID.String()
	ComputeBudgetProgramID = solana.ComputeBudget.String()
)

// Protocol is a named on-chain program
type Protocol struct {
	Name    string
	Address string
}

var known = []Protocol{
	{RaydiumSwap, "675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8"},
	{OrcaSwap, "9W959DqEETiGZocYWCQPaJ6sBmUzgfxXfqGeTEdp3aQP"},
	{JupiterAggregator, "JUP6LkbZbjS1jKKwapdHNy74zcZ3tLUZoi5QNyVTaV4"},
	{MarinadeStaking, "MarBmsSgKXdrN1egZf5sqe1TMai9K1rChYNDJgjq7aD"},
	{SerumDexV3, "9xQeWvG816bUx9EPjHmaT23yvVM2ZWbrrpZb9PusVFin"},
	{Solend, "So1endDq2YkqhipRh3WViPa8hdiSpxWy6z3Z6tMCpAo"},
	{MangoMarkets, "mv3ekLzLbnVPNxjSKvqBpU3ZeZXPQdEC3bp5MDEBG68"},
	{TokenProgram, solana.TokenProgramID.String()},
	{AssociatedTokenProgram, solana.SPLAssociatedTokenAccountProgramID.String()},
	{Metaplex, solana.TokenMetadataProgramID.String()},
	{Fluxbeam, "FLUXubRmkEi2q6K3Y9kBPg9248ggaZVsoSFhtJHSrm1X"},
}

var byAddress = func() map[string]string {
	m := make(map[string]string, len(known))
	for _, p := range known {
		m[p.Address] = p.Name
	}
	return m
}()

// Identify returns the protocol name for a program address, or Unknown
func Identify(programID string) string {
	if name, ok := byAddress[programID]; ok {
		return name
	}
	return Unknown
}

// Address returns the program address registered for name
func Address(name string) (string, bool) {
	for _, p := range known {
		if p.Name == name {
			return p.Address, true
		}
	}
	return "", false
}

// MustAddress is like Address but panics on an unregistered name
func MustAddress(name string) string {
	addr, ok := Address(name)
	if !ok {
		panic("protocols: unknown protocol " + name)
	}
	return addr
}
