package entities

import "errors"

var (
	// ErrInvalidAddress indicates a wallet address that is not a valid public key
	ErrInvalidAddress = errors.New("invalid Solana address")

	// ErrInvalidSignature indicates a malformed transaction signature
	ErrInvalidSignature = errors.New("invalid transaction signature")

	// ErrTransactionNotFound indicates the node has no record of a transaction
	ErrTransactionNotFound = errors.New("transaction not found")
)
