package repositories

import (
	"context"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

// ChainRepository defines read access to on-chain transaction history
type ChainRepository interface {
	// GetSignatures returns up to limit signatures for address, most recent first
	GetSignatures(ctx context.Context, address string, limit int) ([]entities.SignatureInfo, error)

	// GetParsedTransaction returns the parsed transaction for signature,
	// or nil without error when the node does not know it
	GetParsedTransaction(ctx context.Context, signature string) (*entities.ParsedTransaction, error)
}
