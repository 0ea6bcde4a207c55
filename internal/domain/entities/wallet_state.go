package entities

import (
	"time"
)

// CacheEntry is the cached state of one wallet address. Profile and DeFiPositions
// are only meaningful for the Generation they were derived from.
type CacheEntry struct {
	LastUpdated   time.Time
	Activities    []Activity // most recent first
	Generation    uint64
	Profile       *WalletProfile
	DeFiPositions []DeFiPosition
	HasPositions  bool
}
