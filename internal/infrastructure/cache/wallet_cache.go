package cache

import (
	"sync"
	"time"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

// DefaultMaxAge is the age after which a wallet entry is considered stale
const DefaultMaxAge = 5 * time.Minute

// WalletCache is an in-memory, per-address store of fetched activities and the
// data derived from them. Entries live for the lifetime of the cache; there is
// no eviction.
//
// Every activity replacement gets a new generation number. Derived data is
// stored with the generation it was computed from and is only returned while
// that generation is current.
type WalletCache struct {
	mu         sync.RWMutex
	entries    map[string]*entities.CacheEntry
	generation uint64

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	now func() time.Time
}

// NewWalletCache creates an empty wallet cache using the wall clock
func NewWalletCache() *WalletCache {
	return NewWalletCacheWithClock(time.Now)
}

// NewWalletCacheWithClock creates an empty wallet cache with a custom clock
func NewWalletCacheWithClock(now func() time.Time) *WalletCache {
	return &WalletCache{
		entries: make(map[string]*entities.CacheEntry),
		locks:   make(map[string]*sync.Mutex),
		now:     now,
	}
}

// Get returns a snapshot of the entry for address
func (c *WalletCache) Get(address string) (entities.CacheEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[address]
	if !ok {
		return entities.CacheEntry{}, false
	}
	return *entry, true
}

// Set stores entry for address under a new generation and returns it.
// Derived fields on entry are kept as given.
func (c *WalletCache) Set(address string, entry entities.CacheEntry) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.generation++
	entry.Generation = c.generation
	c.entries[address] = &entry
	return entry.Generation
}

// ReplaceActivities overwrites the activities of address, stamps the entry with
// the current time and drops any derived data. It returns the new generation.
func (c *WalletCache) ReplaceActivities(address string, activities []entities.Activity) uint64 {
	stored := make([]entities.Activity, len(activities))
	copy(stored, activities)

	return c.Set(address, entities.CacheEntry{
		LastUpdated: c.now(),
		Activities:  stored,
	})
}

// IsStale reports whether address is missing or older than maxAge
func (c *WalletCache) IsStale(address string, maxAge time.Duration) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[address]
	if !ok {
		return true
	}
	return c.now().Sub(entry.LastUpdated) > maxAge
}

// Profile returns the memoized profile if it belongs to the current generation
func (c *WalletCache) Profile(address string) (*entities.WalletProfile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[address]
	if !ok || entry.Profile == nil {
		return nil, false
	}
	profile := *entry.Profile
	return &profile, true
}

// SetProfile memoizes profile for address if generation is still current
func (c *WalletCache) SetProfile(address string, generation uint64, profile entities.WalletProfile) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[address]
	if !ok || entry.Generation != generation {
		return false
	}
	entry.Profile = &profile
	return true
}

// Positions returns the memoized positions if present for the current generation
func (c *WalletCache) Positions(address string) ([]entities.DeFiPosition, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[address]
	if !ok || !entry.HasPositions {
		return nil, false
	}
	return entry.DeFiPositions, true
}

// SetPositions memoizes positions for address if generation is still current
func (c *WalletCache) SetPositions(address string, generation uint64, positions []entities.DeFiPosition) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[address]
	if !ok || entry.Generation != generation {
		return false
	}
	entry.DeFiPositions = positions
	entry.HasPositions = true
	return true
}

// Lock acquires the per-address lock and returns its release function.
// Callers hold it across fetch-and-replace so concurrent requests for the same
// wallet do not overwrite each other.
func (c *WalletCache) Lock(address string) func() {
	c.locksMu.Lock()
	m, ok := c.locks[address]
	if !ok {
		m = &sync.Mutex{}
		c.locks[address] = m
	}
	c.locksMu.Unlock()

	m.Lock()
	return m.Unlock
}

// Size returns the number of cached wallets
func (c *WalletCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
