package testutil

import (
	"context"
	"errors"
	"sync"

	"github.com/bimakw/wallet-analyzer/internal/domain/entities"
)

// MockChainRepository is a mock implementation of ChainRepository backed by
// in-memory signatures and transactions
type MockChainRepository struct {
	mu           sync.RWMutex
	signatures   map[string][]entities.SignatureInfo
	transactions map[string]*entities.ParsedTransaction

	// Function hooks for custom behavior
	GetSignaturesFunc        func(ctx context.Context, address string, limit int) ([]entities.SignatureInfo, error)
	GetParsedTransactionFunc func(ctx context.Context, signature string) (*entities.ParsedTransaction, error)

	// Call tracking
	Calls []MockCall
}

type MockCall struct {
	Method string
	Args   []interface{}
}

func NewMockChainRepository() *MockChainRepository {
	return &MockChainRepository{
		signatures:   make(map[string][]entities.SignatureInfo),
		transactions: make(map[string]*entities.ParsedTransaction),
		Calls:        make([]MockCall, 0),
	}
}

func (m *MockChainRepository) GetSignatures(ctx context.Context, address string, limit int) ([]entities.SignatureInfo, error) {
	m.record("GetSignatures", address, limit)

	if m.GetSignaturesFunc != nil {
		return m.GetSignaturesFunc(ctx, address, limit)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	sigs := m.signatures[address]
	if limit >= 0 && limit < len(sigs) {
		sigs = sigs[:limit]
	}
	out := make([]entities.SignatureInfo, len(sigs))
	copy(out, sigs)
	return out, nil
}

func (m *MockChainRepository) GetParsedTransaction(ctx context.Context, signature string) (*entities.ParsedTransaction, error) {
	m.record("GetParsedTransaction", signature)

	if m.GetParsedTransactionFunc != nil {
		return m.GetParsedTransactionFunc(ctx, signature)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	tx, ok := m.transactions[signature]
	if !ok {
		return nil, nil
	}
	return tx, nil
}

// AddTransaction registers tx for address. Signatures are returned in the order
// they were added, so add the most recent first.
func (m *MockChainRepository) AddTransaction(address string, tx *entities.ParsedTransaction) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.signatures[address] = append(m.signatures[address], entities.SignatureInfo{
		Signature: tx.Signature,
		Slot:      tx.Slot,
		BlockTime: tx.BlockTime,
	})
	m.transactions[tx.Signature] = tx
}

// AddSignature registers a signature whose transaction body is unknown
func (m *MockChainRepository) AddSignature(address string, info entities.SignatureInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.signatures[address] = append(m.signatures[address], info)
}

// CallCount returns how many times method was invoked
func (m *MockChainRepository) CallCount(method string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, c := range m.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (m *MockChainRepository) record(method string, args ...interface{}) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Method: method, Args: args})
	m.mu.Unlock()
}

// MockHealthChecker is a mock dependency for readiness checks
type MockHealthChecker struct {
	Err   error
	Calls int
}

// NewMockHealthChecker returns a checker that fails when healthy is false
func NewMockHealthChecker(healthy bool) *MockHealthChecker {
	m := &MockHealthChecker{}
	if !healthy {
		m.Err = errors.New("connection refused")
	}
	return m
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	m.Calls++
	return m.Err
}
