package explorer

import (
	"context"
	"sync"

	"valora.backend/internal/config"
	"valora.backend/internal/domain/entities"
	domainerrors "valora.backend/internal/domain/errors"
)

// Observer fetches inbound transactions for a wallet address on one chain.
type Observer interface {
	Currency() entities.Currency
	FetchInboundTransactions(ctx context.Context, address string) ([]entities.ObservedTransaction, error)
}

// Registry maps currencies to their chain observers
type Registry struct {
	observers map[entities.Currency]Observer
	mu        sync.RWMutex
}

// NewRegistry creates a registry with the default observers for every
// supported currency.
func NewRegistry(cfg config.ExplorerConfig) *Registry {
	r := &Registry{observers: make(map[entities.Currency]Observer)}
	r.Register(NewBlockCypherObserver(cfg))
	r.Register(NewEtherscanObserver(cfg))
	r.Register(NewEtherscanTokenObserver(cfg))
	r.Register(NewTronGridObserver(cfg))
	return r
}

// NewEmptyRegistry creates a registry with no observers.
// Useful for deterministic unit tests.
func NewEmptyRegistry() *Registry {
	return &Registry{observers: make(map[entities.Currency]Observer)}
}

// Register injects/overrides the observer for its currency.
func (r *Registry) Register(o Observer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.observers[o.Currency()] = o
}

// Get returns the observer for a currency
func (r *Registry) Get(currency entities.Currency) (Observer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.observers[currency]
	if !ok {
		return nil, domainerrors.ErrUnsupportedCurrency
	}
	return o, nil
}
