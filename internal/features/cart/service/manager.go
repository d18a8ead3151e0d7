package service

import (
	"context"
	"sync"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/ports"
)

// Manager tracks one Store per signed-in session. It owns the user identity
// transitions: a token seen for the first time gets a store populated by a
// full fetch; a sign-out drops the store locally without a network call.
type Manager struct {
	mu      sync.Mutex
	backend ports.Backend
	stores  map[string]*Store
}

// NewManager creates a Manager over the given backend.
func NewManager(backend ports.Backend) *Manager {
	return &Manager{
		backend: backend,
		stores:  make(map[string]*Store),
	}
}

// StoreFor returns the store bound to the token, creating and populating it
// on first sight.
func (m *Manager) StoreFor(ctx context.Context, token string) (*Store, error) {
	if token == "" {
		return nil, domain.ErrNotSignedIn
	}

	m.mu.Lock()
	store, ok := m.stores[token]
	m.mu.Unlock()
	if ok {
		return store, nil
	}

	store = NewStore(m.backend, token)
	if err := store.Refresh(ctx); err != nil {
		return nil, err
	}

	m.mu.Lock()
	// A racing first-sight fetch may have bound the token already; keep the
	// existing store so all surfaces share one instance.
	if existing, ok := m.stores[token]; ok {
		store = existing
	} else {
		m.stores[token] = store
	}
	m.mu.Unlock()

	return store, nil
}

// Drop clears the session's cart and forgets the store. No backend call is
// made; the backend cart survives for the next sign-in.
func (m *Manager) Drop(token string) {
	m.mu.Lock()
	store, ok := m.stores[token]
	delete(m.stores, token)
	m.mu.Unlock()

	if ok {
		store.ClearCart()
	}
}
