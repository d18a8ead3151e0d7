package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/ports"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Store is the single authoritative in-memory cart for one signed-in user.
// All mutations go through its operations; no caller sees the raw line slice.
//
// Recovery differs per operation on purpose:
//   - AddToCart never speculates: correctness of price and stock belongs to the
//     backend, so the local cart only changes when the backend answers with its
//     full post-add state.
//   - RemoveFromCart and UpdateQuantity apply their change optimistically and,
//     on backend failure, discard local state in favor of a fresh fetch rather
//     than trying to roll the exact prior line state back inline.
type Store struct {
	mu      sync.Mutex
	token   string
	cart    domain.Cart
	backend ports.Backend
}

// NewStore creates a Store bound to the given user token. The store starts
// empty; Refresh loads the backend cart.
func NewStore(backend ports.Backend, token string) *Store {
	return &Store{
		token:   token,
		backend: backend,
	}
}

// Refresh replaces the local cart with the backend's current state.
func (s *Store) Refresh(ctx context.Context) error {
	if s.token == "" {
		return domain.ErrNotSignedIn
	}

	cart, err := s.backend.FetchCart(ctx, s.token)
	if err != nil {
		return fmt.Errorf("failed to fetch cart: %w", err)
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
	return nil
}

// AddToCart adds a product to the cart. On success the whole local line
// collection is replaced with the backend's authoritative post-add cart, which
// converges concurrent cross-device mutations. On failure nothing changes
// locally and the error is surfaced.
func (s *Store) AddToCart(ctx context.Context, line domain.Line) (domain.Cart, error) {
	if s.token == "" {
		return domain.Cart{}, domain.ErrNotSignedIn
	}

	updated, err := s.backend.AddLine(ctx, s.token, line)
	if err != nil {
		return s.Snapshot(), fmt.Errorf("failed to add product %s: %w", line.ProductID, err)
	}

	s.mu.Lock()
	s.cart = updated
	s.mu.Unlock()

	return s.Snapshot(), nil
}

// RemoveFromCart deletes the matching line optimistically, then issues the
// backend delete. On failure the store resynchronizes with a full refetch,
// accepting a brief flicker over incorrect local state.
func (s *Store) RemoveFromCart(ctx context.Context, productID string) (domain.Cart, error) {
	if s.token == "" {
		return domain.Cart{}, domain.ErrNotSignedIn
	}

	s.mu.Lock()
	lines := make([]domain.Line, 0, len(s.cart.Lines))
	for _, line := range s.cart.Lines {
		if line.ProductID != productID {
			lines = append(lines, line)
		}
	}
	s.cart.Lines = lines
	s.mu.Unlock()

	if err := s.backend.RemoveLine(ctx, s.token, productID); err != nil {
		s.reconcile(ctx, "remove", productID)
		return s.Snapshot(), fmt.Errorf("failed to remove product %s: %w", productID, err)
	}

	return s.Snapshot(), nil
}

// UpdateQuantity sets a line's quantity. Quantities below 1 are a silent
// no-op; an update is never a removal. The rewrite is optimistic, with a full
// refetch on backend failure.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int) (domain.Cart, error) {
	if s.token == "" {
		return domain.Cart{}, domain.ErrNotSignedIn
	}

	if quantity < 1 {
		return s.Snapshot(), nil
	}

	s.mu.Lock()
	found := false
	for i := range s.cart.Lines {
		if s.cart.Lines[i].ProductID == productID {
			s.cart.Lines[i].Quantity = quantity
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return s.Snapshot(), domain.ErrLineNotFound
	}

	if err := s.backend.UpdateLineQuantity(ctx, s.token, productID, quantity); err != nil {
		s.reconcile(ctx, "update", productID)
		return s.Snapshot(), fmt.Errorf("failed to update product %s: %w", productID, err)
	}

	return s.Snapshot(), nil
}

// ClearCart drops all lines locally without a backend call. Used after a paid
// checkout, where the backend cart is emptied as a side effect of the order.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = domain.Cart{}
	s.mu.Unlock()
}

// Snapshot returns a copy of the current cart.
func (s *Store) Snapshot() domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Clone()
}

// Total returns the derived cart total over the current snapshot.
func (s *Store) Total() decimal.Decimal {
	return s.Snapshot().Total()
}

// Count returns the derived unit count over the current snapshot.
func (s *Store) Count() int {
	return s.Snapshot().Count()
}

// reconcile discards speculative local state in favor of a fresh fetch. When
// the fetch itself fails, the optimistic state stands until the next
// successful operation; the mutation error already surfaced to the caller.
func (s *Store) reconcile(ctx context.Context, op, productID string) {
	cart, err := s.backend.FetchCart(ctx, s.token)
	if err != nil {
		logger.Get().Warn("Cart reconciliation fetch failed",
			zap.String("operation", op),
			zap.String("product_id", productID),
			zap.Error(err),
		)
		return
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()
}
