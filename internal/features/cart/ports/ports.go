package ports

import (
	"context"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
)

// Backend defines the secondary port for the commerce backend's cart endpoints.
// The backend owns cart truth; every call is scoped by the user's auth token.
type Backend interface {
	// FetchCart retrieves the user's full cart.
	FetchCart(ctx context.Context, token string) (domain.Cart, error)

	// AddLine adds a product to the cart and returns the backend's full
	// authoritative post-add cart.
	AddLine(ctx context.Context, token string, line domain.Line) (domain.Cart, error)

	// RemoveLine deletes the line for the given product.
	RemoveLine(ctx context.Context, token string, productID string) error

	// UpdateLineQuantity sets the quantity of the line for the given product.
	UpdateLineQuantity(ctx context.Context, token string, productID string, quantity int) error
}
