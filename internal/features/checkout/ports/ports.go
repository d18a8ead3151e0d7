package ports

import (
	"context"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"
)

// OrderBackend defines the secondary port for the commerce backend's order and
// payment endpoints.
type OrderBackend interface {
	// CreateOrder submits the draft and returns the persisted order with the
	// server-computed total.
	CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (domain.Order, error)

	// CreatePaymentIntent requests a provider-side payment intent sized in
	// minor currency units and returns its opaque client secret.
	CreatePaymentIntent(ctx context.Context, token, orderID string, amountMinor int64, currency string) (string, error)

	// MarkOrderPaid finalizes the order with the payment receipt. The call is
	// idempotent on the backend, keyed by order id.
	MarkOrderPaid(ctx context.Context, token, orderID string, receipt domain.PaymentReceipt) error
}

// CardConfirmer defines the secondary port for the card provider's
// confirmation flow.
type CardConfirmer interface {
	// Confirm hands the intent's client secret and billing details to the
	// provider and returns the provider transaction id on approval.
	Confirm(ctx context.Context, clientSecret string, billing domain.BillingDetails) (string, error)
}

// Notifier defines the secondary port for the notification sink that delivers
// transient user-facing messages.
type Notifier interface {
	// Success delivers a success message.
	Success(ctx context.Context, message string)
	// Error delivers an error message.
	Error(ctx context.Context, message string)
}

// FinalizeRegistry records which orders already had their mark-paid call
// issued, so one successful attempt finalizes exactly once.
type FinalizeRegistry interface {
	// MarkIssued records the finalize issuance for the order. Returns true on
	// first issuance, false when the order was already finalized.
	MarkIssued(ctx context.Context, orderID string) (bool, error)
	// Clear forgets the issuance record, allowing an explicit retry after a
	// failed finalize.
	Clear(ctx context.Context, orderID string) error
}

// CartClearer is the slice of the cart store the orchestrator needs: the
// synchronous local clear after a finalized payment.
type CartClearer interface {
	// ClearCart drops the session's cart lines locally.
	ClearCart()
}
