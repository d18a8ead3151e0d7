package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/ports"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrIllegalTransition signals a broken attempt state machine; it indicates a
// programming error, not a recoverable payment condition.
var ErrIllegalTransition = errors.New("illegal attempt state transition")

var minorUnitsPerMajor = decimal.NewFromInt(100)

// Orchestrator drives one payment attempt from an order draft to a terminal
// state. Both payment protocols share the order-create entry and the mark-paid
// exit; only the middle steps differ.
type Orchestrator struct {
	backend  ports.OrderBackend
	cards    ports.CardConfirmer
	notifier ports.Notifier
	registry ports.FinalizeRegistry

	currency      string
	transferDelay time.Duration

	// now and transferRef are injectable for tests.
	now         func() time.Time
	transferRef func(time.Time) string
}

// NewOrchestrator creates an Orchestrator wired to its collaborators.
func NewOrchestrator(
	backend ports.OrderBackend,
	cards ports.CardConfirmer,
	notifier ports.Notifier,
	registry ports.FinalizeRegistry,
	cfg config.CheckoutConfig,
) *Orchestrator {
	return &Orchestrator{
		backend:       backend,
		cards:         cards,
		notifier:      notifier,
		registry:      registry,
		currency:      cfg.Currency,
		transferDelay: cfg.DirectTransferDelay(),
		now:           time.Now,
		transferRef:   synthesizeTransferRef,
	}
}

// RunCheckout executes one payment attempt to a terminal state. The returned
// attempt never goes back to Idle on its own; a retry is a fresh attempt.
//
// Side-effect ordering on success: the cart clear is synchronous with finalize
// success; the success notification is emitted independently and callers must
// not block their own success transition on it.
func (o *Orchestrator) RunCheckout(
	ctx context.Context,
	token string,
	draft domain.OrderDraft,
	payerEmail string,
	billing domain.BillingDetails,
	cart ports.CartClearer,
) (domain.Attempt, error) {
	attempt := domain.Attempt{Status: domain.AttemptStatusIdle}

	if token == "" {
		return o.fail(ctx, attempt, domain.ErrUnauthenticated)
	}
	if !draft.PaymentMethod.Valid() {
		return o.fail(ctx, attempt, fmt.Errorf("unsupported payment method %q", draft.PaymentMethod))
	}

	// Shared entry: persist the order.
	if err := advance(&attempt, domain.AttemptStatusCreatingOrder); err != nil {
		return o.fail(ctx, attempt, err)
	}

	order, err := o.backend.CreateOrder(ctx, token, draft)
	if err != nil {
		return o.fail(ctx, attempt, err)
	}
	attempt.OrderID = order.ID

	logger.Get().Info("Order created",
		zap.String("order_id", order.ID),
		zap.String("payment_method", string(draft.PaymentMethod)),
		zap.String("total", order.TotalPrice.String()),
	)

	if err := advance(&attempt, domain.AttemptStatusAwaitingProviderConfirmation); err != nil {
		return o.fail(ctx, attempt, err)
	}

	// Method-specific middle steps.
	var transactionID string
	switch draft.PaymentMethod {
	case domain.PaymentMethodCardNetwork:
		transactionID, err = o.confirmCard(ctx, token, &attempt, order, billing)
	case domain.PaymentMethodDirectTransfer:
		transactionID, err = o.simulateTransfer(ctx)
	}
	if err != nil {
		return o.fail(ctx, attempt, err)
	}
	attempt.ProviderTransactionID = transactionID

	// Shared exit: mark the order paid.
	if err := advance(&attempt, domain.AttemptStatusFinalizing); err != nil {
		return o.fail(ctx, attempt, err)
	}

	if err := o.finalize(ctx, token, &attempt, payerEmail, false); err != nil {
		return attempt, err
	}

	cart.ClearCart()
	o.notifier.Success(ctx, "Payment received, order "+attempt.OrderID+" confirmed")

	if err := advance(&attempt, domain.AttemptStatusSucceeded); err != nil {
		return o.fail(ctx, attempt, err)
	}
	return attempt, nil
}

// RetryFinalize re-issues the mark-paid call for an order whose payment
// succeeded but whose finalize failed. Explicit and caller-visible; safe to
// repeat because the backend keys it by order id. The issuance record never
// short-circuits a retry, so a stale record from a failed attempt cannot turn
// the retry into a false success.
func (o *Orchestrator) RetryFinalize(
	ctx context.Context,
	token, orderID, transactionID, payerEmail string,
	cart ports.CartClearer,
) (domain.Attempt, error) {
	attempt := domain.Attempt{
		OrderID:               orderID,
		ProviderTransactionID: transactionID,
		Status:                domain.AttemptStatusFinalizing,
	}

	if token == "" {
		return o.fail(ctx, attempt, domain.ErrUnauthenticated)
	}

	if err := o.finalize(ctx, token, &attempt, payerEmail, true); err != nil {
		return attempt, err
	}

	if cart != nil {
		cart.ClearCart()
	}
	o.notifier.Success(ctx, "Order "+orderID+" confirmed")

	if err := advance(&attempt, domain.AttemptStatusSucceeded); err != nil {
		return o.fail(ctx, attempt, err)
	}
	return attempt, nil
}

// confirmCard runs the card-network middle steps: a payment intent sized to
// the persisted order total, then the provider's confirmation flow.
func (o *Orchestrator) confirmCard(
	ctx context.Context,
	token string,
	attempt *domain.Attempt,
	order domain.Order,
	billing domain.BillingDetails,
) (string, error) {
	// The amount comes from the server-confirmed total, never the client's
	// locally computed one, so rounding or tampering cannot skew the charge.
	amountMinor := order.TotalPrice.Mul(minorUnitsPerMajor).Round(0).IntPart()

	clientSecret, err := o.backend.CreatePaymentIntent(ctx, token, order.ID, amountMinor, o.currency)
	if err != nil {
		return "", err
	}

	if err := advance(attempt, domain.AttemptStatusConfirmingWithProvider); err != nil {
		return "", err
	}

	transactionID, err := o.cards.Confirm(ctx, clientSecret, billing)
	if err != nil {
		return "", err
	}
	return transactionID, nil
}

// simulateTransfer waits out the fixed processing delay and synthesizes a
// transaction reference standing in for a provider transaction id.
func (o *Orchestrator) simulateTransfer(ctx context.Context) (string, error) {
	timer := time.NewTimer(o.transferDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkTransient, ctx.Err())
	}

	return o.transferRef(o.now()), nil
}

// finalize issues the mark-paid call exactly once per successful attempt. A
// failure here is the one case where funds moved while order state disagrees,
// and it surfaces as its own error class.
//
// force re-issues the call even when an issuance record exists. An existing
// record only proves the call was issued, not that it succeeded; an explicit
// retry must reach the backend, and mark-paid is idempotent by order id.
func (o *Orchestrator) finalize(ctx context.Context, token string, attempt *domain.Attempt, payerEmail string, force bool) error {
	first, err := o.registry.MarkIssued(ctx, attempt.OrderID)
	if err != nil {
		// The registry is bookkeeping, not a gate on the payment itself.
		logger.Get().Warn("Finalize registry unavailable",
			zap.String("order_id", attempt.OrderID),
			zap.Error(err),
		)
	} else if !first && !force {
		logger.Get().Info("Finalize already issued for order",
			zap.String("order_id", attempt.OrderID),
		)
		return nil
	}

	receipt := domain.PaymentReceipt{
		TransactionID: attempt.ProviderTransactionID,
		Status:        "Succeeded",
		Timestamp:     o.now(),
		PayerEmail:    payerEmail,
	}

	if err := o.backend.MarkOrderPaid(ctx, token, attempt.OrderID, receipt); err != nil {
		// Free the registry slot so an explicit retry can re-issue the call.
		if clearErr := o.registry.Clear(ctx, attempt.OrderID); clearErr != nil {
			logger.Get().Warn("Failed to clear finalize registry",
				zap.String("order_id", attempt.OrderID),
				zap.Error(clearErr),
			)
		}

		attempt.Status = domain.AttemptStatusFailed
		attempt.PaidNotFinalized = true
		o.notifier.Error(ctx, "Payment captured but order "+attempt.OrderID+" could not be finalized")

		return fmt.Errorf("%w: order %s, transaction %s: %v",
			domain.ErrPaidButNotFinalized, attempt.OrderID, attempt.ProviderTransactionID, err)
	}
	return nil
}

// fail drives the attempt to the Failed terminal state and surfaces the error.
func (o *Orchestrator) fail(ctx context.Context, attempt domain.Attempt, err error) (domain.Attempt, error) {
	if domain.CanTransition(attempt.Status, domain.AttemptStatusFailed) {
		attempt.Status = domain.AttemptStatusFailed
	}

	logger.Get().Error("Checkout attempt failed",
		zap.String("order_id", attempt.OrderID),
		zap.Error(err),
	)
	o.notifier.Error(ctx, err.Error())

	return attempt, err
}

// advance moves the attempt forward, guarding against illegal transitions.
func advance(attempt *domain.Attempt, to domain.AttemptStatus) error {
	if !domain.CanTransition(attempt.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, attempt.Status, to)
	}
	attempt.Status = to
	return nil
}

// synthesizeTransferRef builds the simulated provider transaction reference:
// a timestamp plus a random suffix.
func synthesizeTransferRef(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("DT-%d-%s", now.Unix(), suffix)
}
