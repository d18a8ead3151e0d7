package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"
	cartdomain "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	cartservice "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/service"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/ports"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CheckoutHandler handles HTTP requests for the checkout flow.
type CheckoutHandler struct {
	// manager resolves the session's cart store.
	manager *cartservice.Manager
	// builder prices the cart snapshot into an order draft.
	builder *service.DraftBuilder
	// orchestrator drives a payment attempt to a terminal state.
	orchestrator *service.Orchestrator
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(manager *cartservice.Manager, builder *service.DraftBuilder, orchestrator *service.Orchestrator) *CheckoutHandler {
	return &CheckoutHandler{
		manager:      manager,
		builder:      builder,
		orchestrator: orchestrator,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
	// OrderID carries the order id when a retry is possible.
	OrderID string `json:"order_id,omitempty"`
}

// CheckoutRequest is the place-order request body.
type CheckoutRequest struct {
	// ShippingAddress is the destination for the order.
	ShippingAddress ShippingAddressRequest `json:"shipping_address"`
	// PaymentMethod selects the payment flow (CARD_NETWORK or DIRECT_TRANSFER).
	PaymentMethod string `json:"payment_method"`
	// PayerEmail is recorded on the payment receipt.
	PayerEmail string `json:"payer_email"`
	// Billing carries the cardholder details for card payments.
	Billing BillingRequest `json:"billing"`
}

// ShippingAddressRequest is the shipping address portion of the request.
type ShippingAddressRequest struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phone_number"`
}

// BillingRequest is the cardholder details portion of the request.
type BillingRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// RetryFinalizeRequest is the retry-finalize request body.
type RetryFinalizeRequest struct {
	// TransactionID is the provider transaction from the paid attempt.
	TransactionID string `json:"transaction_id"`
	// PayerEmail is recorded on the payment receipt.
	PayerEmail string `json:"payer_email"`
}

// AttemptResponse is the terminal attempt payload.
type AttemptResponse struct {
	// OrderID is the persisted order id.
	OrderID string `json:"order_id"`
	// TransactionID is the provider transaction id.
	TransactionID string `json:"transaction_id"`
	// Outcome is the terminal attempt outcome.
	Outcome string `json:"outcome"`
}

// PlaceOrder godoc
// @Summary Place an order and run payment
// @Description Prices the session cart, persists the order, runs the selected payment flow and finalizes it
// @Tags checkout
// @Accept json
// @Produce json
// @Param request body CheckoutRequest true "Checkout details"
// @Success 200 {object} AttemptResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 402 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /checkout [post]
func (h *CheckoutHandler) PlaceOrder(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	token := bearerToken(c)
	store, err := h.manager.StoreFor(c.Context(), token)
	if err != nil {
		if errors.Is(err, cartdomain.ErrNotSignedIn) {
			err = domain.ErrUnauthenticated
		}
		return h.fail(c, "place order", "", err)
	}

	draft, err := h.builder.Build(store.Snapshot(), domain.ShippingAddress{
		Address:     req.ShippingAddress.Address,
		City:        req.ShippingAddress.City,
		PostalCode:  req.ShippingAddress.PostalCode,
		Country:     req.ShippingAddress.Country,
		PhoneNumber: req.ShippingAddress.PhoneNumber,
	}, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		return h.fail(c, "place order", "", err)
	}

	attempt, err := h.orchestrator.RunCheckout(c.Context(), token, draft, req.PayerEmail, domain.BillingDetails{
		Name:  req.Billing.Name,
		Email: req.Billing.Email,
	}, store)
	if err != nil {
		return h.fail(c, "place order", attempt.OrderID, err)
	}

	return c.Status(http.StatusOK).JSON(toAttemptResponse(attempt))
}

// RetryFinalize godoc
// @Summary Retry finalizing a paid order
// @Description Re-issues the mark-paid call for an order whose payment succeeded but whose finalize failed
// @Tags checkout
// @Accept json
// @Produce json
// @Param orderId path string true "Order ID"
// @Param request body RetryFinalizeRequest true "Paid attempt details"
// @Success 200 {object} AttemptResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /checkout/orders/{orderId}/retry-finalize [post]
func (h *CheckoutHandler) RetryFinalize(c *fiber.Ctx) error {
	var req RetryFinalizeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	orderID := c.Params("orderId")
	token := bearerToken(c)

	// Keep the interface nil when the store does not resolve; a typed-nil
	// store would slip past the orchestrator's nil check.
	var clearer ports.CartClearer
	if store, err := h.manager.StoreFor(c.Context(), token); err == nil {
		clearer = store
	}

	attempt, err := h.orchestrator.RetryFinalize(c.Context(), token, orderID, req.TransactionID, req.PayerEmail, clearer)
	if err != nil {
		return h.fail(c, "retry finalize", orderID, err)
	}

	return c.Status(http.StatusOK).JSON(toAttemptResponse(attempt))
}

// fail maps checkout errors to HTTP statuses. A paid-but-not-finalized
// failure keeps the order id in the payload so the caller can retry.
func (h *CheckoutHandler) fail(c *fiber.Ctx, op, orderID string, err error) error {
	logger.Get().Error("Checkout operation failed",
		zap.String("operation", op),
		zap.String("order_id", orderID),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrUnauthenticated):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrEmptyCart), errors.Is(err, domain.ErrIncompleteShippingAddress):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrValidationRejected):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrProviderDeclined):
		status = http.StatusPaymentRequired
	case errors.Is(err, domain.ErrPaidButNotFinalized):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrNetworkTransient):
		status = http.StatusBadGateway
	}

	resp := ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	}
	if errors.Is(err, domain.ErrPaidButNotFinalized) {
		resp.OrderID = orderID
	}
	return c.Status(status).JSON(resp)
}

// toAttemptResponse builds the terminal attempt payload.
func toAttemptResponse(attempt domain.Attempt) AttemptResponse {
	return AttemptResponse{
		OrderID:       attempt.OrderID,
		TransactionID: attempt.ProviderTransactionID,
		Outcome:       string(attempt.Outcome()),
	}
}

// bearerToken extracts the user token from the Authorization header.
func bearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if after, found := strings.CutPrefix(auth, "Bearer "); found {
		return after
	}
	return ""
}

// rayID returns the request id set by the requestid middleware.
func rayID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return "unknown"
}
