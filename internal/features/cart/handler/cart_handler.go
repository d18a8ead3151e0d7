package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/logger"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/service"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CartHandler handles HTTP requests for cart operations.
type CartHandler struct {
	// manager owns the per-session cart stores.
	manager *service.Manager
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(manager *service.Manager) *CartHandler {
	return &CartHandler{
		manager: manager,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// CartResponse is the cart payload returned to UI collaborators.
type CartResponse struct {
	// Items holds the cart lines.
	Items []domain.Line `json:"items"`
	// Total is the derived cart total.
	Total decimal.Decimal `json:"total"`
	// Count is the derived unit count.
	Count int `json:"count"`
}

// SummaryResponse carries only the derived cart values (navigation badge use).
type SummaryResponse struct {
	// Total is the derived cart total.
	Total decimal.Decimal `json:"total"`
	// Count is the derived unit count.
	Count int `json:"count"`
}

// AddItemRequest is the add-to-cart request body.
type AddItemRequest struct {
	ProductID    string          `json:"product_id"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Quantity     int             `json:"quantity"`
	CountInStock int             `json:"count_in_stock"`
}

// UpdateItemRequest is the update-quantity request body.
type UpdateItemRequest struct {
	Quantity int `json:"quantity"`
}

// GetCart godoc
// @Summary Get the current cart
// @Description Returns the signed-in user's cart with derived totals
// @Tags cart
// @Produce json
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart [get]
func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return h.fail(c, "get cart", err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(store.Snapshot()))
}

// GetSummary godoc
// @Summary Get derived cart totals
// @Description Returns the cart total and unit count without the line list
// @Tags cart
// @Produce json
// @Success 200 {object} SummaryResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/summary [get]
func (h *CartHandler) GetSummary(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return h.fail(c, "get cart summary", err)
	}

	snapshot := store.Snapshot()
	return c.Status(http.StatusOK).JSON(SummaryResponse{
		Total: snapshot.Total(),
		Count: snapshot.Count(),
	})
}

// AddItem godoc
// @Summary Add a product to the cart
// @Description Adds a product and replaces local state with the backend's authoritative cart
// @Tags cart
// @Accept json
// @Produce json
// @Param request body AddItemRequest true "Product to add"
// @Success 200 {object} CartResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	line, err := domain.NewLine(req.ProductID, req.Name, req.Image, req.UnitPrice, req.Quantity, req.CountInStock)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: err.Error(),
			RayID:   rayID(c),
		})
	}

	store, err := h.store(c)
	if err != nil {
		return h.fail(c, "add to cart", err)
	}

	cart, err := store.AddToCart(c.Context(), line)
	if err != nil {
		return h.fail(c, "add to cart", err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(cart))
}

// UpdateItem godoc
// @Summary Update a line quantity
// @Description Optimistically updates a line quantity; reconciles via refetch on backend failure
// @Tags cart
// @Accept json
// @Produce json
// @Param productId path string true "Product ID"
// @Param request body UpdateItemRequest true "New quantity"
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /cart/items/{productId} [put]
func (h *CartHandler) UpdateItem(c *fiber.Ctx) error {
	var req UpdateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "invalid request body",
			RayID:   rayID(c),
		})
	}

	store, err := h.store(c)
	if err != nil {
		return h.fail(c, "update quantity", err)
	}

	cart, err := store.UpdateQuantity(c.Context(), c.Params("productId"), req.Quantity)
	if err != nil {
		return h.fail(c, "update quantity", err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(cart))
}

// RemoveItem godoc
// @Summary Remove a line
// @Description Optimistically removes a line; reconciles via refetch on backend failure
// @Tags cart
// @Produce json
// @Param productId path string true "Product ID"
// @Success 200 {object} CartResponse
// @Failure 401 {object} ErrorResponse
// @Router /cart/items/{productId} [delete]
func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	store, err := h.store(c)
	if err != nil {
		return h.fail(c, "remove from cart", err)
	}

	cart, err := store.RemoveFromCart(c.Context(), c.Params("productId"))
	if err != nil {
		return h.fail(c, "remove from cart", err)
	}

	return c.Status(http.StatusOK).JSON(toResponse(cart))
}

// SignOut godoc
// @Summary Sign-out cart clear
// @Description Drops the session's cart locally without a backend call
// @Tags cart
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /cart [delete]
func (h *CartHandler) SignOut(c *fiber.Ctx) error {
	token := bearerToken(c)
	if token == "" {
		return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
			Message: "sign in required",
			RayID:   rayID(c),
		})
	}

	h.manager.Drop(token)
	return c.SendStatus(http.StatusNoContent)
}

// store resolves the session's cart store from the bearer token.
func (h *CartHandler) store(c *fiber.Ctx) (*service.Store, error) {
	return h.manager.StoreFor(c.Context(), bearerToken(c))
}

// fail maps cart errors to HTTP statuses.
func (h *CartHandler) fail(c *fiber.Ctx, op string, err error) error {
	logger.Get().Error("Cart operation failed",
		zap.String("operation", op),
		zap.String("ray_id", rayID(c)),
		zap.Error(err),
	)

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrLineNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrRejectedByBackend):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrBackendUnavailable):
		status = http.StatusBadGateway
	}

	return c.Status(status).JSON(ErrorResponse{
		Message: err.Error(),
		RayID:   rayID(c),
	})
}

// toResponse builds the cart payload with derived values.
func toResponse(cart domain.Cart) CartResponse {
	items := cart.Lines
	if items == nil {
		items = []domain.Line{}
	}
	return CartResponse{
		Items: items,
		Total: cart.Total(),
		Count: cart.Count(),
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
