package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/httpclient"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"

	"github.com/shopspring/decimal"
)

// BackendAdapter implements the cart Backend port over the commerce backend's
// REST API. It owns auth-token attachment and error normalization for every
// cart call the storefront makes.
type BackendAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the backend base URL.
	baseURL string
}

// NewBackendAdapter creates a new BackendAdapter.
func NewBackendAdapter(cfg config.BackendConfig) *BackendAdapter {
	return &BackendAdapter{
		client:  httpclient.NewClient(cfg.Timeout()),
		baseURL: cfg.URL,
	}
}

// FetchCart retrieves the user's full cart from the backend.
func (a *BackendAdapter) FetchCart(ctx context.Context, token string) (domain.Cart, error) {
	var resp svCart
	if err := a.do(ctx, token, http.MethodGet, "/api/cart", nil, &resp); err != nil {
		return domain.Cart{}, err
	}
	return mapToDomain(resp), nil
}

// AddLine adds a product to the backend cart and returns the full
// authoritative post-add cart.
func (a *BackendAdapter) AddLine(ctx context.Context, token string, line domain.Line) (domain.Cart, error) {
	body := svAddItemRequest{
		ProductID:    line.ProductID,
		Name:         line.Name,
		Image:        line.Image,
		Price:        line.UnitPrice,
		Quantity:     line.Quantity,
		CountInStock: line.CountInStock,
	}

	var resp svCart
	if err := a.do(ctx, token, http.MethodPost, "/api/cart", body, &resp); err != nil {
		return domain.Cart{}, err
	}
	return mapToDomain(resp), nil
}

// RemoveLine deletes the line for the given product.
func (a *BackendAdapter) RemoveLine(ctx context.Context, token string, productID string) error {
	path := "/api/cart/" + url.PathEscape(productID)
	return a.do(ctx, token, http.MethodDelete, path, nil, nil)
}

// UpdateLineQuantity sets the quantity of the line for the given product.
func (a *BackendAdapter) UpdateLineQuantity(ctx context.Context, token string, productID string, quantity int) error {
	path := "/api/cart/" + url.PathEscape(productID)
	return a.do(ctx, token, http.MethodPut, path, svUpdateItemRequest{Quantity: quantity}, nil)
}

// HealthCheck verifies that the backend API is reachable.
func (a *BackendAdapter) HealthCheck() error {
	req, err := http.NewRequest(http.MethodGet, a.baseURL+"/api/health", nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// do executes one backend call with auth attachment and error normalization.
func (a *BackendAdapter) do(ctx context.Context, token, method, path string, body, out interface{}) error {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	if err := normalizeStatus(resp); err != nil {
		return err
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// normalizeStatus maps backend HTTP statuses to the cart error classes.
func normalizeStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrNotSignedIn
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity,
		resp.StatusCode == http.StatusConflict:
		var body svErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrRejectedByBackend, body.Message)
		}
		return domain.ErrRejectedByBackend
	default:
		return fmt.Errorf("%w: backend returned status %d", domain.ErrBackendUnavailable, resp.StatusCode)
	}
}

// mapToDomain converts a raw backend cart response into the domain Cart.
func mapToDomain(resp svCart) domain.Cart {
	lines := make([]domain.Line, 0, len(resp.Items))
	for _, item := range resp.Items {
		lines = append(lines, domain.Line{
			ProductID:    item.ProductID,
			Name:         item.Name,
			Image:        item.Image,
			UnitPrice:    item.Price,
			Quantity:     item.Quantity,
			CountInStock: item.CountInStock,
		})
	}
	return domain.Cart{Lines: lines}
}

// internal structs for mapping

// svCart represents the JSON structure of the backend cart response.
type svCart struct {
	// Items contains the cart lines in backend order.
	Items []svCartItem `json:"items"`
}

// svCartItem represents one cart line on the wire.
type svCartItem struct {
	// ProductID is the product identifier.
	ProductID string `json:"product"`
	// Name is the denormalized product name.
	Name string `json:"name"`
	// Image is the denormalized product image URL.
	Image string `json:"image"`
	// Price is the add-time unit price snapshot.
	Price decimal.Decimal `json:"price"`
	// Quantity is the number of units.
	Quantity int `json:"qty"`
	// CountInStock is the advisory stock level.
	CountInStock int `json:"countInStock"`
}

// svAddItemRequest is the add-to-cart request body.
type svAddItemRequest struct {
	ProductID    string          `json:"product"`
	Name         string          `json:"name"`
	Image        string          `json:"image"`
	Price        decimal.Decimal `json:"price"`
	Quantity     int             `json:"qty"`
	CountInStock int             `json:"countInStock"`
}

// svUpdateItemRequest is the update-quantity request body.
type svUpdateItemRequest struct {
	Quantity int `json:"qty"`
}

// svErrorResponse is the backend's error payload.
type svErrorResponse struct {
	// Message is the backend-supplied error description.
	Message string `json:"message"`
}
