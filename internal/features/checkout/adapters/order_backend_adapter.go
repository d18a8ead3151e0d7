package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/httpclient"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// OrderBackendAdapter implements the OrderBackend port over the commerce
// backend's order and payment endpoints.
type OrderBackendAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// baseURL is the backend base URL.
	baseURL string
}

// NewOrderBackendAdapter creates a new OrderBackendAdapter.
func NewOrderBackendAdapter(cfg config.BackendConfig) *OrderBackendAdapter {
	return &OrderBackendAdapter{
		client:  httpclient.NewClient(cfg.Timeout()),
		baseURL: cfg.URL,
	}
}

// CreateOrder submits the order draft and returns the persisted order.
func (a *OrderBackendAdapter) CreateOrder(ctx context.Context, token string, draft domain.OrderDraft) (domain.Order, error) {
	body := svOrderRequest{
		Items: lo.Map(draft.Items, func(item domain.DraftItem, _ int) svOrderItem {
			return svOrderItem{
				Name:    item.Name,
				Qty:     item.Qty,
				Image:   item.Image,
				Price:   item.Price,
				Product: item.Product,
			}
		}),
		ShippingAddress: svShippingAddress{
			Address:     draft.ShippingAddress.Address,
			City:        draft.ShippingAddress.City,
			PostalCode:  draft.ShippingAddress.PostalCode,
			Country:     draft.ShippingAddress.Country,
			PhoneNumber: draft.ShippingAddress.PhoneNumber,
		},
		PaymentMethod: string(draft.PaymentMethod),
		ItemsPrice:    draft.ItemsPrice,
		TaxPrice:      draft.TaxPrice,
		ShippingPrice: draft.ShippingPrice,
		TotalPrice:    draft.TotalPrice,
	}

	var resp svOrderResponse
	if err := a.do(ctx, token, http.MethodPost, "/api/orders", body, &resp); err != nil {
		return domain.Order{}, err
	}

	return domain.Order{
		ID:         resp.ID,
		TotalPrice: resp.TotalPrice,
		IsPaid:     resp.IsPaid,
		CreatedAt:  resp.CreatedAt,
	}, nil
}

// CreatePaymentIntent requests a provider payment intent sized in minor
// currency units and returns its client secret.
func (a *OrderBackendAdapter) CreatePaymentIntent(ctx context.Context, token, orderID string, amountMinor int64, currency string) (string, error) {
	body := svIntentRequest{
		Amount:   amountMinor,
		Currency: currency,
	}

	path := "/api/orders/" + url.PathEscape(orderID) + "/payment-intent"
	var resp svIntentResponse
	if err := a.do(ctx, token, http.MethodPost, path, body, &resp); err != nil {
		return "", err
	}
	if resp.ClientSecret == "" {
		return "", fmt.Errorf("%w: backend returned empty client secret", domain.ErrNetworkTransient)
	}
	return resp.ClientSecret, nil
}

// MarkOrderPaid finalizes the order with the payment receipt.
func (a *OrderBackendAdapter) MarkOrderPaid(ctx context.Context, token, orderID string, receipt domain.PaymentReceipt) error {
	body := svPayRequest{
		TransactionID: receipt.TransactionID,
		Status:        receipt.Status,
		Timestamp:     receipt.Timestamp,
		PayerEmail:    receipt.PayerEmail,
	}

	path := "/api/orders/" + url.PathEscape(orderID) + "/pay"
	return a.do(ctx, token, http.MethodPut, path, body, nil)
}

// do executes one backend call with auth attachment and error normalization.
func (a *OrderBackendAdapter) do(ctx context.Context, token, method, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrNetworkTransient, err)
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

// normalizeStatus maps backend HTTP statuses to the checkout error classes.
func normalizeStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		return domain.ErrUnauthenticated
	case resp.StatusCode == http.StatusBadRequest,
		resp.StatusCode == http.StatusUnprocessableEntity:
		var body svErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&body)
		if body.Message != "" {
			return fmt.Errorf("%w: %s", domain.ErrValidationRejected, body.Message)
		}
		return domain.ErrValidationRejected
	default:
		return fmt.Errorf("%w: backend returned status %d", domain.ErrNetworkTransient, resp.StatusCode)
	}
}

// internal structs for mapping

// svOrderRequest is the order-creation request body.
type svOrderRequest struct {
	Items           []svOrderItem     `json:"orderItems"`
	ShippingAddress svShippingAddress `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal   `json:"itemsPrice"`
	TaxPrice        decimal.Decimal   `json:"taxPrice"`
	ShippingPrice   decimal.Decimal   `json:"shippingPrice"`
	TotalPrice      decimal.Decimal   `json:"totalPrice"`
}

// svOrderItem is one line in the order-creation request.
type svOrderItem struct {
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Image   string          `json:"image"`
	Price   decimal.Decimal `json:"price"`
	Product string          `json:"product"`
}

// svShippingAddress is the shipping block of the order-creation request.
type svShippingAddress struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	PhoneNumber string `json:"phoneNumber"`
}

// svOrderResponse is the persisted order returned by the backend.
type svOrderResponse struct {
	// ID is the server-assigned order identifier.
	ID string `json:"_id"`
	// TotalPrice is the server-computed total.
	TotalPrice decimal.Decimal `json:"totalPrice"`
	// IsPaid indicates whether the order is already marked paid.
	IsPaid bool `json:"isPaid"`
	// CreatedAt is the persistence timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// svIntentRequest is the payment-intent request body.
type svIntentRequest struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// svIntentResponse carries the provider intent's client secret.
type svIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// svPayRequest is the mark-paid request body.
type svPayRequest struct {
	TransactionID string    `json:"transactionId"`
	Status        string    `json:"status"`
	Timestamp     time.Time `json:"timestamp"`
	PayerEmail    string    `json:"payerEmail"`
}

// svErrorResponse is the backend's error payload.
type svErrorResponse struct {
	// Message is the backend-supplied error description.
	Message string `json:"message"`
}
