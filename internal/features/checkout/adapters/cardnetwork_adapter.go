package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/httpclient"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"
)

const cardConfirmTimeout = 30 * time.Second

// CardNetworkAdapter implements the CardConfirmer port against the card
// provider's confirmation API. The provider secret key rides on every request
// through the bearer client.
type CardNetworkAdapter struct {
	// client is the HTTP client carrying the provider credential.
	client *http.Client
	// baseURL is the provider API base URL.
	baseURL string
}

// NewCardNetworkAdapter creates a new CardNetworkAdapter.
func NewCardNetworkAdapter(cfg config.CardProviderConfig) *CardNetworkAdapter {
	return &CardNetworkAdapter{
		client:  httpclient.NewBearerClient(cfg.SecretKey, cardConfirmTimeout),
		baseURL: cfg.URL,
	}
}

// Confirm hands the intent to the provider's confirmation flow with the
// cardholder billing details. A decline carries the provider's message.
func (a *CardNetworkAdapter) Confirm(ctx context.Context, clientSecret string, billing domain.BillingDetails) (string, error) {
	body := providerConfirmRequest{
		ClientSecret: clientSecret,
		BillingDetails: providerBillingDetails{
			Name:  billing.Name,
			Email: billing.Email,
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode confirmation: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL+"/v1/payment_intents/confirm", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrNetworkTransient, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
		var confirmed providerConfirmResponse
		if err := json.NewDecoder(resp.Body).Decode(&confirmed); err != nil {
			return "", fmt.Errorf("failed to decode confirmation: %w", err)
		}
		if confirmed.Status != "succeeded" || confirmed.ID == "" {
			return "", fmt.Errorf("%w: provider returned status %q", domain.ErrProviderDeclined, confirmed.Status)
		}
		return confirmed.ID, nil

	case resp.StatusCode == http.StatusPaymentRequired, resp.StatusCode == http.StatusUnprocessableEntity:
		var declined providerErrorResponse
		_ = json.NewDecoder(resp.Body).Decode(&declined)
		if declined.Error.Message != "" {
			return "", fmt.Errorf("%w: %s", domain.ErrProviderDeclined, declined.Error.Message)
		}
		return "", domain.ErrProviderDeclined

	default:
		return "", fmt.Errorf("%w: provider returned status %d", domain.ErrNetworkTransient, resp.StatusCode)
	}
}

// internal structs for mapping

// providerConfirmRequest is the confirmation request body.
type providerConfirmRequest struct {
	ClientSecret   string                 `json:"client_secret"`
	BillingDetails providerBillingDetails `json:"billing_details"`
}

// providerBillingDetails carries cardholder information.
type providerBillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// providerConfirmResponse is the provider's confirmation result.
type providerConfirmResponse struct {
	// ID is the provider transaction id.
	ID string `json:"id"`
	// Status is the intent status after confirmation.
	Status string `json:"status"`
}

// providerErrorResponse is the provider's decline payload.
type providerErrorResponse struct {
	Error struct {
		// Message is the provider-supplied decline reason.
		Message string `json:"message"`
	} `json:"error"`
}
