package adapters

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCardAdapter(ts *httptest.Server) *CardNetworkAdapter {
	return NewCardNetworkAdapter(config.CardProviderConfig{
		URL:       ts.URL,
		SecretKey: "sk_test_123",
	})
}

// TestCardNetworkAdapter_Confirm verifies the confirmation request shape and
// the transaction id round-trip.
func TestCardNetworkAdapter_Confirm(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/payment_intents/confirm", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cs_abc", body["client_secret"])
		billing, ok := body["billing_details"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Jane Doe", billing["name"])
		assert.Equal(t, "jane@example.com", billing["email"])

		w.Write([]byte(`{"id":"pi_tx_9","status":"succeeded"}`))
	}))
	defer ts.Close()

	txID, err := newTestCardAdapter(ts).Confirm(context.Background(), "cs_abc", domain.BillingDetails{
		Name:  "Jane Doe",
		Email: "jane@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "pi_tx_9", txID)
}

// TestCardNetworkAdapter_Confirm_Declined verifies a decline status code maps
// to the decline error with the provider's message.
func TestCardNetworkAdapter_Confirm_Declined(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined."}}`))
	}))
	defer ts.Close()

	_, err := newTestCardAdapter(ts).Confirm(context.Background(), "cs_abc", domain.BillingDetails{})

	assert.ErrorIs(t, err, domain.ErrProviderDeclined)
	assert.Contains(t, err.Error(), "Your card was declined.")
}

// TestCardNetworkAdapter_Confirm_UnexpectedStatus verifies a 200 response that
// is not a succeeded intent is still a decline.
func TestCardNetworkAdapter_Confirm_UnexpectedStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"pi_tx_9","status":"requires_action"}`))
	}))
	defer ts.Close()

	_, err := newTestCardAdapter(ts).Confirm(context.Background(), "cs_abc", domain.BillingDetails{})

	assert.ErrorIs(t, err, domain.ErrProviderDeclined)
}

// TestCardNetworkAdapter_Confirm_ServerError verifies provider outages map to
// the transient error class.
func TestCardNetworkAdapter_Confirm_ServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestCardAdapter(ts).Confirm(context.Background(), "cs_abc", domain.BillingDetails{})

	assert.ErrorIs(t, err, domain.ErrNetworkTransient)
}
