package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv() {
	os.Setenv("BACKEND_URL", "https://backend.test")
	os.Setenv("CARD_PROVIDER_URL", "https://cards.test")
	os.Setenv("CARD_PROVIDER_SECRET_KEY", "sk_test_123")
}

func unsetRequiredEnv() {
	os.Unsetenv("BACKEND_URL")
	os.Unsetenv("CARD_PROVIDER_URL")
	os.Unsetenv("CARD_PROVIDER_SECRET_KEY")
}

// TestLoad_Defaults verifies that default values are used when env vars are missing.
func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("APP_ENV")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")

	setRequiredEnv()
	defer unsetRequiredEnv()

	cfg, err := Load(".")
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, "USD", cfg.Checkout.Currency)
	assert.Equal(t, 0.10, cfg.Checkout.TaxRate)
	assert.Equal(t, 100.0, cfg.Checkout.FreeShippingThreshold)
	assert.Equal(t, 10.0, cfg.Checkout.ShippingFlatFee)
	assert.Equal(t, 2*time.Second, cfg.Checkout.DirectTransferDelay())
	assert.Equal(t, 10*time.Second, cfg.Backend.Timeout())
}

// TestLoad_EnvVars verifies that environment variables override defaults.
func TestLoad_EnvVars(t *testing.T) {
	os.Setenv("APP_ENV", "production")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("CHECKOUT_TAX_RATE", "0.19")
	os.Setenv("CHECKOUT_DIRECT_TRANSFER_DELAY_MS", "500")
	setRequiredEnv()
	defer func() {
		os.Unsetenv("APP_ENV")
		os.Unsetenv("LOG_LEVEL")
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("CHECKOUT_TAX_RATE")
		os.Unsetenv("CHECKOUT_DIRECT_TRANSFER_DELAY_MS")
		unsetRequiredEnv()
	}()

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Environment)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9090, cfg.ServerPort)
	assert.Equal(t, "https://backend.test", cfg.Backend.URL)
	assert.Equal(t, "sk_test_123", cfg.CardProvider.SecretKey)
	assert.Equal(t, 0.19, cfg.Checkout.TaxRate)
	assert.Equal(t, 500*time.Millisecond, cfg.Checkout.DirectTransferDelay())
}

// TestLoad_File verifies that values are loaded from a .env file.
func TestLoad_File(t *testing.T) {
	content := []byte(`
APP_ENV=staging
LOG_LEVEL=warn
SERVER_PORT=7070
BACKEND_URL=https://staging-backend.test
CARD_PROVIDER_URL=https://staging-cards.test
CARD_PROVIDER_SECRET_KEY=sk_staging
CHECKOUT_FREE_SHIPPING_THRESHOLD=250
`)
	err := os.WriteFile(".env", content, 0644)
	require.NoError(t, err)
	defer os.Remove(".env")

	cfg, err := Load(".")
	require.NoError(t, err)

	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 7070, cfg.ServerPort)
	assert.Equal(t, "https://staging-backend.test", cfg.Backend.URL)
	assert.Equal(t, 250.0, cfg.Checkout.FreeShippingThreshold)
}

// TestLoad_ValidationFailure verifies that missing required fields return an error.
func TestLoad_ValidationFailure(t *testing.T) {
	unsetRequiredEnv()

	cfg, err := Load(".")
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "missing required configuration")
}
