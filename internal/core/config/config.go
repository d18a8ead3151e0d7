package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Backend holds the commerce backend API configuration.
	Backend BackendConfig `mapstructure:",squash"`

	// CardProvider holds the card-network payment provider configuration.
	CardProvider CardProviderConfig `mapstructure:",squash"`

	// Redis holds the Redis connection configuration.
	Redis RedisConfig `mapstructure:",squash"`

	// Checkout holds the pricing rules and payment flow settings.
	Checkout CheckoutConfig `mapstructure:",squash"`
}

// BackendConfig holds the connection details for the commerce backend API.
type BackendConfig struct {
	// URL is the base URL of the commerce backend.
	URL string `mapstructure:"BACKEND_URL" required:"true"`
	// TimeoutSeconds is the per-request timeout for backend calls.
	TimeoutSeconds int `mapstructure:"BACKEND_TIMEOUT_SECONDS" default:"10"`
}

// Timeout returns the backend request timeout as a time.Duration.
func (b BackendConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSeconds) * time.Second
}

// CardProviderConfig holds the card-network payment provider credentials.
type CardProviderConfig struct {
	// URL is the base URL of the provider's payment confirmation API.
	URL string `mapstructure:"CARD_PROVIDER_URL" required:"true"`
	// SecretKey authenticates this client with the provider.
	SecretKey string `mapstructure:"CARD_PROVIDER_SECRET_KEY" required:"true"`
}

// RedisConfig holds the Redis connection details.
type RedisConfig struct {
	// URL is the Redis connection URL (redis://[:password@]host[:port][/db]).
	URL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379"`
}

// CheckoutConfig holds the business rules applied when building an order draft
// and driving a payment attempt.
type CheckoutConfig struct {
	// Currency is the ISO currency code used for all amounts.
	Currency string `mapstructure:"CHECKOUT_CURRENCY" default:"USD"`
	// TaxRate is the flat tax rate applied to the items subtotal.
	TaxRate float64 `mapstructure:"CHECKOUT_TAX_RATE" default:"0.10"`
	// FreeShippingThreshold is the items subtotal above which shipping is free.
	FreeShippingThreshold float64 `mapstructure:"CHECKOUT_FREE_SHIPPING_THRESHOLD" default:"100"`
	// ShippingFlatFee is the shipping price charged below the free-shipping threshold.
	ShippingFlatFee float64 `mapstructure:"CHECKOUT_SHIPPING_FLAT_FEE" default:"10"`
	// DirectTransferDelayMs is the simulated provider confirmation delay for
	// direct-transfer payments, in milliseconds.
	DirectTransferDelayMs int `mapstructure:"CHECKOUT_DIRECT_TRANSFER_DELAY_MS" default:"2000"`
}

// DirectTransferDelay returns the simulated confirmation delay as a time.Duration.
func (c CheckoutConfig) DirectTransferDelay() time.Duration {
	return time.Duration(c.DirectTransferDelayMs) * time.Millisecond
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			v.BindEnv(key)
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		required := field.Tag.Get("required")
		if required == "true" {
			value := val.Field(i)
			if isZero(value) {
				key := field.Tag.Get("mapstructure")
				return fmt.Errorf("missing required configuration: %s", key)
			}
		}
	}
	return nil
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
