package service

import (
	"testing"

	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	cartdomain "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPricing() config.CheckoutConfig {
	return config.CheckoutConfig{
		Currency:              "USD",
		TaxRate:               0.10,
		FreeShippingThreshold: 100,
		ShippingFlatFee:       10,
	}
}

func testAddress() domain.ShippingAddress {
	return domain.ShippingAddress{
		Address:     "Carrera 7 #12-34",
		City:        "Bogota",
		PostalCode:  "110111",
		Country:     "CO",
		PhoneNumber: "+57 300 000 0000",
	}
}

// TestDraftBuilder_Build verifies the deterministic draft over a priced cart.
func TestDraftBuilder_Build(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", Name: "Vinyl Record", Image: "/img/a.jpg", UnitPrice: decimal.NewFromInt(100), Quantity: 2},
	}}

	draft, err := NewDraftBuilder(testPricing()).Build(cart, testAddress(), domain.PaymentMethodCardNetwork)

	require.NoError(t, err)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "A", draft.Items[0].Product)
	assert.Equal(t, 2, draft.Items[0].Qty)
	assert.Equal(t, domain.PaymentMethodCardNetwork, draft.PaymentMethod)
	assert.True(t, decimal.NewFromInt(200).Equal(draft.ItemsPrice))
	assert.True(t, decimal.NewFromInt(20).Equal(draft.TaxPrice))
	// Subtotal above the free-shipping threshold.
	assert.True(t, draft.ShippingPrice.IsZero())
	assert.True(t, decimal.NewFromInt(220).Equal(draft.TotalPrice))
}

// TestDraftBuilder_Build_FlatShippingBelowThreshold verifies the flat fee path.
func TestDraftBuilder_Build_FlatShippingBelowThreshold(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", UnitPrice: decimal.NewFromInt(25), Quantity: 2},
	}}

	draft, err := NewDraftBuilder(testPricing()).Build(cart, testAddress(), domain.PaymentMethodDirectTransfer)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(draft.ShippingPrice))
	// 50 + 5 tax + 10 shipping
	assert.True(t, decimal.NewFromInt(65).Equal(draft.TotalPrice))
}

// TestDraftBuilder_Build_ThresholdBoundary verifies a subtotal exactly at the
// threshold still pays shipping.
func TestDraftBuilder_Build_ThresholdBoundary(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", UnitPrice: decimal.NewFromInt(100), Quantity: 1},
	}}

	draft, err := NewDraftBuilder(testPricing()).Build(cart, testAddress(), domain.PaymentMethodCardNetwork)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(draft.ShippingPrice))
}

// TestDraftBuilder_Build_TaxRounding verifies tax rounds to two decimals.
func TestDraftBuilder_Build_TaxRounding(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", UnitPrice: decimal.NewFromFloat(33.33), Quantity: 1},
	}}

	draft, err := NewDraftBuilder(testPricing()).Build(cart, testAddress(), domain.PaymentMethodCardNetwork)

	require.NoError(t, err)
	assert.True(t, decimal.NewFromFloat(3.33).Equal(draft.TaxPrice))
}

// TestDraftBuilder_Build_EmptyCart verifies an empty cart blocks checkout.
func TestDraftBuilder_Build_EmptyCart(t *testing.T) {
	_, err := NewDraftBuilder(testPricing()).Build(cartdomain.Cart{}, testAddress(), domain.PaymentMethodCardNetwork)

	assert.ErrorIs(t, err, domain.ErrEmptyCart)
}

// TestDraftBuilder_Build_IncompleteAddress verifies address validation blocks
// checkout before any network call.
func TestDraftBuilder_Build_IncompleteAddress(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
	}}
	address := testAddress()
	address.City = ""

	_, err := NewDraftBuilder(testPricing()).Build(cart, address, domain.PaymentMethodCardNetwork)

	assert.ErrorIs(t, err, domain.ErrIncompleteShippingAddress)
}

// TestDraftBuilder_Build_Deterministic verifies two builds over the same input
// are identical.
func TestDraftBuilder_Build_Deterministic(t *testing.T) {
	cart := cartdomain.Cart{Lines: []cartdomain.Line{
		{ProductID: "A", UnitPrice: decimal.NewFromFloat(19.99), Quantity: 3},
	}}
	builder := NewDraftBuilder(testPricing())

	first, err := builder.Build(cart, testAddress(), domain.PaymentMethodCardNetwork)
	require.NoError(t, err)
	second, err := builder.Build(cart, testAddress(), domain.PaymentMethodCardNetwork)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
