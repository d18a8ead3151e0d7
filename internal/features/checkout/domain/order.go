package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod identifies one of the two supported payment protocols.
type PaymentMethod string

const (
	// PaymentMethodCardNetwork is a tokenized card-network payment confirmed
	// with the external provider.
	PaymentMethodCardNetwork PaymentMethod = "CARD_NETWORK"
	// PaymentMethodDirectTransfer is a simulated account-to-account transfer.
	PaymentMethodDirectTransfer PaymentMethod = "DIRECT_TRANSFER"
)

// Valid reports whether the method is one of the supported protocols.
func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCardNetwork || m == PaymentMethodDirectTransfer
}

// ShippingAddress holds the destination for an order. All fields are required
// for checkout to proceed.
type ShippingAddress struct {
	// Address is the street address line.
	Address string `json:"address"`
	// City is the destination city.
	City string `json:"city"`
	// PostalCode is the destination postal code.
	PostalCode string `json:"postal_code"`
	// Country is the destination country.
	Country string `json:"country"`
	// PhoneNumber is the recipient's contact number.
	PhoneNumber string `json:"phone_number"`
}

// Validate returns ErrIncompleteShippingAddress naming the missing fields, or
// nil when all five required fields are present.
func (a ShippingAddress) Validate() error {
	var missing []string
	if strings.TrimSpace(a.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(a.City) == "" {
		missing = append(missing, "city")
	}
	if strings.TrimSpace(a.PostalCode) == "" {
		missing = append(missing, "postal code")
	}
	if strings.TrimSpace(a.Country) == "" {
		missing = append(missing, "country")
	}
	if strings.TrimSpace(a.PhoneNumber) == "" {
		missing = append(missing, "phone number")
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteShippingAddress, strings.Join(missing, ", "))
	}
	return nil
}

// DraftItem is one cart line snapshot carried into an order draft.
type DraftItem struct {
	// Name is the product name at add-time.
	Name string `json:"name"`
	// Qty is the number of units.
	Qty int `json:"qty"`
	// Image is the product image URL.
	Image string `json:"image"`
	// Price is the add-time unit price snapshot.
	Price decimal.Decimal `json:"price"`
	// Product is the product identifier reference.
	Product string `json:"product"`
}

// OrderDraft is the client-assembled, not-yet-persisted proposal for an order.
// Immutable once submitted; the backend's persisted Order becomes authoritative.
type OrderDraft struct {
	// Items holds the cart snapshot.
	Items []DraftItem `json:"items"`
	// ShippingAddress is the checkout destination.
	ShippingAddress ShippingAddress `json:"shipping_address"`
	// PaymentMethod is the chosen payment protocol.
	PaymentMethod PaymentMethod `json:"payment_method"`
	// ItemsPrice is the items subtotal.
	ItemsPrice decimal.Decimal `json:"items_price"`
	// TaxPrice is the flat-rate tax computed over the subtotal.
	TaxPrice decimal.Decimal `json:"tax_price"`
	// ShippingPrice is the shipping fee (zero above the free threshold).
	ShippingPrice decimal.Decimal `json:"shipping_price"`
	// TotalPrice is items + tax + shipping; the backend recomputes and wins.
	TotalPrice decimal.Decimal `json:"total_price"`
}

// Order is the backend-persisted, authoritative record of a checkout.
type Order struct {
	// ID is the server-assigned order identifier.
	ID string `json:"id"`
	// TotalPrice is the server-computed total; payment intents are sized from
	// this value, never from the client's locally computed total.
	TotalPrice decimal.Decimal `json:"total_price"`
	// IsPaid indicates whether the order has been marked paid.
	IsPaid bool `json:"is_paid"`
	// CreatedAt is when the backend persisted the order.
	CreatedAt time.Time `json:"created_at"`
}

// PaymentReceipt is the payload of the mark-paid call. Keyed by order id on
// the backend, re-sending it for the same order is safe.
type PaymentReceipt struct {
	// TransactionID is the provider transaction reference.
	TransactionID string `json:"transaction_id"`
	// Status is the provider-side outcome; always "Succeeded" when sent.
	Status string `json:"status"`
	// Timestamp is when the provider confirmed the payment.
	Timestamp time.Time `json:"timestamp"`
	// PayerEmail identifies the paying account.
	PayerEmail string `json:"payer_email"`
}

// BillingDetails carries cardholder information into provider confirmation.
type BillingDetails struct {
	// Name is the cardholder name.
	Name string `json:"name"`
	// Email is the cardholder contact email.
	Email string `json:"email"`
}
