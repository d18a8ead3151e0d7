package domain

import "errors"

var (
	// ErrUnauthenticated is returned when checkout is attempted without a signed-in user.
	ErrUnauthenticated = errors.New("no signed-in user")
	// ErrEmptyCart is returned when an order draft is requested over an empty cart.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrIncompleteShippingAddress is returned before any network call when a
	// required shipping field is missing; checkout must not proceed.
	ErrIncompleteShippingAddress = errors.New("incomplete shipping address")
	// ErrValidationRejected is returned when the backend refuses the order draft.
	ErrValidationRejected = errors.New("order rejected by backend")
	// ErrProviderDeclined is returned when the payment provider rejects confirmation;
	// the created order remains unpaid and a new attempt may start fresh.
	ErrProviderDeclined = errors.New("payment declined by provider")
	// ErrPaidButNotFinalized is returned when the provider confirmed the payment
	// but the backend mark-paid call failed. Funds have moved while order state
	// disagrees; this must never be conflated with a generic failure, and the
	// finalize retry is an explicit caller action.
	ErrPaidButNotFinalized = errors.New("payment succeeded but order not finalized")
	// ErrNetworkTransient is returned on any other I/O failure.
	ErrNetworkTransient = errors.New("transient network failure")
)
