package service

import (
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/core/config"
	cartdomain "github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/cart/domain"
	"github.com/Do-it-more/shop-vibe-Frontend-sub000/internal/features/checkout/domain"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DraftBuilder turns a cart snapshot plus a shipping address into a normalized
// order draft. Pure transformation; no network I/O.
type DraftBuilder struct {
	// taxRate is the flat tax rate over the items subtotal.
	taxRate decimal.Decimal
	// freeShippingThreshold is the subtotal above which shipping is free.
	freeShippingThreshold decimal.Decimal
	// shippingFlatFee is the shipping price below the threshold.
	shippingFlatFee decimal.Decimal
}

// NewDraftBuilder creates a DraftBuilder from the checkout pricing rules.
func NewDraftBuilder(cfg config.CheckoutConfig) *DraftBuilder {
	return &DraftBuilder{
		taxRate:               decimal.NewFromFloat(cfg.TaxRate),
		freeShippingThreshold: decimal.NewFromFloat(cfg.FreeShippingThreshold),
		shippingFlatFee:       decimal.NewFromFloat(cfg.ShippingFlatFee),
	}
}

// Build produces a deterministic order draft. A missing shipping field or an
// empty cart blocks checkout before any network call; the backend recomputes
// totals and is authoritative for the persisted order.
func (b *DraftBuilder) Build(cart cartdomain.Cart, address domain.ShippingAddress, method domain.PaymentMethod) (domain.OrderDraft, error) {
	if len(cart.Lines) == 0 {
		return domain.OrderDraft{}, domain.ErrEmptyCart
	}
	if err := address.Validate(); err != nil {
		return domain.OrderDraft{}, err
	}

	items := lo.Map(cart.Lines, func(line cartdomain.Line, _ int) domain.DraftItem {
		return domain.DraftItem{
			Name:    line.Name,
			Qty:     line.Quantity,
			Image:   line.Image,
			Price:   line.UnitPrice,
			Product: line.ProductID,
		}
	})

	itemsPrice := cart.Total()
	taxPrice := itemsPrice.Mul(b.taxRate).Round(2)

	shippingPrice := b.shippingFlatFee
	if itemsPrice.GreaterThan(b.freeShippingThreshold) {
		shippingPrice = decimal.Zero
	}

	return domain.OrderDraft{
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   method,
		ItemsPrice:      itemsPrice,
		TaxPrice:        taxPrice,
		ShippingPrice:   shippingPrice,
		TotalPrice:      itemsPrice.Add(taxPrice).Add(shippingPrice),
	}, nil
}
