package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrNotSignedIn is returned when a cart mutation is attempted without a signed-in user.
	ErrNotSignedIn = errors.New("no signed-in user")
	// ErrLineNotFound is returned when the cart holds no line for the given product.
	ErrLineNotFound = errors.New("cart line not found")
	// ErrInvalidLine is returned when a line violates a cart invariant.
	ErrInvalidLine = errors.New("invalid cart line")
	// ErrRejectedByBackend is returned when the backend refuses a mutation
	// (e.g., stock exhausted).
	ErrRejectedByBackend = errors.New("mutation rejected by backend")
	// ErrBackendUnavailable is returned on transient backend I/O failures.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Line represents one product's presence in the cart.
type Line struct {
	// ProductID is the stable product identifier; at most one line per product.
	ProductID string `json:"product_id"`
	// Name is the product name, denormalized at add-time.
	Name string `json:"name"`
	// Image is the product image URL, denormalized at add-time.
	Image string `json:"image"`
	// UnitPrice is the price snapshot taken when the product was added.
	UnitPrice decimal.Decimal `json:"unit_price"`
	// Quantity is the number of units; always >= 1.
	Quantity int `json:"quantity"`
	// CountInStock is the advisory stock level from the catalog at add-time.
	CountInStock int `json:"count_in_stock"`
}

// NewLine creates a Line and validates the cart invariants.
func NewLine(productID, name, image string, unitPrice decimal.Decimal, quantity, countInStock int) (Line, error) {
	if productID == "" {
		return Line{}, errors.Join(ErrInvalidLine, errors.New("product id is required"))
	}
	if quantity < 1 {
		return Line{}, errors.Join(ErrInvalidLine, errors.New("quantity must be at least 1"))
	}
	if unitPrice.IsNegative() {
		return Line{}, errors.Join(ErrInvalidLine, errors.New("unit price must not be negative"))
	}

	return Line{
		ProductID:    productID,
		Name:         name,
		Image:        image,
		UnitPrice:    unitPrice,
		Quantity:     quantity,
		CountInStock: countInStock,
	}, nil
}

// Subtotal returns unit price times quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is the ordered collection of lines for one signed-in user.
type Cart struct {
	// Lines holds the cart contents in backend order.
	Lines []Line `json:"lines"`
}

// Total returns the sum of all line subtotals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.Lines {
		total = total.Add(line.Subtotal())
	}
	return total
}

// Count returns the sum of all line quantities.
func (c Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Find returns the line for the given product, if present.
func (c Cart) Find(productID string) (Line, bool) {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return Line{}, false
}

// Clone returns a deep copy of the cart so callers cannot mutate store state.
func (c Cart) Clone() Cart {
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}
