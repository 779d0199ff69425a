package cart

import (
	"github.com/google/uuid"

	"storefront-gateway/internal/domain"
)

// Cart is the session-scoped shopping cart aggregate: an ordered sequence
// of line items keyed by line-item id. It performs no I/O and is not
// internally synchronized; callers must serialize access (the session layer
// holds one mutex per session).
type Cart struct {
	currency string
	lines    []domain.LineItem
}

// New returns an empty cart priced in the given currency.
func New(currency string) *Cart {
	return &Cart{currency: currency}
}

func (c *Cart) Currency() string {
	return c.currency
}

// AddItem adds quantity units of a product+variant at the given unit price.
// An existing line with the same (productID, variantID) pair absorbs the
// quantity and keeps its originally captured unit price; a later add at a
// different price never revalues earlier units. Quantity must be positive.
func (c *Cart) AddItem(productID, variantID, title string, quantity int, unitPriceCents int64) (domain.LineItem, error) {
	if quantity <= 0 {
		return domain.LineItem{}, domain.ErrInvalidQuantity
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID && c.lines[i].VariantID == variantID {
			c.lines[i].Quantity += quantity
			return c.lines[i], nil
		}
	}
	line := domain.LineItem{
		ID:             uuid.NewString(),
		ProductID:      productID,
		VariantID:      variantID,
		Title:          title,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
	}
	c.lines = append(c.lines, line)
	return line, nil
}

// RemoveItem deletes the line with the given id. Removing an unknown id is
// a no-op, not an error.
func (c *Cart) RemoveItem(lineItemID string) {
	for i := range c.lines {
		if c.lines[i].ID == lineItemID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// SetQuantity replaces the line's quantity in place, preserving its position.
// A quantity of zero or less removes the line. Unknown ids are a no-op.
func (c *Cart) SetQuantity(lineItemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(lineItemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ID == lineItemID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.lines = nil
}

// TotalCents is the sum of unit price times quantity over all lines,
// in integer cents.
func (c *Cart) TotalCents() int64 {
	var total int64
	for _, l := range c.lines {
		total += l.TotalCents()
	}
	return total
}

// Lines returns a copy of the line items in insertion order.
func (c *Cart) Lines() []domain.LineItem {
	out := make([]domain.LineItem, len(c.lines))
	copy(out, c.lines)
	return out
}

// Line returns the line with the given id.
func (c *Cart) Line(lineItemID string) (domain.LineItem, bool) {
	for _, l := range c.lines {
		if l.ID == lineItemID {
			return l, true
		}
	}
	return domain.LineItem{}, false
}

func (c *Cart) Len() int {
	return len(c.lines)
}

func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}
