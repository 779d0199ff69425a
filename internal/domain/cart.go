package domain

// LineItem is one entry in a cart: a product+variant at a unit price
// captured at add-time and a positive quantity.
type LineItem struct {
	ID             string `json:"id"`
	ProductID      string `json:"productId"`
	VariantID      string `json:"variantId,omitempty"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

// TotalCents is the line's extended price.
func (l LineItem) TotalCents() int64 {
	return l.UnitPriceCents * int64(l.Quantity)
}
