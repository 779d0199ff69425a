package domain

// Product is read-only catalog data owned by the upstream commerce API.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Handle      string    `json:"handle,omitempty"`
	Description string    `json:"description,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Images      []Image   `json:"images,omitempty"`
	Variants    []Variant `json:"variants"`
}

type Image struct {
	URL string `json:"url"`
}

// Variant is a purchasable configuration of a product with its own prices.
type Variant struct {
	ID     string  `json:"id"`
	Title  string  `json:"title,omitempty"`
	Prices []Price `json:"prices"`
}

// Price is an amount in minor currency units (integer cents).
type Price struct {
	AmountCents  int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// VariantByID returns the variant with the given id, or nil.
func (p *Product) VariantByID(id string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].ID == id {
			return &p.Variants[i]
		}
	}
	return nil
}

// PriceFor returns the variant's first price matching the currency.
// The second return is false when the variant has no price in that currency.
func (v *Variant) PriceFor(currency string) (int64, bool) {
	for _, p := range v.Prices {
		if p.CurrencyCode == currency {
			return p.AmountCents, true
		}
	}
	return 0, false
}
