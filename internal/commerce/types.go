package commerce

import (
	"time"

	"storefront-gateway/internal/domain"
)

// Cart is the upstream cart snapshot returned by the cart-mirror endpoints.
type Cart struct {
	ID            string     `json:"id"`
	Items         []CartItem `json:"items"`
	SubtotalCents int64      `json:"subtotal"`
	TaxTotalCents int64      `json:"tax_total"`
	TotalCents    int64      `json:"total"`
}

type CartItem struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price"`
}

// CreateOrderInput is the order-creation request built from the cart
// snapshot plus the collected shipping data.
type CreateOrderInput struct {
	Customer        OrderCustomer `json:"customer"`
	ShippingAddress OrderAddress  `json:"shipping_address"`
	Items           []OrderLine   `json:"items"`
}

type OrderCustomer struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email"`
}

type OrderAddress struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name,omitempty"`
	Address1    string `json:"address_1"`
	City        string `json:"city"`
	Province    string `json:"province,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
}

type OrderLine struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	VariantID      string `json:"variant_id,omitempty"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price"`
}

// RegisterInput is the customer registration request.
type RegisterInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// LoginResult carries the upstream bearer token and the authenticated
// customer.
type LoginResult struct {
	Customer    domain.Customer
	AccessToken string
}

// Wire shapes for upstream orders. Status vocabulary is normalized once,
// on decode.

type orderPayload struct {
	ID        string             `json:"id"`
	DisplayID int                `json:"display_id"`
	Status    string             `json:"status"`
	Total     int64              `json:"total"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []orderItemPayload `json:"items"`
}

type orderItemPayload struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
}

func (p orderPayload) toDomain() domain.Order {
	items := make([]domain.OrderItem, 0, len(p.Items))
	for _, it := range p.Items {
		items = append(items, domain.OrderItem{
			ID:             it.ID,
			Title:          it.Title,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPrice,
		})
	}
	return domain.Order{
		ID:         p.ID,
		DisplayID:  p.DisplayID,
		Status:     domain.NormalizeOrderStatus(p.Status),
		TotalCents: p.Total,
		CreatedAt:  p.CreatedAt,
		Items:      items,
	}
}
