package domain

import (
	"strings"
	"time"
)

// OrderStatus is the canonical server-reported order state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

// NormalizeOrderStatus maps upstream status vocabulary onto the canonical
// enum. The legacy list-view value "completed" means delivered. Unknown
// values normalize to pending.
func NormalizeOrderStatus(raw string) OrderStatus {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return OrderPending
	case "processing":
		return OrderProcessing
	case "shipped":
		return OrderShipped
	case "delivered", "completed":
		return OrderDelivered
	case "cancelled", "canceled":
		return OrderCancelled
	default:
		return OrderPending
	}
}

// Order is a submitted cart snapshot owned by the upstream commerce API.
// The client never mutates it after submission.
type Order struct {
	ID         string      `json:"id"`
	DisplayID  int         `json:"displayId,omitempty"`
	Status     OrderStatus `json:"status"`
	TotalCents int64       `json:"totalCents"`
	CreatedAt  time.Time   `json:"createdAt"`
	Items      []OrderItem `json:"items"`
}

type OrderItem struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}
