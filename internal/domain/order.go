package domain

import (
	"context"
	"errors"
	"time"
)

// Order kinds as recorded on pickup orders.
const (
	OrderKindFertilizer = "fert"
	OrderKindSeed       = "seed"
	OrderKindMixed      = "mixed"
)

// OrderStatusScheduled is the status of a freshly placed order awaiting pickup.
const OrderStatusScheduled = "scheduled"

// ErrEmptyOrder is returned when an order is placed with no items.
var ErrEmptyOrder = errors.New("order must contain at least one item")

// OrderItem is one line item of a pickup order.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type,omitempty"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Order is a pickup order tied to a booked slot. Token is the short numeric
// code the farmer presents at the center.
// swagger:model Order
type Order struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Kind       string      `json:"kind"`
	Items      []OrderItem `json:"items"`
	Total      float64     `json:"total"`
	Date       string      `json:"date"`
	Hour       string      `json:"hour"`
	CenterID   string      `json:"center_id,omitempty"`
	CenterName string      `json:"center_name,omitempty"`
	Token      string      `json:"token"`
	Status     string      `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
}

// OrderRepository defines storage operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *Order) error
	GetByID(ctx context.Context, id string) (*Order, error)
	ListByUserID(ctx context.Context, userID string, p PaginationParams) ([]*Order, int, error)
}

// OrderService places pickup orders. Placing an order reserves slot capacity
// first; no order row is written when the slot cannot be booked.
type OrderService interface {
	PlaceOrder(ctx context.Context, order *Order) (*Order, error)
	ListMyOrders(ctx context.Context, userID string, p PaginationParams) ([]*Order, int, error)
}
