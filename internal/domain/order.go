package domain

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

// Order is a single bakery order in the user's history.
type Order struct {
	ID     string      `json:"id"`
	Title  string      `json:"title"`
	Date   string      `json:"date"`
	Status OrderStatus `json:"status"`
	// Amount is in cents.
	Amount int64 `json:"amount_cents"`
}
