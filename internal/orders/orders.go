// Package orders provides the signed-in user's order history.
package orders

import (
	"context"
	"slices"

	"bakehouse/zipporder/internal/domain"

	"github.com/samber/lo"
)

// Repository lists orders for the current user.
type Repository interface {
	List(ctx context.Context) ([]domain.Order, error)
}

// StaticRepository serves a fixed order history. It stands in until a
// backend exists.
type StaticRepository struct {
	orders []domain.Order
}

// NewStaticRepository returns a repository over orders. With no arguments
// it serves the sample history.
func NewStaticRepository(orders ...domain.Order) *StaticRepository {
	if len(orders) == 0 {
		orders = SampleOrders()
	}
	return &StaticRepository{orders: orders}
}

// List returns a copy of the stored orders.
func (r *StaticRepository) List(ctx context.Context) ([]domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(r.orders), nil
}

// SampleOrders is the history shown to every signed-in user.
func SampleOrders() []domain.Order {
	return []domain.Order{
		{ID: "1", Title: "Order #1234", Date: "2026-02-10", Status: domain.OrderDelivered, Amount: 4599},
		{ID: "2", Title: "Order #1235", Date: "2026-02-12", Status: domain.OrderPending, Amount: 3250},
		{ID: "3", Title: "Order #1236", Date: "2026-02-13", Status: domain.OrderPending, Amount: 7820},
	}
}

// Summary aggregates an order history for the profile view.
type Summary struct {
	Count     int
	Pending   int
	Delivered int
	Cancelled int
	// TotalSpent excludes cancelled orders, in cents.
	TotalSpent int64
}

// Summarize computes a Summary over orders.
func Summarize(orders []domain.Order) Summary {
	counts := lo.CountValuesBy(orders, func(o domain.Order) domain.OrderStatus { return o.Status })
	billable := lo.Reject(orders, func(o domain.Order, _ int) bool { return o.Status == domain.OrderCancelled })

	return Summary{
		Count:      len(orders),
		Pending:    counts[domain.OrderPending],
		Delivered:  counts[domain.OrderDelivered],
		Cancelled:  counts[domain.OrderCancelled],
		TotalSpent: lo.SumBy(billable, func(o domain.Order) int64 { return o.Amount }),
	}
}

// Amounts returns each order amount in dollars, in list order. It feeds the
// spend chart.
func Amounts(orders []domain.Order) []float64 {
	return lo.Map(orders, func(o domain.Order, _ int) float64 { return float64(o.Amount) / 100 })
}
