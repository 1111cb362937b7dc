package orders

import (
	"context"
	"errors"
	"testing"

	"bakehouse/zipporder/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestStaticRepository_ListSample(t *testing.T) {
	repo := NewStaticRepository()
	got, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if diff := cmp.Diff(SampleOrders(), got); diff != "" {
		t.Errorf("orders mismatch (-want +got):\n%s", diff)
	}
}

func TestStaticRepository_ListReturnsCopy(t *testing.T) {
	repo := NewStaticRepository()
	first, _ := repo.List(context.Background())
	first[0].Title = "changed"

	second, _ := repo.List(context.Background())
	if second[0].Title != "Order #1234" {
		t.Errorf("repository was mutated through List result: %q", second[0].Title)
	}
}

func TestStaticRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewStaticRepository().List(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	orders := append(SampleOrders(), domain.Order{
		ID: "4", Title: "Order #1237", Date: "2026-02-14", Status: domain.OrderCancelled, Amount: 1000,
	})

	want := Summary{Count: 4, Pending: 2, Delivered: 1, Cancelled: 1, TotalSpent: 4599 + 3250 + 7820}
	if diff := cmp.Diff(want, Summarize(orders)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestSummarize_Empty(t *testing.T) {
	if diff := cmp.Diff(Summary{}, Summarize(nil)); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestAmounts(t *testing.T) {
	want := []float64{45.99, 32.50, 78.20}
	if diff := cmp.Diff(want, Amounts(SampleOrders())); diff != "" {
		t.Errorf("amounts mismatch (-want +got):\n%s", diff)
	}
}
