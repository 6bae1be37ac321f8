package shipment

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/oceanbridge/importflow/internal/domain"
)

func seedStore(t *testing.T, n int, status domain.ShipmentStatus) *MemoryStore {
	t.Helper()
	store := NewMemoryStore()
	for i := 0; i < n; i++ {
		err := store.SaveOrder(context.Background(), &domain.PurchaseOrder{
			ID:       fmt.Sprintf("po-%d", i),
			Supplier: "Acme Traders",
			Status:   status,
		})
		if err != nil {
			t.Fatalf("save: %v", err)
		}
	}
	return store
}

func TestMemoryStoreListFilters(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, 3, domain.StatusPending)
	if err := store.SaveOrder(ctx, &domain.PurchaseOrder{ID: "po-x", Supplier: "Other", Status: domain.StatusDelivered}); err != nil {
		t.Fatalf("save: %v", err)
	}

	pending, err := store.ListOrders(ctx, domain.OrderFilter{Status: "Pending"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(pending) != 3 {
		t.Errorf("pending = %d, want 3", len(pending))
	}

	bySupplier, err := store.ListOrders(ctx, domain.OrderFilter{Supplier: "Other"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(bySupplier) != 1 || bySupplier[0].ID != "po-x" {
		t.Errorf("supplier filter returned %v", bySupplier)
	}

	// Unknown status labels match nothing rather than everything.
	none, err := store.ListOrders(ctx, domain.OrderFilter{Status: "Lost At Sea"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("unknown status matched %d orders", len(none))
	}
}

func TestMemoryStorePagination(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, 5, domain.StatusPending)

	page1, err := store.ListOrders(ctx, domain.OrderFilter{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page1) != 2 {
		t.Errorf("page 1 size = %d, want 2", len(page1))
	}

	page3, err := store.ListOrders(ctx, domain.OrderFilter{Page: 3, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page3) != 1 {
		t.Errorf("page 3 size = %d, want 1", len(page3))
	}

	empty, err := store.ListOrders(ctx, domain.OrderFilter{Page: 4, PageSize: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("page past the end returned %d orders", len(empty))
	}
}

func TestMemoryStorePaginationCoversEachOrderOnce(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, 9, domain.StatusPending)

	seen := make(map[string]int)
	for page := 1; page <= 5; page++ {
		orders, err := store.ListOrders(ctx, domain.OrderFilter{Page: page, PageSize: 2})
		if err != nil {
			t.Fatalf("page %d: %v", page, err)
		}
		for _, o := range orders {
			seen[o.ID]++
		}
	}

	if len(seen) != 9 {
		t.Errorf("pages covered %d distinct orders, want 9", len(seen))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("order %s appeared %d times across pages", id, n)
		}
	}
}

func TestMemoryStoreUpdateUnknownOrder(t *testing.T) {
	store := NewMemoryStore()
	err := store.UpdateOrder(context.Background(), &domain.PurchaseOrder{ID: "nope"})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("err = %v, want ErrOrderNotFound", err)
	}
}

func TestMemoryStoreGetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := seedStore(t, 1, domain.StatusPending)

	got, err := store.GetOrder(ctx, "po-0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got.Status = domain.StatusDelivered

	again, err := store.GetOrder(ctx, "po-0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Status != domain.StatusPending {
		t.Error("mutating a fetched order leaked into the store")
	}
}
