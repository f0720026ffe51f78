package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"household/internal/domain"
)

func TestMemoryStore_ItemCRUD(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	it := domain.InventoryItem{Name: "Milk", Quantity: 2, Unit: "l", Category: "food"}
	if err := store.CreateItem(ctx, &it); err != nil {
		t.Fatalf("create: %v", err)
	}
	if it.ID == 0 {
		t.Fatalf("no id")
	}

	got, err := store.GetItem(ctx, it.ID)
	if err != nil || got.ID != it.ID {
		t.Fatalf("get: %v", err)
	}

	it.Quantity = 1.5
	if err := store.UpdateItem(ctx, &it); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ = store.GetItem(ctx, it.ID)
	if got.Quantity != 1.5 {
		t.Fatalf("quantity expected 1.5, got %v", got.Quantity)
	}

	if _, err := store.GetItem(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	missing := domain.InventoryItem{ID: 999}
	if err := store.UpdateItem(ctx, &missing); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found on update, got %v", err)
	}
}

func TestMemoryStore_ListOrderAndFilter(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	for _, n := range []string{"Eggs", "Bulb", "Bread", "Soap", "Apples"} {
		cat := "food"
		if n == "Bulb" || n == "Soap" {
			cat = "household"
		}
		it := domain.InventoryItem{Name: n, Quantity: 1, Category: cat}
		if err := store.CreateItem(ctx, &it); err != nil {
			t.Fatal(err)
		}
	}

	all, _ := store.ListItems(ctx, ItemFilter{})
	if len(all) != 5 {
		t.Fatalf("expected 5 items, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].ID > all[i].ID {
			t.Fatalf("list not in insertion order")
		}
	}

	food, _ := store.ListItems(ctx, ItemFilter{Category: "food"})
	if len(food) != 3 || food[0].Name != "Eggs" || food[1].Name != "Bread" || food[2].Name != "Apples" {
		t.Fatalf("unexpected food list: %+v", food)
	}
}

func TestMemoryStore_LogsDefaultTimestamp(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	fixed := time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return fixed }

	l := domain.ConsumptionLog{ItemID: 1, Quantity: 2, ResourceType: "food"}
	if err := store.CreateLog(ctx, &l); err != nil {
		t.Fatal(err)
	}
	if !l.Timestamp.Equal(fixed) {
		t.Fatalf("timestamp expected %v, got %v", fixed, l.Timestamp)
	}

	explicit := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	l2 := domain.ConsumptionLog{ItemID: 1, Quantity: 3, ResourceType: "energy", Timestamp: explicit}
	_ = store.CreateLog(ctx, &l2)

	energy, _ := store.ListLogs(ctx, LogFilter{ResourceType: "energy"})
	if len(energy) != 1 || !energy[0].Timestamp.Equal(explicit) {
		t.Fatalf("unexpected energy logs: %+v", energy)
	}
}

func TestMemoryStore_TransactionalDecrement(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	it := domain.InventoryItem{Name: "Rice", Quantity: 1, Category: "food"}
	if err := store.CreateItem(ctx, &it); err != nil {
		t.Fatal(err)
	}

	// log and decrement atomically
	err := store.WithTransaction(ctx, func(ctx context.Context) error {
		l := domain.ConsumptionLog{ItemID: it.ID, Quantity: 3, ResourceType: "food"}
		if err := store.CreateLog(ctx, &l); err != nil {
			return err
		}
		cur, err := store.GetItem(ctx, it.ID)
		if err != nil {
			return err
		}
		cur.Quantity -= l.Quantity
		return store.UpdateItem(ctx, cur)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}

	got, _ := store.GetItem(ctx, it.ID)
	if got.Quantity != -2 {
		t.Fatalf("quantity expected -2, got %v", got.Quantity)
	}
}

func TestMemoryStore_ReadSession(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	it := domain.InventoryItem{Name: "Tea", Quantity: 4, Category: "food"}
	_ = store.CreateItem(ctx, &it)

	var n int
	err := store.ReadSession(ctx, func(ctx context.Context, r Reader) error {
		items, err := r.ListItems(ctx, ItemFilter{})
		if err != nil {
			return err
		}
		logs, err := r.ListLogs(ctx, LogFilter{})
		if err != nil {
			return err
		}
		n = len(items) + len(logs)
		return nil
	})
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row, got %d", n)
	}

	// lock must be released after the session, even on error
	boom := errors.New("boom")
	if err := store.ReadSession(ctx, func(context.Context, Reader) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := store.CreateItem(ctx, &domain.InventoryItem{Name: "After"}); err != nil {
		t.Fatalf("create after session: %v", err)
	}
}
