package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"household/internal/config"
)

func TestNew_MemoryWithCatalog(t *testing.T) {
	dir := t.TempDir()
	policyPath := filepath.Join(dir, "policy.toml")
	policy := `
retailers = ["Walmart", "Target"]

[[catalog.Walmart]]
item = "Milk"
price = "$3.49"
discount = "Rollback"

[[catalog.Target]]
item = "milk"
price = "Now $2.99"
discount = "Circle"
`
	if err := os.WriteFile(policyPath, []byte(policy), 0o600); err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	a, err := New(ctx, config.Config{
		Store:      config.StoreConfig{Driver: config.DriverMemory},
		PolicyFile: policyPath,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = a.Close() }()

	now := time.Now()
	if _, err := Seed(ctx, a.Inventory, now); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	got, err := a.Suggestions.Suggest(ctx)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	joined := strings.Join(got, "\n")
	for _, want := range []string{
		"Use these soon: Spinach, Milk. Suggested meal: Salad with Spinach.",
		"Milk: Best price at Target: Now $2.99 (Circle)",
		"Predicted food usage next week:",
		"Predicted energy usage:",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing %q in:\n%s", want, joined)
		}
	}
}

func TestNew_SQLite(t *testing.T) {
	ctx := context.Background()
	a, err := New(ctx, config.Config{
		Store: config.StoreConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "h.db")},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = a.Close() }()

	items, err := Seed(ctx, a.Inventory, time.Now())
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if len(items) != 5 {
		t.Fatalf("expected 5 seeded items, got %d", len(items))
	}
	f, err := a.Suggestions.PredictUsage(ctx, "energy")
	if err != nil || !f.HasData() {
		t.Fatalf("expected energy forecast, got %+v err=%v", f, err)
	}
}

func TestNew_UnreachableRedisDisablesCache(t *testing.T) {
	a, err := New(context.Background(), config.Config{
		Store: config.StoreConfig{Driver: config.DriverMemory},
		Redis: config.RedisConfig{URL: "redis://127.0.0.1:1/0", DialTimeout: 100 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	if _, err := OpenStore(context.Background(), config.StoreConfig{Driver: "mongo"}); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}
