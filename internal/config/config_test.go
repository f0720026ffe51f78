package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadPolicy_DefaultsWhenMissing(t *testing.T) {
	p, err := LoadPolicy(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.ExpiryWindowDays != 3 || p.LowStockThreshold != 5 || p.LookupCap != 3 || p.HorizonDays != 7 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if len(p.GeneralTips) != 5 {
		t.Fatalf("expected 5 general tips, got %d", len(p.GeneralTips))
	}
	if got := p.Retailers; len(got) != 3 || got[0] != "Walmart" || got[1] != "Target" || got[2] != "Safeway" {
		t.Fatalf("unexpected retailers: %v", got)
	}
	if p.ExpiryWindow() != 72*time.Hour {
		t.Fatalf("ExpiryWindow = %v, want 72h", p.ExpiryWindow())
	}
}

func TestLoadPolicy_OverridesAndCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	body := `
low_stock_threshold = 2.5
lookup_cap = 1
lookup_timeout = "750ms"
retailers = ["Aldi"]

[[catalog.Aldi]]
item = "Milk"
price = "$2.99"
discount = "10% off"
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPolicy(path)
	if err != nil {
		t.Fatalf("LoadPolicy: %v", err)
	}
	if p.LowStockThreshold != 2.5 || p.LookupCap != 1 {
		t.Fatalf("overrides not applied: %+v", p)
	}
	if p.LookupTimeout.Duration != 750*time.Millisecond {
		t.Fatalf("LookupTimeout = %v, want 750ms", p.LookupTimeout.Duration)
	}
	// untouched keys keep their defaults
	if p.ExpiryWindowDays != 3 || p.EcoTip == "" {
		t.Fatalf("defaults lost: %+v", p)
	}
	offers := p.Catalog["Aldi"]
	if len(offers) != 1 || offers[0].Item != "Milk" || offers[0].Price != "$2.99" {
		t.Fatalf("unexpected catalog: %+v", p.Catalog)
	}
}

func TestLoadPolicy_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.toml")
	if err := os.WriteFile(path, []byte("horizon_days = 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("expected validation error")
	}

	if err := os.WriteFile(path, []byte("lookup_cap = \n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPolicy(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestPolicy_Location(t *testing.T) {
	p := DefaultPolicy()
	if p.Location() != time.Local {
		t.Fatalf("empty time_zone should mean time.Local, got %v", p.Location())
	}

	p.TimeZone = "America/Los_Angeles"
	if err := p.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if got := p.Location().String(); got != "America/Los_Angeles" {
		t.Fatalf("Location = %q", got)
	}

	p.TimeZone = "Mars/Olympus_Mons"
	if err := p.Validate(); err == nil {
		t.Fatal("expected unknown time_zone to be rejected")
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name    string
		store   StoreConfig
		wantErr bool
	}{
		{"memory", StoreConfig{Driver: DriverMemory}, false},
		{"sqlite", StoreConfig{Driver: DriverSQLite, SQLitePath: "x.db"}, false},
		{"sqlite without path", StoreConfig{Driver: DriverSQLite}, true},
		{"postgres without dsn", StoreConfig{Driver: DriverPostgres}, true},
		{"unknown", StoreConfig{Driver: "mysql"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Config{Store: tc.store}.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("STORE_SQLITE_PATH", "/tmp/h.db")
	t.Setenv("HTTP_ADDR", ":9999")
	t.Setenv("APP_ENV", "production")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Driver != DriverSQLite || cfg.Store.SQLitePath != "/tmp/h.db" {
		t.Fatalf("store config not loaded: %+v", cfg.Store)
	}
	if cfg.HTTP.Addr != ":9999" || cfg.HTTP.ShutdownTimeout != 5*time.Second {
		t.Fatalf("http config not loaded: %+v", cfg.HTTP)
	}
	if !cfg.Environment().IsProduction() {
		t.Fatalf("expected production, got %v", cfg.Environment())
	}
}
