package config

import (
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// Policy holds the thresholds and fixed texts of the suggestion pipeline.
type Policy struct {
	ExpiryWindowDays  int      `toml:"expiry_window_days"`
	LowStockThreshold float64  `toml:"low_stock_threshold"`
	LookupCap         int      `toml:"lookup_cap"`
	HorizonDays       int      `toml:"horizon_days"`
	Retailers         []string `toml:"retailers"`
	LookupTimeout     Duration `toml:"lookup_timeout"`
	CurrencySymbol    string   `toml:"currency_symbol"`
	TimeZone          string   `toml:"time_zone"`
	GeneralTips       []string `toml:"general_tips"`
	EcoTip            string   `toml:"eco_tip"`

	// Catalog seeds the static price source, keyed by retailer.
	Catalog map[string][]CatalogOffer `toml:"catalog,omitempty"`
}

// CatalogOffer is one static retailer offer for an item.
type CatalogOffer struct {
	Item     string `toml:"item"`
	Price    string `toml:"price"`
	Discount string `toml:"discount"`
}

// Duration decodes TOML strings such as "5s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// DefaultPolicy returns the built-in policy.
func DefaultPolicy() Policy {
	return Policy{
		ExpiryWindowDays:  3,
		LowStockThreshold: 5,
		LookupCap:         3,
		HorizonDays:       7,
		Retailers:         []string{"Walmart", "Target", "Safeway"},
		LookupTimeout:     Duration{5 * time.Second},
		CurrencySymbol:    "$",
		GeneralTips: []string{
			"Check weekly flyers and digital coupons before every shopping trip.",
			"Buy non-perishables in bulk when they are on sale.",
			"Store brands are often 20-30% cheaper than name brands.",
			"Use store apps for member-only prices and cashback.",
			"Visit farmers markets near closing time for fresh produce deals.",
		},
		EcoTip: "Eco tip: Buy discounted veggies from local markets to reduce waste.",
	}
}

// ExpiryWindow returns the perishables window as a duration.
func (p Policy) ExpiryWindow() time.Duration {
	return time.Duration(p.ExpiryWindowDays) * 24 * time.Hour
}

// Location returns the zone consumption days are counted in. Empty means time.Local.
func (p Policy) Location() *time.Location {
	if p.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(p.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

// LoadPolicy reads the policy file at path over the defaults. An empty path or a
// missing file yields the defaults.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("reading policy: %w", err)
	}

	if err := toml.Unmarshal(data, &p); err != nil {
		return p, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate rejects policies the suggestion pipeline cannot run with.
func (p Policy) Validate() error {
	if p.ExpiryWindowDays < 0 {
		return fmt.Errorf("expiry_window_days must not be negative")
	}
	if p.LookupCap < 0 {
		return fmt.Errorf("lookup_cap must not be negative")
	}
	if p.HorizonDays <= 0 {
		return fmt.Errorf("horizon_days must be positive")
	}
	if p.CurrencySymbol == "" {
		return fmt.Errorf("currency_symbol must not be empty")
	}
	if p.TimeZone != "" {
		if _, err := time.LoadLocation(p.TimeZone); err != nil {
			return fmt.Errorf("time_zone: %w", err)
		}
	}
	return nil
}
