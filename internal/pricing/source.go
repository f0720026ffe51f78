// Package pricing looks up retailer offers for inventory items and picks the cheapest one.
package pricing

import (
	"context"
	"fmt"

	"household/internal/domain"
)

// Source returns the offers one retailer has for an item name.
type Source interface {
	Lookup(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error)

func (f SourceFunc) Lookup(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error) {
	return f(ctx, retailer, item)
}

// LookupError wraps a failed retailer lookup.
type LookupError struct {
	Retailer string
	Item     string
	Err      error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("pricing: lookup %q at %s: %v", e.Item, e.Retailer, e.Err)
}

func (e *LookupError) Unwrap() error { return e.Err }
