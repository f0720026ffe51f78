package pricing

import (
	"context"
	"strings"

	"household/internal/config"
	"household/internal/domain"
)

// StaticSource serves offers from the policy catalog. Unknown items have no offers.
type StaticSource struct {
	offers map[string]map[string][]domain.PriceOffer
}

// NewStaticSource indexes the catalog by retailer and lower-cased item name.
func NewStaticSource(catalog map[string][]config.CatalogOffer) *StaticSource {
	idx := make(map[string]map[string][]domain.PriceOffer, len(catalog))
	for retailer, entries := range catalog {
		key := strings.ToLower(retailer)
		if idx[key] == nil {
			idx[key] = make(map[string][]domain.PriceOffer)
		}
		for _, e := range entries {
			item := strings.ToLower(e.Item)
			idx[key][item] = append(idx[key][item], domain.PriceOffer{
				Name:     retailer,
				Price:    e.Price,
				Discount: e.Discount,
			})
		}
	}
	return &StaticSource{offers: idx}
}

func (s *StaticSource) Lookup(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, &LookupError{Retailer: retailer, Item: item, Err: err}
	}
	found := s.offers[strings.ToLower(retailer)][strings.ToLower(item)]
	out := make([]domain.PriceOffer, len(found))
	copy(out, found)
	return out, nil
}
