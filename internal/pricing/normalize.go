package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"household/internal/domain"
)

const (
	// NotAvailable is the price sentinel retailers return for unpriced items.
	NotAvailable = "N/A"
	// DefaultCurrency is the symbol an offer price must carry to be considered.
	DefaultCurrency = "$"

	noisePrefix        = "Now "
	thousandsSeparator = ","
)

// ParseError reports a price that is not a decimal number once noise is stripped.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pricing: cannot parse price %q: %v", e.Raw, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Normalizer turns retailer price strings into comparable amounts.
type Normalizer struct {
	Currency string
}

// DefaultNormalizer uses the dollar sign.
var DefaultNormalizer = Normalizer{Currency: DefaultCurrency}

// Normalize strips the currency symbol, the "Now " prefix and thousands separators from
// raw and parses the rest.
func Normalize(raw string) (float64, error) {
	return DefaultNormalizer.Normalize(raw)
}

// Cheapest picks the lowest priced candidate offer using DefaultNormalizer.
func Cheapest(offers []domain.PriceOffer) (domain.PriceOffer, bool) {
	return DefaultNormalizer.Cheapest(offers)
}

func (n Normalizer) Normalize(raw string) (float64, error) {
	d, err := n.parse(raw)
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

func (n Normalizer) parse(raw string) (decimal.Decimal, error) {
	s := strings.ReplaceAll(raw, n.currency(), "")
	s = strings.ReplaceAll(s, noisePrefix, "")
	s = strings.ReplaceAll(s, thousandsSeparator, "")
	s = strings.TrimSpace(s)

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ParseError{Raw: raw, Err: err}
	}
	return d, nil
}

// IsCandidate reports whether an offer price carries the currency symbol and is not N/A.
func (n Normalizer) IsCandidate(o domain.PriceOffer) bool {
	return o.Price != NotAvailable && strings.Contains(o.Price, n.currency())
}

// Cheapest returns the candidate with the lowest normalized price. Candidates that
// fail to parse are skipped one by one; ties keep the first offer seen.
func (n Normalizer) Cheapest(offers []domain.PriceOffer) (domain.PriceOffer, bool) {
	var (
		best    domain.PriceOffer
		bestVal decimal.Decimal
		found   bool
	)
	for _, o := range offers {
		if !n.IsCandidate(o) {
			continue
		}
		v, err := n.parse(o.Price)
		if err != nil {
			continue
		}
		if !found || v.LessThan(bestVal) {
			best, bestVal, found = o, v, true
		}
	}
	return best, found
}

func (n Normalizer) currency() string {
	if n.Currency == "" {
		return DefaultCurrency
	}
	return n.Currency
}
