package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"household/internal/domain"
)

const (
	defaultHTTPTimeout = 10 * time.Second
	maxBodySize        = 1 << 20 // 1 MB
)

// ErrUnexpectedStatus indicates a non-2xx answer from the price API.
var ErrUnexpectedStatus = errors.New("unexpected status")

// HTTPSource queries a retailer price API at <base>/<retailer>/offers?item=<name>.
type HTTPSource struct {
	baseURL string
	http    *http.Client
}

// NewHTTPSource creates a source for baseURL. A nil client gets a default with timeout.
func NewHTTPSource(baseURL string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

type offersResponse struct {
	Offers []domain.PriceOffer `json:"offers"`
}

// Lookup fetches the retailer's offers for item.
func (s *HTTPSource) Lookup(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error) {
	endpoint := fmt.Sprintf("%s/%s/offers?item=%s",
		s.baseURL, url.PathEscape(strings.ToLower(retailer)), url.QueryEscape(item))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupError{Retailer: retailer, Item: item, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.http.Do(req)
	if err != nil {
		return nil, &LookupError{Retailer: retailer, Item: item, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LookupError{Retailer: retailer, Item: item, Err: fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)}
	}

	var out offersResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&out); err != nil {
		return nil, &LookupError{Retailer: retailer, Item: item, Err: fmt.Errorf("decoding offers: %w", err)}
	}

	// offers without a retailer name are attributed to the queried retailer
	for i := range out.Offers {
		if out.Offers[i].Name == "" {
			out.Offers[i].Name = retailer
		}
	}
	return out.Offers, nil
}
