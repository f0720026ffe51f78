package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"household/internal/config"
	"household/internal/domain"
	"household/internal/forecast"
	"household/internal/logx"
	"household/internal/pricing"
	"household/internal/repository"
)

const (
	perishablesFmt     = "Use these soon: %s. Suggested meal: Salad with %s."
	foodForecastFmt    = "Predicted food usage next week: %.2f units. Stock up if low."
	lowInventoryHeader = "Low inventory alert. Checking prices for restocking:"
	bestPriceFmt       = "%s: Best price at %s: %s (%s)"
	checkLocalFmt      = "%s: No deals found online. Check local stores."
	lookupFailedFmt    = "%s: Price lookup is unavailable right now."
	compareFlyersFmt   = "%s: Compare store flyers before restocking."
	energyForecastFmt  = "Predicted energy usage: %.2f kWh. Tip: Adjust thermostat to save 10%%."
)

// SuggestionService строит упорядоченный список рекомендаций по запасам, прогнозам и ценам
type SuggestionService struct {
	store  repository.SessionManager
	prices pricing.Source
	policy config.Policy
	norm   pricing.Normalizer
	loc    *time.Location
	now    func() time.Time
}

func NewSuggestionService(store repository.SessionManager, prices pricing.Source, policy config.Policy) *SuggestionService {
	return &SuggestionService{
		store:  store,
		prices: prices,
		policy: policy,
		norm:   pricing.Normalizer{Currency: policy.CurrencySymbol},
		loc:    policy.Location(),
		now:    time.Now,
	}
}

type snapshot struct {
	items  []domain.InventoryItem
	food   []domain.ConsumptionLog
	energy []domain.ConsumptionLog
}

func (s *SuggestionService) load(ctx context.Context) (snapshot, error) {
	var snap snapshot
	err := s.store.ReadSession(ctx, func(ctx context.Context, r repository.Reader) error {
		var err error
		if snap.items, err = r.ListItems(ctx, repository.ItemFilter{}); err != nil {
			return err
		}
		if snap.food, err = r.ListLogs(ctx, repository.LogFilter{ResourceType: domain.ResourceFood}); err != nil {
			return err
		}
		snap.energy, err = r.ListLogs(ctx, repository.LogFilter{ResourceType: domain.ResourceEnergy})
		return err
	})
	return snap, err
}

// Suggest runs the full pipeline. Only store failures are returned; price lookup and
// price parsing failures turn into fallback text.
func (s *SuggestionService) Suggest(ctx context.Context) ([]string, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading inventory: %w", err)
	}

	var out []string
	out = append(out, s.perishables(snap.items, s.now())...)

	if v, ok := forecast.Predict(snap.food, s.policy.HorizonDays, s.loc).Value(); ok && v > 0 {
		out = append(out, fmt.Sprintf(foodForecastFmt, v))
	}

	out = append(out, s.restocking(ctx, snap.items)...)
	out = append(out, s.policy.GeneralTips...)

	if v, ok := forecast.Predict(snap.energy, s.policy.HorizonDays, s.loc).Value(); ok {
		out = append(out, fmt.Sprintf(energyForecastFmt, v))
	}

	out = append(out, s.policy.EcoTip)

	logx.Debug().Int("items", len(snap.items)).Int("suggestions", len(out)).Msg("suggestions built")
	return out, nil
}

// PredictUsage forecasts the coming horizon for one resource type.
func (s *SuggestionService) PredictUsage(ctx context.Context, resourceType string) (domain.Forecast, error) {
	var logs []domain.ConsumptionLog
	err := s.store.ReadSession(ctx, func(ctx context.Context, r repository.Reader) error {
		var err error
		logs, err = r.ListLogs(ctx, repository.LogFilter{ResourceType: resourceType})
		return err
	})
	if err != nil {
		return domain.NoData(), fmt.Errorf("loading logs: %w", err)
	}
	return forecast.Predict(logs, s.policy.HorizonDays, s.loc), nil
}

func (s *SuggestionService) perishables(items []domain.InventoryItem, now time.Time) []string {
	cutoff := now.Add(s.policy.ExpiryWindow())
	var names []string
	for _, it := range items {
		// items without an expiration date never spoil
		if it.Category != domain.ResourceFood || it.ExpirationDate.IsZero() {
			continue
		}
		if it.ExpirationDate.Before(cutoff) {
			names = append(names, it.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return []string{fmt.Sprintf(perishablesFmt, strings.Join(names, ", "), names[0])}
}

func (s *SuggestionService) restocking(ctx context.Context, items []domain.InventoryItem) []string {
	var low []domain.InventoryItem
	for _, it := range items {
		if it.Quantity < s.policy.LowStockThreshold {
			low = append(low, it)
		}
	}
	if len(low) == 0 {
		return nil
	}

	out := []string{lowInventoryHeader}
	if len(low) > s.policy.LookupCap {
		low = low[:s.policy.LookupCap]
	}
	for _, it := range low {
		out = append(out, s.deals(ctx, it.Name)...)
	}
	return out
}

// deals queries every retailer for item. A failing retailer contributes no offers; the
// item falls back to generic advice when a lookup failed and nothing was collected.
func (s *SuggestionService) deals(ctx context.Context, item string) []string {
	var offers []domain.PriceOffer
	failed := 0
	for _, retailer := range s.policy.Retailers {
		got, err := s.lookup(ctx, retailer, item)
		if err != nil {
			failed++
			logx.Warn().Err(err).Str("item", item).Str("retailer", retailer).Msg("price lookup failed")
			continue
		}
		offers = append(offers, got...)
	}

	if failed > 0 && len(offers) == 0 {
		return []string{
			fmt.Sprintf(lookupFailedFmt, item),
			fmt.Sprintf(compareFlyersFmt, item),
		}
	}

	if best, ok := s.norm.Cheapest(offers); ok {
		return []string{fmt.Sprintf(bestPriceFmt, item, best.Name, best.Price, best.Discount)}
	}
	if len(offers) > 0 {
		return []string{fmt.Sprintf(checkLocalFmt, item)}
	}
	return nil
}

// lookup bounds one retailer call by the policy timeout and turns a panicking source
// into an error.
func (s *SuggestionService) lookup(ctx context.Context, retailer, item string) (offers []domain.PriceOffer, err error) {
	if timeout := s.policy.LookupTimeout.Duration; timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			err = &pricing.LookupError{Retailer: retailer, Item: item, Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return s.prices.Lookup(ctx, retailer, item)
}
