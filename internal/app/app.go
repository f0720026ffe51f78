// Package app wires configuration, storage, price sources and services together so the
// CLI commands share one construction path.
package app

import (
	"context"
	"errors"
	"fmt"

	"household/internal/config"
	"household/internal/logx"
	"household/internal/pricing"
	"household/internal/repository"
	"household/internal/service"
)

// App holds the constructed services and the resources they own.
type App struct {
	Config      config.Config
	Policy      config.Policy
	Store       repository.Store
	Inventory   *service.InventoryService
	Suggestions *service.SuggestionService

	closers []func() error
}

// New builds the application from cfg. Close must be called to release the store and the
// cache client.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	policy, err := config.LoadPolicy(cfg.PolicyFile)
	if err != nil {
		return nil, fmt.Errorf("loading policy: %w", err)
	}

	store, err := OpenStore(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	a := &App{Config: cfg, Policy: policy, Store: store}
	a.closers = append(a.closers, store.Close)

	prices := a.priceSource(ctx)

	a.Inventory = service.NewInventoryService(store, store, store)
	a.Suggestions = service.NewSuggestionService(store, prices, policy)

	logx.Debug().
		Str("store", cfg.Store.Driver).
		Strs("retailers", policy.Retailers).
		Msg("application constructed")
	return a, nil
}

// OpenStore opens the backend selected by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (repository.Store, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return repository.NewMemoryStore(), nil
	case config.DriverSQLite:
		s, err := repository.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return s, nil
	case config.DriverPostgres:
		s, err := repository.OpenPostgres(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

// priceSource выбирает HTTP API или статический каталог и при наличии redis оборачивает в кэш.
// An unreachable redis only disables caching.
func (a *App) priceSource(ctx context.Context) pricing.Source {
	var src pricing.Source
	if a.Config.Prices.BaseURL != "" {
		src = pricing.NewHTTPSource(a.Config.Prices.BaseURL, nil)
	} else {
		src = pricing.NewStaticSource(a.Policy.Catalog)
	}

	if a.Config.Redis.URL == "" {
		return src
	}
	rdb, err := pricing.NewRedisClient(ctx, pricing.RedisOptions{
		URL:          a.Config.Redis.URL,
		DialTimeout:  a.Config.Redis.DialTimeout,
		ReadTimeout:  a.Config.Redis.ReadTimeout,
		WriteTimeout: a.Config.Redis.WriteTimeout,
	})
	if err != nil {
		logx.Warn().Err(err).Msg("price cache disabled")
		return src
	}
	a.closers = append(a.closers, rdb.Close)
	return pricing.NewCachedSource(src, rdb, a.Config.Redis.TTL)
}

// Close releases everything New opened, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
