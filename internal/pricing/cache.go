package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"household/internal/domain"
	"household/internal/logx"
)

// CachedSource memoises offers in redis. Cache failures fall through to the wrapped source.
type CachedSource struct {
	next Source
	rdb  redis.Cmdable
	ttl  time.Duration
}

func NewCachedSource(next Source, rdb redis.Cmdable, ttl time.Duration) *CachedSource {
	return &CachedSource{next: next, rdb: rdb, ttl: ttl}
}

func cacheKey(retailer, item string) string {
	return fmt.Sprintf("prices:%s:%s", strings.ToLower(retailer), strings.ToLower(strings.TrimSpace(item)))
}

func (c *CachedSource) Lookup(ctx context.Context, retailer, item string) ([]domain.PriceOffer, error) {
	key := cacheKey(retailer, item)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var offers []domain.PriceOffer
		if uerr := json.Unmarshal(raw, &offers); uerr == nil {
			return offers, nil
		}
		logx.Warn().Str("key", key).Msg("dropping undecodable cached offers")
	case errors.Is(err, redis.Nil):
	default:
		logx.Warn().Err(err).Str("key", key).Msg("price cache read failed")
	}

	offers, err := c.next.Lookup(ctx, retailer, item)
	if err != nil {
		return nil, err
	}

	b, err := json.Marshal(offers)
	if err != nil {
		return offers, nil
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logx.Warn().Err(err).Str("key", key).Msg("price cache write failed")
	}
	return offers, nil
}

// RedisOptions mirrors the timeouts the price cache client is built with.
type RedisOptions struct {
	URL          string
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// NewRedisClient parses opts.URL, applies timeouts and pings the server.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	o, err := redis.ParseURL(opts.URL)
	if err != nil {
		return nil, err
	}
	if opts.DialTimeout > 0 {
		o.DialTimeout = opts.DialTimeout
	}
	if opts.ReadTimeout > 0 {
		o.ReadTimeout = opts.ReadTimeout
	}
	if opts.WriteTimeout > 0 {
		o.WriteTimeout = opts.WriteTimeout
	}

	client := redis.NewClient(o)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
