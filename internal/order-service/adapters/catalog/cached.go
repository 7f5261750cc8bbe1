package catalog

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/order-taking/internal/order-service/app"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
	"github.com/jcmexdev/order-taking/internal/pkg/cache"
)

// CachedPrices is a read-through cache in front of a price source. Cache
// failures are logged and fall through to the source.
type CachedPrices struct {
	cache cache.Cache
	ttl   time.Duration
	next  app.GetProductPrice
}

func NewCachedPrices(c cache.Cache, ttl time.Duration, next app.GetProductPrice) *CachedPrices {
	return &CachedPrices{cache: c, ttl: ttl, next: next}
}

func (p *CachedPrices) GetProductPrice(ctx context.Context, code domain.ProductCode) (domain.Price, error) {
	key := p.cache.GenerateKey("price", code.String())

	if price, ok := p.lookup(ctx, key); ok {
		return price, nil
	}

	price, err := p.next(ctx, code)
	if err != nil {
		return domain.Price{}, err
	}
	if err := p.cache.Set(ctx, key, price.Value().String(), p.ttl); err != nil {
		slog.WarnContext(ctx, "price cache write failed", "key", key, "error", err)
	}
	return price, nil
}

func (p *CachedPrices) lookup(ctx context.Context, key string) (domain.Price, bool) {
	raw, err := p.cache.Get(ctx, key)
	if err != nil {
		slog.WarnContext(ctx, "price cache read failed", "key", key, "error", err)
		return domain.Price{}, false
	}
	if raw == "" {
		return domain.Price{}, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Price{}, false
	}
	price, err := domain.NewPrice(d)
	if err != nil {
		return domain.Price{}, false
	}
	return price, true
}
