// Package catalog answers product existence and price questions for the
// workflow.
package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// Catalog is an in-memory product list with standard and promotional prices.
// It is read-only after New and safe for concurrent use.
type Catalog struct {
	prices     map[string]domain.Price
	promotions map[string]map[string]domain.Price
}

// New parses decimal price strings keyed by product code, and promotion price
// tables keyed by promotion code.
func New(prices map[string]string, promotions map[string]map[string]string) (*Catalog, error) {
	c := &Catalog{
		prices:     make(map[string]domain.Price, len(prices)),
		promotions: make(map[string]map[string]domain.Price, len(promotions)),
	}
	for code, raw := range prices {
		p, err := parsePrice(code, raw)
		if err != nil {
			return nil, err
		}
		c.prices[code] = p
	}
	for promo, table := range promotions {
		c.promotions[promo] = make(map[string]domain.Price, len(table))
		for code, raw := range table {
			p, err := parsePrice(code, raw)
			if err != nil {
				return nil, fmt.Errorf("catalog: promotion %s: %w", promo, err)
			}
			c.promotions[promo][code] = p
		}
	}
	return c, nil
}

func parsePrice(code, raw string) (domain.Price, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return domain.Price{}, fmt.Errorf("catalog: price of %s: %w", code, err)
	}
	p, err := domain.NewPrice(d)
	if err != nil {
		return domain.Price{}, fmt.Errorf("catalog: price of %s: %w", code, err)
	}
	return p, nil
}

func (c *Catalog) CheckProductCodeExists(_ context.Context, code domain.ProductCode) (bool, error) {
	_, ok := c.prices[code.String()]
	return ok, nil
}

func (c *Catalog) GetProductPrice(_ context.Context, code domain.ProductCode) (domain.Price, error) {
	p, ok := c.prices[code.String()]
	if !ok {
		return domain.Price{}, fmt.Errorf("catalog: no price for %s", code)
	}
	return p, nil
}

func (c *Catalog) GetPromotionPrice(_ context.Context, promo domain.PromotionCode, code domain.ProductCode) (domain.Price, bool, error) {
	p, ok := c.promotions[promo.String()][code.String()]
	return p, ok, nil
}
