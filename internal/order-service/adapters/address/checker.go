// Package address confirms shipping and billing addresses.
package address

import (
	"context"
	"errors"
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/jcmexdev/order-taking/internal/order-service/app"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// Checker is a local stand-in for a postal address service. It normalises
// whitespace and letter case and rejects addresses it cannot deliver to.
type Checker struct {
	undeliverable map[string]bool
}

// NewChecker returns a Checker that reports every zip code in undeliverable as
// not found.
func NewChecker(undeliverable ...string) *Checker {
	c := &Checker{undeliverable: make(map[string]bool, len(undeliverable))}
	for _, zip := range undeliverable {
		c.undeliverable[zip] = true
	}
	return c
}

func (c *Checker) CheckAddressExists(_ context.Context, addr domain.UnvalidatedAddress) (domain.CheckedAddress, error) {
	n := normalise(addr)
	if n.AddressLine1 == "" || n.City == "" {
		return domain.CheckedAddress{}, domain.AddressInvalidFormat
	}
	if c.undeliverable[n.ZipCode] {
		return domain.CheckedAddress{}, domain.AddressNotFound
	}
	return domain.CheckedAddress{UnvalidatedAddress: n}, nil
}

func normalise(a domain.UnvalidatedAddress) domain.UnvalidatedAddress {
	return domain.UnvalidatedAddress{
		AddressLine1: strings.TrimSpace(a.AddressLine1),
		AddressLine2: strings.TrimSpace(a.AddressLine2),
		AddressLine3: strings.TrimSpace(a.AddressLine3),
		AddressLine4: strings.TrimSpace(a.AddressLine4),
		City:         strings.TrimSpace(a.City),
		ZipCode:      strings.TrimSpace(a.ZipCode),
		State:        strings.ToUpper(strings.TrimSpace(a.State)),
		Country:      strings.TrimSpace(a.Country),
	}
}

type result struct {
	checked domain.CheckedAddress
	err     error
}

// CachedChecker remembers the answers of another checker for the most
// recently seen addresses. Service failures are not remembered.
type CachedChecker struct {
	next  app.CheckAddressExists
	cache *lru.Cache[domain.UnvalidatedAddress, result]
}

func NewCachedChecker(next app.CheckAddressExists, size int) (*CachedChecker, error) {
	c, err := lru.New[domain.UnvalidatedAddress, result](size)
	if err != nil {
		return nil, fmt.Errorf("address: create cache: %w", err)
	}
	return &CachedChecker{next: next, cache: c}, nil
}

func (c *CachedChecker) CheckAddressExists(ctx context.Context, addr domain.UnvalidatedAddress) (domain.CheckedAddress, error) {
	if r, ok := c.cache.Get(addr); ok {
		return r.checked, r.err
	}

	checked, err := c.next(ctx, addr)
	var rejected domain.AddressValidationError
	if err == nil || errors.As(err, &rejected) {
		c.cache.Add(addr, result{checked: checked, err: err})
	}
	return checked, err
}
