// Package shipping prices delivery by destination.
package shipping

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

var westCoast = map[string]bool{"CA": true, "OR": true, "AZ": true, "NV": true}

var (
	localCost         = mustPrice(5)
	remoteCost        = mustPrice(10)
	internationalCost = mustPrice(20)
)

func mustPrice(v int64) domain.Price {
	p, err := domain.NewPrice(decimal.NewFromInt(v))
	if err != nil {
		panic(err)
	}
	return p
}

// CalculateShippingCost charges 5 for west-coast states, 10 elsewhere in the
// US and 20 outside it.
func CalculateShippingCost(order domain.PricedOrder) domain.Price {
	addr := order.ShippingAddress
	if !isUS(addr.Country.String()) {
		return internationalCost
	}
	if westCoast[addr.State.String()] {
		return localCost
	}
	return remoteCost
}

func isUS(country string) bool {
	switch strings.ToUpper(strings.TrimSpace(country)) {
	case "US", "USA", "UNITED STATES":
		return true
	}
	return false
}
