package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

func TestCalculateShippingCost(t *testing.T) {
	tests := []struct {
		state, country, want string
	}{
		{"CA", "US", "5.00"},
		{"NV", "USA", "5.00"},
		{"NY", "US", "10.00"},
		{"TX", "united states", "10.00"},
		{"CA", "Canada", "20.00"},
	}
	for _, tt := range tests {
		addr, err := domain.NewAddress(domain.UnvalidatedAddress{
			AddressLine1: "1 Road",
			City:         "Town",
			ZipCode:      "12345",
			State:        tt.state,
			Country:      tt.country,
		})
		require.NoError(t, err)

		got := CalculateShippingCost(domain.PricedOrder{ShippingAddress: addr})
		assert.Equal(t, tt.want, got.String(), tt.state+"/"+tt.country)
	}
}
