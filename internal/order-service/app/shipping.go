package app

import "github.com/jcmexdev/order-taking/internal/order-service/domain"

// AddShippingInfoToOrder ships by postal service at the cost the policy
// computes.
func AddShippingInfoToOrder(calculateShippingCost CalculateShippingCost, order domain.PricedOrder) domain.PricedOrderWithShippingMethod {
	return domain.PricedOrderWithShippingMethod{
		ShippingInfo: domain.ShippingInfo{
			ShippingMethod: domain.ShippingPostalService,
			ShippingCost:   calculateShippingCost(order),
		},
		PricedOrder: order,
	}
}

// FreeVipShipping upgrades VIP customers to free overnight delivery.
func FreeVipShipping(order domain.PricedOrderWithShippingMethod) domain.PricedOrderWithShippingMethod {
	if order.PricedOrder.CustomerInfo.VipStatus != domain.VipStatusVIP {
		return order
	}
	order.ShippingInfo = domain.ShippingInfo{
		ShippingMethod: domain.ShippingFedex24,
		ShippingCost:   domain.ZeroPrice(),
	}
	return order
}
