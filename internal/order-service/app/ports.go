// Package app implements the place-order workflow: validation, pricing,
// shipping and acknowledgment, and event assembly.
//
// Every external service is injected as a function value so the stages can be
// exercised with plain fakes.
package app

import (
	"context"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// CheckProductCodeExists reports whether the catalog knows code.
type CheckProductCodeExists func(ctx context.Context, code domain.ProductCode) (bool, error)

// CheckAddressExists confirms an address with the address service. A rejected
// address is reported as a domain.AddressValidationError; any other error is a
// service failure.
type CheckAddressExists func(ctx context.Context, addr domain.UnvalidatedAddress) (domain.CheckedAddress, error)

// GetProductPrice returns the unit price of a product.
type GetProductPrice func(ctx context.Context, code domain.ProductCode) (domain.Price, error)

// GetPromotionPrice returns the promotional unit price of a product. ok is
// false when the promotion does not cover code.
type GetPromotionPrice func(ctx context.Context, promo domain.PromotionCode, code domain.ProductCode) (price domain.Price, ok bool, err error)

// GetPricingFunction selects the unit price source for a pricing method.
type GetPricingFunction func(method domain.PricingMethod) GetProductPrice

// CalculateShippingCost is the shipping cost policy.
type CalculateShippingCost func(order domain.PricedOrder) domain.Price

// CreateOrderAcknowledgmentLetter renders the letter sent to the customer.
type CreateOrderAcknowledgmentLetter func(order domain.PricedOrderWithShippingMethod) domain.HtmlString

// SendOrderAcknowledgment delivers the acknowledgment to the customer.
type SendOrderAcknowledgment func(ctx context.Context, ack domain.OrderAcknowledgment) error

// EventPublisher hands the events of a placed order to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, events []domain.PlaceOrderEvent) error
}

// Services that may appear in a domain.RemoteServiceError.
var (
	ProductCatalogService = domain.ServiceInfo{Name: "ProductCatalog", Endpoint: "checkProductCodeExists"}
	AddressService        = domain.ServiceInfo{Name: "AddressValidation", Endpoint: "checkAddressExists"}
	PriceService          = domain.ServiceInfo{Name: "PriceService", Endpoint: "getProductPrice"}
)

// remoteError tags a capability failure with the service it came from. An
// error that already is a RemoteServiceError is kept as is.
func remoteError(service domain.ServiceInfo, err error) error {
	if _, ok := err.(*domain.RemoteServiceError); ok {
		return err
	}
	return &domain.RemoteServiceError{Service: service, Err: err}
}
