package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// ValidateOrder decodes every field of the order and confirms its addresses
// and product codes with the injected services. Fields are checked left to
// right and the first failure is returned: a *domain.ValidationError for bad
// input, a *domain.RemoteServiceError when a service call itself failed.
//
// Both addresses are decoded before either is sent to the address service, so
// a malformed address never costs a remote call.
func ValidateOrder(
	ctx context.Context,
	checkProductCodeExists CheckProductCodeExists,
	checkAddressExists CheckAddressExists,
	order domain.UnvalidatedOrder,
	opts ...LineOption,
) (domain.ValidatedOrder, error) {
	orderID, err := domain.NewOrderID(order.OrderID)
	if err != nil {
		return domain.ValidatedOrder{}, domain.WithField("orderId", err)
	}

	customer, err := domain.NewCustomerInfo(order.CustomerInfo)
	if err != nil {
		return domain.ValidatedOrder{}, domain.WithField("customerInfo", err)
	}

	if _, err := domain.NewAddress(order.ShippingAddress); err != nil {
		return domain.ValidatedOrder{}, domain.WithField("shippingAddress", err)
	}
	if _, err := domain.NewAddress(order.BillingAddress); err != nil {
		return domain.ValidatedOrder{}, domain.WithField("billingAddress", err)
	}

	shipping, err := toCheckedAddress(ctx, checkAddressExists, "shippingAddress", order.ShippingAddress)
	if err != nil {
		return domain.ValidatedOrder{}, err
	}
	billing, err := toCheckedAddress(ctx, checkAddressExists, "billingAddress", order.BillingAddress)
	if err != nil {
		return domain.ValidatedOrder{}, err
	}

	lines := make([]domain.ValidatedOrderLine, len(order.Lines))
	err = forEachLine(ctx, len(order.Lines), newLineConfig(opts), func(ctx context.Context, i int) error {
		line, err := toValidatedOrderLine(ctx, checkProductCodeExists, fmt.Sprintf("lines[%d]", i), order.Lines[i])
		if err != nil {
			return err
		}
		lines[i] = line
		return nil
	})
	if err != nil {
		return domain.ValidatedOrder{}, err
	}

	method, err := domain.NewPricingMethod(order.PromotionCode)
	if err != nil {
		return domain.ValidatedOrder{}, domain.WithField("promotionCode", err)
	}

	return domain.ValidatedOrder{
		OrderID:         orderID,
		CustomerInfo:    customer,
		ShippingAddress: shipping,
		BillingAddress:  billing,
		Lines:           lines,
		PricingMethod:   method,
	}, nil
}

// toCheckedAddress confirms addr and decodes the address the service returned,
// which may differ from the input after normalisation.
func toCheckedAddress(ctx context.Context, check CheckAddressExists, field string, addr domain.UnvalidatedAddress) (domain.Address, error) {
	checked, err := check(ctx, addr)
	if err != nil {
		var rejected domain.AddressValidationError
		if errors.As(err, &rejected) {
			switch rejected {
			case domain.AddressNotFound:
				return domain.Address{}, &domain.ValidationError{Field: field, Message: "Address not found"}
			case domain.AddressInvalidFormat:
				return domain.Address{}, &domain.ValidationError{Field: field, Message: "Address has bad format"}
			}
		}
		return domain.Address{}, remoteError(AddressService, err)
	}

	address, err := domain.NewAddress(checked.UnvalidatedAddress)
	if err != nil {
		return domain.Address{}, domain.WithField(field, err)
	}
	return address, nil
}

func toValidatedOrderLine(ctx context.Context, check CheckProductCodeExists, field string, line domain.UnvalidatedOrderLine) (domain.ValidatedOrderLine, error) {
	lineID, err := domain.NewOrderLineID(line.OrderLineID)
	if err != nil {
		return domain.ValidatedOrderLine{}, domain.WithField(field+".orderLineId", err)
	}

	code, err := domain.NewProductCode(line.ProductCode)
	if err != nil {
		return domain.ValidatedOrderLine{}, domain.WithField(field+".productCode", err)
	}

	exists, err := check(ctx, code)
	if err != nil {
		return domain.ValidatedOrderLine{}, remoteError(ProductCatalogService, err)
	}
	if !exists {
		return domain.ValidatedOrderLine{}, &domain.ValidationError{
			Field:   field + ".productCode",
			Message: "Invalid: " + code.String(),
		}
	}

	qty, err := domain.NewOrderQuantity(code, line.Quantity)
	if err != nil {
		return domain.ValidatedOrderLine{}, domain.WithField(field+".quantity", err)
	}

	return domain.ValidatedOrderLine{
		OrderLineID: lineID,
		ProductCode: code,
		Quantity:    qty,
	}, nil
}
