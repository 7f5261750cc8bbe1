package app

import (
	"context"
	"fmt"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// NewPricingFunction builds the price source selector. Under a promotion the
// promotional price wins when promotion covers the product; otherwise the
// standard price applies.
func NewPricingFunction(standard GetProductPrice, promotion GetPromotionPrice) GetPricingFunction {
	return func(method domain.PricingMethod) GetProductPrice {
		promo, ok := method.(domain.PromotionPricing)
		if !ok || promotion == nil {
			return standard
		}
		return func(ctx context.Context, code domain.ProductCode) (domain.Price, error) {
			price, found, err := promotion(ctx, promo.Code, code)
			if err != nil {
				return domain.Price{}, err
			}
			if found {
				return price, nil
			}
			return standard(ctx, code)
		}
	}
}

// PriceOrder prices every line with the source chosen for the order's pricing
// method and totals the result. A line price above the Price bound, or a total
// above the BillingAmount bound, fails the order with a *domain.PricingError.
func PriceOrder(
	ctx context.Context,
	getPricingFunction GetPricingFunction,
	order domain.ValidatedOrder,
	opts ...LineOption,
) (domain.PricedOrder, error) {
	getPrice := getPricingFunction(order.PricingMethod)

	productLines := make([]domain.PricedOrderProductLine, len(order.Lines))
	err := forEachLine(ctx, len(order.Lines), newLineConfig(opts), func(ctx context.Context, i int) error {
		line, err := toPricedOrderLine(ctx, getPrice, order.Lines[i])
		if err != nil {
			return err
		}
		productLines[i] = line
		return nil
	})
	if err != nil {
		return domain.PricedOrder{}, err
	}

	prices := make([]domain.Price, len(productLines))
	lines := make([]domain.PricedOrderLine, 0, len(productLines)+1)
	for i, l := range productLines {
		prices[i] = l.LinePrice
		lines = append(lines, l)
	}

	amount, err := domain.SumPrices(prices)
	if err != nil {
		return domain.PricedOrder{}, toPricingError(err)
	}

	if promo, ok := order.PricingMethod.(domain.PromotionPricing); ok {
		lines = append(lines, domain.CommentLine{
			Comment: fmt.Sprintf("Applied promotion %s", promo.Code),
		})
	}

	return domain.PricedOrder{
		OrderID:         order.OrderID,
		CustomerInfo:    order.CustomerInfo,
		ShippingAddress: order.ShippingAddress,
		BillingAddress:  order.BillingAddress,
		AmountToBill:    amount,
		Lines:           lines,
		PricingMethod:   order.PricingMethod,
	}, nil
}

func toPricedOrderLine(ctx context.Context, getPrice GetProductPrice, line domain.ValidatedOrderLine) (domain.PricedOrderProductLine, error) {
	unitPrice, err := getPrice(ctx, line.ProductCode)
	if err != nil {
		if _, ok := err.(*domain.PricingError); ok {
			return domain.PricedOrderProductLine{}, err
		}
		return domain.PricedOrderProductLine{}, remoteError(PriceService, err)
	}

	linePrice, err := unitPrice.Multiply(line.Quantity.Value())
	if err != nil {
		return domain.PricedOrderProductLine{}, toPricingError(err)
	}

	return domain.PricedOrderProductLine{
		OrderLineID: line.OrderLineID,
		ProductCode: line.ProductCode,
		Quantity:    line.Quantity,
		LinePrice:   linePrice,
	}, nil
}

func toPricingError(err error) error {
	if ve, ok := err.(*domain.ValidationError); ok {
		return &domain.PricingError{Message: ve.Message}
	}
	return err
}
