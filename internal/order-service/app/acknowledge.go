package app

import (
	"context"
	"log/slog"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

// AcknowledgeOrder renders the acknowledgment letter and tries to send it.
// A failed send is logged and yields nil; it never fails the order.
func AcknowledgeOrder(
	ctx context.Context,
	createLetter CreateOrderAcknowledgmentLetter,
	send SendOrderAcknowledgment,
	order domain.PricedOrderWithShippingMethod,
) *domain.OrderAcknowledgmentSent {
	priced := order.PricedOrder
	ack := domain.OrderAcknowledgment{
		EmailAddress: priced.CustomerInfo.EmailAddress,
		Letter:       createLetter(order),
	}

	if err := send(ctx, ack); err != nil {
		slog.WarnContext(ctx, "order acknowledgment not sent",
			"order_id", priced.OrderID.String(),
			"error", err,
		)
		return nil
	}

	return &domain.OrderAcknowledgmentSent{
		OrderID:      priced.OrderID,
		EmailAddress: priced.CustomerInfo.EmailAddress,
	}
}
