package app

import "github.com/jcmexdev/order-taking/internal/order-service/domain"

// CreateEvents assembles the events of a placed order in a fixed order:
// shipping, billing, acknowledgment. Shipping is emitted when the order has at
// least one product line, billing when there is something to bill, and the
// acknowledgment only when it was sent.
func CreateEvents(order domain.PricedOrder, ack *domain.OrderAcknowledgmentSent) []domain.PlaceOrderEvent {
	var events []domain.PlaceOrderEvent

	if shippable, ok := createShippingEvent(order); ok {
		events = append(events, shippable)
	}
	if billable, ok := createBillingEvent(order); ok {
		events = append(events, billable)
	}
	if ack != nil {
		events = append(events, *ack)
	}
	return events
}

func createShippingEvent(order domain.PricedOrder) (domain.ShippableOrderPlaced, bool) {
	productLines := order.ProductLines()
	if len(productLines) == 0 {
		return domain.ShippableOrderPlaced{}, false
	}

	shipment := make([]domain.ShippableOrderLine, len(productLines))
	for i, l := range productLines {
		shipment[i] = domain.ShippableOrderLine{ProductCode: l.ProductCode, Quantity: l.Quantity}
	}

	return domain.ShippableOrderPlaced{
		OrderID:         order.OrderID,
		ShippingAddress: order.ShippingAddress,
		ShipmentLines:   shipment,
		Pdf: domain.PdfAttachment{
			Name:  "Order" + order.OrderID.String() + ".pdf",
			Bytes: []byte{},
		},
	}, true
}

func createBillingEvent(order domain.PricedOrder) (domain.BillableOrderPlaced, bool) {
	if !order.AmountToBill.Value().IsPositive() {
		return domain.BillableOrderPlaced{}, false
	}
	return domain.BillableOrderPlaced{
		OrderID:        order.OrderID,
		BillingAddress: order.BillingAddress,
		AmountToBill:   order.AmountToBill,
	}, true
}
