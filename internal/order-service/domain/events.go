package domain

const (
	EventShippableOrderPlaced    = "ShippableOrderPlaced"
	EventBillableOrderPlaced     = "BillableOrderPlaced"
	EventOrderAcknowledgmentSent = "OrderAcknowledgmentSent"
)

// PlaceOrderEvent is one of ShippableOrderPlaced, BillableOrderPlaced or
// OrderAcknowledgmentSent.
type PlaceOrderEvent interface {
	EventName() string
	isPlaceOrderEvent()
}

type ShippableOrderLine struct {
	ProductCode ProductCode
	Quantity    OrderQuantity
}

type ShippableOrderPlaced struct {
	OrderID         OrderID
	ShippingAddress Address
	ShipmentLines   []ShippableOrderLine
	Pdf             PdfAttachment
}

type BillableOrderPlaced struct {
	OrderID        OrderID
	BillingAddress Address
	AmountToBill   BillingAmount
}

type OrderAcknowledgmentSent struct {
	OrderID      OrderID
	EmailAddress EmailAddress
}

func (ShippableOrderPlaced) EventName() string    { return EventShippableOrderPlaced }
func (BillableOrderPlaced) EventName() string     { return EventBillableOrderPlaced }
func (OrderAcknowledgmentSent) EventName() string { return EventOrderAcknowledgmentSent }

func (ShippableOrderPlaced) isPlaceOrderEvent()    {}
func (BillableOrderPlaced) isPlaceOrderEvent()     {}
func (OrderAcknowledgmentSent) isPlaceOrderEvent() {}
