package domain

// AddressValidationError is returned by an address checker that reached its
// backend and rejected the address.
type AddressValidationError string

const (
	AddressInvalidFormat AddressValidationError = "InvalidFormat"
	AddressNotFound      AddressValidationError = "AddressNotFound"
)

func (e AddressValidationError) Error() string { return string(e) }

// CheckedAddress is an address the address service has confirmed. The service
// may have normalised it.
type CheckedAddress struct {
	UnvalidatedAddress
}

type ValidatedOrderLine struct {
	OrderLineID OrderLineID
	ProductCode ProductCode
	Quantity    OrderQuantity
}

type ValidatedOrder struct {
	OrderID         OrderID
	CustomerInfo    CustomerInfo
	ShippingAddress Address
	BillingAddress  Address
	Lines           []ValidatedOrderLine
	PricingMethod   PricingMethod
}

// PricedOrderLine is either a PricedOrderProductLine or a CommentLine.
type PricedOrderLine interface {
	isPricedOrderLine()
}

type PricedOrderProductLine struct {
	OrderLineID OrderLineID
	ProductCode ProductCode
	Quantity    OrderQuantity
	LinePrice   Price
}

// CommentLine carries free text and never contributes to totals.
type CommentLine struct {
	Comment string
}

func (PricedOrderProductLine) isPricedOrderLine() {}
func (CommentLine) isPricedOrderLine()            {}

type PricedOrder struct {
	OrderID         OrderID
	CustomerInfo    CustomerInfo
	ShippingAddress Address
	BillingAddress  Address
	AmountToBill    BillingAmount
	Lines           []PricedOrderLine
	PricingMethod   PricingMethod
}

// ProductLines returns the product lines of the order, keeping their input order.
func (o PricedOrder) ProductLines() []PricedOrderProductLine {
	lines := make([]PricedOrderProductLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		if pl, ok := l.(PricedOrderProductLine); ok {
			lines = append(lines, pl)
		}
	}
	return lines
}

type ShippingMethod string

const (
	ShippingPostalService ShippingMethod = "PostalService"
	ShippingFedex24       ShippingMethod = "Fedex24"
	ShippingFedex48       ShippingMethod = "Fedex48"
	ShippingUps48         ShippingMethod = "Ups48"
)

type ShippingInfo struct {
	ShippingMethod ShippingMethod
	ShippingCost   Price
}

type PricedOrderWithShippingMethod struct {
	ShippingInfo ShippingInfo
	PricedOrder  PricedOrder
}

type OrderAcknowledgment struct {
	EmailAddress EmailAddress
	Letter       HtmlString
}
