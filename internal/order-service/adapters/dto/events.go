// Package dto maps workflow results to the JSON shapes seen by clients and
// downstream consumers.
package dto

import "github.com/jcmexdev/order-taking/internal/order-service/domain"

type AddressDto struct {
	AddressLine1 string  `json:"addressLine1"`
	AddressLine2 *string `json:"addressLine2"`
	AddressLine3 *string `json:"addressLine3"`
	AddressLine4 *string `json:"addressLine4"`
	City         string  `json:"city"`
	ZipCode      string  `json:"zipCode"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
}

type ShippableOrderLineDto struct {
	ProductCode string  `json:"productCode"`
	Quantity    float64 `json:"quantity"`
}

type PdfAttachmentDto struct {
	Name  string `json:"name"`
	Bytes []byte `json:"bytes"`
}

type ShippableOrderPlacedDto struct {
	OrderID         string                  `json:"orderId"`
	ShippingAddress AddressDto              `json:"shippingAddress"`
	ShipmentLines   []ShippableOrderLineDto `json:"shipmentLines"`
	Pdf             PdfAttachmentDto        `json:"pdf"`
}

type BillableOrderPlacedDto struct {
	OrderID        string     `json:"orderId"`
	BillingAddress AddressDto `json:"billingAddress"`
	AmountToBill   float64    `json:"amountToBill"`
}

type OrderAcknowledgmentSentDto struct {
	OrderID      string `json:"orderId"`
	EmailAddress string `json:"emailAddress"`
}

// PlaceOrderEventDto wraps exactly one event under its name, e.g.
// {"BillableOrderPlaced": {...}}.
type PlaceOrderEventDto struct {
	ShippableOrderPlaced    *ShippableOrderPlacedDto    `json:"ShippableOrderPlaced,omitempty"`
	BillableOrderPlaced     *BillableOrderPlacedDto     `json:"BillableOrderPlaced,omitempty"`
	OrderAcknowledgmentSent *OrderAcknowledgmentSentDto `json:"OrderAcknowledgmentSent,omitempty"`
}

// PlaceOrderResponse is the body returned for a placed order.
type PlaceOrderResponse struct {
	Events []PlaceOrderEventDto `json:"events"`
}

func FromAddress(a domain.Address) AddressDto {
	return AddressDto{
		AddressLine1: a.AddressLine1.String(),
		AddressLine2: optional(a.AddressLine2),
		AddressLine3: optional(a.AddressLine3),
		AddressLine4: optional(a.AddressLine4),
		City:         a.City.String(),
		ZipCode:      a.ZipCode.String(),
		State:        a.State.String(),
		Country:      a.Country.String(),
	}
}

func optional(s *domain.String50) *string {
	if s == nil {
		return nil
	}
	v := s.String()
	return &v
}

func FromPlaceOrderEvent(e domain.PlaceOrderEvent) PlaceOrderEventDto {
	switch e := e.(type) {
	case domain.ShippableOrderPlaced:
		lines := make([]ShippableOrderLineDto, len(e.ShipmentLines))
		for i, l := range e.ShipmentLines {
			lines[i] = ShippableOrderLineDto{
				ProductCode: l.ProductCode.String(),
				Quantity:    l.Quantity.Value().InexactFloat64(),
			}
		}
		return PlaceOrderEventDto{ShippableOrderPlaced: &ShippableOrderPlacedDto{
			OrderID:         e.OrderID.String(),
			ShippingAddress: FromAddress(e.ShippingAddress),
			ShipmentLines:   lines,
			Pdf:             PdfAttachmentDto{Name: e.Pdf.Name, Bytes: e.Pdf.Bytes},
		}}
	case domain.BillableOrderPlaced:
		return PlaceOrderEventDto{BillableOrderPlaced: &BillableOrderPlacedDto{
			OrderID:        e.OrderID.String(),
			BillingAddress: FromAddress(e.BillingAddress),
			AmountToBill:   e.AmountToBill.Value().InexactFloat64(),
		}}
	case domain.OrderAcknowledgmentSent:
		return PlaceOrderEventDto{OrderAcknowledgmentSent: &OrderAcknowledgmentSentDto{
			OrderID:      e.OrderID.String(),
			EmailAddress: e.EmailAddress.String(),
		}}
	}
	return PlaceOrderEventDto{}
}

func FromPlaceOrderEvents(events []domain.PlaceOrderEvent) []PlaceOrderEventDto {
	out := make([]PlaceOrderEventDto, len(events))
	for i, e := range events {
		out[i] = FromPlaceOrderEvent(e)
	}
	return out
}
