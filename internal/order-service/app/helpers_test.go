package app

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

var errUnavailable = errors.New("service unavailable")

// fakeServices counts every capability call so tests can assert which
// services the workflow reached.
type fakeServices struct {
	productCalls atomic.Int32
	addressCalls atomic.Int32
	priceCalls   atomic.Int32
	sendCalls    atomic.Int32

	unknownProducts map[string]bool
	productErr      error
	addressErr      error
	prices          map[string]int64
	priceErr        error
	sendErr         error
	sent            []domain.OrderAcknowledgment
}

func newFakeServices() *fakeServices {
	return &fakeServices{prices: map[string]int64{}}
}

func (f *fakeServices) checkProduct(_ context.Context, code domain.ProductCode) (bool, error) {
	f.productCalls.Add(1)
	if f.productErr != nil {
		return false, f.productErr
	}
	return !f.unknownProducts[code.String()], nil
}

func (f *fakeServices) checkAddress(_ context.Context, addr domain.UnvalidatedAddress) (domain.CheckedAddress, error) {
	f.addressCalls.Add(1)
	if f.addressErr != nil {
		return domain.CheckedAddress{}, f.addressErr
	}
	return domain.CheckedAddress{UnvalidatedAddress: addr}, nil
}

func (f *fakeServices) price(_ context.Context, code domain.ProductCode) (domain.Price, error) {
	f.priceCalls.Add(1)
	if f.priceErr != nil {
		return domain.Price{}, f.priceErr
	}
	v, ok := f.prices[code.String()]
	if !ok {
		v = 10
	}
	return domain.NewPrice(decimal.NewFromInt(v))
}

func (f *fakeServices) send(_ context.Context, ack domain.OrderAcknowledgment) error {
	f.sendCalls.Add(1)
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, ack)
	return nil
}

func (f *fakeServices) deps() Dependencies {
	return Dependencies{
		CheckProductCodeExists: f.checkProduct,
		CheckAddressExists:     f.checkAddress,
		GetPricingFunction:     NewPricingFunction(f.price, nil),
		CalculateShippingCost: func(domain.PricedOrder) domain.Price {
			p, _ := domain.NewPrice(decimal.NewFromInt(10))
			return p
		},
		CreateOrderAcknowledgmentLetter: func(o domain.PricedOrderWithShippingMethod) domain.HtmlString {
			return domain.NewHtmlString("<p>" + o.PricedOrder.OrderID.String() + "</p>")
		},
		SendOrderAcknowledgment: f.send,
	}
}

func testAddress() domain.UnvalidatedAddress {
	return domain.UnvalidatedAddress{
		AddressLine1: "1 Infinite Loop",
		City:         "Cupertino",
		ZipCode:      "95014",
		State:        "CA",
		Country:      "US",
	}
}

func testOrder(lines ...domain.UnvalidatedOrderLine) domain.UnvalidatedOrder {
	if len(lines) == 0 {
		lines = []domain.UnvalidatedOrderLine{{OrderLineID: "L1", ProductCode: "W1234", Quantity: 10}}
	}
	return domain.UnvalidatedOrder{
		OrderID: "ORD1",
		CustomerInfo: domain.UnvalidatedCustomerInfo{
			FirstName:    "Ada",
			LastName:     "Lovelace",
			EmailAddress: "ada@example.com",
			VipStatus:    "Normal",
		},
		ShippingAddress: testAddress(),
		BillingAddress:  testAddress(),
		Lines:           lines,
	}
}

func requireValidationError(t *testing.T, err error, msg string) {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.EqualError(t, err, msg)
}
