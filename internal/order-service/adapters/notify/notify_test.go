package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

type fakeChannel struct {
	declared   []string
	published  []amqp.Publishing
	keys       []string
	publishErr error
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func ack(t *testing.T) domain.OrderAcknowledgment {
	t.Helper()
	email, err := domain.NewEmailAddress("ada@example.com")
	require.NoError(t, err)
	return domain.OrderAcknowledgment{EmailAddress: email, Letter: domain.NewHtmlString("<p>hi</p>")}
}

func TestRabbitSender(t *testing.T) {
	ch := &fakeChannel{}
	s, err := NewRabbitSender(ch, "", "order.acknowledgments")
	require.NoError(t, err)
	assert.Equal(t, []string{"order.acknowledgments"}, ch.declared)

	require.NoError(t, s.SendOrderAcknowledgment(context.Background(), ack(t)))
	require.Len(t, ch.published, 1)
	assert.Equal(t, "order.acknowledgments", ch.keys[0])
	assert.Equal(t, amqp.Persistent, ch.published[0].DeliveryMode)

	var msg AcknowledgmentMessage
	require.NoError(t, json.Unmarshal(ch.published[0].Body, &msg))
	assert.Equal(t, AcknowledgmentMessage{EmailAddress: "ada@example.com", Letter: "<p>hi</p>"}, msg)
}

func TestRabbitSender_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	s, err := NewRabbitSender(&fakeChannel{publishErr: boom}, "", "q")
	require.NoError(t, err)

	assert.ErrorIs(t, s.SendOrderAcknowledgment(context.Background(), ack(t)), boom)
}

func TestLogSender(t *testing.T) {
	assert.NoError(t, LogSender{}.SendOrderAcknowledgment(context.Background(), ack(t)))
}

func TestCreateAcknowledgmentLetter(t *testing.T) {
	info, err := domain.NewCustomerInfo(domain.UnvalidatedCustomerInfo{
		FirstName:    "<b>Ada</b>",
		LastName:     "Lovelace",
		EmailAddress: "ada@example.com",
		VipStatus:    "VIP",
	})
	require.NoError(t, err)
	id, _ := domain.NewOrderID("ORD7")
	code, _ := domain.NewProductCode("W1234")
	qty, _ := domain.NewOrderQuantity(code, 3)
	linePrice, _ := domain.NewPrice(decimal.NewFromInt(30))
	amount, _ := domain.NewBillingAmount(decimal.NewFromInt(30))

	letter := CreateAcknowledgmentLetter(domain.PricedOrderWithShippingMethod{
		ShippingInfo: domain.ShippingInfo{ShippingMethod: domain.ShippingFedex24, ShippingCost: domain.ZeroPrice()},
		PricedOrder: domain.PricedOrder{
			OrderID:      id,
			CustomerInfo: info,
			AmountToBill: amount,
			Lines: []domain.PricedOrderLine{
				domain.PricedOrderProductLine{ProductCode: code, Quantity: qty, LinePrice: linePrice},
				domain.CommentLine{Comment: "Applied promotion SPRING"},
			},
		},
	}).String()

	assert.Contains(t, letter, "&lt;b&gt;Ada&lt;/b&gt; Lovelace")
	assert.Contains(t, letter, "order ORD7")
	assert.Contains(t, letter, "<tr><td>W1234</td><td>3</td><td>30.00</td></tr>")
	assert.Contains(t, letter, "<p>Applied promotion SPRING</p>")
	assert.Contains(t, letter, "Shipping: Fedex24 (0.00)")
	assert.Contains(t, letter, "Total: 30.00")
}
