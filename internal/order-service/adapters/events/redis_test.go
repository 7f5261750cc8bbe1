package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcmexdev/order-taking/internal/order-service/adapters/dto"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

type fakeClient struct {
	channels []string
	messages [][]byte
	failAt   int
}

func (f *fakeClient) Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	if f.failAt > 0 && len(f.messages)+1 == f.failAt {
		cmd.SetErr(errors.New("connection refused"))
		return cmd
	}
	f.channels = append(f.channels, channel)
	f.messages = append(f.messages, message.([]byte))
	cmd.SetVal(1)
	return cmd
}

func sampleEvents(t *testing.T) []domain.PlaceOrderEvent {
	t.Helper()
	id, err := domain.NewOrderID("ORD1")
	require.NoError(t, err)
	email, err := domain.NewEmailAddress("ada@example.com")
	require.NoError(t, err)
	amount, err := domain.NewBillingAmount(decimal.NewFromInt(100))
	require.NoError(t, err)
	return []domain.PlaceOrderEvent{
		domain.BillableOrderPlaced{OrderID: id, AmountToBill: amount},
		domain.OrderAcknowledgmentSent{OrderID: id, EmailAddress: email},
	}
}

func TestRedisPublisher_Publish(t *testing.T) {
	client := &fakeClient{}
	p := NewRedisPublisher(client, "orders.events")

	require.NoError(t, p.Publish(context.Background(), sampleEvents(t)))
	require.Len(t, client.messages, 2)
	assert.Equal(t, []string{"orders.events", "orders.events"}, client.channels)

	var first dto.PlaceOrderEventDto
	require.NoError(t, json.Unmarshal(client.messages[0], &first))
	require.NotNil(t, first.BillableOrderPlaced)
	assert.Equal(t, 100.0, first.BillableOrderPlaced.AmountToBill)

	var second dto.PlaceOrderEventDto
	require.NoError(t, json.Unmarshal(client.messages[1], &second))
	require.NotNil(t, second.OrderAcknowledgmentSent)
	assert.Equal(t, "ada@example.com", second.OrderAcknowledgmentSent.EmailAddress)
}

func TestRedisPublisher_StopsAtFirstFailure(t *testing.T) {
	client := &fakeClient{failAt: 1}
	p := NewRedisPublisher(client, "orders.events")

	err := p.Publish(context.Background(), sampleEvents(t))
	assert.EqualError(t, err, "events: publish BillableOrderPlaced: connection refused")
	assert.Empty(t, client.messages)
}

func TestRedisPublisher_NoEvents(t *testing.T) {
	client := &fakeClient{}
	assert.NoError(t, NewRedisPublisher(client, "c").Publish(context.Background(), nil))
	assert.Empty(t, client.messages)
}
