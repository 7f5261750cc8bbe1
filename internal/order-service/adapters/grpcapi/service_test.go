package grpcapi

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jcmexdev/order-taking/internal/order-service/domain"
	"github.com/jcmexdev/order-taking/internal/pkg/interceptors"
)

type fakePlacer struct {
	events []domain.PlaceOrderEvent
	err    error
	got    domain.UnvalidatedOrder
}

func (f *fakePlacer) PlaceOrder(_ context.Context, order domain.UnvalidatedOrder) ([]domain.PlaceOrderEvent, error) {
	f.got = order
	return f.events, f.err
}

func dial(t *testing.T, placer OrderPlacer) *Client {
	t.Helper()
	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(
		interceptors.RequestIDServerInterceptor(),
		interceptors.LoggingServerInterceptor(),
	))
	Register(srv, NewServer(placer))
	go func() { _ = srv.Serve(lis) }()
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func request(t *testing.T) *structpb.Struct {
	t.Helper()
	req, err := structpb.NewStruct(map[string]interface{}{
		"orderId":      "ORD1",
		"customerInfo": map[string]interface{}{
			"firstName": "Ada",
		},
		"lines": []interface{}{
			map[string]interface{}{"orderLineId": "L1", "productCode": "G123", "quantity": 2.5},
		},
	})
	require.NoError(t, err)
	return req
}

func TestPlaceOrder(t *testing.T) {
	id, _ := domain.NewOrderID("ORD1")
	amount, _ := domain.NewBillingAmount(decimal.NewFromInt(42))
	placer := &fakePlacer{events: []domain.PlaceOrderEvent{
		domain.BillableOrderPlaced{OrderID: id, AmountToBill: amount},
	}}
	client := dial(t, placer)

	resp, err := client.PlaceOrder(context.Background(), request(t))
	require.NoError(t, err)

	assert.Equal(t, "ORD1", placer.got.OrderID)
	assert.Equal(t, "Ada", placer.got.CustomerInfo.FirstName)
	require.Len(t, placer.got.Lines, 1)
	assert.Equal(t, 2.5, placer.got.Lines[0].Quantity)

	events := resp.AsMap()["events"].([]interface{})
	require.Len(t, events, 1)
	billable := events[0].(map[string]interface{})["BillableOrderPlaced"].(map[string]interface{})
	assert.Equal(t, "ORD1", billable["orderId"])
	assert.Equal(t, 42.0, billable["amountToBill"])
}

func TestPlaceOrder_ErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code codes.Code
		msg  string
	}{
		{"validation", domain.WithField("orderId", domain.NewValidationError("OrderId must be a non-empty string < 10 chars")), codes.InvalidArgument, "orderId: OrderId must be a non-empty string < 10 chars"},
		{"pricing", domain.NewPricingError("Price must be between 0 and 1000"), codes.FailedPrecondition, "Price must be between 0 and 1000"},
		{"remote", &domain.RemoteServiceError{Service: domain.ServiceInfo{Name: "AddressValidation"}, Err: errors.New("timeout")}, codes.Unavailable, "AddressValidation: timeout"},
		{"internal", errors.New("boom"), codes.Internal, "boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := dial(t, &fakePlacer{err: tt.err})

			_, err := client.PlaceOrder(context.Background(), request(t))

			st, ok := status.FromError(err)
			require.True(t, ok)
			assert.Equal(t, tt.code, st.Code())
			assert.Equal(t, tt.msg, st.Message())
		})
	}
}
