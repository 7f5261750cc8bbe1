// Package grpcapi exposes the place-order workflow as the gRPC service
// orders.v1.OrderService. Requests and responses are google.protobuf.Struct
// values shaped like the HTTP JSON bodies.
package grpcapi

import (
	"context"
	"encoding/json"
	"log/slog"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/jcmexdev/order-taking/internal/order-service/adapters/dto"
	"github.com/jcmexdev/order-taking/internal/order-service/domain"
)

const (
	ServiceName       = "orders.v1.OrderService"
	PlaceOrderMethod  = "/" + ServiceName + "/PlaceOrder"
	placeOrderRPCName = "PlaceOrder"
)

// OrderServiceServer is the server API of orders.v1.OrderService.
type OrderServiceServer interface {
	PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error)
}

// ServiceDesc describes orders.v1.OrderService for grpc.Server.
var ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*OrderServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: placeOrderRPCName, Handler: placeOrderHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "orders/v1/order_service.proto",
}

func Register(s grpc.ServiceRegistrar, srv OrderServiceServer) {
	s.RegisterService(&ServiceDesc, srv)
}

func placeOrderHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(OrderServiceServer).PlaceOrder(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: PlaceOrderMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(OrderServiceServer).PlaceOrder(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

// OrderPlacer runs the place-order workflow.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order domain.UnvalidatedOrder) ([]domain.PlaceOrderEvent, error)
}

// Server implements OrderServiceServer on top of the workflow.
type Server struct {
	placer OrderPlacer
}

func NewServer(placer OrderPlacer) *Server {
	return &Server{placer: placer}
}

func (s *Server) PlaceOrder(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	raw, err := protojson.Marshal(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "encode request: %v", err)
	}
	var order domain.UnvalidatedOrder
	if err := json.Unmarshal(raw, &order); err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "decode order: %v", err)
	}

	events, err := s.placer.PlaceOrder(ctx, order)
	if err != nil {
		return nil, toStatus(ctx, err)
	}

	body, err := json.Marshal(dto.PlaceOrderResponse{Events: dto.FromPlaceOrderEvents(events)})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(body, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode response: %v", err)
	}
	return out, nil
}

// toStatus maps workflow errors to gRPC status codes. The message is the
// same one the HTTP adapter returns.
func toStatus(ctx context.Context, err error) error {
	body := dto.FromPlaceOrderError(err)
	switch body.Code {
	case domain.CodeValidationError:
		return status.Error(codes.InvalidArgument, body.Message)
	case domain.CodePricingError:
		return status.Error(codes.FailedPrecondition, body.Message)
	case domain.CodeRemoteServiceError:
		return status.Error(codes.Unavailable, body.Message)
	}
	slog.ErrorContext(ctx, "place order failed", "error", err)
	return status.Error(codes.Internal, body.Message)
}

// Client calls orders.v1.OrderService.
type Client struct {
	cc grpc.ClientConnInterface
}

func NewClient(cc grpc.ClientConnInterface) *Client {
	return &Client{cc: cc}
}

func (c *Client) PlaceOrder(ctx context.Context, req *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, PlaceOrderMethod, req, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
