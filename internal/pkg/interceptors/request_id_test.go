package interceptors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

func captureRequestID(t *testing.T, ctx context.Context) string {
	t.Helper()
	var got string
	_, err := RequestIDServerInterceptor()(ctx, nil, &grpc.UnaryServerInfo{FullMethod: "/test/Call"},
		func(ctx context.Context, _ interface{}) (interface{}, error) {
			got = GetRequestID(ctx)
			return nil, nil
		})
	require.NoError(t, err)
	return got
}

func TestRequestIDServerInterceptor_UsesIncomingID(t *testing.T) {
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc-123"))
	assert.Equal(t, "abc-123", captureRequestID(t, ctx))
}

func TestRequestIDServerInterceptor_GeneratesID(t *testing.T) {
	id := captureRequestID(t, context.Background())
	assert.Len(t, id, 36)
}

func TestGetMetadataValue(t *testing.T) {
	ctx := metadata.AppendToOutgoingContext(context.Background(), "k", "out")
	assert.Equal(t, "out", GetMetadataValue(ctx, "k"))
	assert.Equal(t, "", GetMetadataValue(context.Background(), "k"))
}
