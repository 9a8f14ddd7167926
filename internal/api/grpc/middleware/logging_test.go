package middleware

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/parishkeeper/parish-server/internal/testutil"
)

func TestLogging_UnaryInterceptor(t *testing.T) {
	lg, buf := testutil.MakeBufferLogger()
	interceptor := NewLogging(lg).UnaryInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
	assert.Contains(t, buf.String(), "gRPC: finished call")
	assert.Contains(t, buf.String(), "grpc.method=Check")

	buf.Reset()
	_, err = interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.Unavailable, "database down")
	})
	assert.Equal(t, codes.Unavailable, status.Code(err))
	assert.Contains(t, buf.String(), "grpc.code=Unavailable")
}

func TestLogging_RecoveryHandler(t *testing.T) {
	lg, buf := testutil.MakeBufferLogger()
	interceptor := recovery.UnaryServerInterceptor(NewLogging(lg).RecoveryHandler())
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("boom")
	})

	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, buf.String(), "gRPC handler panicked")
}
