package server

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/godilite/jii-dashboard/pkg/metrics"
)

func TestLoggingInterceptor(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	interceptor := LoggingInterceptor(zap.New(core))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/TestMethod"}

	t.Run("successful request", func(t *testing.T) {
		logs.TakeAll()
		resp, err := interceptor(context.Background(), "test request", info, func(ctx context.Context, req any) (any, error) {
			return "success", nil
		})
		require.NoError(t, err)
		assert.Equal(t, "success", resp)

		completed := logs.FilterMessage("gRPC request completed").All()
		require.Len(t, completed, 1)
		assert.NotEmpty(t, completed[0].ContextMap()["request_id"])
	})

	t.Run("caller request id is kept", func(t *testing.T) {
		logs.TakeAll()
		ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(RequestIDKey, "abc-123"))
		_, err := interceptor(ctx, "req", info, func(ctx context.Context, req any) (any, error) {
			return nil, nil
		})
		require.NoError(t, err)

		entries := logs.FilterMessage("gRPC request completed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "abc-123", entries[0].ContextMap()["request_id"])
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		logs.TakeAll()
		_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.InvalidArgument, "test error")
		})
		assert.Equal(t, codes.InvalidArgument, status.Code(err))
		assert.Equal(t, 1, logs.FilterMessage("gRPC request rejected").Len())
		assert.Equal(t, 0, logs.FilterMessage("gRPC request failed").Len())
	})

	t.Run("server errors log at error", func(t *testing.T) {
		logs.TakeAll()
		_, err := interceptor(context.Background(), "req", info, func(ctx context.Context, req any) (any, error) {
			return nil, status.Error(codes.Internal, "boom")
		})
		assert.Equal(t, codes.Internal, status.Code(err))
		assert.Equal(t, 1, logs.FilterMessage("gRPC request failed").Len())
	})
}

func TestMetricsInterceptor(t *testing.T) {
	interceptor := MetricsInterceptor()
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Counted"}

	before := testutil.ToFloat64(metrics.GRPCRequestsTotal.WithLabelValues(info.FullMethod, codes.NotFound.String()))
	_, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		return nil, status.Error(codes.NotFound, "no data available")
	})
	assert.Error(t, err)

	after := testutil.ToFloat64(metrics.GRPCRequestsTotal.WithLabelValues(info.FullMethod, codes.NotFound.String()))
	assert.Equal(t, before+1, after)
}

func TestRecoveryInterceptor(t *testing.T) {
	interceptor := RecoveryInterceptor(zaptest.NewLogger(t))
	info := &grpc.UnaryServerInfo{FullMethod: "/test.Service/Panics"}

	resp, err := interceptor(context.Background(), nil, info, func(ctx context.Context, req any) (any, error) {
		panic("nil map write")
	})
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestNew_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		s, err := New(WithPort(port))
		assert.Error(t, err)
		assert.Nil(t, s)
	}
}

func TestNew_ListenerOverridesPort(t *testing.T) {
	lis := bufconn.Listen(1 << 20)

	s, err := New(WithPort(0), WithListener(lis))
	require.NoError(t, err)
	assert.Equal(t, lis.Addr(), s.Addr())
	s.grpcServer.Stop()
	_ = lis.Close()
}

func TestServerBuilderWithListener(t *testing.T) {
	lis := bufconn.Listen(1 << 20)

	server, err := New(
		WithListener(lis),
		WithLogger(zaptest.NewLogger(t)),
		WithLogging(true),
		WithMetrics(true),
	)
	require.NoError(t, err)
	require.NotNil(t, server.grpcServer)
	require.NotNil(t, server.healthServer)
	server.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			t.Logf("Server shutdown error: %v", err)
		}
	}()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	resp, err := healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)

	server.SetServiceHealth("jii.test", healthpb.HealthCheckResponse_NOT_SERVING)
	resp, err = healthpb.NewHealthClient(conn).Check(ctx, &healthpb.HealthCheckRequest{Service: "jii.test"})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, resp.Status)
}
