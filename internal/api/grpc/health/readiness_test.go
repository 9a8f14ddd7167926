package health

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/parishkeeper/parish-server/internal/mocks"
	"github.com/parishkeeper/parish-server/internal/testutil"
)

func status(t *testing.T, r *Readiness, service string) healthpb.HealthCheckResponse_ServingStatus {
	t.Helper()
	resp, err := r.Server().Check(context.Background(), &healthpb.HealthCheckRequest{Service: service})
	require.NoError(t, err)
	return resp.GetStatus()
}

func TestReadiness_StartsNotServing(t *testing.T) {
	r := NewReadiness(mocks.NewPinger(t), time.Second, testutil.MakeNoopLogger())

	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, r, ""))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, r, ServiceName))
}

func TestReadiness_Check(t *testing.T) {
	db := mocks.NewPinger(t)
	r := NewReadiness(db, time.Second, testutil.MakeNoopLogger())

	db.On("Ping", mock.Anything).Return(nil).Once()
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, r.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, status(t, r, ServiceName))

	db.On("Ping", mock.Anything).Return(errors.New("connection refused")).Once()
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, r.Check(context.Background()))
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, r, ""))
}

func TestReadiness_RunStopsOnCancel(t *testing.T) {
	db := mocks.NewPinger(t)
	db.On("Ping", mock.Anything).Return(nil)
	r := NewReadiness(db, 10*time.Millisecond, testutil.MakeNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return status(t, r, "") == healthpb.HealthCheckResponse_SERVING
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, status(t, r, ""))
}
