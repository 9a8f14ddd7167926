package middleware

import (
	"context"
	"log/slog"

	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/logging"
	"github.com/grpc-ecosystem/go-grpc-middleware/v2/interceptors/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/parishkeeper/parish-server/internal/logger"
)

// Logging adapts the application logger to the go-grpc-middleware
// interceptors.
type Logging struct {
	logger *logger.Logger
}

// NewLogging creates a new Logging middleware.
func NewLogging(logger *logger.Logger) *Logging {
	return &Logging{logger: logger}
}

func (l *Logging) interceptorLogger() logging.Logger {
	return logging.LoggerFunc(func(ctx context.Context, lvl logging.Level, msg string, fields ...any) {
		l.logger.Log(ctx, slog.Level(lvl), "gRPC: "+msg, fields...)
	})
}

// UnaryInterceptor logs method, duration and code once each call finishes.
func (l *Logging) UnaryInterceptor() grpc.UnaryServerInterceptor {
	return logging.UnaryServerInterceptor(l.interceptorLogger(), logging.WithLogOnEvents(logging.FinishCall))
}

// StreamInterceptor is the streaming counterpart of UnaryInterceptor.
func (l *Logging) StreamInterceptor() grpc.StreamServerInterceptor {
	return logging.StreamServerInterceptor(l.interceptorLogger(), logging.WithLogOnEvents(logging.FinishCall))
}

// RecoveryHandler turns a handler panic into codes.Internal and logs it.
func (l *Logging) RecoveryHandler() recovery.Option {
	return recovery.WithRecoveryHandlerContext(func(ctx context.Context, p any) error {
		l.logger.ErrorContext(ctx, "gRPC handler panicked", "panic", p)
		return status.Error(codes.Internal, "internal server error")
	})
}
