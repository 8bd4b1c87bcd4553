package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor logs one line per RPC with the procedure, the caller and
// the result code. Client mistakes log at warn level, server faults at error.
// It must run inside the auth interceptor to see the caller.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := append(callAttrs(ctx, req.Spec().Procedure),
				"code", resultCode(err),
				"duration_ms", time.Since(start).Milliseconds(),
			)
			switch {
			case err == nil:
				slog.InfoContext(ctx, "RPC ok", attrs...)
			case serverFault(err):
				slog.ErrorContext(ctx, "RPC failed", append(attrs, "error", err)...)
			default:
				slog.WarnContext(ctx, "RPC rejected", append(attrs, "error", errorMessage(err))...)
			}
			return resp, err
		}
	}
}

// callAttrs describes the procedure and, for authenticated calls, the actor.
func callAttrs(ctx context.Context, procedure string) []any {
	attrs := []any{"procedure", procedure}
	if user, ok := UserFromContext(ctx); ok {
		attrs = append(attrs, slog.Group("actor",
			"id", user.ID,
			"role", string(user.Role),
		))
	}
	return attrs
}

// resultCode is "ok" on success and the Connect code name otherwise.
func resultCode(err error) string {
	if err == nil {
		return "ok"
	}
	return connect.CodeOf(err).String()
}

func serverFault(err error) bool {
	switch connect.CodeOf(err) {
	case connect.CodeInternal, connect.CodeUnknown, connect.CodeDataLoss, connect.CodeUnavailable:
		return true
	}
	return false
}

func errorMessage(err error) string {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce.Message()
	}
	return err.Error()
}
