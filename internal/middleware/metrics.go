package middleware

import (
	"context"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/chitfund/internal/metrics"
)

// MetricsInterceptor records handler latency per procedure and result code.
func MetricsInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			metrics.RPCDuration.
				WithLabelValues(req.Spec().Procedure, resultCode(err)).
				Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}
