package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"
)

// Middleware во время дренажа запросы еще обслуживаются, отказ 503 только
// после отмены базового контекста остановкой.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if ongoingCtx.Err() != nil && isShuttingDown.Load() {
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Connection", "close")
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte(`{"error":"unavailable","message":"service is shutting down"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
