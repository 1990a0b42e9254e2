package timeout

import (
	"context"
	"net/http"
	"time"

	"dispatch/internal/pkg/middlewares/auth"
)

// Middleware ограничивает время обработки запроса. Websocket потоки живут
// дольше любого таймаута и завершаются вместе с BaseContext сервера.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if auth.IsWebsocketUpgrade(r) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
