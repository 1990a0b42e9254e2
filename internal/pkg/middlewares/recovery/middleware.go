package recovery

import (
	"net/http"
	"runtime/debug"

	"dispatch/pkg/logger"
)

// Middleware превращает панику обработчика в 500 и пишет стек в лог.
// http.ErrAbortHandler пробрасывается дальше: это штатный обрыв ответа.
func Middleware(log handlerLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.With(
					logger.NewField("method", r.Method),
					logger.NewField("path", r.URL.Path),
					logger.NewField("panic", rec),
					logger.NewField("stack", string(debug.Stack())),
				).Error("handler panicked")

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal","message":"internal server error"}`))
			}()

			next.ServeHTTP(w, r)
		})
	}
}
