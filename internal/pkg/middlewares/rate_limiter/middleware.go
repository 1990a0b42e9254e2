package rate_limiter

import (
	"net"
	"net/http"
	"strconv"

	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/pkg/logger"

	"github.com/gorilla/mux"
)

const (
	scopeCaller = "caller"
	scopeAddr   = "addr"
)

// Middleware ограничивает частоту по вызывающему. До аутентификации
// (ping, healthcheck) ключом служит адрес клиента.
func Middleware(log handlerLogger, qps int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key, scope := limitKey(r)
			if limiter.Allow(key) {
				next.ServeHTTP(w, r)
				return
			}

			route := routeTemplate(r)
			RateLimitExceededTotal.WithLabelValues(r.Method, route, scope).Inc()

			log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("key", key),
			).Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(qps))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(`{"error":"rate_limited","message":"rate limit exceeded, try again later"}`)); err != nil {
				log.With(logger.NewField("error", err)).Error("failed to write rate limit response")
			}
		})
	}
}

func limitKey(r *http.Request) (string, string) {
	if callerID, ok := auth.CallerID(r.Context()); ok {
		return callerID.String(), scopeCaller
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return host, scopeAddr
}

func routeTemplate(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		if template, err := route.GetPathTemplate(); err == nil {
			return template
		}
	}
	return r.URL.Path
}
