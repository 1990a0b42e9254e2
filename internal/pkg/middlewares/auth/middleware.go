package auth

import (
	"context"
	"net/http"
	"strings"

	"dispatch/internal/handlers/rest/respond"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type callerKey struct{}

func WithCallerID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, callerKey{}, userID)
}

func CallerID(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(callerKey{}).(uuid.UUID)
	return userID, ok
}

// Middleware кладет в контекст id вызывающего. Браузер не умеет ставить заголовки
// на websocket, поэтому для апгрейда токен можно передать в access_token.
func Middleware(log handlerLogger, verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				respond.Error(w, log, ErrMissingToken)
				return
			}

			userID, err := verifier.Verify(raw)
			if err != nil {
				log.With(
					logger.NewField("error", err),
					logger.NewField("path", r.URL.Path),
				).Warn("token rejected")
				respond.Error(w, log, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithCallerID(r.Context(), userID)))
		})
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	if IsWebsocketUpgrade(r) {
		return r.URL.Query().Get("access_token")
	}
	return ""
}

func IsWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
