package order_tracking

import (
	"net/http"

	"dispatch/internal/entities"
	"dispatch/internal/handlers/rest/dto"
	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/handlers/ws/socket"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/service/tracking"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const (
	stream      = "order_tracking"
	messageType = "tracking.view"
)

// SessionFactoryFunc позволяет собрать фабрику из замыкания.
type SessionFactoryFunc func(callerID, orderID uuid.UUID) Session

func (f SessionFactoryFunc) NewSession(callerID, orderID uuid.UUID) Session {
	return f(callerID, orderID)
}

type Handler struct {
	log      handlerLogger
	sessions SessionFactory
}

func New(log handlerLogger, sessions SessionFactory) *Handler {
	return &Handler{
		log:      log.With(logger.NewField("stream", stream)),
		sessions: sessions,
	}
}

// ServeHTTP права проверяются загрузкой начального состояния, до апгрейда,
// поэтому отказ приходит обычным HTTP ответом.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	callerID, ok := auth.CallerID(r.Context())
	if !ok {
		respond.Error(w, h.log, auth.ErrMissingToken)
		return
	}

	orderID, err := uuid.Parse(mux.Vars(r)["order_id"])
	if err != nil {
		respond.Error(w, h.log, tracking.ErrInvalidOrderID)
		return
	}

	session := h.sessions.NewSession(callerID, orderID)
	defer session.Close()

	initial, err := session.Start(r.Context())
	if err != nil {
		respond.Error(w, h.log, err)
		return
	}

	conn, err := socket.Upgrade(w, r)
	if err != nil {
		// Upgrade уже ответил клиенту
		h.log.With(logger.NewField("error", err)).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	sessionLog := h.log.With(
		logger.NewField("order", orderID.String()),
		logger.NewField("caller", callerID.String()),
	)

	if err := socket.Write(conn, toMessage(initial)); err != nil {
		sessionLog.With(logger.NewField("error", err)).Warn("write initial tracking view")
		return
	}

	updates := make(chan socket.Message)
	go func() {
		defer close(updates)
		for view := range session.Updates() {
			select {
			case updates <- toMessage(view):
			case <-r.Context().Done():
				return
			}
		}
	}()

	if err := socket.Pump(r.Context(), conn, stream, updates); err != nil {
		sessionLog.With(logger.NewField("error", err)).Info("tracking stream closed")
	}
}

func toMessage(view entities.TrackingView) socket.Message {
	return socket.Message{
		Type:    messageType,
		Payload: dto.NewTrackingResponse(view),
	}
}
