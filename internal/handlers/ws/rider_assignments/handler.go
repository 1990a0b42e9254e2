package rider_assignments

import (
	"net/http"

	"dispatch/internal/handlers/rest/respond"
	"dispatch/internal/handlers/ws/socket"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/realtime"
	"dispatch/pkg/logger"
)

const (
	stream     = "rider_assignments"
	bufferSize = 16
)

type Handler struct {
	log handlerLogger
	hub Subscriber
}

func New(log handlerLogger, hub Subscriber) *Handler {
	return &Handler{
		log: log.With(logger.NewField("stream", stream)),
		hub: hub,
	}
}

// ServeHTTP новые предложения вызывающего райдера. Подписка оформляется
// до апгрейда, чтобы не потерять предложение, пришедшее во время рукопожатия.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	riderID, ok := auth.CallerID(r.Context())
	if !ok {
		respond.Error(w, h.log, auth.ErrMissingToken)
		return
	}

	sessionLog := h.log.With(logger.NewField("rider", riderID.String()))

	updates := make(chan socket.Message, bufferSize)
	sub := h.hub.Subscribe(realtime.RiderTopic(riderID), func(event realtime.Event) {
		select {
		case updates <- socket.Message{Type: event.Type.String(), Payload: event.Payload}:
		default:
			sessionLog.With(logger.NewField("event_id", event.ID.String())).
				Warn("assignment stream is full, event dropped")
		}
	})
	defer sub.Close()

	conn, err := socket.Upgrade(w, r)
	if err != nil {
		sessionLog.With(logger.NewField("error", err)).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	if err := socket.Pump(r.Context(), conn, stream, updates); err != nil {
		sessionLog.With(logger.NewField("error", err)).Info("assignment stream closed")
	}
}
