package realtime_relay

import (
	"dispatch/internal/realtime"
	"dispatch/pkg/logger"

	"github.com/IBM/sarama"
)

// Handler переносит события других экземпляров из KAFKA_EVENTS_TOPIC
// в локальный хаб. Свои события уже отданы хабу при публикации.
type Handler struct {
	hub    Hub
	origin string
	log    handlerLogger
}

func New(log handlerLogger, hub Hub, origin string) *Handler {
	return &Handler{
		hub:    hub,
		origin: origin,
		log:    log.With(logger.NewField("handler", "realtime.relay")),
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("realtime.relay: claim closed, exiting ConsumeClaim")
				return nil
			}

			h.Process(message)
			sess.MarkMessage(message, "")

		case <-sess.Context().Done():
			return nil
		}
	}
}

// Process возвращает true, если событие ушло в хаб.
func (h *Handler) Process(message *sarama.ConsumerMessage) bool {
	event, err := realtime.Decode(message.Value)
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Warn("realtime.relay: bad message")
		return false
	}

	if event.Origin == h.origin {
		return false
	}

	h.hub.Publish(event)
	return true
}
