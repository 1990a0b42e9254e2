package delivery_created

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"dispatch/internal/apperr"
	"dispatch/pkg/logger"

	"github.com/IBM/sarama"
)

type Handler struct {
	dispatchService          Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, dispatchService Service, timeout time.Duration) *Handler {
	return &Handler{
		dispatchService:          dispatchService,
		log:                      log.With(logger.NewField("handler", "delivery.created")),
		messageProcessingTimeout: timeout,
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
				h.log.Info("delivery.created: claim closed, exiting ConsumeClaim")
				return nil
			}

			if !h.Process(sess.Context(), message) {
				// сообщение не помечено, после ребалансировки придет снова
				return nil
			}
			sess.MarkMessage(message, "")

		case <-sess.Context().Done():
			h.log.Info("delivery.created: session context done, exiting ConsumeClaim")
			return nil
		}
	}
}

// Process обрабатывает одно сообщение. Возвращает false, если обработку прервала
// отмена контекста и сообщение нужно оставить непрочитанным.
func (h *Handler) Process(ctx context.Context, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(ctx, h.messageProcessingTimeout)
	defer cancel()

	var event createdEvent
	if err := json.Unmarshal(message.Value, &event); err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("delivery.created: bad message")
		return true
	}

	created, err := event.toEntity()
	if err != nil {
		h.log.With(
			logger.NewField("error", err),
			logger.NewField("offset", message.Offset),
		).Error("delivery.created: bad message")
		return true
	}

	msgLog := h.log.With(
		logger.NewField("delivery", created.DeliveryID.String()),
		logger.NewField("order", created.OrderID.String()),
		logger.NewField("offset", message.Offset),
	)

	res, err := h.dispatchService.RebroadcastDelivery(ctx, created.DeliveryID)
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.created: context cancelled, message will be reprocessed")
			return false

		case apperr.Kind(err) != nil:
			msgLog.With(
				logger.NewField("error", err),
			).Warn("delivery.created: delivery skipped")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("delivery.created: rebroadcast failed")
		}
		return true
	}

	msgLog.With(
		logger.NewField("status", res.Status.String()),
		logger.NewField("assignments_created", res.AssignmentsCreated),
		logger.NewField("pending_count", res.PendingCount),
	).Info("delivery.created: processed")

	return true
}
