package realtime

import (
	"context"
	"encoding/json"

	"dispatch/pkg/logger"
)

// Broadcaster отдает событие подписчикам процесса и дублирует его в Kafka
// с меткой origin, по которой Relay других экземпляров отличает чужие события.
// Ошибка брокера только логируется: запрос, породивший событие, уже выполнен.
type Broadcaster struct {
	hub      *Hub
	producer Producer
	topic    string
	origin   string
	log      broadcasterLogger
}

func NewBroadcaster(log broadcasterLogger, hub *Hub, producer Producer, topic, origin string) *Broadcaster {
	return &Broadcaster{
		hub:      hub,
		producer: producer,
		topic:    topic,
		origin:   origin,
		log:      log.With(logger.NewField("component", "realtime_broadcaster")),
	}
}

func (b *Broadcaster) Publish(ctx context.Context, event Event) {
	b.hub.Publish(event)

	if b.producer == nil {
		return
	}

	eventLog := b.log.With(
		logger.NewField("event_id", event.ID.String()),
		logger.NewField("event_type", event.Type.String()),
		logger.NewField("topic", event.Topic),
	)

	event.Origin = b.origin
	value, err := json.Marshal(event)
	if err != nil {
		EventsPublishFailedTotal.WithLabelValues(event.Type.String()).Inc()
		eventLog.With(logger.NewField("error", err)).Error("marshal realtime event")
		return
	}

	if err := b.producer.SendMessage(ctx, b.topic, event.Topic, value); err != nil {
		EventsPublishFailedTotal.WithLabelValues(event.Type.String()).Inc()
		eventLog.With(logger.NewField("error", err)).Warn("send realtime event to broker")
	}
}
