package realtime

import (
	"sync"

	"github.com/juju/pubsub/v2"
)

// Hub шина событий внутри процесса. Доставка асинхронная,
// порядок сохраняется в пределах одного подписчика.
type Hub struct {
	hub *pubsub.SimpleHub
}

func NewHub() *Hub {
	return &Hub{
		hub: pubsub.NewSimpleHub(&pubsub.SimpleHubConfig{}),
	}
}

func (h *Hub) Publish(event Event) {
	_ = h.hub.Publish(event.Topic, event)
	EventsPublishedTotal.WithLabelValues(event.Type.String()).Inc()
}

// Subscribe подписка на топик. Handle нужно закрыть, когда слушатель уходит.
func (h *Hub) Subscribe(topic string, fn func(Event)) *Subscription {
	unsubscribe := h.hub.Subscribe(topic, func(_ string, data interface{}) {
		if event, ok := data.(Event); ok {
			fn(event)
		}
	})
	ActiveSubscriptions.Inc()

	return &Subscription{unsubscribe: unsubscribe}
}

type Subscription struct {
	once        sync.Once
	unsubscribe func()
}

// Close можно звать сколько угодно раз.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.unsubscribe()
		ActiveSubscriptions.Dec()
	})
}
