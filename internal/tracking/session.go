package tracking

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"
	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

const updatesBuffer = 16

var ErrSessionClosed = errors.New("tracking session closed")

// Session живая карта заказа для одного зрителя. Снимки назначенного райдера
// обновляют позицию и, если известна точка доставки, локальную оценку ETA.
// События ETA с сервера заменяют ее целиком.
type Session struct {
	orderID  uuid.UUID
	callerID uuid.UUID
	source   ViewSource
	hub      Subscriber
	clock    Clock

	mu      sync.Mutex
	view    entities.TrackingView
	sub     *realtime.Subscription
	closed  bool
	updates chan entities.TrackingView
	once    sync.Once
}

func NewSession(source ViewSource, hub Subscriber, clock Clock, callerID, orderID uuid.UUID) *Session {
	return &Session{
		orderID:  orderID,
		callerID: callerID,
		source:   source,
		hub:      hub,
		clock:    clock,
		updates:  make(chan entities.TrackingView, updatesBuffer),
	}
}

// Start загружает начальное состояние и подписывается на канал заказа.
func (s *Session) Start(ctx context.Context) (entities.TrackingView, error) {
	view, err := s.source.Latest(ctx, s.callerID, s.orderID)
	if err != nil {
		return entities.TrackingView{}, fmt.Errorf("load tracking view: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return entities.TrackingView{}, ErrSessionClosed
	}

	s.view = *view
	s.sub = s.hub.Subscribe(realtime.OrderTopic(s.orderID), s.handle)

	return s.view, nil
}

// Updates новое состояние после каждого значимого события.
// Медленный читатель теряет промежуточные состояния, но не последнее.
func (s *Session) Updates() <-chan entities.TrackingView {
	return s.updates
}

func (s *Session) View() entities.TrackingView {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.view
}

func (s *Session) Close() {
	s.once.Do(func() {
		s.mu.Lock()
		s.closed = true
		sub := s.sub
		close(s.updates)
		s.mu.Unlock()

		// отписка вне mu: обработчик хаба может ждать этот же мьютекс
		if sub != nil {
			sub.Close()
		}
	})
}

func (s *Session) handle(event realtime.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}

	switch payload := event.Payload.(type) {
	case realtime.AcceptedPayload:
		riderID := payload.RiderID
		s.view.RiderID = &riderID
	case realtime.LocationPayload:
		snapshot := payload.Snapshot()
		if s.view.RiderID == nil || *s.view.RiderID != snapshot.RiderID {
			return
		}
		s.view.Location = &snapshot
		if s.view.Dropoff != nil {
			s.view.ETA = s.localETA(snapshot)
		}
	case realtime.ETAPayload:
		eta := payload.ETA()
		s.view.ETA = &eta
	case realtime.ETADeletedPayload:
		s.view.ETA = nil
	default:
		return
	}

	s.push(s.view)
}

// localETA прямая до точки доставки с коэффициентом последней серверной оценки.
func (s *Session) localETA(snapshot entities.LocationSnapshot) *entities.DeliveryETA {
	factor, speed := geo.DefaultTrafficFactor, geo.DefaultSpeedKmh
	if s.view.ETA != nil {
		factor, speed = s.view.ETA.TrafficFactor, s.view.ETA.AvgSpeedKmh
	}

	now := s.clock.Now().UTC()
	res := geo.EstimateETA(geo.ETAInput{
		Current:       snapshot.Point,
		Destination:   *s.view.Dropoff,
		SpeedKmh:      speed,
		TrafficFactor: factor,
		Now:           now,
	})

	return &entities.DeliveryETA{
		OrderID:             s.orderID,
		RiderID:             snapshot.RiderID,
		EstimatedDeliveryAt: res.EstimatedDeliveryAt,
		DistanceToDropoffKm: res.DistanceToDropoffKm,
		TrafficFactor:       res.TrafficFactor,
		AvgSpeedKmh:         res.SpeedKmh,
		UpdatedAt:           now,
	}
}

// push вызывается под mu
func (s *Session) push(view entities.TrackingView) {
	for {
		select {
		case s.updates <- view:
			return
		default:
		}
		// выкидываем самое старое состояние
		select {
		case <-s.updates:
		default:
		}
	}
}
