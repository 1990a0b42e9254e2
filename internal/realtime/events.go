package realtime

import (
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type EventType string

const (
	EventLocationCreated    EventType = "location.created"
	EventETAUpserted        EventType = "eta.upserted"
	EventETADeleted         EventType = "eta.deleted"
	EventAssignmentCreated  EventType = "assignment.created"
	EventAssignmentAccepted EventType = "assignment.accepted"
	EventDeliveryStatus     EventType = "delivery.status"
)

func (t EventType) String() string {
	return string(t)
}

// OrderTopic канал карты покупателя: снимки, ETA, принятие и статусы.
func OrderTopic(orderID uuid.UUID) string {
	return fmt.Sprintf("orders.%s.tracking", orderID)
}

// RiderTopic входящие предложения райдера.
func RiderTopic(riderID uuid.UUID) string {
	return fmt.Sprintf("riders.%s.assignments", riderID)
}

type Event struct {
	ID         uuid.UUID `json:"id"`
	Type       EventType `json:"type"`
	Topic      string    `json:"topic"`
	OccurredAt time.Time `json:"occurred_at"`
	// Origin экземпляр сервиса, опубликовавший событие в брокер.
	Origin  string `json:"origin,omitempty"`
	Payload any    `json:"payload"`
}

type LocationPayload struct {
	ID        uuid.UUID  `json:"id"`
	RiderID   uuid.UUID  `json:"rider_id"`
	OrderID   *uuid.UUID `json:"order_id,omitempty"`
	Lat       float64    `json:"lat"`
	Lng       float64    `json:"lng"`
	Heading   *float64   `json:"heading,omitempty"`
	Speed     *float64   `json:"speed,omitempty"`
	Accuracy  *float64   `json:"accuracy,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func (p LocationPayload) Snapshot() entities.LocationSnapshot {
	return entities.LocationSnapshot{
		ID:        p.ID,
		RiderID:   p.RiderID,
		OrderID:   p.OrderID,
		Point:     geo.Point{Lat: p.Lat, Lng: p.Lng},
		Heading:   p.Heading,
		Speed:     p.Speed,
		Accuracy:  p.Accuracy,
		CreatedAt: p.CreatedAt,
	}
}

type ETAPayload struct {
	OrderID             uuid.UUID  `json:"order_id"`
	RiderID             uuid.UUID  `json:"rider_id"`
	EstimatedPickupAt   *time.Time `json:"estimated_pickup_at,omitempty"`
	EstimatedDeliveryAt time.Time  `json:"estimated_delivery_at"`
	DistanceToPickupKm  *float64   `json:"distance_to_pickup_km,omitempty"`
	DistanceToDropoffKm float64    `json:"distance_to_dropoff_km"`
	TrafficFactor       float64    `json:"traffic_factor"`
	AvgSpeedKmh         float64    `json:"avg_speed_kmh"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

func NewETAPayload(eta entities.DeliveryETA) ETAPayload {
	return ETAPayload{
		OrderID:             eta.OrderID,
		RiderID:             eta.RiderID,
		EstimatedPickupAt:   eta.EstimatedPickupAt,
		EstimatedDeliveryAt: eta.EstimatedDeliveryAt,
		DistanceToPickupKm:  eta.DistanceToPickupKm,
		DistanceToDropoffKm: eta.DistanceToDropoffKm,
		TrafficFactor:       eta.TrafficFactor,
		AvgSpeedKmh:         eta.AvgSpeedKmh,
		UpdatedAt:           eta.UpdatedAt,
	}
}

func (p ETAPayload) ETA() entities.DeliveryETA {
	return entities.DeliveryETA{
		OrderID:             p.OrderID,
		RiderID:             p.RiderID,
		EstimatedPickupAt:   p.EstimatedPickupAt,
		EstimatedDeliveryAt: p.EstimatedDeliveryAt,
		DistanceToPickupKm:  p.DistanceToPickupKm,
		DistanceToDropoffKm: p.DistanceToDropoffKm,
		TrafficFactor:       p.TrafficFactor,
		AvgSpeedKmh:         p.AvgSpeedKmh,
		UpdatedAt:           p.UpdatedAt,
	}
}

type ETADeletedPayload struct {
	OrderID uuid.UUID `json:"order_id"`
}

type PointPayload struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AssignmentPayload struct {
	AssignmentID   uuid.UUID     `json:"assignment_id"`
	DeliveryID     uuid.UUID     `json:"delivery_id"`
	OrderID        uuid.UUID     `json:"order_id"`
	RiderID        uuid.UUID     `json:"rider_id"`
	ExpiresAt      time.Time     `json:"expires_at"`
	Pickup         *PointPayload `json:"pickup,omitempty"`
	PickupAddress  string        `json:"pickup_address,omitempty"`
	Dropoff        *PointPayload `json:"dropoff,omitempty"`
	DropoffAddress string        `json:"dropoff_address,omitempty"`
}

type AcceptedPayload struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
	DeliveryID   uuid.UUID `json:"delivery_id"`
	OrderID      uuid.UUID `json:"order_id"`
	RiderID      uuid.UUID `json:"rider_id"`
}

type DeliveryStatusPayload struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	OrderID    uuid.UUID `json:"order_id"`
	RiderID    uuid.UUID `json:"rider_id"`
	Status     string    `json:"status"`
}

// NewLocationCreated ok=false, если снимок не привязан к заказу: публиковать некуда.
func NewLocationCreated(s entities.LocationSnapshot) (Event, bool) {
	if s.OrderID == nil {
		return Event{}, false
	}
	return newEvent(EventLocationCreated, OrderTopic(*s.OrderID), s.CreatedAt, LocationPayload{
		ID:        s.ID,
		RiderID:   s.RiderID,
		OrderID:   s.OrderID,
		Lat:       s.Point.Lat,
		Lng:       s.Point.Lng,
		Heading:   s.Heading,
		Speed:     s.Speed,
		Accuracy:  s.Accuracy,
		CreatedAt: s.CreatedAt,
	}), true
}

func NewETAUpserted(eta entities.DeliveryETA) Event {
	return newEvent(EventETAUpserted, OrderTopic(eta.OrderID), eta.UpdatedAt, NewETAPayload(eta))
}

func NewETADeleted(orderID uuid.UUID, at time.Time) Event {
	return newEvent(EventETADeleted, OrderTopic(orderID), at, ETADeletedPayload{OrderID: orderID})
}

func NewAssignmentCreated(offer entities.AssignmentOffer) Event {
	return newEvent(EventAssignmentCreated, RiderTopic(offer.RiderID), offer.CreatedAt, AssignmentPayload{
		AssignmentID:   offer.ID,
		DeliveryID:     offer.DeliveryID,
		OrderID:        offer.OrderID,
		RiderID:        offer.RiderID,
		ExpiresAt:      offer.ExpiresAt,
		Pickup:         toPointPayload(offer.Pickup),
		PickupAddress:  offer.PickupAddress,
		Dropoff:        toPointPayload(offer.Dropoff),
		DropoffAddress: offer.DropoffAddress,
	})
}

func NewAssignmentAccepted(res entities.ClaimResult, at time.Time) Event {
	return newEvent(EventAssignmentAccepted, OrderTopic(res.OrderID), at, AcceptedPayload{
		AssignmentID: res.AssignmentID,
		DeliveryID:   res.DeliveryID,
		OrderID:      res.OrderID,
		RiderID:      res.RiderID,
	})
}

func NewDeliveryStatus(d entities.Delivery, at time.Time) Event {
	payload := DeliveryStatusPayload{
		DeliveryID: d.ID,
		OrderID:    d.OrderID,
		Status:     d.Status.String(),
	}
	if d.RiderID != nil {
		payload.RiderID = *d.RiderID
	}
	return newEvent(EventDeliveryStatus, OrderTopic(d.OrderID), at, payload)
}

func newEvent(eventType EventType, topic string, at time.Time, payload any) Event {
	return Event{
		ID:         uuid.New(),
		Type:       eventType,
		Topic:      topic,
		OccurredAt: at.UTC(),
		Payload:    payload,
	}
}

func toPointPayload(p *geo.Point) *PointPayload {
	if p == nil {
		return nil
	}
	return &PointPayload{Lat: p.Lat, Lng: p.Lng}
}
