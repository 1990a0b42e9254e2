// Package dto тела запросов и ответов HTTP API.
package dto

import (
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type PingResponse struct {
	Message *string `json:"message,omitempty"`
}

type AssignRidersRequest struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	PickupLat  *float64  `json:"pickup_lat"`
	PickupLng  *float64  `json:"pickup_lng"`
}

type AssignRidersResponse struct {
	CountAssigned int    `json:"count_assigned"`
	Message       string `json:"message"`
}

type RebroadcastRequest struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
}

type RebroadcastResponse struct {
	Status             string     `json:"status"`
	AssignmentsCreated int        `json:"assignments_created"`
	PendingCount       int        `json:"pending_count"`
	RiderID            *uuid.UUID `json:"rider_id,omitempty"`
	Message            string     `json:"message"`
}

type AssignmentRequest struct {
	AssignmentID uuid.UUID `json:"assignment_id"`
}

type AssignmentResponse struct {
	OK         bool      `json:"ok"`
	DeliveryID uuid.UUID `json:"delivery_id"`
}

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func NewPoint(p *geo.Point) *Point {
	if p == nil {
		return nil
	}
	return &Point{Lat: p.Lat, Lng: p.Lng}
}

type AssignmentOffer struct {
	ID             uuid.UUID `json:"id"`
	DeliveryID     uuid.UUID `json:"delivery_id"`
	OrderID        uuid.UUID `json:"order_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	ExpiresAt      time.Time `json:"expires_at"`
	Pickup         *Point    `json:"pickup,omitempty"`
	PickupAddress  string    `json:"pickup_address,omitempty"`
	Dropoff        *Point    `json:"dropoff,omitempty"`
	DropoffAddress string    `json:"dropoff_address,omitempty"`
}

func NewAssignmentOffer(o entities.AssignmentOffer) AssignmentOffer {
	return AssignmentOffer{
		ID:             o.ID,
		DeliveryID:     o.DeliveryID,
		OrderID:        o.OrderID,
		Status:         o.Status.String(),
		CreatedAt:      o.CreatedAt,
		ExpiresAt:      o.ExpiresAt,
		Pickup:         NewPoint(o.Pickup),
		PickupAddress:  o.PickupAddress,
		Dropoff:        NewPoint(o.Dropoff),
		DropoffAddress: o.DropoffAddress,
	}
}

type DeliveryStatusRequest struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	Action     string    `json:"action"`
}

type DeliveryState struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

type DeliveryStatusResponse struct {
	OK       bool          `json:"ok"`
	Delivery DeliveryState `json:"delivery"`
}

type ETACalculateRequest struct {
	OrderID        uuid.UUID `json:"order_id"`
	RiderID        uuid.UUID `json:"rider_id"`
	CurrentLat     *float64  `json:"current_lat"`
	CurrentLng     *float64  `json:"current_lng"`
	DestinationLat *float64  `json:"destination_lat"`
	DestinationLng *float64  `json:"destination_lng"`
	PickupLat      *float64  `json:"pickup_lat,omitempty"`
	PickupLng      *float64  `json:"pickup_lng,omitempty"`
	AvgSpeedKmh    *float64  `json:"avg_speed_kmh,omitempty"`
	TrafficFactor  *float64  `json:"traffic_factor,omitempty"`
}

type ETA struct {
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

func NewETA(e *entities.DeliveryETA) *ETA {
	if e == nil {
		return nil
	}
	return &ETA{
		OrderID:             e.OrderID,
		RiderID:             e.RiderID,
		EstimatedPickupAt:   e.EstimatedPickupAt,
		EstimatedDeliveryAt: e.EstimatedDeliveryAt,
		DistanceToPickupKm:  e.DistanceToPickupKm,
		DistanceToDropoffKm: e.DistanceToDropoffKm,
		TrafficFactor:       e.TrafficFactor,
		AvgSpeedKmh:         e.AvgSpeedKmh,
		UpdatedAt:           e.UpdatedAt,
	}
}

type CalculationDetails struct {
	DistanceKm    float64 `json:"distance_km"`
	BaseMinutes   float64 `json:"base_minutes"`
	TrafficFactor float64 `json:"traffic_factor"`
	AvgSpeedKmh   float64 `json:"avg_speed_kmh"`
	TrafficSource string  `json:"traffic_source"`
}

type ETACalculateResponse struct {
	ETA                ETA                `json:"eta"`
	CalculationDetails CalculationDetails `json:"calculation_details"`
}

type LocationRequest struct {
	Lat      *float64   `json:"lat"`
	Lng      *float64   `json:"lng"`
	Heading  *float64   `json:"heading,omitempty"`
	Speed    *float64   `json:"speed,omitempty"`
	Accuracy *float64   `json:"accuracy,omitempty"`
	OrderID  *uuid.UUID `json:"order_id,omitempty"`
}

type Location struct {
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

func NewLocation(s *entities.LocationSnapshot) *Location {
	if s == nil {
		return nil
	}
	return &Location{
		ID:        s.ID,
		RiderID:   s.RiderID,
		OrderID:   s.OrderID,
		Lat:       s.Point.Lat,
		Lng:       s.Point.Lng,
		Heading:   s.Heading,
		Speed:     s.Speed,
		Accuracy:  s.Accuracy,
		CreatedAt: s.CreatedAt,
	}
}

type TrackingResponse struct {
	OrderID  uuid.UUID `json:"order_id"`
	Dropoff  *Point    `json:"dropoff,omitempty"`
	Location *Location `json:"location"`
	ETA      *ETA      `json:"eta"`
}

func NewTrackingResponse(v entities.TrackingView) TrackingResponse {
	return TrackingResponse{
		OrderID:  v.OrderID,
		Dropoff:  NewPoint(v.Dropoff),
		Location: NewLocation(v.Location),
		ETA:      NewETA(v.ETA),
	}
}

type Rider struct {
	ID              uuid.UUID `json:"id"`
	DisplayName     string    `json:"display_name"`
	IsOnline        bool      `json:"is_online"`
	IsVerified      bool      `json:"is_verified"`
	ServiceRadiusKm float64   `json:"service_radius_km"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewRider(r *entities.Rider) Rider {
	return Rider{
		ID:              r.ID,
		DisplayName:     r.DisplayName,
		IsOnline:        r.IsOnline,
		IsVerified:      r.IsVerified,
		ServiceRadiusKm: r.ServiceRadiusKm,
		UpdatedAt:       r.UpdatedAt,
	}
}

type RiderAvailabilityRequest struct {
	IsOnline        *bool    `json:"is_online,omitempty"`
	ServiceRadiusKm *float64 `json:"service_radius_km,omitempty"`
}
