package entities

import (
	"time"

	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type LocationSnapshot struct {
	ID        uuid.UUID
	RiderID   uuid.UUID
	OrderID   *uuid.UUID
	Point     geo.Point
	Heading   *float64
	Speed     *float64
	Accuracy  *float64
	CreatedAt time.Time
}

type DeliveryETA struct {
	OrderID             uuid.UUID
	RiderID             uuid.UUID
	EstimatedPickupAt   *time.Time
	EstimatedDeliveryAt time.Time
	DistanceToPickupKm  *float64
	DistanceToDropoffKm float64
	TrafficFactor       float64
	AvgSpeedKmh         float64
	UpdatedAt           time.Time
}

type TrafficSource string

const (
	TrafficFromClient    TrafficSource = "client"
	TrafficFromTimeOfDay TrafficSource = "time_of_day"
)

type ETACalculationDetails struct {
	DistanceKm    float64
	BaseMinutes   float64
	TrafficFactor float64
	AvgSpeedKmh   float64
	TrafficSource TrafficSource
}

type ETACalculation struct {
	ETA     DeliveryETA
	Details ETACalculationDetails
}

type ETARequest struct {
	OrderID       uuid.UUID
	RiderID       uuid.UUID
	Current       geo.Point
	Destination   *geo.Point
	Pickup        *geo.Point
	AvgSpeedKmh   *float64
	TrafficFactor *float64
}

// TrackingView то, что видит покупатель на карте.
type TrackingView struct {
	OrderID  uuid.UUID
	RiderID  *uuid.UUID
	Dropoff  *geo.Point
	Location *LocationSnapshot
	ETA      *DeliveryETA
}
