package eta

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryETADB struct {
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
