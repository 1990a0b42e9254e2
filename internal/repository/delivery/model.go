package delivery

import (
	"time"

	"github.com/google/uuid"
)

type DeliveryDB struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	PickupLat      *float64
	PickupLng      *float64
	PickupAddress  string
	DropoffLat     *float64
	DropoffLng     *float64
	DropoffAddress string
	RiderID        *uuid.UUID
	Status         string
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type DeliveryModifyDB struct {
	ID          *uuid.UUID
	RiderID     *uuid.UUID
	Status      *string
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}
