package assignment

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentDB struct {
	ID          uuid.UUID
	DeliveryID  uuid.UUID
	RiderID     uuid.UUID
	Status      string
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RespondedAt *time.Time
}

type OfferDB struct {
	AssignmentDB
	OrderID        uuid.UUID
	PickupLat      *float64
	PickupLng      *float64
	PickupAddress  string
	DropoffLat     *float64
	DropoffLng     *float64
	DropoffAddress string
}
