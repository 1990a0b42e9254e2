package entities

import "github.com/google/uuid"

type TripAction string

const (
	ActionStartPickup  TripAction = "start_pickup"
	ActionPickedUp     TripAction = "picked_up"
	ActionStartDropoff TripAction = "start_dropoff"
	ActionDelivered    TripAction = "delivered"
)

func (a TripAction) String() string {
	return string(a)
}

type TransitionResult struct {
	DeliveryID uuid.UUID
	OrderID    uuid.UUID
	Status     DeliveryStatus
	// LedgerEntryCreated false при повторном delivered.
	LedgerEntryCreated bool
}
