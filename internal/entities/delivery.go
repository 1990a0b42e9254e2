package entities

import (
	"time"

	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type DeliveryStatus string

const (
	DeliveryUnassigned     DeliveryStatus = "unassigned"
	DeliveryAssigned       DeliveryStatus = "assigned"
	DeliveryEnRoutePickup  DeliveryStatus = "en_route_pickup"
	DeliveryPickedUp       DeliveryStatus = "picked_up"
	DeliveryEnRouteDropoff DeliveryStatus = "en_route_dropoff"
	DeliveryDelivered      DeliveryStatus = "delivered"
)

var deliveryStatusOrder = map[DeliveryStatus]int{
	DeliveryUnassigned:     0,
	DeliveryAssigned:       1,
	DeliveryEnRoutePickup:  2,
	DeliveryPickedUp:       3,
	DeliveryEnRouteDropoff: 4,
	DeliveryDelivered:      5,
}

func (s DeliveryStatus) String() string {
	return string(s)
}

// Rank позиция статуса в жизненном цикле, -1 для неизвестного.
func (s DeliveryStatus) Rank() int {
	rank, ok := deliveryStatusOrder[s]
	if !ok {
		return -1
	}
	return rank
}

type Delivery struct {
	ID             uuid.UUID
	OrderID        uuid.UUID
	Pickup         *geo.Point
	PickupAddress  string
	Dropoff        *geo.Point
	DropoffAddress string
	RiderID        *uuid.UUID
	Status         DeliveryStatus
	AssignedAt     *time.Time
	PickedUpAt     *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (d *Delivery) IsAssignedTo(riderID uuid.UUID) bool {
	return d.RiderID != nil && *d.RiderID == riderID
}

type DeliveryModify struct {
	ID          *uuid.UUID
	RiderID     *uuid.UUID
	Status      *DeliveryStatus
	AssignedAt  *time.Time
	PickedUpAt  *time.Time
	DeliveredAt *time.Time
}
