package entities

import (
	"time"

	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	AssignmentPending  AssignmentStatus = "pending"
	AssignmentAccepted AssignmentStatus = "accepted"
	AssignmentDeclined AssignmentStatus = "declined"
	AssignmentExpired  AssignmentStatus = "expired"
)

func (s AssignmentStatus) String() string {
	return string(s)
}

type Assignment struct {
	ID          uuid.UUID
	DeliveryID  uuid.UUID
	RiderID     uuid.UUID
	Status      AssignmentStatus
	CreatedAt   time.Time
	ExpiresAt   time.Time
	RespondedAt *time.Time
}

// IsLive pending и срок еще не вышел.
func (a *Assignment) IsLive(now time.Time) bool {
	return a.Status == AssignmentPending && a.ExpiresAt.After(now)
}

type AssignmentModify struct {
	DeliveryID *uuid.UUID
	RiderID    *uuid.UUID
	CreatedAt  *time.Time
	ExpiresAt  *time.Time
}

// AssignmentOffer предложение во входящих райдера вместе с точками маршрута.
type AssignmentOffer struct {
	Assignment
	OrderID        uuid.UUID
	Pickup         *geo.Point
	PickupAddress  string
	Dropoff        *geo.Point
	DropoffAddress string
}

type ClaimResult struct {
	AssignmentID uuid.UUID
	DeliveryID   uuid.UUID
	OrderID      uuid.UUID
	RiderID      uuid.UUID
}

type DeclineResult struct {
	AssignmentID uuid.UUID
	DeliveryID   uuid.UUID
}
