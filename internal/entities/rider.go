package entities

import (
	"time"

	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type Rider struct {
	ID              uuid.UUID
	DisplayName     string
	IsOnline        bool
	IsVerified      bool
	ServiceRadiusKm float64
	UpdatedAt       time.Time
}

type RiderModify struct {
	ID              *uuid.UUID
	IsOnline        *bool
	ServiceRadiusKm *float64
}

// RiderCandidate онлайн и верифицированный райдер с последней известной позицией.
type RiderCandidate struct {
	RiderID         uuid.UUID
	ServiceRadiusKm float64
	Location        geo.Point
	LocatedAt       time.Time
}
