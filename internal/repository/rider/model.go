package rider

import (
	"time"

	"github.com/google/uuid"
)

type RiderDB struct {
	ID              uuid.UUID
	DisplayName     string
	IsOnline        bool
	IsVerified      bool
	ServiceRadiusKm float64
	UpdatedAt       time.Time
}

type RiderModifyDB struct {
	ID              *uuid.UUID
	IsOnline        *bool
	ServiceRadiusKm *float64
}

type CandidateDB struct {
	RiderID         uuid.UUID
	ServiceRadiusKm float64
	Lat             float64
	Lng             float64
	LocatedAt       time.Time
}
