package entities

import "github.com/google/uuid"

type RebroadcastStatus string

const (
	RebroadcastBroadcast       RebroadcastStatus = "broadcast"
	RebroadcastNoRiders        RebroadcastStatus = "no_riders_available"
	RebroadcastAlreadyAssigned RebroadcastStatus = "already_assigned"
	RebroadcastAlreadyActive   RebroadcastStatus = "already_broadcasting"
)

func (s RebroadcastStatus) String() string {
	return string(s)
}

type RebroadcastResult struct {
	Status             RebroadcastStatus
	AssignmentsCreated int
	PendingCount       int
	RiderID            *uuid.UUID
}

type FanOutResult struct {
	DeliveryID    uuid.UUID
	CountAssigned int
}
