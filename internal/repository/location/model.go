package location

import (
	"time"

	"github.com/google/uuid"
)

type SnapshotDB struct {
	ID        uuid.UUID
	RiderID   uuid.UUID
	OrderID   *uuid.UUID
	Lat       float64
	Lng       float64
	Heading   *float64
	Speed     *float64
	Accuracy  *float64
	CreatedAt time.Time
}
