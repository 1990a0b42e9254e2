//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=tracking_test
package tracking

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type LocationRepository interface {
	Create(ctx context.Context, snapshot entities.LocationSnapshot) (*entities.LocationSnapshot, error)
	Latest(ctx context.Context, riderID uuid.UUID, orderID *uuid.UUID) (*entities.LocationSnapshot, error)
}

type ETARepository interface {
	Upsert(ctx context.Context, eta entities.DeliveryETA) (*entities.DeliveryETA, error)
	GetByOrder(ctx context.Context, orderID uuid.UUID) (*entities.DeliveryETA, error)
}

type DeliveryRepository interface {
	GetByOrderID(ctx context.Context, orderID uuid.UUID) (*entities.Delivery, error)
}

type AccessRepository interface {
	IsOrderParticipant(ctx context.Context, orderID, userID uuid.UUID) (bool, error)
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}

type TrafficModel interface {
	FactorAt(t time.Time) float64
}

type Publisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

type Clock interface {
	Now() time.Time
}

type trackingLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
