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

// ViewSource начальное состояние карты.
type ViewSource interface {
	Latest(ctx context.Context, callerID, orderID uuid.UUID) (*entities.TrackingView, error)
}

type Subscriber interface {
	Subscribe(topic string, fn func(realtime.Event)) *realtime.Subscription
}

// Sink принимает снимки, прошедшие throttle.
type Sink interface {
	Report(ctx context.Context, snapshot entities.LocationSnapshot) error
}

type Clock interface {
	Now() time.Time
}

type reporterLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
