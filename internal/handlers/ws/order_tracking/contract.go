//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_tracking_test
package order_tracking

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Session interface {
	Start(ctx context.Context) (entities.TrackingView, error)
	Updates() <-chan entities.TrackingView
	Close()
}

type SessionFactory interface {
	NewSession(callerID, orderID uuid.UUID) Session
}
