//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_assign_riders_post_test
package delivery_assign_riders_post

import (
	"context"

	"dispatch/internal/entities"
	"dispatch/pkg/geo"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	AssignRiders(ctx context.Context, callerID, deliveryID uuid.UUID, pickup geo.Point) (*entities.FanOutResult, error)
}
