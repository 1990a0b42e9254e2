//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_created_test
package delivery_created

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

type Service interface {
	RebroadcastDelivery(ctx context.Context, deliveryID uuid.UUID) (*entities.RebroadcastResult, error)
}
