//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_rebroadcast_post_test
package delivery_rebroadcast_post

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
	Rebroadcast(ctx context.Context, callerID, deliveryID uuid.UUID) (*entities.RebroadcastResult, error)
}
