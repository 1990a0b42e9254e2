//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=stale_rebroadcast_test
package stale_rebroadcast

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	ListStaleDeliveries(ctx context.Context, window time.Duration, limit int) ([]uuid.UUID, error)
	RebroadcastDelivery(ctx context.Context, deliveryID uuid.UUID) (*entities.RebroadcastResult, error)
}

type taskLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
