//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_location_post_test
package rider_location_post

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
	RecordLocation(ctx context.Context, callerID uuid.UUID, snapshot entities.LocationSnapshot) (*entities.LocationSnapshot, error)
}
