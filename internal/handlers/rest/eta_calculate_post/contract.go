//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=eta_calculate_post_test
package eta_calculate_post

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
	CalculateETA(ctx context.Context, callerID uuid.UUID, req entities.ETARequest) (*entities.ETACalculation, error)
}
