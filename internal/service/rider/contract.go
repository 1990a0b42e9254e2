//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_test
package rider

import (
	"context"

	"dispatch/internal/entities"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Rider, error)
	Update(ctx context.Context, riderModifyEntity entities.RiderModify) (*entities.Rider, error)
}
