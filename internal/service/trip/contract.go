//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=trip_test
package trip

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"

	"github.com/google/uuid"
)

type DeliveryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
	UpdateStatus(ctx context.Context, deliveryModify entities.DeliveryModify, expected entities.DeliveryStatus) (*entities.Delivery, error)
}

type LedgerRepository interface {
	CreateIfAbsent(ctx context.Context, entry entities.LedgerEntry) (bool, error)
}

type ETARepository interface {
	DeleteByOrder(ctx context.Context, orderID uuid.UUID) (int64, error)
}

// ApplyFn строит изменение доставки для действия райдера.
type ApplyFn func(delivery entities.Delivery, now time.Time) entities.DeliveryModify

type TransitionFactory interface {
	GetHandler(action entities.TripAction) (ApplyFn, error)
}

type Publisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

type TxManager interface {
	DoReadCommitted(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}
