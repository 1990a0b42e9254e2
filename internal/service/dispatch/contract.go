//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=dispatch_test
package dispatch

import (
	"context"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"

	"github.com/google/uuid"
)

type DeliveryRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Delivery, error)
	AssignRider(ctx context.Context, deliveryID, riderID uuid.UUID, assignedAt time.Time) (bool, error)
	ListStaleUnassigned(ctx context.Context, createdAfter, now time.Time, limit int) ([]uuid.UUID, error)
}

type AssignmentRepository interface {
	CreateBatch(ctx context.Context, assignments []entities.AssignmentModify) ([]entities.Assignment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Assignment, error)
	Accept(ctx context.Context, id, riderID uuid.UUID, now time.Time) (*entities.Assignment, bool, error)
	Decline(ctx context.Context, id, riderID uuid.UUID, now time.Time) (*entities.Assignment, bool, error)
	ExpireSiblings(ctx context.Context, deliveryID, acceptedID uuid.UUID, now time.Time) (int64, error)
	CountLivePending(ctx context.Context, deliveryID uuid.UUID, now time.Time) (int, error)
	ExpireStale(ctx context.Context, now time.Time) (int64, error)
	ListPendingByRider(ctx context.Context, riderID uuid.UUID, now time.Time) ([]entities.AssignmentOffer, error)
}

type RiderRepository interface {
	ListCandidates(ctx context.Context) ([]entities.RiderCandidate, error)
}

type AccessRepository interface {
	IsDeliveryParticipant(ctx context.Context, deliveryID, userID uuid.UUID) (bool, error)
}

type OfferDeadlineFactory interface {
	CalculateDeadline(baseTime time.Time) time.Time
}

type Publisher interface {
	Publish(ctx context.Context, event realtime.Event)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type Clock interface {
	Now() time.Time
}
