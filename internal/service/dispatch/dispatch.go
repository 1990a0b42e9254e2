package dispatch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"
	"dispatch/internal/repository"
	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

type Dispatch struct {
	deliveries      DeliveryRepository
	assignments     AssignmentRepository
	riders          RiderRepository
	access          AccessRepository
	deadlineFactory OfferDeadlineFactory
	publisher       Publisher
	txManager       TxManager
	clock           Clock
}

func New(
	deliveries DeliveryRepository,
	assignments AssignmentRepository,
	riders RiderRepository,
	access AccessRepository,
	deadlineFactory OfferDeadlineFactory,
	publisher Publisher,
	txManager TxManager,
	clock Clock,
) *Dispatch {
	return &Dispatch{
		deliveries:      deliveries,
		assignments:     assignments,
		riders:          riders,
		access:          access,
		deadlineFactory: deadlineFactory,
		publisher:       publisher,
		txManager:       txManager,
		clock:           clock,
	}
}

// AssignRiders рассылает предложение всем онлайн райдерам, в чей радиус попадает точка забора.
// Доставку не меняет, ноль кандидатов не ошибка.
func (d *Dispatch) AssignRiders(ctx context.Context, callerID, deliveryID uuid.UUID, pickup geo.Point) (*entities.FanOutResult, error) {
	if err := pickup.Validate(); err != nil {
		return nil, ErrInvalidCoordinates
	}

	delivery, err := d.authorizedDelivery(ctx, callerID, deliveryID)
	if err != nil {
		return nil, err
	}

	count, err := d.fanOut(ctx, delivery, pickup)
	if err != nil {
		return nil, err
	}

	return &entities.FanOutResult{
		DeliveryID:    delivery.ID,
		CountAssigned: count,
	}, nil
}

func (d *Dispatch) Rebroadcast(ctx context.Context, callerID, deliveryID uuid.UUID) (*entities.RebroadcastResult, error) {
	delivery, err := d.authorizedDelivery(ctx, callerID, deliveryID)
	if err != nil {
		return nil, err
	}

	return d.rebroadcast(ctx, delivery)
}

// RebroadcastDelivery системный вариант без проверки участника: воркер и cron.
func (d *Dispatch) RebroadcastDelivery(ctx context.Context, deliveryID uuid.UUID) (*entities.RebroadcastResult, error) {
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	return d.rebroadcast(ctx, delivery)
}

// ListStaleDeliveries свободные доставки из окна window, у которых нет живых предложений.
func (d *Dispatch) ListStaleDeliveries(ctx context.Context, window time.Duration, limit int) ([]uuid.UUID, error) {
	now := d.clock.Now().UTC()

	ids, err := d.deliveries.ListStaleUnassigned(ctx, now.Add(-window), now, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale deliveries: %w", err)
	}

	return ids, nil
}

// Claim принимает предложение. В одной транзакции: accept, гашение соседей
// и условное закрепление доставки. Проигравший гонку получает конфликт.
func (d *Dispatch) Claim(ctx context.Context, callerID, assignmentID uuid.UUID) (*entities.ClaimResult, error) {
	if !isValidID(assignmentID) {
		return nil, ErrInvalidAssignmentID
	}

	var (
		result entities.ClaimResult
		now    = d.clock.Now().UTC()
	)

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		assignment, ok, err := d.assignments.Accept(ctx, assignmentID, callerID, now)
		if err != nil {
			return fmt.Errorf("accept assignment: %w", err)
		}
		if !ok {
			return d.classify(ctx, assignmentID, callerID, now)
		}

		_, err = d.assignments.ExpireSiblings(ctx, assignment.DeliveryID, assignment.ID, now)
		if err != nil {
			return fmt.Errorf("expire sibling assignments: %w", err)
		}

		assigned, err := d.deliveries.AssignRider(ctx, assignment.DeliveryID, callerID, now)
		if err != nil {
			return fmt.Errorf("assign rider: %w", err)
		}
		if !assigned {
			return ErrDeliveryAlreadyAssigned
		}

		delivery, err := d.deliveries.GetByID(ctx, assignment.DeliveryID)
		if err != nil {
			return fmt.Errorf("get delivery: %w", err)
		}

		result = entities.ClaimResult{
			AssignmentID: assignment.ID,
			DeliveryID:   delivery.ID,
			OrderID:      delivery.OrderID,
			RiderID:      callerID,
		}
		return nil
	})
	if err != nil {
		// 40001 и нарушение индекса accepted значат, что соседний claim успел раньше
		if repository.IsConflict(err) {
			err = ErrAssignmentTaken
		}
		ClaimsTotal.WithLabelValues(claimOutcome(err)).Inc()
		return nil, err
	}

	ClaimsTotal.WithLabelValues(claimOutcome(nil)).Inc()
	d.publisher.Publish(ctx, realtime.NewAssignmentAccepted(result, now))

	return &result, nil
}

// Decline отказ от предложения. Соседи и доставка не меняются.
func (d *Dispatch) Decline(ctx context.Context, callerID, assignmentID uuid.UUID) (*entities.DeclineResult, error) {
	if !isValidID(assignmentID) {
		return nil, ErrInvalidAssignmentID
	}

	now := d.clock.Now().UTC()

	assignment, ok, err := d.assignments.Decline(ctx, assignmentID, callerID, now)
	if err != nil {
		return nil, fmt.Errorf("decline assignment: %w", err)
	}
	if !ok {
		return nil, d.classify(ctx, assignmentID, callerID, now)
	}

	return &entities.DeclineResult{
		AssignmentID: assignment.ID,
		DeliveryID:   assignment.DeliveryID,
	}, nil
}

// ListPending входящие предложения райдера, только живые.
func (d *Dispatch) ListPending(ctx context.Context, callerID uuid.UUID) ([]entities.AssignmentOffer, error) {
	offers, err := d.assignments.ListPendingByRider(ctx, callerID, d.clock.Now().UTC())
	if err != nil {
		return nil, fmt.Errorf("list pending assignments: %w", err)
	}

	return offers, nil
}

// ExpireStaleAssignments доводит хранилище до истины, которую ленивые проверки и так соблюдают.
func (d *Dispatch) ExpireStaleAssignments(ctx context.Context) (int64, error) {
	rowsAffected, err := d.assignments.ExpireStale(ctx, d.clock.Now().UTC())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("expire sweep timed out: %w", err)
		}
		return 0, fmt.Errorf("expire sweep: %w", err)
	}

	return rowsAffected, nil
}

func (d *Dispatch) authorizedDelivery(ctx context.Context, callerID, deliveryID uuid.UUID) (*entities.Delivery, error) {
	if !isValidID(deliveryID) {
		return nil, ErrInvalidDeliveryID
	}

	delivery, err := d.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	ok, err := d.access.IsDeliveryParticipant(ctx, deliveryID, callerID)
	if err != nil {
		return nil, fmt.Errorf("check delivery access: %w", err)
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	return delivery, nil
}

// порядок проверок важен: каждая следующая имеет смысл только после предыдущей
func (d *Dispatch) rebroadcast(ctx context.Context, delivery *entities.Delivery) (*entities.RebroadcastResult, error) {
	if delivery.RiderID != nil {
		RebroadcastsTotal.WithLabelValues(entities.RebroadcastAlreadyAssigned.String()).Inc()
		return &entities.RebroadcastResult{
			Status:  entities.RebroadcastAlreadyAssigned,
			RiderID: delivery.RiderID,
		}, nil
	}

	if delivery.Pickup == nil {
		return nil, ErrMissingPickup
	}

	var (
		result  *entities.RebroadcastResult
		pending int
	)
	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		pending, err = d.assignments.CountLivePending(ctx, delivery.ID, d.clock.Now().UTC())
		if err != nil {
			return fmt.Errorf("count pending assignments: %w", err)
		}
		if pending > 0 {
			return nil
		}

		count, err := d.fanOut(ctx, delivery, *delivery.Pickup)
		if err != nil {
			return err
		}

		result = &entities.RebroadcastResult{
			Status:             entities.RebroadcastBroadcast,
			AssignmentsCreated: count,
		}
		if count == 0 {
			result.Status = entities.RebroadcastNoRiders
		}
		return nil
	})
	if err != nil {
		if !repository.IsConflict(err) {
			return nil, err
		}
		// параллельная рассылка успела первой
		pending, err = d.assignments.CountLivePending(ctx, delivery.ID, d.clock.Now().UTC())
		if err != nil {
			return nil, fmt.Errorf("count pending assignments: %w", err)
		}
	}

	if result == nil {
		result = &entities.RebroadcastResult{
			Status:       entities.RebroadcastAlreadyActive,
			PendingCount: pending,
		}
	}

	RebroadcastsTotal.WithLabelValues(result.Status.String()).Inc()
	return result, nil
}

func (d *Dispatch) fanOut(ctx context.Context, delivery *entities.Delivery, pickup geo.Point) (int, error) {
	candidates, err := d.riders.ListCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list rider candidates: %w", err)
	}

	now := d.clock.Now().UTC()
	expiresAt := d.deadlineFactory.CalculateDeadline(now)

	modifies := make([]entities.AssignmentModify, 0, len(candidates))
	for _, c := range candidates {
		// у каждого райдера свой радиус
		if geo.Haversine(c.Location, pickup) > c.ServiceRadiusKm {
			continue
		}
		modifies = append(modifies, entities.AssignmentModify{
			DeliveryID: &delivery.ID,
			RiderID:    &c.RiderID,
			CreatedAt:  &now,
			ExpiresAt:  &expiresAt,
		})
	}

	if len(modifies) == 0 {
		return 0, nil
	}

	created, err := d.assignments.CreateBatch(ctx, modifies)
	if err != nil {
		return 0, fmt.Errorf("create assignments: %w", err)
	}

	AssignmentsCreatedTotal.Add(float64(len(created)))

	for _, a := range created {
		d.publisher.Publish(ctx, realtime.NewAssignmentCreated(entities.AssignmentOffer{
			Assignment:     a,
			OrderID:        delivery.OrderID,
			Pickup:         &pickup,
			PickupAddress:  delivery.PickupAddress,
			Dropoff:        delivery.Dropoff,
			DropoffAddress: delivery.DropoffAddress,
		}))
	}

	return len(created), nil
}

// classify объясняет, почему условный UPDATE не сработал. Только чтение.
func (d *Dispatch) classify(ctx context.Context, assignmentID, callerID uuid.UUID, now time.Time) error {
	assignment, err := d.assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, repository.ErrAssignmentNotFound) {
			return ErrAssignmentNotOwned
		}
		return fmt.Errorf("get assignment: %w", err)
	}

	switch {
	case assignment.RiderID != callerID:
		return ErrAssignmentNotOwned
	case assignment.Status == entities.AssignmentAccepted || assignment.Status == entities.AssignmentDeclined:
		return ErrAlreadyResponded
	case assignment.Status == entities.AssignmentExpired && assignment.RespondedAt == nil:
		// фоновая чистка гасит просроченные без responded_at, соседний claim ставит его
		return ErrAssignmentExpired
	case assignment.Status != entities.AssignmentPending:
		return ErrAssignmentTaken
	case !assignment.ExpiresAt.After(now):
		return ErrAssignmentExpired
	default:
		// строку успели поменять между UPDATE и чтением
		return ErrAssignmentTaken
	}
}

func claimOutcome(err error) string {
	switch {
	case err == nil:
		return "accepted"
	case errors.Is(err, ErrAssignmentExpired):
		return "expired"
	case errors.Is(err, ErrAssignmentNotOwned):
		return "not_owned"
	case errors.Is(err, ErrAssignmentTaken), errors.Is(err, ErrAlreadyResponded), errors.Is(err, ErrDeliveryAlreadyAssigned):
		return "conflict"
	default:
		return "error"
	}
}
