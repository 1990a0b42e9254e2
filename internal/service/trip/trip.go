package trip

import (
	"context"
	"fmt"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"

	"github.com/google/uuid"
)

// Payout фиксированная выплата райдеру за доставку.
type Payout struct {
	AmountMinor int64
	Currency    string
}

type Service struct {
	deliveries  DeliveryRepository
	ledger      LedgerRepository
	etas        ETARepository
	transitions TransitionFactory
	publisher   Publisher
	txManager   TxManager
	clock       Clock
	payout      Payout
}

func New(
	deliveries DeliveryRepository,
	ledger LedgerRepository,
	etas ETARepository,
	transitions TransitionFactory,
	publisher Publisher,
	txManager TxManager,
	clock Clock,
	payout Payout,
) *Service {
	return &Service{
		deliveries:  deliveries,
		ledger:      ledger,
		etas:        etas,
		transitions: transitions,
		publisher:   publisher,
		txManager:   txManager,
		clock:       clock,
		payout:      payout,
	}
}

// UpdateStatus двигает доставку вперед по жизненному циклу. Повтор текущего
// статуса допустим и ничего не меняет, кроме гарантии записи в ledger.
func (s *Service) UpdateStatus(
	ctx context.Context,
	callerID, deliveryID uuid.UUID,
	action entities.TripAction,
) (*entities.TransitionResult, error) {
	if deliveryID == uuid.Nil {
		return nil, ErrInvalidDeliveryID
	}

	apply, err := s.transitions.GetHandler(action)
	if err != nil {
		return nil, err
	}

	delivery, err := s.deliveries.GetByID(ctx, deliveryID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	if !delivery.IsAssignedTo(callerID) {
		return nil, ErrNotAssignedRider
	}

	now := s.clock.Now().UTC()
	modify := apply(*delivery, now)
	target := *modify.Status

	if target.Rank() < delivery.Status.Rank() {
		return nil, fmt.Errorf("%w: %s -> %s", ErrBackwardTransition, delivery.Status, target)
	}

	result := &entities.TransitionResult{
		DeliveryID: delivery.ID,
		OrderID:    delivery.OrderID,
		Status:     target,
	}

	err = s.txManager.DoReadCommitted(ctx, func(ctx context.Context) error {
		if target != delivery.Status {
			modify.ID = &delivery.ID
			modify.RiderID = &callerID
			updated, err := s.deliveries.UpdateStatus(ctx, modify, delivery.Status)
			if err != nil {
				return fmt.Errorf("update delivery status: %w", err)
			}
			delivery = updated
		}

		if target != entities.DeliveryDelivered {
			return nil
		}

		created, err := s.ledger.CreateIfAbsent(ctx, entities.LedgerEntry{
			OrderID:       delivery.OrderID,
			EntryType:     entities.LedgerRiderEarning,
			BeneficiaryID: callerID,
			AmountMinor:   s.payout.AmountMinor,
			Currency:      s.payout.Currency,
			CreatedAt:     now,
		})
		if err != nil {
			return fmt.Errorf("create ledger entry: %w", err)
		}
		result.LedgerEntryCreated = created

		if _, err := s.etas.DeleteByOrder(ctx, delivery.OrderID); err != nil {
			return fmt.Errorf("delete eta: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	TransitionsTotal.WithLabelValues(target.String()).Inc()
	if result.LedgerEntryCreated {
		LedgerEntriesCreatedTotal.Inc()
	}

	s.publisher.Publish(ctx, realtime.NewDeliveryStatus(*delivery, now))
	if target == entities.DeliveryDelivered {
		s.publisher.Publish(ctx, realtime.NewETADeleted(delivery.OrderID, now))
	}

	return result, nil
}
