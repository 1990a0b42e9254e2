package trip_transition

import (
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/service/trip"
)

type TransitionFactory struct{}

func New() *TransitionFactory {
	return &TransitionFactory{}
}

func (f *TransitionFactory) GetHandler(action entities.TripAction) (trip.ApplyFn, error) {
	switch action {
	case entities.ActionStartPickup:
		return to(entities.DeliveryEnRoutePickup), nil
	case entities.ActionPickedUp:
		return f.pickedUp, nil
	case entities.ActionStartDropoff:
		return to(entities.DeliveryEnRouteDropoff), nil
	case entities.ActionDelivered:
		return f.delivered, nil
	default:
		return nil, fmt.Errorf("%w: %s", trip.ErrUnknownAction, action)
	}
}

func (f *TransitionFactory) pickedUp(_ entities.Delivery, now time.Time) entities.DeliveryModify {
	status := entities.DeliveryPickedUp
	return entities.DeliveryModify{
		Status:     &status,
		PickedUpAt: &now,
	}
}

func (f *TransitionFactory) delivered(_ entities.Delivery, now time.Time) entities.DeliveryModify {
	status := entities.DeliveryDelivered
	return entities.DeliveryModify{
		Status:      &status,
		DeliveredAt: &now,
	}
}

func to(status entities.DeliveryStatus) trip.ApplyFn {
	return func(_ entities.Delivery, _ time.Time) entities.DeliveryModify {
		return entities.DeliveryModify{Status: &status}
	}
}
