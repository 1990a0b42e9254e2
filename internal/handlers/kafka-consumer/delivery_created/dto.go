package delivery_created

import (
	"errors"

	"dispatch/internal/entities"

	"github.com/google/uuid"
)

var errEmptyDeliveryID = errors.New("delivery_id is empty")

type createdEvent struct {
	DeliveryID uuid.UUID `json:"delivery_id"`
	OrderID    uuid.UUID `json:"order_id"`
}

func (e createdEvent) toEntity() (entities.DeliveryCreated, error) {
	if e.DeliveryID == uuid.Nil {
		return entities.DeliveryCreated{}, errEmptyDeliveryID
	}
	return entities.DeliveryCreated{
		DeliveryID: e.DeliveryID,
		OrderID:    e.OrderID,
	}, nil
}
