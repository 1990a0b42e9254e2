package entities

import "github.com/google/uuid"

// DeliveryCreated событие из конвейера заказов.
type DeliveryCreated struct {
	DeliveryID uuid.UUID
	OrderID    uuid.UUID
}
