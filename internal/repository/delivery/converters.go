package delivery

import (
	"dispatch/internal/entities"
	"dispatch/pkg/geo"
)

func ToDomain(d *DeliveryDB) *entities.Delivery {
	if d == nil {
		return nil
	}
	return &entities.Delivery{
		ID:             d.ID,
		OrderID:        d.OrderID,
		Pickup:         toPoint(d.PickupLat, d.PickupLng),
		PickupAddress:  d.PickupAddress,
		Dropoff:        toPoint(d.DropoffLat, d.DropoffLng),
		DropoffAddress: d.DropoffAddress,
		RiderID:        d.RiderID,
		Status:         entities.DeliveryStatus(d.Status),
		AssignedAt:     d.AssignedAt,
		PickedUpAt:     d.PickedUpAt,
		DeliveredAt:    d.DeliveredAt,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func FromDomainModify(d *entities.DeliveryModify) *DeliveryModifyDB {
	if d == nil {
		return nil
	}
	deliveryModifyDB := &DeliveryModifyDB{
		ID:          d.ID,
		RiderID:     d.RiderID,
		AssignedAt:  d.AssignedAt,
		PickedUpAt:  d.PickedUpAt,
		DeliveredAt: d.DeliveredAt,
	}

	if d.Status != nil {
		status := d.Status.String()
		deliveryModifyDB.Status = &status
	}

	return deliveryModifyDB
}

// точка есть только когда заданы обе координаты
func toPoint(lat, lng *float64) *geo.Point {
	if lat == nil || lng == nil {
		return nil
	}
	return &geo.Point{Lat: *lat, Lng: *lng}
}
