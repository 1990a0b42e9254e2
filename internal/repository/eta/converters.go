package eta

import "dispatch/internal/entities"

func ToDomain(e *DeliveryETADB) *entities.DeliveryETA {
	if e == nil {
		return nil
	}
	return &entities.DeliveryETA{
		OrderID:             e.OrderID,
		RiderID:             e.RiderID,
		EstimatedPickupAt:   e.EstimatedPickupAt,
		EstimatedDeliveryAt: e.EstimatedDeliveryAt,
		DistanceToPickupKm:  e.DistanceToPickupKm,
		DistanceToDropoffKm: e.DistanceToDropoffKm,
		TrafficFactor:       e.TrafficFactor,
		AvgSpeedKmh:         e.AvgSpeedKmh,
		UpdatedAt:           e.UpdatedAt,
	}
}

func FromDomain(e *entities.DeliveryETA) *DeliveryETADB {
	if e == nil {
		return nil
	}
	return &DeliveryETADB{
		OrderID:             e.OrderID,
		RiderID:             e.RiderID,
		EstimatedPickupAt:   e.EstimatedPickupAt,
		EstimatedDeliveryAt: e.EstimatedDeliveryAt,
		DistanceToPickupKm:  e.DistanceToPickupKm,
		DistanceToDropoffKm: e.DistanceToDropoffKm,
		TrafficFactor:       e.TrafficFactor,
		AvgSpeedKmh:         e.AvgSpeedKmh,
		UpdatedAt:           e.UpdatedAt,
	}
}
