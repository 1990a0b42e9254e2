package assignment

import (
	"dispatch/internal/entities"
	"dispatch/pkg/geo"
)

func ToDomain(a *AssignmentDB) *entities.Assignment {
	if a == nil {
		return nil
	}
	return &entities.Assignment{
		ID:          a.ID,
		DeliveryID:  a.DeliveryID,
		RiderID:     a.RiderID,
		Status:      entities.AssignmentStatus(a.Status),
		CreatedAt:   a.CreatedAt,
		ExpiresAt:   a.ExpiresAt,
		RespondedAt: a.RespondedAt,
	}
}

func ToOfferDomain(o *OfferDB) *entities.AssignmentOffer {
	if o == nil {
		return nil
	}
	offer := &entities.AssignmentOffer{
		Assignment:     *ToDomain(&o.AssignmentDB),
		OrderID:        o.OrderID,
		PickupAddress:  o.PickupAddress,
		DropoffAddress: o.DropoffAddress,
	}
	if o.PickupLat != nil && o.PickupLng != nil {
		offer.Pickup = &geo.Point{Lat: *o.PickupLat, Lng: *o.PickupLng}
	}
	if o.DropoffLat != nil && o.DropoffLng != nil {
		offer.Dropoff = &geo.Point{Lat: *o.DropoffLat, Lng: *o.DropoffLng}
	}
	return offer
}
