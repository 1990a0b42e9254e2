package location

import (
	"dispatch/internal/entities"
	"dispatch/pkg/geo"
)

func ToDomain(s *SnapshotDB) *entities.LocationSnapshot {
	if s == nil {
		return nil
	}
	return &entities.LocationSnapshot{
		ID:        s.ID,
		RiderID:   s.RiderID,
		OrderID:   s.OrderID,
		Point:     geo.Point{Lat: s.Lat, Lng: s.Lng},
		Heading:   s.Heading,
		Speed:     s.Speed,
		Accuracy:  s.Accuracy,
		CreatedAt: s.CreatedAt,
	}
}

func FromDomain(s *entities.LocationSnapshot) *SnapshotDB {
	if s == nil {
		return nil
	}
	return &SnapshotDB{
		ID:        s.ID,
		RiderID:   s.RiderID,
		OrderID:   s.OrderID,
		Lat:       s.Point.Lat,
		Lng:       s.Point.Lng,
		Heading:   s.Heading,
		Speed:     s.Speed,
		Accuracy:  s.Accuracy,
		CreatedAt: s.CreatedAt,
	}
}
