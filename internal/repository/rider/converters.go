package rider

import (
	"dispatch/internal/entities"
	"dispatch/pkg/geo"
)

func ToDomain(r *RiderDB) *entities.Rider {
	if r == nil {
		return nil
	}
	return &entities.Rider{
		ID:              r.ID,
		DisplayName:     r.DisplayName,
		IsOnline:        r.IsOnline,
		IsVerified:      r.IsVerified,
		ServiceRadiusKm: r.ServiceRadiusKm,
		UpdatedAt:       r.UpdatedAt,
	}
}

func FromDomainModify(riderModify *entities.RiderModify) *RiderModifyDB {
	if riderModify == nil {
		return nil
	}
	return &RiderModifyDB{
		ID:              riderModify.ID,
		IsOnline:        riderModify.IsOnline,
		ServiceRadiusKm: riderModify.ServiceRadiusKm,
	}
}

func ToCandidateDomainList(candidatesDB []CandidateDB) []entities.RiderCandidate {
	if len(candidatesDB) == 0 {
		return []entities.RiderCandidate{}
	}

	result := make([]entities.RiderCandidate, len(candidatesDB))
	for i, c := range candidatesDB {
		result[i] = entities.RiderCandidate{
			RiderID:         c.RiderID,
			ServiceRadiusKm: c.ServiceRadiusKm,
			Location:        geo.Point{Lat: c.Lat, Lng: c.Lng},
			LocatedAt:       c.LocatedAt,
		}
	}
	return result
}
