package tracking

import (
	"dispatch/internal/entities"
	"dispatch/pkg/geo"

	"github.com/google/uuid"
)

func validatePoints(points ...*geo.Point) error {
	for _, p := range points {
		if p == nil {
			continue
		}
		if err := p.Validate(); err != nil {
			return ErrInvalidCoordinates
		}
	}
	return nil
}

func isPositive(v *float64) bool {
	return v == nil || *v > 0
}

func isNonNegative(v *float64) bool {
	return v == nil || *v >= 0
}

func validateETARequest(req entities.ETARequest) error {
	switch {
	case req.OrderID == uuid.Nil:
		return ErrInvalidOrderID
	case req.RiderID == uuid.Nil:
		return ErrInvalidRiderID
	case req.Destination == nil:
		return ErrMissingDestination
	case !isPositive(req.AvgSpeedKmh):
		return ErrInvalidSpeed
	case !isPositive(req.TrafficFactor):
		return ErrInvalidTrafficFactor
	}

	return validatePoints(&req.Current, req.Destination, req.Pickup)
}

func validateSnapshot(s entities.LocationSnapshot) error {
	if err := validatePoints(&s.Point); err != nil {
		return err
	}
	if !isNonNegative(s.Speed) || !isNonNegative(s.Accuracy) {
		return ErrInvalidSnapshot
	}
	return nil
}
