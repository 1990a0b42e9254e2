package tracking

import "dispatch/internal/apperr"

var (
	ErrInvalidOrderID       = apperr.New(apperr.ErrValidation, "order_id is required")
	ErrInvalidRiderID       = apperr.New(apperr.ErrValidation, "rider_id is required")
	ErrInvalidCoordinates   = apperr.New(apperr.ErrValidation, "coordinates are out of range")
	ErrMissingDestination   = apperr.New(apperr.ErrValidation, "destination coordinates are required")
	ErrInvalidSpeed         = apperr.New(apperr.ErrValidation, "avg_speed_kmh must be positive")
	ErrInvalidTrafficFactor = apperr.New(apperr.ErrValidation, "traffic_factor must be positive")
	ErrInvalidSnapshot      = apperr.New(apperr.ErrValidation, "speed and accuracy must not be negative")

	ErrNotRiderOrAdmin = apperr.New(apperr.ErrUnauthorized, "only the rider or an admin can calculate eta")
	ErrNotParticipant  = apperr.New(apperr.ErrUnauthorized, "you are not a participant of this order")

	ErrNotAssignedRider = apperr.New(apperr.ErrUnauthorized, "you are not the rider assigned to this order")
)
