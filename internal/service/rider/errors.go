package rider

import "dispatch/internal/apperr"

var (
	ErrMissingRequiredFields = apperr.New(apperr.ErrValidation, "missing required fields")
	ErrInvalidRiderID        = apperr.New(apperr.ErrValidation, "invalid rider id")
	ErrInvalidServiceRadius  = apperr.New(apperr.ErrValidation, "service_radius_km must be in (0, 50]")

	ErrNotSelf = apperr.New(apperr.ErrUnauthorized, "riders can only update themselves")
)
