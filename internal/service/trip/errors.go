package trip

import "dispatch/internal/apperr"

var (
	ErrInvalidDeliveryID = apperr.New(apperr.ErrValidation, "delivery_id is required")
	ErrUnknownAction     = apperr.New(apperr.ErrValidation, "unknown action")

	ErrNotAssignedRider = apperr.New(apperr.ErrUnauthorized, "only the assigned rider can update this delivery")

	ErrBackwardTransition = apperr.New(apperr.ErrConflict, "delivery cannot move back to an earlier status")
)
