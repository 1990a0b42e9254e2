package dispatch

import "dispatch/internal/apperr"

var (
	ErrInvalidDeliveryID   = apperr.New(apperr.ErrValidation, "delivery_id is required")
	ErrInvalidAssignmentID = apperr.New(apperr.ErrValidation, "assignment_id is required")
	ErrInvalidCoordinates  = apperr.New(apperr.ErrValidation, "pickup coordinates are out of range")
	ErrMissingPickup       = apperr.New(apperr.ErrValidation, "delivery has no pickup coordinates")

	ErrNotParticipant     = apperr.New(apperr.ErrUnauthorized, "you are not a participant of this delivery")
	ErrAssignmentNotOwned = apperr.New(apperr.ErrUnauthorized, "assignment does not belong to you")

	ErrAssignmentTaken         = apperr.New(apperr.ErrConflict, "someone else already took this")
	ErrAlreadyResponded        = apperr.New(apperr.ErrConflict, "you already responded to this assignment")
	ErrDeliveryAlreadyAssigned = apperr.New(apperr.ErrConflict, "delivery already has a rider")

	ErrAssignmentExpired = apperr.New(apperr.ErrExpired, "assignment expired")
)
