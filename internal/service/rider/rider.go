package rider

import (
	"context"
	"fmt"

	"dispatch/internal/entities"

	"github.com/google/uuid"
)

type Rider struct {
	repository Repository
}

func New(repository Repository) *Rider {
	return &Rider{
		repository: repository,
	}
}

func (s *Rider) GetRider(ctx context.Context, id uuid.UUID) (*entities.Rider, error) {
	if id == uuid.Nil {
		return nil, ErrInvalidRiderID
	}

	rider, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get rider: %w", err)
	}

	return rider, nil
}

// UpdateAvailability онлайн-статус и радиус. Только онлайн райдеры попадают в рассылку.
func (s *Rider) UpdateAvailability(ctx context.Context, callerID uuid.UUID, riderModify entities.RiderModify) (*entities.Rider, error) {
	if riderModify.ID == nil {
		riderModify.ID = &callerID
	}
	if *riderModify.ID != callerID {
		return nil, ErrNotSelf
	}

	if riderModify.IsOnline == nil && riderModify.ServiceRadiusKm == nil {
		return nil, fmt.Errorf("no fields to update: %w", ErrMissingRequiredFields)
	}
	if riderModify.ServiceRadiusKm != nil && !isValidServiceRadius(*riderModify.ServiceRadiusKm) {
		return nil, ErrInvalidServiceRadius
	}

	rider, err := s.repository.Update(ctx, riderModify)
	if err != nil {
		return nil, fmt.Errorf("failed to update rider: %w", err)
	}
	return rider, nil
}
