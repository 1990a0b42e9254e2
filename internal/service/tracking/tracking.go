package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/internal/realtime"
	"dispatch/internal/repository"
	"dispatch/pkg/geo"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

type Service struct {
	locations       LocationRepository
	etas            ETARepository
	deliveries      DeliveryRepository
	access          AccessRepository
	traffic         TrafficModel
	publisher       Publisher
	clock           Clock
	log             trackingLogger
	defaultSpeedKmh float64
}

func New(
	log trackingLogger,
	locations LocationRepository,
	etas ETARepository,
	deliveries DeliveryRepository,
	access AccessRepository,
	traffic TrafficModel,
	publisher Publisher,
	clock Clock,
	defaultSpeedKmh float64,
) *Service {
	if defaultSpeedKmh <= 0 {
		defaultSpeedKmh = geo.DefaultSpeedKmh
	}
	return &Service{
		locations:       locations,
		etas:            etas,
		deliveries:      deliveries,
		access:          access,
		traffic:         traffic,
		publisher:       publisher,
		clock:           clock,
		log:             log.With(logger.NewField("component", "tracking_service")),
		defaultSpeedKmh: defaultSpeedKmh,
	}
}

// CalculateETA считает и сохраняет оценку по явно переданным точкам.
func (s *Service) CalculateETA(ctx context.Context, callerID uuid.UUID, req entities.ETARequest) (*entities.ETACalculation, error) {
	if err := validateETARequest(req); err != nil {
		return nil, err
	}

	if callerID != req.RiderID {
		isAdmin, err := s.access.IsAdmin(ctx, callerID)
		if err != nil {
			return nil, fmt.Errorf("check admin role: %w", err)
		}
		if !isAdmin {
			return nil, ErrNotRiderOrAdmin
		}
	}

	calc := s.estimate(req)

	stored, err := s.etas.Upsert(ctx, calc.ETA)
	if err != nil {
		return nil, fmt.Errorf("upsert eta: %w", err)
	}
	calc.ETA = *stored

	s.publisher.Publish(ctx, realtime.NewETAUpserted(*stored))

	return calc, nil
}

// RecordLocation дописывает снимок. Привязать снимок к заказу может только
// назначенный на доставку райдер. Пересчет ETA попутный: его ошибки только в лог.
func (s *Service) RecordLocation(ctx context.Context, callerID uuid.UUID, snapshot entities.LocationSnapshot) (*entities.LocationSnapshot, error) {
	if err := validateSnapshot(snapshot); err != nil {
		return nil, err
	}

	var delivery *entities.Delivery
	if snapshot.OrderID != nil {
		var err error
		delivery, err = s.deliveries.GetByOrderID(ctx, *snapshot.OrderID)
		switch {
		case errors.Is(err, repository.ErrDeliveryNotFound):
			return nil, ErrNotAssignedRider
		case err != nil:
			return nil, fmt.Errorf("get delivery: %w", err)
		}
		if !delivery.IsAssignedTo(callerID) {
			return nil, ErrNotAssignedRider
		}
	}

	snapshot.RiderID = callerID
	snapshot.CreatedAt = s.clock.Now().UTC()

	stored, err := s.locations.Create(ctx, snapshot)
	if err != nil {
		return nil, fmt.Errorf("create location snapshot: %w", err)
	}

	if event, ok := realtime.NewLocationCreated(*stored); ok {
		s.publisher.Publish(ctx, event)
	}

	if delivery != nil {
		if err := s.recompute(ctx, *stored, delivery); err != nil {
			s.log.With(
				logger.NewField("order_id", stored.OrderID.String()),
				logger.NewField("rider_id", callerID.String()),
				logger.NewField("error", err),
			).Warn("eta recompute after location snapshot failed")
		}
	}

	return stored, nil
}

// Latest то, что видит участник заказа: последняя позиция райдера и ETA.
func (s *Service) Latest(ctx context.Context, callerID, orderID uuid.UUID) (*entities.TrackingView, error) {
	if orderID == uuid.Nil {
		return nil, ErrInvalidOrderID
	}

	ok, err := s.access.IsOrderParticipant(ctx, orderID, callerID)
	if err != nil {
		return nil, fmt.Errorf("check order access: %w", err)
	}
	if !ok {
		return nil, ErrNotParticipant
	}

	delivery, err := s.deliveries.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get delivery: %w", err)
	}

	view := &entities.TrackingView{
		OrderID: orderID,
		RiderID: delivery.RiderID,
		Dropoff: delivery.Dropoff,
	}
	if delivery.RiderID == nil {
		return view, nil
	}

	location, err := s.locations.Latest(ctx, *delivery.RiderID, &orderID)
	switch {
	case err == nil:
		view.Location = location
	case !errors.Is(err, repository.ErrLocationNotFound):
		return nil, fmt.Errorf("get latest location: %w", err)
	}

	eta, err := s.etas.GetByOrder(ctx, orderID)
	switch {
	case err == nil:
		view.ETA = eta
	case !errors.Is(err, repository.ErrETANotFound):
		return nil, fmt.Errorf("get eta: %w", err)
	}

	return view, nil
}

func (s *Service) recompute(ctx context.Context, snapshot entities.LocationSnapshot, delivery *entities.Delivery) error {
	if delivery.Dropoff == nil || delivery.Status == entities.DeliveryDelivered {
		return nil
	}

	req := entities.ETARequest{
		OrderID:     delivery.OrderID,
		RiderID:     snapshot.RiderID,
		Current:     snapshot.Point,
		Destination: delivery.Dropoff,
	}
	// пока заказ не забран, маршрут идет через точку забора
	if delivery.Status.Rank() < entities.DeliveryPickedUp.Rank() {
		req.Pickup = delivery.Pickup
	}

	stored, err := s.etas.Upsert(ctx, s.estimate(req).ETA)
	if err != nil {
		return fmt.Errorf("upsert eta: %w", err)
	}

	s.publisher.Publish(ctx, realtime.NewETAUpserted(*stored))
	return nil
}

func (s *Service) estimate(req entities.ETARequest) *entities.ETACalculation {
	now := s.clock.Now().UTC()

	speed := s.defaultSpeedKmh
	if req.AvgSpeedKmh != nil {
		speed = *req.AvgSpeedKmh
	}

	factor, source := s.trafficFactor(req.TrafficFactor, now)

	res := geo.EstimateETA(geo.ETAInput{
		Current:       req.Current,
		Destination:   *req.Destination,
		Pickup:        req.Pickup,
		SpeedKmh:      speed,
		TrafficFactor: factor,
		Now:           now,
	})

	return &entities.ETACalculation{
		ETA: entities.DeliveryETA{
			OrderID:             req.OrderID,
			RiderID:             req.RiderID,
			EstimatedPickupAt:   res.EstimatedPickupAt,
			EstimatedDeliveryAt: res.EstimatedDeliveryAt,
			DistanceToPickupKm:  res.DistanceToPickupKm,
			DistanceToDropoffKm: res.DistanceToDropoffKm,
			TrafficFactor:       res.TrafficFactor,
			AvgSpeedKmh:         res.SpeedKmh,
			UpdatedAt:           now,
		},
		Details: entities.ETACalculationDetails{
			DistanceKm:    res.DistanceKm,
			BaseMinutes:   res.BaseMinutes,
			TrafficFactor: res.TrafficFactor,
			AvgSpeedKmh:   res.SpeedKmh,
			TrafficSource: source,
		},
	}
}

func (s *Service) trafficFactor(client *float64, now time.Time) (float64, entities.TrafficSource) {
	if client != nil {
		return *client, entities.TrafficFromClient
	}
	return s.traffic.FactorAt(now), entities.TrafficFromTimeOfDay
}
