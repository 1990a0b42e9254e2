package app

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/handlers/kafka-consumer/realtime_relay"
	"dispatch/internal/handlers/tasks/assignment_expiry"
	"dispatch/internal/handlers/tasks/stale_rebroadcast"
	"dispatch/internal/handlers/ws/order_tracking"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/offer_deadline"
	"dispatch/internal/pkg/factory/trip_transition"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/realtime"
	accessRepo "dispatch/internal/repository/access"
	assignmentRepo "dispatch/internal/repository/assignment"
	deliveryRepo "dispatch/internal/repository/delivery"
	etaRepo "dispatch/internal/repository/eta"
	ledgerRepo "dispatch/internal/repository/ledger"
	locationRepo "dispatch/internal/repository/location"
	riderRepo "dispatch/internal/repository/rider"
	dispatchService "dispatch/internal/service/dispatch"
	riderService "dispatch/internal/service/rider"
	trackingService "dispatch/internal/service/tracking"
	tripService "dispatch/internal/service/trip"
	"dispatch/internal/tracking"
	"dispatch/pkg/background"
	"dispatch/pkg/geo"
	"dispatch/pkg/logger"
	"dispatch/pkg/querier"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juju/clock"
)

// staleRebroadcastTimeout бюджет одного cron запуска.
const staleRebroadcastTimeout = 30 * time.Second

func provideTxManager(pool *pgxpool.Pool) *tx.Manager {
	return tx.New(pool)
}

func provideQuerier(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *querier.Querier {
	return querier.New(pool, getter)
}

func provideClock() clock.Clock {
	return clock.WallClock
}

func provideDeliveryRepository(q *querier.Querier) *deliveryRepo.Repository {
	return deliveryRepo.New(q)
}

func provideAssignmentRepository(q *querier.Querier) *assignmentRepo.Repository {
	return assignmentRepo.New(q)
}

func provideRiderRepository(q *querier.Querier) *riderRepo.Repository {
	return riderRepo.New(q)
}

func provideAccessRepository(q *querier.Querier) *accessRepo.Repository {
	return accessRepo.New(q)
}

func provideLocationRepository(q *querier.Querier) *locationRepo.Repository {
	return locationRepo.New(q)
}

func provideETARepository(q *querier.Querier) *etaRepo.Repository {
	return etaRepo.New(q)
}

func provideLedgerRepository(q *querier.Querier) *ledgerRepo.Repository {
	return ledgerRepo.New(q)
}

func provideBroadcaster(
	log logger.Logger,
	hub *realtime.Hub,
	producer realtime.Producer,
	cfg *config.Config,
	instance InstanceID,
) *realtime.Broadcaster {
	return realtime.NewBroadcaster(log, hub, producer, cfg.Kafka.EventsTopic, string(instance))
}

func provideRealtimeRelay(log logger.Logger, hub realtime_relay.Hub, instance InstanceID) *realtime_relay.Handler {
	return realtime_relay.New(log, hub, string(instance))
}

func provideOfferDeadlineFactory(cfg *config.Config) *offer_deadline.OfferDeadlineFactory {
	return offer_deadline.New(cfg.Dispatch.OfferTTL)
}

func provideServiceDispatch(
	deliveries dispatchService.DeliveryRepository,
	assignments dispatchService.AssignmentRepository,
	riders dispatchService.RiderRepository,
	access dispatchService.AccessRepository,
	deadlineFactory dispatchService.OfferDeadlineFactory,
	publisher dispatchService.Publisher,
	txManager dispatchService.TxManager,
	clk clock.Clock,
) *dispatchService.Dispatch {
	return dispatchService.New(
		deliveries,
		assignments,
		riders,
		access,
		deadlineFactory,
		publisher,
		txManager,
		clk,
	)
}

func providePayout(cfg *config.Config) tripService.Payout {
	return tripService.Payout{
		AmountMinor: cfg.Payout.AmountMinor,
		Currency:    cfg.Payout.Currency,
	}
}

func provideServiceTrip(
	deliveries tripService.DeliveryRepository,
	ledger tripService.LedgerRepository,
	etas tripService.ETARepository,
	transitions tripService.TransitionFactory,
	publisher tripService.Publisher,
	txManager tripService.TxManager,
	clk clock.Clock,
	payout tripService.Payout,
) *tripService.Service {
	return tripService.New(
		deliveries,
		ledger,
		etas,
		transitions,
		publisher,
		txManager,
		clk,
		payout,
	)
}

func provideTransitionFactory() *trip_transition.TransitionFactory {
	return trip_transition.New()
}

// provideTrafficModel пустая зона означает UTC.
func provideTrafficModel(cfg *config.Config) (*geo.TrafficModel, error) {
	if cfg.Tracking.TrafficTimezone == "" {
		return geo.NewTrafficModel(time.UTC), nil
	}

	location, err := time.LoadLocation(cfg.Tracking.TrafficTimezone)
	if err != nil {
		return nil, fmt.Errorf("traffic timezone: %w", err)
	}
	return geo.NewTrafficModel(location), nil
}

func provideServiceTracking(
	log logger.Logger,
	locations trackingService.LocationRepository,
	etas trackingService.ETARepository,
	deliveries trackingService.DeliveryRepository,
	access trackingService.AccessRepository,
	traffic trackingService.TrafficModel,
	publisher trackingService.Publisher,
	clk clock.Clock,
	cfg *config.Config,
) *trackingService.Service {
	return trackingService.New(
		log,
		locations,
		etas,
		deliveries,
		access,
		traffic,
		publisher,
		clk,
		cfg.Tracking.DefaultSpeedKmh,
	)
}

func provideServiceRider(repository riderService.Repository) *riderService.Rider {
	return riderService.New(repository)
}

// provideTrackingSessions каждая websocket сессия получает свою подписку на хаб.
func provideTrackingSessions(
	source tracking.ViewSource,
	hub tracking.Subscriber,
	clk clock.Clock,
) order_tracking.SessionFactory {
	return order_tracking.SessionFactoryFunc(func(callerID, orderID uuid.UUID) order_tracking.Session {
		return tracking.NewSession(source, hub, clk, callerID, orderID)
	})
}

func provideVerifier(cfg *config.Config, clk clock.Clock) *auth.Verifier {
	return auth.NewVerifier(cfg.Auth.JWTSecret, clk)
}

func provideExpiryInterval(cfg *config.Config) ExpiryInterval {
	return ExpiryInterval(cfg.Tasks.AssignmentExpiryInterval)
}

func provideAssignmentExpiryTask(
	log logger.Logger,
	service assignment_expiry.Service,
	interval ExpiryInterval,
) *assignment_expiry.AssignmentExpiry {
	return assignment_expiry.New(log, service, time.Duration(interval))
}

func provideTaskList(
	assignmentExpiryTask *assignment_expiry.AssignmentExpiry,
) []background.Task {
	return []background.Task{
		assignmentExpiryTask,
	}
}

func provideBackgroundWorkers(
	ctx context.Context,
	log logger.Logger,
	clk clock.Clock,
	tasks []background.Task,
) (*background.Worker, error) {
	return background.New(ctx, log, clk, tasks)
}

func provideStaleRebroadcastTask(
	log logger.Logger,
	service stale_rebroadcast.Service,
	cfg *config.Config,
) *stale_rebroadcast.StaleRebroadcast {
	return stale_rebroadcast.New(
		log,
		service,
		cfg.Dispatch.RebroadcastWindow,
		cfg.Dispatch.RebroadcastBatch,
		staleRebroadcastTimeout,
	)
}
