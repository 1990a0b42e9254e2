//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"dispatch/internal/handlers/kafka-consumer/delivery_created"
	"dispatch/internal/handlers/kafka-consumer/realtime_relay"
	"dispatch/internal/handlers/tasks/assignment_expiry"
	"dispatch/internal/handlers/tasks/stale_rebroadcast"
	"dispatch/internal/handlers/ws/rider_assignments"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/factory/offer_deadline"
	"dispatch/internal/pkg/factory/trip_transition"
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
	"dispatch/pkg/geo"
	"dispatch/pkg/logger"
	"dispatch/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/wire"
	"github.com/jackc/pgx/v5/pgxpool"
)

var repositorySet = wire.NewSet(
	provideTxManager,
	provideQuerier,
	provideClock,

	provideDeliveryRepository,
	provideAssignmentRepository,
	provideRiderRepository,
	provideAccessRepository,
)

var dispatchSet = wire.NewSet(
	realtime.NewHub,
	provideBroadcaster,
	provideOfferDeadlineFactory,
	provideServiceDispatch,

	wire.Bind(new(dispatchService.DeliveryRepository), new(*deliveryRepo.Repository)),
	wire.Bind(new(dispatchService.AssignmentRepository), new(*assignmentRepo.Repository)),
	wire.Bind(new(dispatchService.RiderRepository), new(*riderRepo.Repository)),
	wire.Bind(new(dispatchService.AccessRepository), new(*accessRepo.Repository)),
	wire.Bind(new(dispatchService.OfferDeadlineFactory), new(*offer_deadline.OfferDeadlineFactory)),
	wire.Bind(new(dispatchService.Publisher), new(*realtime.Broadcaster)),
	wire.Bind(new(dispatchService.TxManager), new(*tx.Manager)),
)

// InitializeApplication для HTTP сервиса (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer realtime.Producer,
	cfg *config.Config,
	instance InstanceID,
) (*Application, error) {
	wire.Build(
		repositorySet,
		dispatchSet,

		provideLocationRepository,
		provideETARepository,
		provideLedgerRepository,

		providePayout,
		provideTransitionFactory,
		provideServiceTrip,

		provideTrafficModel,
		provideServiceTracking,
		provideServiceRider,

		provideTrackingSessions,
		provideRealtimeRelay,
		provideVerifier,

		provideExpiryInterval,
		provideAssignmentExpiryTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceDispatch), new(*dispatchService.Dispatch)),
		wire.Bind(new(ServiceTrip), new(*tripService.Service)),
		wire.Bind(new(ServiceTracking), new(*trackingService.Service)),
		wire.Bind(new(ServiceRider), new(*riderService.Rider)),
		wire.Bind(new(rider_assignments.Subscriber), new(*realtime.Hub)),
		wire.Bind(new(realtime_relay.Hub), new(*realtime.Hub)),

		wire.Bind(new(tripService.DeliveryRepository), new(*deliveryRepo.Repository)),
		wire.Bind(new(tripService.LedgerRepository), new(*ledgerRepo.Repository)),
		wire.Bind(new(tripService.ETARepository), new(*etaRepo.Repository)),
		wire.Bind(new(tripService.TransitionFactory), new(*trip_transition.TransitionFactory)),
		wire.Bind(new(tripService.Publisher), new(*realtime.Broadcaster)),
		wire.Bind(new(tripService.TxManager), new(*tx.Manager)),

		wire.Bind(new(trackingService.LocationRepository), new(*locationRepo.Repository)),
		wire.Bind(new(trackingService.ETARepository), new(*etaRepo.Repository)),
		wire.Bind(new(trackingService.DeliveryRepository), new(*deliveryRepo.Repository)),
		wire.Bind(new(trackingService.AccessRepository), new(*accessRepo.Repository)),
		wire.Bind(new(trackingService.TrafficModel), new(*geo.TrafficModel)),
		wire.Bind(new(trackingService.Publisher), new(*realtime.Broadcaster)),

		wire.Bind(new(riderService.Repository), new(*riderRepo.Repository)),

		wire.Bind(new(tracking.ViewSource), new(*trackingService.Service)),
		wire.Bind(new(tracking.Subscriber), new(*realtime.Hub)),

		wire.Bind(new(assignment_expiry.Service), new(*dispatchService.Dispatch)),
	)
	return &Application{}, nil
}

// InitializeWorkerApp для Kafka воркера (cmd/worker-delivery-created)
func InitializeWorkerApp(
	ctx context.Context,
	log logger.Logger,
	pool *pgxpool.Pool,
	getter *pgxv5.CtxGetter,
	producer realtime.Producer,
	cfg *config.Config,
	instance InstanceID,
) (*WorkerApp, error) {
	wire.Build(
		repositorySet,
		dispatchSet,

		provideStaleRebroadcastTask,

		wire.Struct(new(WorkerApp), "*"),

		wire.Bind(new(delivery_created.Service), new(*dispatchService.Dispatch)),
		wire.Bind(new(stale_rebroadcast.Service), new(*dispatchService.Dispatch)),
	)
	return &WorkerApp{}, nil
}
