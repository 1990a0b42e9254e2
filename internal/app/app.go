package app

import (
	"time"

	"dispatch/internal/handlers/kafka-consumer/delivery_created"
	"dispatch/internal/handlers/kafka-consumer/realtime_relay"
	"dispatch/internal/handlers/rest/assignment_claim_post"
	"dispatch/internal/handlers/rest/assignment_decline_post"
	"dispatch/internal/handlers/rest/delivery_assign_riders_post"
	"dispatch/internal/handlers/rest/delivery_rebroadcast_post"
	"dispatch/internal/handlers/rest/delivery_status_post"
	"dispatch/internal/handlers/rest/eta_calculate_post"
	"dispatch/internal/handlers/rest/order_tracking_get"
	"dispatch/internal/handlers/rest/rider_assignments_get"
	"dispatch/internal/handlers/rest/rider_availability_put"
	"dispatch/internal/handlers/rest/rider_get"
	"dispatch/internal/handlers/rest/rider_location_post"
	"dispatch/internal/handlers/tasks/stale_rebroadcast"
	"dispatch/internal/handlers/ws/order_tracking"
	"dispatch/internal/handlers/ws/rider_assignments"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/pkg/background"
)

type (
	ExpiryInterval time.Duration
	// InstanceID метка процесса в событиях KAFKA_EVENTS_TOPIC.
	InstanceID string
)

type ServiceDispatch interface {
	delivery_assign_riders_post.Service
	delivery_rebroadcast_post.Service
	assignment_claim_post.Service
	assignment_decline_post.Service
	rider_assignments_get.Service
}

type ServiceTrip interface {
	delivery_status_post.Service
}

type ServiceTracking interface {
	eta_calculate_post.Service
	rider_location_post.Service
	order_tracking_get.Service
}

type ServiceRider interface {
	rider_get.Service
	rider_availability_put.Service
}

// Application граф HTTP сервиса (cmd/service).
type Application struct {
	ServiceDispatch   ServiceDispatch
	ServiceTrip       ServiceTrip
	ServiceTracking   ServiceTracking
	ServiceRider      ServiceRider
	Hub               rider_assignments.Subscriber
	Relay             *realtime_relay.Handler
	TrackingSessions  order_tracking.SessionFactory
	Verifier          *auth.Verifier
	BackgroundWorkers *background.Worker
}

// WorkerApp граф воркера (cmd/worker-delivery-created).
type WorkerApp struct {
	ServiceDispatch  delivery_created.Service
	StaleRebroadcast *stale_rebroadcast.StaleRebroadcast
}
