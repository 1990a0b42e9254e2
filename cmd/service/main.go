package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	application "dispatch/internal/app"
	"dispatch/internal/handlers/rest/assignment_claim_post"
	"dispatch/internal/handlers/rest/assignment_decline_post"
	"dispatch/internal/handlers/rest/delivery_assign_riders_post"
	"dispatch/internal/handlers/rest/delivery_rebroadcast_post"
	"dispatch/internal/handlers/rest/delivery_status_post"
	"dispatch/internal/handlers/rest/eta_calculate_post"
	"dispatch/internal/handlers/rest/healthcheck_head"
	"dispatch/internal/handlers/rest/order_tracking_get"
	"dispatch/internal/handlers/rest/ping_get"
	"dispatch/internal/handlers/rest/rider_assignments_get"
	"dispatch/internal/handlers/rest/rider_availability_put"
	"dispatch/internal/handlers/rest/rider_get"
	"dispatch/internal/handlers/rest/rider_location_post"
	"dispatch/internal/handlers/ws/order_tracking"
	"dispatch/internal/handlers/ws/rider_assignments"
	"dispatch/internal/pkg/config"
	"dispatch/internal/pkg/dotenv"
	"dispatch/internal/pkg/kafka"
	metrics_system "dispatch/internal/pkg/metrics"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/pkg/middlewares/graceful_shutdown"
	"dispatch/internal/pkg/middlewares/metrics"
	"dispatch/internal/pkg/middlewares/rate_limiter"
	"dispatch/internal/pkg/middlewares/recovery"
	"dispatch/internal/pkg/middlewares/timeout"
	"dispatch/internal/pkg/postgres"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"
	"dispatch/pkg/token_bucket"

	"github.com/IBM/sarama"
	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/juju/clock"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	systemMetricsInterval = 5 * time.Second
	limiterIdleTTL        = 10 * time.Minute
)

func main() {
	envLoaded, envErr := dotenv.Load(os.Args[0], os.Args[1:])

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With(logger.NewField("app", "dispatch-service"))

	if envErr != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", envErr))
		return
	}
	if !envLoaded {
		mainLog.Warn("No .env file found, using system environment variables")
	}

	mainLog.Info("starting dispatch service")

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx наследуются от context.Background() намеренно, это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	instance := instanceID("service")
	runLog := log.With(logger.NewField("instance", instance))

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	producer, err := kafka.NewProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			runLog.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}()

	businessApp, err := application.InitializeApplication(
		ctx,
		log,
		pool,
		pgxv5.DefaultCtxGetter,
		producer,
		cfg,
		application.InstanceID(instance),
	)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	metrics_system.StartSystemMetricsCollector(ctx, clock.WallClock, systemMetricsInterval)

	relay, err := kafka.NewRelayConsumer(ctx, log, &cfg.Kafka, instance, businessApp.Relay)
	if err != nil {
		return fmt.Errorf("realtime relay: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	relayErr := make(chan error, 1)
	go func() {
		defer close(relayErr)
		if err := relay.Start(ongoingCtx); err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
				runLog.Info("realtime relay stopped")
				return
			}
			relayErr <- err
		}
	}()

	// основной http сервер
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: initRouter(ongoingCtx, log, &isShuttingDown, businessApp, pool, cfg.Server),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		// WriteTimeout не задан: websocket соединения живут дольше любого запроса,
		// REST ограничен timeout middleware.
		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		defer close(serverErr)
		runLog.Info("server starting",
			logger.NewField("port", cfg.Server.Port),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()
	// основной http сервер

	// pprof http сервер
	var pprofServer *http.Server
	var pprofServerErr chan error
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    fmt.Sprintf(":%s", cfg.Server.PprofPort),
			Handler: initPprofRouter(&isShuttingDown, pool),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}

		pprofServerErr = make(chan error, 1)
		go func() {
			defer close(pprofServerErr)
			runLog.Info("pprof server starting",
				logger.NewField("port", cfg.Server.PprofPort),
			)
			if err := pprofServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				pprofServerErr <- err
			}
		}()
	}
	// pprof http сервер

	select {
	case <-ctx.Done():
		runLog.Info("Shutdown signal received")
	case err := <-serverErr:
		return fmt.Errorf("server: %w", err)
	case err := <-relayErr:
		return fmt.Errorf("realtime relay: %w", err)
	case err := <-pprofServerErr: // if !cfg.Server.PprofEnabled будет nil по умолчанию, и данный кейс будет проигнорирован
		return fmt.Errorf("pprof server: %w", err)
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var shutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		shutdownErr = pprofServer.Shutdown(shutdownCtx)
		if shutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", shutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	// websocket соединения не входят в Shutdown, их закрывает отмена ongoingCtx
	stopOngoingGracefully()
	if err != nil || shutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	if err := relay.Close(); err != nil {
		runLog.Error("failed to close realtime relay", logger.NewField("error", err))
	}

	businessApp.BackgroundWorkers.Wait()

	runLog.Info("Server stopped")
	return nil
}

func initRouter(
	ongoingCtx context.Context,
	log logger.Logger,
	isShuttingDown *atomic.Bool,
	app *application.Application,
	pool *pgxpool.Pool,
	cfg config.HTTPServer,
) http.Handler {
	router := mux.NewRouter()

	router.Use(graceful_shutdown.Middleware(isShuttingDown, ongoingCtx))
	router.Use(recovery.Middleware(log))
	router.Use(metrics.Middleware(log))

	router.Handle("/metrics", promhttp.Handler())
	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods("HEAD")
	router.Handle("/ping", ping_get.New(log)).Methods("GET")

	limiter := token_bucket.NewKeyed(clock.WallClock, cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst), limiterIdleTTL)

	api := router.NewRoute().Subrouter()
	api.Use(auth.Middleware(log, app.Verifier))
	api.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, limiter))
	api.Use(timeout.Middleware(cfg.RequestTimeout))

	api.Handle("/delivery/assign-riders", delivery_assign_riders_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/delivery/rebroadcast", delivery_rebroadcast_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/delivery/status", delivery_status_post.New(log, app.ServiceTrip)).Methods("POST")

	api.Handle("/assignment/claim", assignment_claim_post.New(log, app.ServiceDispatch)).Methods("POST")
	api.Handle("/assignment/decline", assignment_decline_post.New(log, app.ServiceDispatch)).Methods("POST")

	// /rider/assignments и /rider/location раньше /rider/{id}
	api.Handle("/rider/assignments", rider_assignments_get.New(log, app.ServiceDispatch)).Methods("GET")
	api.Handle("/rider/location", rider_location_post.New(log, app.ServiceTracking)).Methods("POST")
	api.Handle("/rider/{id}", rider_get.New(log, app.ServiceRider)).Methods("GET")
	api.Handle("/rider", rider_availability_put.New(log, app.ServiceRider)).Methods("PUT")

	api.Handle("/eta/calculate", eta_calculate_post.New(log, app.ServiceTracking)).Methods("POST")
	api.Handle("/tracking/{order_id}", order_tracking_get.New(log, app.ServiceTracking)).Methods("GET")

	api.Handle("/realtime/orders/{order_id}", order_tracking.New(log, app.TrackingSessions)).Methods("GET")
	api.Handle("/realtime/rider/assignments", rider_assignments.New(log, app.Hub)).Methods("GET")

	return router
}

func initPprofRouter(isShuttingDown *atomic.Bool, pool *pgxpool.Pool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/healthcheck", healthcheck_head.New(isShuttingDown, pool)).Methods("HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}

// instanceID метка процесса для consumer group релея и origin событий.
func instanceID(role string) string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "unknown"
	}
	return fmt.Sprintf("%s-%s-%s", role, host, uuid.NewString()[:8])
}
