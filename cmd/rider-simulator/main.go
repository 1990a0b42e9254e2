// rider-simulator ведет райдера по прямой от --from до --to и шлет позицию
// через тот же throttle, что и мобильный клиент.
package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dispatch/internal/pkg/location_client"
	"dispatch/internal/pkg/middlewares/auth"
	"dispatch/internal/tracking"
	"dispatch/pkg/geo"
	"dispatch/pkg/logger"
	"dispatch/pkg/logger/zap_adapter"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/juju/clock"
	"github.com/spf13/pflag"
)

const tokenTTL = 12 * time.Hour

type options struct {
	baseURL   string
	envFile   string
	riderID   string
	orderID   string
	from      []float64
	to        []float64
	steps     int
	tick      time.Duration
	minDistM  float64
	minPeriod time.Duration
}

func main() {
	opts, err := parseFlags(os.Args[0], os.Args[1:])
	if err != nil {
		stdlog.Fatalf("flags: %v", err)
	}

	zapLogger, err := zap_adapter.NewZapAdapter(os.Getenv("LOG_LEVEL"))
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	log := zapLogger.With(logger.NewField("app", "rider-simulator"))

	if err := run(context.Background(), log, opts); err != nil {
		log.Error("simulation failed", logger.NewField("error", err))
		os.Exit(1) //nolint:gocritic // Sync логгера не критичен
	}
}

func parseFlags(name string, args []string) (options, error) {
	var opts options

	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.StringVar(&opts.baseURL, "base-url", "http://localhost:8080", "dispatch service address")
	flags.StringVar(&opts.envFile, "env-file", ".env", "file with AUTH_JWT_SECRET")
	flags.StringVar(&opts.riderID, "rider-id", "", "rider uuid (required)")
	flags.StringVar(&opts.orderID, "order-id", "", "order uuid to attach snapshots to")
	flags.Float64SliceVar(&opts.from, "from", []float64{3.1390, 101.6869}, "start point lat,lng")
	flags.Float64SliceVar(&opts.to, "to", []float64{3.1579, 101.7123}, "finish point lat,lng")
	flags.IntVar(&opts.steps, "steps", 60, "fixes between start and finish")
	flags.DurationVar(&opts.tick, "tick", time.Second, "interval between fixes")
	flags.Float64Var(&opts.minDistM, "min-distance-m", tracking.DefaultMinDistanceM, "throttle distance")
	flags.DurationVar(&opts.minPeriod, "min-interval", tracking.DefaultMinInterval, "throttle interval")

	if err := flags.Parse(args); err != nil {
		return opts, err
	}
	if opts.riderID == "" {
		return opts, errors.New("--rider-id is required")
	}
	if len(opts.from) != 2 || len(opts.to) != 2 {
		return opts, errors.New("--from and --to take lat,lng")
	}
	if opts.steps < 1 {
		return opts, errors.New("--steps must be positive")
	}
	return opts, nil
}

func run(ctx context.Context, log logger.Logger, opts options) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// переменные процесса сильнее файла, отсутствие файла не ошибка
	_ = godotenv.Load(opts.envFile)

	riderID, err := uuid.Parse(opts.riderID)
	if err != nil {
		return fmt.Errorf("rider id: %w", err)
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		return errors.New("AUTH_JWT_SECRET is required")
	}
	token, err := auth.NewVerifier(secret, clock.WallClock).Issue(riderID, tokenTTL)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	reporter := tracking.NewReporter(
		log,
		location_client.New(opts.baseURL, token),
		tracking.NewThrottle(opts.minDistM, opts.minPeriod),
	)

	if opts.orderID != "" {
		orderID, err := uuid.Parse(opts.orderID)
		if err != nil {
			return fmt.Errorf("order id: %w", err)
		}
		reporter.SetOrder(&orderID)
	}

	from := geo.Point{Lat: opts.from[0], Lng: opts.from[1]}
	to := geo.Point{Lat: opts.to[0], Lng: opts.to[1]}
	if err := from.Validate(); err != nil {
		return fmt.Errorf("from: %w", err)
	}
	if err := to.Validate(); err != nil {
		return fmt.Errorf("to: %w", err)
	}

	log.With(
		logger.NewField("rider", riderID.String()),
		logger.NewField("distance_km", geo.Haversine(from, to)),
		logger.NewField("steps", opts.steps),
	).Info("simulation started")

	fixes := make(chan tracking.Fix)
	go drive(ctx, clock.WallClock, from, to, opts.steps, opts.tick, fixes)

	reporter.Run(ctx, fixes)

	log.Info("simulation finished")
	return nil
}

// drive линейная интерполяция, на маршруте в пару километров погрешность несущественна.
func drive(ctx context.Context, clk clock.Clock, from, to geo.Point, steps int, tick time.Duration, out chan<- tracking.Fix) {
	defer close(out)

	for i := 0; i <= steps; i++ {
		frac := float64(i) / float64(steps)
		fix := tracking.Fix{
			Point: geo.Point{
				Lat: from.Lat + (to.Lat-from.Lat)*frac,
				Lng: from.Lng + (to.Lng-from.Lng)*frac,
			},
			At: clk.Now(),
		}

		select {
		case out <- fix:
		case <-ctx.Done():
			return
		}

		if i == steps {
			return
		}
		select {
		case <-clk.After(tick):
		case <-ctx.Done():
			return
		}
	}
}
