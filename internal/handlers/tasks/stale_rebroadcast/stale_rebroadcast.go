package stale_rebroadcast

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"
)

// StaleRebroadcast повторно рассылает свободные доставки, у которых
// истекли все предложения. Один запуск обрабатывает не больше batch доставок.
type StaleRebroadcast struct {
	log     taskLogger
	service Service
	window  time.Duration
	batch   int
	timeout time.Duration
}

func New(log taskLogger, service Service, window time.Duration, batch int, timeout time.Duration) *StaleRebroadcast {
	return &StaleRebroadcast{
		log:     log.With(logger.NewField("task", "stale rebroadcast")),
		service: service,
		window:  window,
		batch:   batch,
		timeout: timeout,
	}
}

// TTL бюджет одного запуска.
func (s *StaleRebroadcast) TTL() time.Duration {
	return s.timeout
}

// Do ошибка отдельной доставки не прерывает пачку.
func (s *StaleRebroadcast) Do(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	ids, err := s.service.ListStaleDeliveries(ctx, s.window, s.batch)
	if err != nil {
		return fmt.Errorf("list stale deliveries: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}

	var broadcast, failed int
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("stale rebroadcast interrupted: %w", err)
		}

		res, err := s.service.RebroadcastDelivery(ctx, id)
		if err != nil {
			failed++
			s.log.With(
				logger.NewField("delivery_id", id.String()),
				logger.NewField("error", err),
			).Warn("rebroadcast failed")
			continue
		}
		if res.Status == entities.RebroadcastBroadcast {
			broadcast++
		}
	}

	s.log.With(
		logger.NewField("stale", len(ids)),
		logger.NewField("broadcast", broadcast),
		logger.NewField("failed", failed),
	).Info("stale deliveries processed")

	return nil
}

func (s *StaleRebroadcast) Info() string {
	return "stale rebroadcast"
}
