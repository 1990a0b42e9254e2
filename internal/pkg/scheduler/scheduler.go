// Package scheduler запуск задач по cron выражению поверх robfig/cron.
package scheduler

import (
	"context"
	"fmt"

	"dispatch/pkg/logger"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	log  schedulerLogger
	cron *cron.Cron
}

// New запуск, не закончившийся к следующему тику, пропускает этот тик.
// Паника задачи логируется и не роняет планировщик.
func New(log schedulerLogger) *Scheduler {
	log = log.With(logger.NewField("component", "scheduler"))
	adapter := cronLogger{log: log}

	return &Scheduler{
		log: log,
		cron: cron.New(
			cron.WithLogger(adapter),
			cron.WithChain(cron.Recover(adapter), cron.SkipIfStillRunning(adapter)),
		),
	}
}

// Add регистрирует задачу. schedule в стандартном cron формате или дескриптор вида "@every 30s".
// ctx родитель для каждого запуска.
func (s *Scheduler) Add(ctx context.Context, schedule string, job Job) error {
	jobLog := s.log.With(logger.NewField("job", job.Info()))

	_, err := s.cron.AddFunc(schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, job.TTL())
		defer cancel()

		if err := job.Do(runCtx); err != nil {
			jobLog.Error("scheduled job failed", logger.NewField("error", err))
		}
	})
	if err != nil {
		return fmt.Errorf("schedule %q with %q: %w", job.Info(), schedule, err)
	}

	jobLog.Info("job scheduled", logger.NewField("schedule", schedule))
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop ждет завершения текущих запусков, но не дольше ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("scheduler stop: %w", ctx.Err())
	}
}

// cronLogger cron.Logger поверх логгера приложения.
type cronLogger struct {
	log schedulerLogger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	// cron пишет о каждом тике, это шум
	if msg == "wake" || msg == "run" {
		return
	}
	l.log.Info("cron: "+msg, fields(keysAndValues)...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error("cron: "+msg, append(fields(keysAndValues), logger.NewField("error", err))...)
}

func fields(keysAndValues []interface{}) []logger.Field {
	out := make([]logger.Field, 0, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		out = append(out, logger.NewField(fmt.Sprint(keysAndValues[i]), keysAndValues[i+1]))
	}
	return out
}
