package assignment_expiry

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// AssignmentExpiry переводит просроченные pending предложения в expired.
type AssignmentExpiry struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func New(log taskLogger, service Service, interval time.Duration) *AssignmentExpiry {
	return &AssignmentExpiry{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (a *AssignmentExpiry) TTL() time.Duration {
	return a.interval
}

func (a *AssignmentExpiry) Do(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, a.interval)
	defer cancel()

	expired, err := a.service.ExpireStaleAssignments(ctx)
	if err != nil {
		return err
	}

	if expired > 0 {
		a.log.With(logger.NewField("expired_assignments", expired)).Info("assignment expiry")
	}
	return nil
}

func (a *AssignmentExpiry) Info() string {
	return "assignment expiry"
}
