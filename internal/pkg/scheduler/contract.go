//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=scheduler_test
package scheduler

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// Job задача по расписанию. TTL ограничивает время одного запуска.
type Job interface {
	TTL() time.Duration
	Do(ctx context.Context) error
	Info() string
}

type schedulerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
