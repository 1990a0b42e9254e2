//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=background_test
package background

import (
	"context"
	"time"

	"dispatch/pkg/logger"
)

// Task периодическая фоновая задача.
type Task interface {
	// TTL интервал между запусками.
	TTL() time.Duration

	Do(ctx context.Context) error

	// Info имя задачи для логов.
	Info() string
}

type workerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
