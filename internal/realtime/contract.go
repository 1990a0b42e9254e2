//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=realtime_test
package realtime

import (
	"context"

	"dispatch/pkg/logger"
)

// Producer внешний брокер событий (Kafka).
type Producer interface {
	SendMessage(ctx context.Context, topic, key string, value []byte) error
}

type broadcasterLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}
