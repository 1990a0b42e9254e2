//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=realtime_relay_test
package realtime_relay

import (
	"dispatch/internal/realtime"
	"dispatch/pkg/logger"
)

type handlerLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Hub interface {
	Publish(event realtime.Event)
}
