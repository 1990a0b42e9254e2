//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=rider_assignments_test
package rider_assignments

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

type Subscriber interface {
	Subscribe(topic string, fn func(realtime.Event)) *realtime.Subscription
}
