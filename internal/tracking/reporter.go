package tracking

import (
	"context"
	"fmt"
	"sync"

	"dispatch/internal/entities"
	"dispatch/pkg/logger"

	"github.com/google/uuid"
)

// Reporter прогоняет показания через Throttle и отдает прошедшие в Sink.
// Неудачная отправка не сдвигает точку отсчета, следующее показание пройдет.
type Reporter struct {
	log      reporterLogger
	sink     Sink
	throttle *Throttle

	mu      sync.RWMutex
	orderID *uuid.UUID
}

func NewReporter(log reporterLogger, sink Sink, throttle *Throttle) *Reporter {
	return &Reporter{
		log:      log.With(logger.NewField("component", "location_reporter")),
		sink:     sink,
		throttle: throttle,
	}
}

// SetOrder привязывает следующие снимки к заказу, nil отвязывает.
func (r *Reporter) SetOrder(orderID *uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orderID = orderID
}

func (r *Reporter) Handle(ctx context.Context, fix Fix) (bool, error) {
	if !r.throttle.ShouldReport(fix) {
		return false, nil
	}

	r.mu.RLock()
	orderID := r.orderID
	r.mu.RUnlock()

	err := r.sink.Report(ctx, entities.LocationSnapshot{
		OrderID:  orderID,
		Point:    fix.Point,
		Heading:  fix.Heading,
		Speed:    fix.Speed,
		Accuracy: fix.Accuracy,
	})
	if err != nil {
		return false, fmt.Errorf("report location: %w", err)
	}

	r.throttle.Accept(fix)
	return true, nil
}

// Run читает показания до закрытия канала или отмены контекста.
func (r *Reporter) Run(ctx context.Context, fixes <-chan Fix) {
	for {
		select {
		case <-ctx.Done():
			return
		case fix, ok := <-fixes:
			if !ok {
				return
			}
			if _, err := r.Handle(ctx, fix); err != nil {
				r.log.With(logger.NewField("error", err)).Warn("location fix dropped")
			}
		}
	}
}
