package tracking

import (
	"sync"
	"time"

	"dispatch/pkg/geo"
)

const (
	DefaultMinDistanceM = 30
	DefaultMinInterval  = 15 * time.Second
)

// Fix одно показание геолокации устройства.
type Fix struct {
	Point    geo.Point
	Heading  *float64
	Speed    *float64
	Accuracy *float64
	At       time.Time
}

// Throttle пропускает показание, если райдер сдвинулся дальше minDistance
// или с прошлой отправки прошло minInterval. Первое показание проходит всегда.
type Throttle struct {
	minDistanceKm float64
	minInterval   time.Duration

	mu   sync.Mutex
	last *Fix
}

func NewThrottle(minDistanceM float64, minInterval time.Duration) *Throttle {
	if minDistanceM <= 0 {
		minDistanceM = DefaultMinDistanceM
	}
	if minInterval <= 0 {
		minInterval = DefaultMinInterval
	}
	return &Throttle{
		minDistanceKm: minDistanceM / 1000,
		minInterval:   minInterval,
	}
}

func (t *Throttle) ShouldReport(fix Fix) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.last == nil {
		return true
	}
	if fix.At.Sub(t.last.At) >= t.minInterval {
		return true
	}
	return geo.Haversine(t.last.Point, fix.Point) > t.minDistanceKm
}

// Accept фиксирует отправленное показание как точку отсчета.
func (t *Throttle) Accept(fix Fix) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = &fix
}

func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.last = nil
}
