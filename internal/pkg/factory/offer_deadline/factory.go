package offer_deadline

import (
	"time"
)

const defaultOfferTTL = 60 * time.Second

type OfferDeadlineFactory struct {
	ttl time.Duration
}

func New(ttl time.Duration) *OfferDeadlineFactory {
	if ttl <= 0 {
		ttl = defaultOfferTTL
	}
	return &OfferDeadlineFactory{ttl: ttl}
}

// CalculateDeadline до этого момента предложение можно принять.
func (f *OfferDeadlineFactory) CalculateDeadline(baseTime time.Time) time.Time {
	return baseTime.Add(f.ttl)
}
