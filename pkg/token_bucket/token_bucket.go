// Package token_bucket ограничение частоты запросов алгоритмом token bucket.
package token_bucket

import (
	"sync"
	"time"

	"github.com/juju/clock"
)

// Bucket один бакет: capacity токенов, пополнение refillRate токенов в секунду.
// Дробные токены копятся, поэтому медленное пополнение не теряется.
type Bucket struct {
	mu         sync.Mutex
	clock      clock.Clock
	capacity   float64
	tokens     float64
	refillRate float64
	lastRefill time.Time
}

func New(clk clock.Clock, capacity int, refillRate float64) *Bucket {
	return &Bucket{
		clock:      clk,
		capacity:   float64(capacity),
		tokens:     float64(capacity),
		refillRate: refillRate,
		lastRefill: clk.Now(),
	}
}

func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(b.clock.Now())

	if b.tokens >= 1 {
		b.tokens--
		return true
	}
	return false
}

func (b *Bucket) refill(now time.Time) {
	elapsed := now.Sub(b.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	b.tokens += elapsed * b.refillRate
	if b.tokens > b.capacity {
		b.tokens = b.capacity
	}
	b.lastRefill = now
}

// full бакет без расхода, его можно выбросить без потери состояния
func (b *Bucket) full() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refill(b.clock.Now())
	return b.tokens >= b.capacity
}

// Keyed набор бакетов по ключу (вызывающий пользователь, адрес).
// Полные бакеты, к которым не обращались idleTTL, удаляются.
type Keyed struct {
	mu         sync.Mutex
	clock      clock.Clock
	capacity   int
	refillRate float64
	idleTTL    time.Duration
	lastSweep  time.Time
	buckets    map[string]*keyedBucket
}

type keyedBucket struct {
	bucket   *Bucket
	lastSeen time.Time
}

func NewKeyed(clk clock.Clock, capacity int, refillRate float64, idleTTL time.Duration) *Keyed {
	return &Keyed{
		clock:      clk,
		capacity:   capacity,
		refillRate: refillRate,
		idleTTL:    idleTTL,
		lastSweep:  clk.Now(),
		buckets:    make(map[string]*keyedBucket),
	}
}

func (k *Keyed) Allow(key string) bool {
	k.mu.Lock()
	now := k.clock.Now()

	if now.Sub(k.lastSweep) >= k.idleTTL {
		k.sweep(now)
	}

	kb, ok := k.buckets[key]
	if !ok {
		kb = &keyedBucket{bucket: New(k.clock, k.capacity, k.refillRate)}
		k.buckets[key] = kb
	}
	kb.lastSeen = now
	k.mu.Unlock()

	return kb.bucket.Allow()
}

// Len число живых бакетов.
func (k *Keyed) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.buckets)
}

func (k *Keyed) sweep(now time.Time) {
	for key, kb := range k.buckets {
		if now.Sub(kb.lastSeen) >= k.idleTTL && kb.bucket.full() {
			delete(k.buckets, key)
		}
	}
	k.lastSweep = now
}
