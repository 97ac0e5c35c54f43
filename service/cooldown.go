package service

import (
	"sync"
	"time"
)

// cooldownTracker is a bounded in-process map of the last time each key
// performed an action. State is deliberately not persisted: a restart
// clears all cooldowns. Expired entries are evicted on write so the map
// cannot grow without bound under churn.
type cooldownTracker struct {
	mu         sync.Mutex
	window     time.Duration
	maxEntries int
	last       map[int64]time.Time
	now        func() time.Time
}

const defaultCooldownCapacity = 4096

func newCooldownTracker(window time.Duration) *cooldownTracker {
	return &cooldownTracker{
		window:     window,
		maxEntries: defaultCooldownCapacity,
		last:       make(map[int64]time.Time),
		now:        time.Now,
	}
}

// Remaining returns how long the key must still wait, 0 if clear
func (t *cooldownTracker) Remaining(key int64) time.Duration {
	if t.window <= 0 {
		return 0
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	last, ok := t.last[key]
	if !ok {
		return 0
	}

	elapsed := t.now().Sub(last)
	if elapsed >= t.window {
		delete(t.last, key)
		return 0
	}

	return t.window - elapsed
}

// Touch records that the key acted now
func (t *cooldownTracker) Touch(key int64) {
	if t.window <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	t.last[key] = now

	if len(t.last) > t.maxEntries {
		t.evict(now)
	}
}

// evict drops expired entries; if everything is still live, drops the
// oldest entries until the map fits. Caller holds the lock.
func (t *cooldownTracker) evict(now time.Time) {
	for key, last := range t.last {
		if now.Sub(last) >= t.window {
			delete(t.last, key)
		}
	}

	for len(t.last) > t.maxEntries {
		var oldestKey int64
		var oldest time.Time
		first := true
		for key, last := range t.last {
			if first || last.Before(oldest) {
				oldestKey, oldest, first = key, last, false
			}
		}
		delete(t.last, oldestKey)
	}
}
