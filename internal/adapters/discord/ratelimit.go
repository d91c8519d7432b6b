package discord

import (
	"sync"
	"time"
)

// matchLimiter evita anunciar el mismo cruce dos veces seguidas (doble click en Save).
type matchLimiter struct {
	mu   sync.Mutex
	next map[string]time.Time
	win  time.Duration
	now  func() time.Time
}

func newMatchLimiter(window time.Duration) *matchLimiter {
	return &matchLimiter{next: map[string]time.Time{}, win: window, now: time.Now}
}

func (l *matchLimiter) Allow(key string) bool {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()
	if until, ok := l.next[key]; ok && now.Before(until) {
		return false
	}
	for k, until := range l.next {
		if !now.Before(until) {
			delete(l.next, k)
		}
	}
	l.next[key] = now.Add(l.win)
	return true
}
