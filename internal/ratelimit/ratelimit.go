package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// MultiKeyLimiter manages rate limiters for the public waitlist endpoints
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewMultiKeyLimiter creates a new multi-key limiter with default limits
func NewMultiKeyLimiter() *MultiKeyLimiter {
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			"ip_register":    NewLimiter(time.Hour, 10),   // 10 signups per IP per hour
			"email_register": NewLimiter(time.Hour, 5),    // 5 signup attempts per email per hour
			"ip_check":       NewLimiter(time.Minute, 60), // 60 availability checks per IP per minute
		},
	}
}

// NewCustomMultiKeyLimiter creates a limiter with custom limits
func NewCustomMultiKeyLimiter(ipRegisterLimit, emailRegisterLimit, ipCheckLimit int) *MultiKeyLimiter {
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			"ip_register":    NewLimiter(time.Hour, ipRegisterLimit),
			"email_register": NewLimiter(time.Hour, emailRegisterLimit),
			"ip_check":       NewLimiter(time.Minute, ipCheckLimit),
		},
	}
}

// CheckRegistration verifies if a signup can be submitted from the given IP and email
func (m *MultiKeyLimiter) CheckRegistration(ip, email string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_register"].Allow(ip) {
		return fmt.Errorf("too many signups from this IP address, please try again later")
	}

	if email != "" && !m.limiters["email_register"].Allow(email) {
		return fmt.Errorf("too many signup attempts for this email address, please try again later")
	}

	return nil
}

// CheckAvailability verifies if an availability check is allowed from the given IP
func (m *MultiKeyLimiter) CheckAvailability(ip string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_check"].Allow(ip) {
		return fmt.Errorf("too many availability checks, please slow down")
	}

	return nil
}
