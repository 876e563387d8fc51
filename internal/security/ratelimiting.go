// Package security provides rate limiting for abuse-prone endpoints and
// account lockout for login brute-force protection.
package security

import (
	"sync"
	"time"
)

// RateLimiter implements a token bucket per identifier (IP or user id).
// Thread-safe.
type RateLimiter struct {
	buckets map[string]*bucketState
	mu      sync.RWMutex

	maxTokens  int           // Bucket capacity
	refillRate time.Duration // Time between token refills

	cleanupTicker *time.Ticker
	stopCleanup   chan struct{}
}

// bucketState tracks the token bucket for a single identifier.
type bucketState struct {
	tokens     int
	lastRefill time.Time
	mu         sync.Mutex
}

// NewRateLimiter creates a rate limiter allowing maxTokens requests with one
// token restored every refillRate.
//
//	// Allow 5 requests per minute
//	limiter := NewRateLimiter(5, 12*time.Second)
func NewRateLimiter(maxTokens int, refillRate time.Duration) *RateLimiter {
	rl := &RateLimiter{
		buckets:     make(map[string]*bucketState),
		maxTokens:   maxTokens,
		refillRate:  refillRate,
		stopCleanup: make(chan struct{}),
	}

	rl.cleanupTicker = time.NewTicker(10 * time.Minute)
	go rl.cleanup()

	return rl
}

// Allow reports whether a request from identifier may proceed, consuming a
// token when it does.
func (rl *RateLimiter) Allow(identifier string) bool {
	rl.mu.Lock()
	bucket, exists := rl.buckets[identifier]
	if !exists {
		rl.buckets[identifier] = &bucketState{
			tokens:     rl.maxTokens - 1, // This request consumes one token
			lastRefill: time.Now(),
		}
		rl.mu.Unlock()
		return true
	}
	rl.mu.Unlock()

	bucket.mu.Lock()
	defer bucket.mu.Unlock()

	elapsed := time.Since(bucket.lastRefill)
	if refill := int(elapsed / rl.refillRate); refill > 0 {
		bucket.tokens += refill
		if bucket.tokens > rl.maxTokens {
			bucket.tokens = rl.maxTokens
		}
		bucket.lastRefill = time.Now()
	}

	if bucket.tokens > 0 {
		bucket.tokens--
		return true
	}

	return false
}

// Reset clears the rate limit state for an identifier.
func (rl *RateLimiter) Reset(identifier string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	delete(rl.buckets, identifier)
}

// cleanup periodically drops buckets inactive for over an hour.
func (rl *RateLimiter) cleanup() {
	for {
		select {
		case <-rl.cleanupTicker.C:
			rl.mu.Lock()
			now := time.Now()
			for id, bucket := range rl.buckets {
				bucket.mu.Lock()
				if now.Sub(bucket.lastRefill) > time.Hour {
					delete(rl.buckets, id)
				}
				bucket.mu.Unlock()
			}
			rl.mu.Unlock()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop halts the cleanup goroutine. Call on shutdown.
func (rl *RateLimiter) Stop() {
	rl.cleanupTicker.Stop()
	close(rl.stopCleanup)
}

// AccountLockout tracks failed login attempts per account and locks accounts
// that exceed the threshold.
type AccountLockout struct {
	lockouts map[string]*lockoutState
	mu       sync.RWMutex

	threshold int           // Failed attempts before lockout
	duration  time.Duration // How long the account stays locked
}

// lockoutState tracks failures and lockout expiry for one account.
type lockoutState struct {
	failedAttempts int
	lockedUntil    time.Time
	lastAttempt    time.Time
	mu             sync.Mutex
}

// NewAccountLockout creates a lockout tracker.
//
//	// Lock for 30 minutes after 10 failed attempts
//	lockout := NewAccountLockout(10, 30*time.Minute)
func NewAccountLockout(threshold int, duration time.Duration) *AccountLockout {
	return &AccountLockout{
		lockouts:  make(map[string]*lockoutState),
		threshold: threshold,
		duration:  duration,
	}
}

// RecordFailedAttempt records a failed login. Returns true when the attempt
// tips the account into a locked state.
func (al *AccountLockout) RecordFailedAttempt(identifier string) bool {
	al.mu.Lock()
	state, exists := al.lockouts[identifier]
	if !exists {
		al.lockouts[identifier] = &lockoutState{
			failedAttempts: 1,
			lastAttempt:    time.Now(),
		}
		al.mu.Unlock()
		return false
	}
	al.mu.Unlock()

	state.mu.Lock()
	defer state.mu.Unlock()

	// Stale failure streaks reset rather than accumulate forever.
	if time.Since(state.lastAttempt) > 30*time.Minute {
		state.failedAttempts = 1
		state.lastAttempt = time.Now()
		return false
	}

	state.failedAttempts++
	state.lastAttempt = time.Now()

	if state.failedAttempts >= al.threshold {
		state.lockedUntil = time.Now().Add(al.duration)
		return true
	}

	return false
}

// IsLocked reports whether the account is currently locked.
// An expired lockout resets the state.
func (al *AccountLockout) IsLocked(identifier string) bool {
	al.mu.RLock()
	state, exists := al.lockouts[identifier]
	al.mu.RUnlock()

	if !exists {
		return false
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if time.Now().After(state.lockedUntil) {
		state.failedAttempts = 0
		state.lockedUntil = time.Time{}
		return false
	}

	return !state.lockedUntil.IsZero()
}

// ResetAttempts clears the failure counter. Call on successful login.
func (al *AccountLockout) ResetAttempts(identifier string) {
	al.mu.Lock()
	defer al.mu.Unlock()
	delete(al.lockouts, identifier)
}

// LockoutTimeRemaining returns how long the lockout has left, 0 if unlocked.
func (al *AccountLockout) LockoutTimeRemaining(identifier string) time.Duration {
	al.mu.RLock()
	state, exists := al.lockouts[identifier]
	al.mu.RUnlock()

	if !exists {
		return 0
	}

	state.mu.Lock()
	defer state.mu.Unlock()

	if state.lockedUntil.IsZero() {
		return 0
	}

	remaining := time.Until(state.lockedUntil)
	if remaining < 0 {
		return 0
	}

	return remaining
}
