// Package security provides centralized security configuration and utilities
// for the laboratory management application: hardening limits, rate limiting,
// input validation, and structured security logging.
package security

import (
	"time"
)

// SecurityConfig holds all security-related configuration values.
type SecurityConfig struct {
	// Secure password storage
	BcryptCost int // Cost factor for bcrypt hashing (recommended: 12)

	// Session management
	SessionTimeout    time.Duration // Session inactivity timeout
	SessionCookieName string        // Name of session cookie
	SessionSecure     bool          // Require HTTPS for session cookies
	SessionHTTPOnly   bool          // Prevent JavaScript access to session cookies
	SessionSameSite   string        // CSRF protection via SameSite attribute

	// Brute force protection
	LoginRateLimit          int           // Max login attempts per minute per IP
	AccountLockoutThreshold int           // Failed attempts before account lockout
	AccountLockoutDuration  time.Duration // How long an account stays locked

	// Input validation limits
	MaxNameLength        int // Room, subject, and equipment display names
	MaxDescriptionLength int // Issue and maintenance descriptions
	MaxBatchLaptops      int // Laptops creatable in one bulk request
	QueryTimeout         time.Duration

	// Per-endpoint rate limits
	RateLimitReportIssue int // Issue reports per minute per user
	RateLimitBorrow      int // Borrow requests per minute per user
	RateLimitAssign      int // Assignment batches per minute per admin
}

// DefaultSecurityConfig returns security configuration with recommended
// defaults, tuned for a single-lab deployment.
func DefaultSecurityConfig() *SecurityConfig {
	return &SecurityConfig{
		BcryptCost: 12,

		SessionTimeout:    8 * time.Hour,
		SessionCookieName: "labmgmt_session",
		SessionSecure:     true,
		SessionHTTPOnly:   true,
		SessionSameSite:   "Lax",

		LoginRateLimit:          5,
		AccountLockoutThreshold: 10,
		AccountLockoutDuration:  30 * time.Minute,

		MaxNameLength:        100,
		MaxDescriptionLength: 4000,
		MaxBatchLaptops:      100,
		QueryTimeout:         30 * time.Second,

		RateLimitReportIssue: 10,
		RateLimitBorrow:      5,
		RateLimitAssign:      20,
	}
}
