// This file contains unit tests for the security middleware: hardening
// headers, injection screening, CSRF validation, and rate limiting.
package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrash12/laboratory-management/internal/security"
)

func newTestSecurityMiddleware() *SecurityMiddleware {
	return NewSecurityMiddleware(security.NewLogger(), security.DefaultSecurityConfig())
}

// TestSecureHeaders verifies every hardening header lands on the response.
func TestSecureHeaders(t *testing.T) {
	app := fiber.New()
	sm := newTestSecurityMiddleware()

	app.Use(sm.SecureHeaders())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", resp.Header.Get("X-Frame-Options"))
	assert.NotEmpty(t, resp.Header.Get("Content-Security-Policy"))
	assert.NotEmpty(t, resp.Header.Get("Strict-Transport-Security"))
	assert.NotEmpty(t, resp.Header.Get("Referrer-Policy"))
}

// TestInputValidation verifies injection payloads are refused and clean
// form bodies pass.
func TestInputValidation(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{name: "clean form body", body: "subject_name=Networks&room_id=2", expectedStatus: fiber.StatusOK},
		{name: "sql injection attempt", body: "email=' OR 1=1 --", expectedStatus: fiber.StatusBadRequest},
		{name: "script tag", body: "description=<script>alert(1)</script>", expectedStatus: fiber.StatusBadRequest},
		{name: "event handler attribute", body: "description=x onerror=alert(1)", expectedStatus: fiber.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			sm := newTestSecurityMiddleware()

			app.Use(sm.InputValidation())
			app.Post("/submit", func(c *fiber.Ctx) error {
				return c.SendString("ok")
			})

			req := httptest.NewRequest("POST", "/submit", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// TestCSRFProtection verifies POSTs without a matching token are refused
// while GETs pass untouched.
func TestCSRFProtection(t *testing.T) {
	app := fiber.New()
	store := session.New()
	sm := newTestSecurityMiddleware()

	app.Use(sm.CSRFProtection(store))
	app.Get("/page", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Post("/submit", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	t.Run("GET passes without token", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/page", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("POST without token is refused", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("POST", "/submit", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	})
}

// TestRateLimit verifies the per-identifier budget and the 429 once spent.
func TestRateLimit(t *testing.T) {
	app := fiber.New()
	sm := newTestSecurityMiddleware()

	limiter := security.NewRateLimiter(2, time.Hour)
	defer limiter.Stop()

	app.Use(sm.RateLimit(limiter, "test-endpoint"))
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "60", resp.Header.Get("Retry-After"))
}

// TestLoginRateLimit_AccountLockout verifies lockout engages after the
// configured number of failures and clears on success.
func TestLoginRateLimit_AccountLockout(t *testing.T) {
	cfg := security.DefaultSecurityConfig()
	cfg.LoginRateLimit = 1000 // Keep the IP limiter out of the way
	sm := NewSecurityMiddleware(security.NewLogger(), cfg)

	email := "victim@example.com"
	ip := "203.0.113.9"

	for i := 0; i < cfg.AccountLockoutThreshold; i++ {
		assert.NoError(t, sm.LoginRateLimit(email, ip))
		sm.RecordLoginFailure(email, ip)
	}

	err := sm.LoginRateLimit(email, ip)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "locked")

	sm.RecordLoginSuccess(email, ip, 7)
	assert.NoError(t, sm.LoginRateLimit(email, ip))
}
