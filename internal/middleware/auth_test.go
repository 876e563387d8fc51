// This file contains unit tests for authentication and authorization
// middleware: session validation, role gating, and actor reconstruction.
package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrash12/laboratory-management/internal/models"
)

// loginAs wires a mock login endpoint into the app and returns the session
// cookies produced by hitting it with the given role.
func loginAs(t *testing.T, app *fiber.App, store *session.Store, role string) []*http.Cookie {
	t.Helper()

	app.Get("/login-mock", func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return err
		}
		sess.Set("user_id", 1)
		sess.Set("user_role", role)
		sess.Set("user_name", "Test User")
		sess.Set("user_email", "test@example.com")
		if err := sess.Save(); err != nil {
			return err
		}
		return c.SendString("logged in")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/login-mock", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	return resp.Cookies()
}

func withCookies(req *http.Request, cookies []*http.Cookie) *http.Request {
	for _, cookie := range cookies {
		req.Header.Add("Cookie", cookie.Name+"="+cookie.Value)
	}
	return req
}

// TestAuthRequired_WithValidSession verifies that users with valid sessions
// can access protected routes and that typed locals are populated.
func TestAuthRequired_WithValidSession(t *testing.T) {
	app := fiber.New()
	store := session.New()

	app.Use("/protected", AuthRequired(store))
	app.Get("/protected", func(c *fiber.Ctx) error {
		actor := Actor(c)
		assert.Equal(t, 1, actor.ID)
		assert.Equal(t, models.RoleUser, actor.Role)
		return c.SendString("protected content")
	})

	cookies := loginAs(t, app, store, "User")

	resp, err := app.Test(withCookies(httptest.NewRequest("GET", "/protected", nil), cookies))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, "protected content", string(body))
}

// TestAuthRequired_WithoutSession verifies that unauthenticated requests
// are redirected to login.
func TestAuthRequired_WithoutSession(t *testing.T) {
	app := fiber.New()
	store := session.New()

	app.Use("/protected", AuthRequired(store))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.SendString("protected content")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// TestAuthRequired_UnknownRole verifies that a session carrying a role this
// build does not recognize is destroyed and redirected to login.
func TestAuthRequired_UnknownRole(t *testing.T) {
	app := fiber.New()
	store := session.New()

	app.Use("/protected", AuthRequired(store))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.SendString("protected content")
	})

	cookies := loginAs(t, app, store, "superuser")

	resp, err := app.Test(withCookies(httptest.NewRequest("GET", "/protected", nil), cookies))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

// TestAdminOnly verifies role gating: Admin passes, User is refused.
func TestAdminOnly(t *testing.T) {
	tests := []struct {
		name           string
		role           string
		expectedStatus int
	}{
		{name: "admin passes", role: "Admin", expectedStatus: fiber.StatusOK},
		{name: "user refused", role: "User", expectedStatus: fiber.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			store := session.New()

			app.Use("/admin", AuthRequired(store), AdminOnly())
			app.Get("/admin", func(c *fiber.Ctx) error {
				return c.SendString("admin content")
			})

			cookies := loginAs(t, app, store, tt.role)

			resp, err := app.Test(withCookies(httptest.NewRequest("GET", "/admin", nil), cookies))
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

// TestAdminOnly_WithoutLocals verifies AdminOnly refuses requests where
// AuthRequired never ran.
func TestAdminOnly_WithoutLocals(t *testing.T) {
	app := fiber.New()

	app.Use("/admin", AdminOnly())
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendString("admin content")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}
