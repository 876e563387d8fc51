// Package middleware provides HTTP middleware for authentication and
// authorization. These functions protect routes and enforce role-based
// access control.
package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/vrash12/laboratory-management/internal/models"
)

// AuthRequired ensures the request carries an authenticated session,
// redirecting to login otherwise.
//
// Context Locals Set:
//   - user_id: The authenticated user's ID (int)
//   - user_role: The user's role (models.Role)
//   - user_name: The user's display name (string)
//   - user_email: The user's email (string)
func AuthRequired(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Get(c)
		if err != nil {
			return c.Redirect("/login")
		}

		userID := sess.Get("user_id")
		if userID == nil {
			return c.Redirect("/login")
		}

		role, err := models.ParseRole(toString(sess.Get("user_role")))
		if err != nil {
			// Session carries a role this build does not know; force re-login.
			_ = sess.Destroy()
			return c.Redirect("/login")
		}

		c.Locals("user_id", userID)
		c.Locals("user_role", role)
		c.Locals("user_name", sess.Get("user_name"))
		c.Locals("user_email", sess.Get("user_email"))

		return c.Next()
	}
}

// AdminOnly ensures the user has the Admin role. Must be chained after
// AuthRequired, which sets user_role.
func AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("user_role").(models.Role)
		if !ok || !role.IsAdmin() {
			return c.Status(fiber.StatusForbidden).SendString("Access denied: Admin only")
		}

		return c.Next()
	}
}

// Actor reconstructs the acting user from the request context. Handlers
// pass this explicitly into every service call.
func Actor(c *fiber.Ctx) models.Actor {
	id, _ := c.Locals("user_id").(int)
	role, _ := c.Locals("user_role").(models.Role)
	return models.Actor{ID: id, Role: role}
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}
