// Package handlers implements HTTP request handlers for the laboratory
// management application. This file handles authentication operations:
// login, logout, and session lifecycle.
package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/vrash12/laboratory-management/internal/middleware"
	"github.com/vrash12/laboratory-management/internal/security"
	"github.com/vrash12/laboratory-management/internal/services"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	store       *session.Store
	authService *services.AuthService
	secMW       *middleware.SecurityMiddleware
	logger      *security.Logger
}

// NewAuthHandler creates a new instance of AuthHandler.
func NewAuthHandler(store *session.Store, secMW *middleware.SecurityMiddleware, logger *security.Logger, cfg *security.SecurityConfig) *AuthHandler {
	return &AuthHandler{
		store:       store,
		authService: services.NewAuthService(cfg),
		secMW:       secMW,
		logger:      logger,
	}
}

// ShowLogin renders the login page for unauthenticated users.
//
// Template: web/templates/login.html with layouts/blank layout
func (h *AuthHandler) ShowLogin(c *fiber.Ctx) error {
	return c.Render("login", fiber.Map{
		"Title": "Login - Laboratory Management",
	}, "layouts/blank")
}

// Login authenticates credentials and creates a session.
//
// Form Data:
//   - email: User's email address
//   - password: Plaintext password, compared against the stored bcrypt hash
//
// Side Effects:
//   - Creates session with user_id, user_email, user_name, user_role
//   - Redirects to /admin/dashboard for admins, /user/dashboard otherwise
//   - Records rate-limit and lockout bookkeeping for the account
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	email := c.FormValue("email")
	password := c.FormValue("password")

	if err := h.secMW.LoginRateLimit(email, c.IP()); err != nil {
		return c.Render("login", fiber.Map{
			"Title": "Login - Laboratory Management",
			"Error": err.Error(),
		}, "layouts/blank")
	}

	user, err := h.authService.Authenticate(c.Context(), email, password)
	if err != nil {
		h.secMW.RecordLoginFailure(email, c.IP())

		return c.Render("login", fiber.Map{
			"Title": "Login - Laboratory Management",
			"Error": "Invalid email or password",
		}, "layouts/blank")
	}

	sess, err := h.store.Get(c)
	if err != nil {
		return err
	}

	sess.Set("user_id", user.ID)
	sess.Set("user_email", user.Email)
	sess.Set("user_name", user.FullName)
	sess.Set("user_role", string(user.Role))

	if err := sess.Save(); err != nil {
		return err
	}

	h.secMW.RecordLoginSuccess(user.Email, c.IP(), user.ID)

	if user.Role.IsAdmin() {
		return c.Redirect("/admin/dashboard")
	}
	return c.Redirect("/user/dashboard")
}

// Logout destroys the session and redirects to the login page.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	sess, err := h.store.Get(c)
	if err != nil {
		return c.Redirect("/login")
	}

	userID, _ := sess.Get("user_id").(int)
	userEmail, _ := sess.Get("user_email").(string)

	if userID != 0 {
		h.logger.SecurityEvent(security.EventLogout, &userID, userEmail, c.IP(), c.Get("User-Agent"), nil)
	}

	if err := sess.Destroy(); err != nil {
		return err
	}

	return c.Redirect("/login")
}
