// Package main is the entry point for the laboratory management server.
// It initializes the database connection, security components, and all HTTP
// routes.
package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/template/html/v2"
	"github.com/vrash12/laboratory-management/internal/config"
	"github.com/vrash12/laboratory-management/internal/database"
	"github.com/vrash12/laboratory-management/internal/handlers"
	"github.com/vrash12/laboratory-management/internal/middleware"
	"github.com/vrash12/laboratory-management/internal/security"
)

func main() {
	cfg := config.Load()

	dbCfg, err := database.DefaultConfig()
	if err != nil {
		log.Fatalf("Failed to load database configuration: %v", err)
	}
	database.MustConnect(dbCfg)
	defer database.Close()

	if err := database.RunMigrations(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	securityConfig := security.DefaultSecurityConfig()
	if !cfg.IsProduction() {
		securityConfig.SessionSecure = false
	}

	securityLogger := security.NewLogger()
	securityMiddleware := middleware.NewSecurityMiddleware(securityLogger, securityConfig)

	// Per-endpoint rate limiters; refill intervals derive from the
	// per-minute budgets in the security config.
	loginRateLimiter := security.NewRateLimiter(securityConfig.LoginRateLimit, 12*time.Second)
	defer loginRateLimiter.Stop()

	issueRateLimiter := security.NewRateLimiter(securityConfig.RateLimitReportIssue, 6*time.Second)
	defer issueRateLimiter.Stop()

	borrowRateLimiter := security.NewRateLimiter(securityConfig.RateLimitBorrow, 12*time.Second)
	defer borrowRateLimiter.Stop()

	assignRateLimiter := security.NewRateLimiter(securityConfig.RateLimitAssign, 3*time.Second)
	defer assignRateLimiter.Stop()

	engine := html.New("./web/templates", ".html")
	if !cfg.IsProduction() {
		engine.Reload(true)
	}

	app := fiber.New(fiber.Config{
		Views:             engine,
		ViewsLayout:       "layouts/main",
		PassLocalsToViews: true,
	})

	app.Use(recover.New())
	app.Use(securityMiddleware.RequestLogger())
	app.Use(securityMiddleware.SecureHeaders())
	app.Use(securityMiddleware.InputValidation())

	app.Static("/static", "./web/static")

	store := session.New(session.Config{
		Expiration:     8 * time.Hour,
		CookieSecure:   securityConfig.SessionSecure,
		CookieHTTPOnly: securityConfig.SessionHTTPOnly,
		CookieSameSite: securityConfig.SessionSameSite,
		CookieName:     securityConfig.SessionCookieName,
		CookiePath:     "/",
	})

	app.Use(securityMiddleware.SetCSRFToken(store))

	authHandler := handlers.NewAuthHandler(store, securityMiddleware, securityLogger, securityConfig)
	adminHandler := handlers.NewAdminHandler(store, securityConfig, securityLogger)
	userHandler := handlers.NewUserHandler(store, securityConfig)

	// Root route redirects by role
	app.Get("/", func(c *fiber.Ctx) error {
		sess, _ := store.Get(c)
		switch sess.Get("user_role") {
		case "Admin":
			return c.Redirect("/admin/dashboard")
		case "User":
			return c.Redirect("/user/dashboard")
		default:
			return c.Redirect("/login")
		}
	})

	app.Get("/login", authHandler.ShowLogin)
	app.Post("/login",
		securityMiddleware.RateLimit(loginRateLimiter, "login"),
		authHandler.Login,
	)
	app.Get("/logout", authHandler.Logout)

	// Admin routes: authentication, Admin role, CSRF validation
	admin := app.Group("/admin",
		middleware.AuthRequired(store),
		middleware.AdminOnly(),
		securityMiddleware.CSRFProtection(store),
	)

	admin.Get("/dashboard", adminHandler.Dashboard)

	admin.Get("/rooms", adminHandler.ListRooms)
	admin.Post("/rooms", adminHandler.CreateRoom)
	admin.Post("/rooms/:id/delete", adminHandler.DeleteRoom)
	admin.Get("/rooms/:id/pcs", adminHandler.RoomPCs)

	admin.Get("/equipment/:id/edit", adminHandler.ShowEditEquipmentForm)
	admin.Post("/equipment/:id/edit", adminHandler.UpdateEquipment)
	admin.Post("/equipment/:id/delete", adminHandler.DeleteEquipment)
	admin.Post("/laptops", adminHandler.AddLaptops)

	admin.Get("/subjects", adminHandler.ListSubjects)
	admin.Post("/subjects", adminHandler.CreateSubject)
	admin.Post("/subjects/:id/delete", adminHandler.DeleteSubject)
	admin.Get("/subjects/:id/enrollment", adminHandler.ShowEnrollmentForm)
	admin.Post("/subjects/:id/enrollment", adminHandler.SaveEnrollment)
	admin.Get("/subjects/:id/assign", adminHandler.ShowAssignmentForm)
	admin.Post("/subjects/:id/assign",
		securityMiddleware.RateLimit(assignRateLimiter, "assign"),
		adminHandler.SaveAssignments,
	)
	admin.Get("/assignments", adminHandler.ListAssignments)

	admin.Get("/maintenance", adminHandler.ListMaintenance)
	admin.Post("/maintenance", adminHandler.SaveMaintenance)
	admin.Post("/maintenance/:id/edit", adminHandler.UpdateMaintenance)
	admin.Post("/maintenance/:id/delete", adminHandler.DeleteMaintenance)

	admin.Get("/issues", adminHandler.ListIssues)
	admin.Get("/issues/export", adminHandler.ExportIssues)
	admin.Post("/issues/:id/status", adminHandler.UpdateIssueStatus)

	admin.Get("/borrow-requests", adminHandler.ListBorrowRequests)
	admin.Post("/borrow-requests/:id/status", adminHandler.ProcessBorrowRequest)

	admin.Get("/students", adminHandler.ListStudents)
	admin.Post("/students", adminHandler.CreateStudent)
	admin.Post("/students/:id/delete", adminHandler.DeleteStudent)

	// User routes: authentication and CSRF validation
	user := app.Group("/user",
		middleware.AuthRequired(store),
		securityMiddleware.CSRFProtection(store),
	)

	user.Get("/dashboard", userHandler.Dashboard)
	user.Get("/subjects/events", userHandler.SubjectEvents)
	user.Get("/profile", userHandler.ShowEditProfile)
	user.Post("/profile", userHandler.UpdateProfile)

	user.Get("/report-issue", userHandler.ShowReportIssueForm)
	user.Post("/report-issue",
		securityMiddleware.RateLimit(issueRateLimiter, "report-issue"),
		userHandler.ReportIssue,
	)
	user.Get("/issues", userHandler.ListMyIssues)
	user.Get("/issues/:id", userHandler.ViewIssue)

	user.Get("/borrow", userHandler.ShowBorrowForm)
	user.Post("/borrow",
		securityMiddleware.RateLimit(borrowRateLimiter, "borrow"),
		userHandler.RequestBorrow,
	)

	securityLogger.Info("Server starting on port " + cfg.Port)

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		if err := app.ListenTLS(":"+cfg.Port, cfg.TLSCertFile, cfg.TLSKeyFile); err != nil {
			securityLogger.Critical("Failed to start server", err)
			log.Fatalf("Failed to start server: %v", err)
		}
		return
	}

	if err := app.Listen(":" + cfg.Port); err != nil {
		securityLogger.Critical("Failed to start server", err)
		log.Fatalf("Failed to start server: %v", err)
	}
}
