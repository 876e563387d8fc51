// This file implements the student pages: dashboard with subject calendar,
// profile editing, issue reporting, and laptop borrowing.
package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/vrash12/laboratory-management/internal/middleware"
	"github.com/vrash12/laboratory-management/internal/models"
	"github.com/vrash12/laboratory-management/internal/repository"
	"github.com/vrash12/laboratory-management/internal/security"
	"github.com/vrash12/laboratory-management/internal/services"
)

// UserHandler handles student HTTP requests.
type UserHandler struct {
	store          *session.Store
	subjectService *services.SubjectService
	issueService   *services.IssueService
	borrowService  *services.BorrowService
	validator      *security.ValidationService

	userRepo       *repository.UserRepository
	subjectRepo    *repository.SubjectRepository
	equipmentRepo  *repository.EquipmentRepository
	assignmentRepo *repository.AssignmentRepository
	statsRepo      *repository.StatsRepository
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(store *session.Store, cfg *security.SecurityConfig) *UserHandler {
	return &UserHandler{
		store:          store,
		subjectService: services.NewSubjectService(),
		issueService:   services.NewIssueService(),
		borrowService:  services.NewBorrowService(),
		validator:      security.NewValidationService(cfg),

		userRepo:       repository.NewUserRepository(),
		subjectRepo:    repository.NewSubjectRepository(),
		equipmentRepo:  repository.NewEquipmentRepository(),
		assignmentRepo: repository.NewAssignmentRepository(),
		statsRepo:      repository.NewStatsRepository(),
	}
}

// Dashboard displays the student dashboard: their subjects, assigned PCs,
// and personal counters. The subject calendar is fed by SubjectEvents.
//
// Template: user/dashboard.html
func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	subjects, err := h.subjectRepo.ListByStudent(c.Context(), actor.ID)
	if err != nil {
		return err
	}

	assignments, err := h.assignmentRepo.MapByStudent(c.Context(), actor.ID)
	if err != nil {
		return err
	}

	// Resolve equipment names for the student's assignments
	assignedPCs := make(map[int]string, len(assignments))
	for subjectID, assignment := range assignments {
		equipment, err := h.equipmentRepo.FindByID(c.Context(), assignment.EquipmentID)
		if err != nil {
			continue
		}
		assignedPCs[subjectID] = equipment.EquipmentName
	}

	stats, err := h.statsRepo.GetUserStats(c.Context(), actor.ID)
	if err != nil {
		stats = &repository.UserStats{}
	}

	return c.Render("user/dashboard", fiber.Map{
		"Title":       "Dashboard - Laboratory Management",
		"UserName":    c.Locals("user_name"),
		"UserRole":    c.Locals("user_role"),
		"Subjects":    subjects,
		"AssignedPCs": assignedPCs,
		"Stats":       stats,
	})
}

// SubjectEvents returns the student's subjects as JSON calendar events.
func (h *UserHandler) SubjectEvents(c *fiber.Ctx) error {
	events, err := h.subjectService.CalendarEvents(c.Context(), middleware.Actor(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load subjects"})
	}

	return c.JSON(events)
}

// ShowEditProfile displays the profile edit form.
//
// Template: user/edit_profile.html
func (h *UserHandler) ShowEditProfile(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	user, err := h.userRepo.FindByID(c.Context(), actor.ID)
	if err != nil {
		return err
	}

	return c.Render("user/edit_profile", fiber.Map{
		"Title":    "Edit Profile - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"User":     user,
		"Error":    c.Query("error"),
	})
}

// UpdateProfile handles the profile form submission and refreshes the
// session's display name.
//
// Form Fields: full_name, email
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	fullName := h.validator.SanitizeString(c.FormValue("full_name"))
	email := strings.TrimSpace(c.FormValue("email"))

	if err := h.validator.ValidateDisplayName("full name", fullName); err != nil {
		return redirectWithError(c, "/user/profile", err.Error())
	}
	if err := h.validator.ValidateEmail(email); err != nil {
		return redirectWithError(c, "/user/profile", err.Error())
	}

	if err := h.userRepo.UpdateProfile(c.Context(), actor.ID, fullName, email); err != nil {
		return redirectWithError(c, "/user/profile", "could not update profile")
	}

	if sess, err := h.store.Get(c); err == nil {
		sess.Set("user_name", fullName)
		sess.Set("user_email", email)
		_ = sess.Save()
	}

	return c.Redirect("/user/dashboard")
}

// ============================================================================
// Issue reporting
// ============================================================================

// ShowReportIssueForm displays the issue report form with the student's
// equipment and the common-software pick list.
//
// Template: user/report_issue.html
func (h *UserHandler) ShowReportIssueForm(c *fiber.Ctx) error {
	equipment, err := h.equipmentRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("user/report_issue", fiber.Map{
		"Title":          "Report Issue - Laboratory Management",
		"UserName":       c.Locals("user_name"),
		"UserRole":       c.Locals("user_role"),
		"Equipment":      equipment,
		"CommonSoftware": services.CommonSoftware,
		"IssueTypes":     []models.IssueType{models.IssueHardware, models.IssueSoftware, models.IssueBoth},
		"Error":          c.Query("error"),
	})
}

// ReportIssue handles the issue report submission. The software field is
// the pick-list selection, or the free-text entry when "Other" was chosen.
//
// Form Fields: equipment_id, issue_type, description, software,
// software_other
func (h *UserHandler) ReportIssue(c *fiber.Ctx) error {
	equipmentID, err := strconv.Atoi(c.FormValue("equipment_id"))
	if err != nil {
		return redirectWithError(c, "/user/report-issue", "invalid equipment")
	}

	issueType, err := models.ParseIssueType(c.FormValue("issue_type"))
	if err != nil {
		return redirectWithError(c, "/user/report-issue", err.Error())
	}

	description := h.validator.SanitizeString(c.FormValue("description"))
	if err := h.validator.ValidateDescription(description); err != nil {
		return redirectWithError(c, "/user/report-issue", err.Error())
	}

	software := c.FormValue("software")
	if software == "Other" {
		software = c.FormValue("software_other")
	}
	software = h.validator.SanitizeString(software)

	if _, err := h.issueService.Report(c.Context(), middleware.Actor(c), equipmentID, issueType, description, software); err != nil {
		return redirectWithError(c, "/user/report-issue", err.Error())
	}

	return c.Redirect("/user/issues")
}

// ListMyIssues displays the student's own reports, newest first.
//
// Template: user/issues.html
func (h *UserHandler) ListMyIssues(c *fiber.Ctx) error {
	issues, err := h.issueService.ListForUser(c.Context(), middleware.Actor(c))
	if err != nil {
		return err
	}

	return c.Render("user/issues", fiber.Map{
		"Title":    "My Issue Reports - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Issues":   issues,
	})
}

// ViewIssue displays one report. Students may only open their own.
//
// URL Param: id (issue ID)
// Template: user/issue_detail.html
func (h *UserHandler) ViewIssue(c *fiber.Ctx) error {
	issueID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/user/issues", "invalid issue id")
	}

	issue, err := h.issueService.View(c.Context(), middleware.Actor(c), issueID)
	if err != nil {
		if err == services.ErrNotYourReport {
			return c.Status(fiber.StatusForbidden).SendString("Access denied")
		}
		return redirectWithError(c, "/user/issues", err.Error())
	}

	return c.Render("user/issue_detail", fiber.Map{
		"Title":    "Issue Report - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Issue":    issue,
	})
}

// ============================================================================
// Laptop borrowing
// ============================================================================

// ShowBorrowForm displays the borrow request form: the student's eligible
// subjects and the available laptops.
//
// Template: user/borrow.html
func (h *UserHandler) ShowBorrowForm(c *fiber.Ctx) error {
	actor := middleware.Actor(c)

	subjects, err := h.subjectRepo.ListByStudent(c.Context(), actor.ID)
	if err != nil {
		return err
	}

	// Only subjects whose assigned PC is under maintenance qualify
	var eligible []models.Subject
	for _, subject := range subjects {
		ok, err := h.borrowService.Eligible(c.Context(), actor, subject.ID)
		if err != nil {
			return err
		}
		if ok {
			eligible = append(eligible, subject)
		}
	}

	laptops, err := h.equipmentRepo.ListAvailableLaptops(c.Context())
	if err != nil {
		return err
	}

	requests, err := h.borrowService.ListForUser(c.Context(), actor)
	if err != nil {
		return err
	}

	return c.Render("user/borrow", fiber.Map{
		"Title":            "Borrow Laptop - Laboratory Management",
		"UserName":         c.Locals("user_name"),
		"UserRole":         c.Locals("user_role"),
		"EligibleSubjects": eligible,
		"Laptops":          laptops,
		"Requests":         requests,
		"Error":            c.Query("error"),
	})
}

// RequestBorrow files a borrow request for a laptop.
//
// Form Fields: subject_id, laptop_id
func (h *UserHandler) RequestBorrow(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.FormValue("subject_id"))
	if err != nil {
		return redirectWithError(c, "/user/borrow", "invalid subject")
	}

	laptopID, err := strconv.Atoi(c.FormValue("laptop_id"))
	if err != nil {
		return redirectWithError(c, "/user/borrow", "invalid laptop")
	}

	if _, err := h.borrowService.Request(c.Context(), middleware.Actor(c), subjectID, laptopID); err != nil {
		return redirectWithError(c, "/user/borrow", err.Error())
	}

	return c.Redirect("/user/borrow")
}
