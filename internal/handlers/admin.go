// This file implements the admin pages: dashboard, rooms and equipment,
// subjects and enrollment, PC assignment, maintenance, issue triage, borrow
// request processing, and student account management.
package handlers

import (
	"encoding/csv"
	"errors"
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

// AdminHandler handles administrator HTTP requests.
type AdminHandler struct {
	store              *session.Store
	labService         *services.LabService
	subjectService     *services.SubjectService
	assignmentService  *services.AssignmentService
	maintenanceService *services.MaintenanceService
	borrowService      *services.BorrowService
	issueService       *services.IssueService
	authService        *services.AuthService
	validator          *security.ValidationService
	logger             *security.Logger

	roomRepo      *repository.RoomRepository
	equipmentRepo *repository.EquipmentRepository
	subjectRepo   *repository.SubjectRepository
	userRepo      *repository.UserRepository
	statsRepo     *repository.StatsRepository
}

// NewAdminHandler creates a new instance of AdminHandler with initialized
// services and repositories.
func NewAdminHandler(store *session.Store, cfg *security.SecurityConfig, logger *security.Logger) *AdminHandler {
	return &AdminHandler{
		store:              store,
		labService:         services.NewLabService(),
		subjectService:     services.NewSubjectService(),
		assignmentService:  services.NewAssignmentService(),
		maintenanceService: services.NewMaintenanceService(),
		borrowService:      services.NewBorrowService(),
		issueService:       services.NewIssueService(),
		authService:        services.NewAuthService(cfg),
		validator:          security.NewValidationService(cfg),
		logger:             logger,

		roomRepo:      repository.NewRoomRepository(),
		equipmentRepo: repository.NewEquipmentRepository(),
		subjectRepo:   repository.NewSubjectRepository(),
		userRepo:      repository.NewUserRepository(),
		statsRepo:     repository.NewStatsRepository(),
	}
}

// redirectWithError sends the user back to a page carrying a flash-style
// message in the query string.
func redirectWithError(c *fiber.Ctx, path, msg string) error {
	return c.Redirect(path + "?error=" + strings.ReplaceAll(msg, " ", "+"))
}

// Dashboard displays the admin dashboard with system statistics and the
// queues awaiting action.
//
// Template: admin/dashboard.html with stats cards
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	stats, err := h.statsRepo.GetAdminDashboardStats(c.Context())
	if err != nil {
		stats = &repository.DashboardStats{}
	}

	return c.Render("admin/dashboard", fiber.Map{
		"Title":    "Admin Dashboard - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Stats":    stats,
	})
}

// ============================================================================
// Rooms and equipment
// ============================================================================

// ListRooms displays every laboratory room with its equipment, each item
// annotated with its open maintenance record when one exists.
//
// Template: admin/rooms.html
func (h *AdminHandler) ListRooms(c *fiber.Ctx) error {
	rooms, err := h.roomRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	equipmentByRoom := make(map[int][]models.EquipmentView, len(rooms))
	for _, room := range rooms {
		items, err := h.equipmentRepo.ListByRoom(c.Context(), room.ID)
		if err != nil {
			return err
		}

		views := make([]models.EquipmentView, 0, len(items))
		for _, item := range items {
			view := models.EquipmentView{Equipment: item, RoomName: room.RoomName}
			view.CurrentMaintenance, err = h.maintenanceService.Current(c.Context(), item.ID)
			if err != nil {
				return err
			}
			views = append(views, view)
		}
		equipmentByRoom[room.ID] = views
	}

	return c.Render("admin/rooms", fiber.Map{
		"Title":           "Rooms - Laboratory Management",
		"UserName":        c.Locals("user_name"),
		"UserRole":        c.Locals("user_role"),
		"Rooms":           rooms,
		"EquipmentByRoom": equipmentByRoom,
		"Error":           c.Query("error"),
	})
}

// CreateRoom handles room creation. The new room is seeded with PC-1
// through PC-35.
//
// Form Fields: room_name
func (h *AdminHandler) CreateRoom(c *fiber.Ctx) error {
	name := h.validator.SanitizeString(c.FormValue("room_name"))
	if err := h.validator.ValidateDisplayName("room name", name); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	if _, err := h.labService.CreateRoom(c.Context(), middleware.Actor(c), name); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Redirect("/admin/rooms")
}

// DeleteRoom removes a room and its equipment.
//
// URL Param: id (room ID)
func (h *AdminHandler) DeleteRoom(c *fiber.Ctx) error {
	roomID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/rooms", "invalid room id")
	}

	if err := h.labService.DeleteRoom(c.Context(), middleware.Actor(c), roomID); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Redirect("/admin/rooms")
}

// RoomPCs returns the PCs of a room as JSON for the assignment form.
//
// URL Param: id (room ID)
func (h *AdminHandler) RoomPCs(c *fiber.Ctx) error {
	roomID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid room id"})
	}

	items, err := h.equipmentRepo.ListByRoom(c.Context(), roomID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load equipment"})
	}

	pcs := make([]fiber.Map, 0, len(items))
	for _, item := range items {
		if item.EquipmentType != models.EquipmentPC {
			continue
		}
		pcs = append(pcs, fiber.Map{
			"id":           item.ID,
			"name":         item.EquipmentName,
			"is_available": item.IsAvailable,
		})
	}

	return c.JSON(pcs)
}

// ShowEditEquipmentForm displays the equipment edit form.
//
// URL Param: id (equipment ID)
// Template: admin/equipment_edit.html
func (h *AdminHandler) ShowEditEquipmentForm(c *fiber.Ctx) error {
	equipmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/rooms", "invalid equipment id")
	}

	equipment, err := h.equipmentRepo.FindByID(c.Context(), equipmentID)
	if err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Render("admin/equipment_edit", fiber.Map{
		"Title":     "Edit Equipment - Laboratory Management",
		"UserName":  c.Locals("user_name"),
		"UserRole":  c.Locals("user_role"),
		"Equipment": equipment,
	})
}

// UpdateEquipment handles the equipment edit form submission.
//
// Form Fields: equipment_name, status, is_available
func (h *AdminHandler) UpdateEquipment(c *fiber.Ctx) error {
	equipmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/rooms", "invalid equipment id")
	}

	equipment, err := h.equipmentRepo.FindByID(c.Context(), equipmentID)
	if err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	name := h.validator.SanitizeString(c.FormValue("equipment_name"))
	if err := h.validator.ValidateDisplayName("equipment name", name); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	equipment.EquipmentName = name
	equipment.Status = h.validator.SanitizeString(c.FormValue("status"))
	equipment.IsAvailable = c.FormValue("is_available") == "on" || c.FormValue("is_available") == "true"

	if err := h.labService.UpdateEquipment(c.Context(), middleware.Actor(c), equipment); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Redirect("/admin/rooms")
}

// DeleteEquipment removes an equipment item.
//
// URL Param: id (equipment ID)
func (h *AdminHandler) DeleteEquipment(c *fiber.Ctx) error {
	equipmentID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/rooms", "invalid equipment id")
	}

	if err := h.labService.DeleteEquipment(c.Context(), middleware.Actor(c), equipmentID); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Redirect("/admin/rooms")
}

// AddLaptops handles bulk laptop creation over an index range.
//
// Form Fields: count, starting_index (defaults to 1)
func (h *AdminHandler) AddLaptops(c *fiber.Ctx) error {
	count, err := strconv.Atoi(c.FormValue("count"))
	if err != nil {
		return redirectWithError(c, "/admin/rooms", "invalid laptop count")
	}

	startingIndex := 1
	if raw := c.FormValue("starting_index"); raw != "" {
		if startingIndex, err = strconv.Atoi(raw); err != nil {
			return redirectWithError(c, "/admin/rooms", "invalid starting index")
		}
	}

	if err := h.validator.ValidateLaptopBatch(count, startingIndex); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	if _, err := h.labService.AddLaptops(c.Context(), middleware.Actor(c), count, startingIndex); err != nil {
		return redirectWithError(c, "/admin/rooms", err.Error())
	}

	return c.Redirect("/admin/rooms")
}

// ============================================================================
// Subjects and enrollment
// ============================================================================

// ListSubjects displays all subjects alongside the assignment overview.
//
// Template: admin/subjects.html
func (h *AdminHandler) ListSubjects(c *fiber.Ctx) error {
	subjects, err := h.subjectRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	rooms, err := h.roomRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin/subjects", fiber.Map{
		"Title":    "Subjects - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Subjects": subjects,
		"Rooms":    rooms,
		"Error":    c.Query("error"),
	})
}

// CreateSubject handles subject creation.
//
// Form Fields: subject_code, subject_name, room_id, start_time, end_time
// (datetime-local format)
func (h *AdminHandler) CreateSubject(c *fiber.Ctx) error {
	code := h.validator.SanitizeString(c.FormValue("subject_code"))
	name := h.validator.SanitizeString(c.FormValue("subject_name"))

	if err := h.validator.ValidateSubjectCode(strings.ToUpper(code)); err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}
	if err := h.validator.ValidateDisplayName("subject name", name); err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	roomID, err := strconv.Atoi(c.FormValue("room_id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid room")
	}

	start, end, err := h.validator.ParseTimeWindow(c.FormValue("start_time"), c.FormValue("end_time"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	if _, err := h.subjectService.Create(c.Context(), middleware.Actor(c), code, name, roomID, start, end); err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	return c.Redirect("/admin/subjects")
}

// DeleteSubject removes a subject with its roster and assignments.
//
// URL Param: id (subject ID)
func (h *AdminHandler) DeleteSubject(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid subject id")
	}

	if err := h.subjectService.Delete(c.Context(), middleware.Actor(c), subjectID); err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	return c.Redirect("/admin/subjects")
}

// ShowEnrollmentForm displays the roster editor for a subject.
//
// URL Param: id (subject ID)
// Template: admin/enrollment.html
func (h *AdminHandler) ShowEnrollmentForm(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid subject id")
	}

	subject, err := h.subjectRepo.FindByID(c.Context(), subjectID)
	if err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	students, err := h.userRepo.ListStudents(c.Context())
	if err != nil {
		return err
	}

	enrolled, err := h.subjectRepo.ListEnrolledStudents(c.Context(), subjectID)
	if err != nil {
		return err
	}
	enrolledSet := make(map[int]bool, len(enrolled))
	for _, student := range enrolled {
		enrolledSet[student.ID] = true
	}

	return c.Render("admin/enrollment", fiber.Map{
		"Title":       "Enrollment - Laboratory Management",
		"UserName":    c.Locals("user_name"),
		"UserRole":    c.Locals("user_role"),
		"Subject":     subject,
		"Students":    students,
		"EnrolledSet": enrolledSet,
		"Error":       c.Query("error"),
	})
}

// SaveEnrollment replaces the subject's roster with the submitted student
// set.
//
// Form Fields: student_ids[] (multiple)
func (h *AdminHandler) SaveEnrollment(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid subject id")
	}

	var studentIDs []int
	for _, raw := range c.Request().PostArgs().PeekMulti("student_ids[]") {
		id, err := strconv.Atoi(string(raw))
		if err != nil {
			return redirectWithError(c, "/admin/subjects", "invalid student id")
		}
		studentIDs = append(studentIDs, id)
	}

	if err := h.subjectService.ReplaceEnrollment(c.Context(), middleware.Actor(c), subjectID, studentIDs); err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	return c.Redirect("/admin/subjects")
}

// ============================================================================
// PC assignment
// ============================================================================

// ShowAssignmentForm displays the PC assignment editor for a subject:
// enrolled students on one axis, the room's PCs on the other, pre-filled
// with the stored mapping.
//
// URL Param: id (subject ID)
// Template: admin/assign_pcs.html
func (h *AdminHandler) ShowAssignmentForm(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid subject id")
	}

	subject, err := h.subjectRepo.FindByID(c.Context(), subjectID)
	if err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	students, err := h.subjectRepo.ListEnrolledStudents(c.Context(), subjectID)
	if err != nil {
		return err
	}

	pcs, err := h.equipmentRepo.ListByRoom(c.Context(), subject.RoomID)
	if err != nil {
		return err
	}

	mapping, err := h.assignmentService.CurrentMapping(c.Context(), subjectID)
	if err != nil {
		return err
	}

	return c.Render("admin/assign_pcs", fiber.Map{
		"Title":    "Assign PCs - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Subject":  subject,
		"Students": students,
		"PCs":      pcs,
		"Mapping":  mapping,
		"Error":    c.Query("error"),
	})
}

// SaveAssignments validates and stores the subject's complete assignment
// batch. A conflict anywhere rejects the whole batch and surfaces the
// conflicting equipment names.
//
// Form Fields: pc_<studentID>=<equipmentID> for each row; empty values skip
// the student.
func (h *AdminHandler) SaveAssignments(c *fiber.Ctx) error {
	subjectID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/subjects", "invalid subject id")
	}
	formPath := "/admin/subjects/" + c.Params("id") + "/assign"

	students, err := h.subjectRepo.ListEnrolledStudents(c.Context(), subjectID)
	if err != nil {
		return redirectWithError(c, "/admin/subjects", err.Error())
	}

	assignments := make(map[int]int)
	for _, student := range students {
		value := c.FormValue("pc_" + strconv.Itoa(student.ID))
		if value == "" {
			continue
		}
		equipmentID, err := strconv.Atoi(value)
		if err != nil {
			return redirectWithError(c, formPath, "invalid equipment selection")
		}
		assignments[student.ID] = equipmentID
	}

	actor := middleware.Actor(c)
	if err := h.assignmentService.Assign(c.Context(), actor, subjectID, assignments); err != nil {
		var cerr *services.ConflictError
		if errors.As(err, &cerr) {
			h.logger.SecurityEvent(security.EventAssignmentRejected, &actor.ID, "", c.IP(), c.Get("User-Agent"),
				map[string]interface{}{
					"subject_id": subjectID,
					"reason":     cerr.Error(),
				})
		}
		return redirectWithError(c, formPath, err.Error())
	}

	return c.Redirect("/admin/subjects")
}

// ListAssignments displays every stored assignment joined with student,
// subject, and equipment.
//
// Template: admin/assignments.html
func (h *AdminHandler) ListAssignments(c *fiber.Ctx) error {
	views, err := repository.NewAssignmentRepository().ListViews(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin/assignments", fiber.Map{
		"Title":       "Assignments - Laboratory Management",
		"UserName":    c.Locals("user_name"),
		"UserRole":    c.Locals("user_role"),
		"Assignments": views,
	})
}

// ============================================================================
// Maintenance
// ============================================================================

// ListMaintenance displays every maintenance record, newest scheduled first.
//
// Template: admin/maintenance.html
func (h *AdminHandler) ListMaintenance(c *fiber.Ctx) error {
	views, err := h.maintenanceService.List(c.Context())
	if err != nil {
		return err
	}

	equipment, err := h.equipmentRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin/maintenance", fiber.Map{
		"Title":       "Maintenance - Laboratory Management",
		"UserName":    c.Locals("user_name"),
		"UserRole":    c.Locals("user_role"),
		"Maintenance": views,
		"Equipment":   equipment,
		"Error":       c.Query("error"),
	})
}

// SaveMaintenance records maintenance for an equipment item, updating the
// open record in place when one exists.
//
// Form Fields: equipment_id, description, status, scheduled_date
// (datetime-local format)
func (h *AdminHandler) SaveMaintenance(c *fiber.Ctx) error {
	equipmentID, err := strconv.Atoi(c.FormValue("equipment_id"))
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", "invalid equipment")
	}

	description := h.validator.SanitizeString(c.FormValue("description"))
	if err := h.validator.ValidateDescription(description); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	status, err := models.ParseMaintenanceStatus(c.FormValue("status"))
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	scheduledDate, err := h.validator.ParseDateTimeLocal(c.FormValue("scheduled_date"))
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	if _, err := h.maintenanceService.Upsert(c.Context(), middleware.Actor(c), equipmentID, description, status, scheduledDate); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	return c.Redirect("/admin/maintenance")
}

// UpdateMaintenance rewrites a record from the edit form.
//
// URL Param: id (maintenance ID)
// Form Fields: description, status, scheduled_date
func (h *AdminHandler) UpdateMaintenance(c *fiber.Ctx) error {
	recordID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", "invalid record id")
	}

	record, err := repository.NewMaintenanceRepository().FindByID(c.Context(), recordID)
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	record.Description = h.validator.SanitizeString(c.FormValue("description"))
	if record.Status, err = models.ParseMaintenanceStatus(c.FormValue("status")); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}
	if record.ScheduledDate, err = h.validator.ParseDateTimeLocal(c.FormValue("scheduled_date")); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	if err := h.maintenanceService.Update(c.Context(), middleware.Actor(c), record); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	return c.Redirect("/admin/maintenance")
}

// DeleteMaintenance removes a record.
//
// URL Param: id (maintenance ID)
func (h *AdminHandler) DeleteMaintenance(c *fiber.Ctx) error {
	recordID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/maintenance", "invalid record id")
	}

	if err := h.maintenanceService.Delete(c.Context(), middleware.Actor(c), recordID); err != nil {
		return redirectWithError(c, "/admin/maintenance", err.Error())
	}

	return c.Redirect("/admin/maintenance")
}

// ============================================================================
// Issue triage
// ============================================================================

// ListIssues displays every issue report for triage.
//
// Template: admin/issues.html
func (h *AdminHandler) ListIssues(c *fiber.Ctx) error {
	issues, err := h.issueService.ListAll(c.Context(), middleware.Actor(c))
	if err != nil {
		return err
	}

	return c.Render("admin/issues", fiber.Map{
		"Title":    "Issue Reports - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Issues":   issues,
		"Statuses": []models.IssueStatus{models.IssuePending, models.IssueInProgress, models.IssueResolved},
		"Error":    c.Query("error"),
	})
}

// ExportIssues exports every issue report as a CSV download.
//
// CSV Columns: Reported At, Equipment, Reporter, Type, Software, Status,
// Description
// Content-Type: text/csv with attachment disposition
func (h *AdminHandler) ExportIssues(c *fiber.Ctx) error {
	issues, err := h.issueService.ListAll(c.Context(), middleware.Actor(c))
	if err != nil {
		return err
	}

	c.Set("Content-Type", "text/csv")
	c.Set("Content-Disposition", "attachment; filename=issue_reports.csv")

	w := csv.NewWriter(c)
	w.Write([]string{"Reported At", "Equipment", "Reporter", "Type", "Software", "Status", "Description"})

	for _, issue := range issues {
		software := ""
		if issue.Software != nil {
			software = *issue.Software
		}

		w.Write([]string{
			issue.CreatedAt.Format("2006-01-02 15:04:05"),
			issue.EquipmentName,
			issue.UserName,
			string(issue.IssueType),
			software,
			string(issue.Status),
			issue.Description,
		})
	}

	w.Flush()
	return nil
}

// UpdateIssueStatus moves a report to a new status.
//
// URL Param: id (issue ID)
// Form Fields: status
func (h *AdminHandler) UpdateIssueStatus(c *fiber.Ctx) error {
	issueID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/issues", "invalid issue id")
	}

	status, err := models.ParseIssueStatus(c.FormValue("status"))
	if err != nil {
		return redirectWithError(c, "/admin/issues", err.Error())
	}

	if err := h.issueService.SetStatus(c.Context(), middleware.Actor(c), issueID, status); err != nil {
		return redirectWithError(c, "/admin/issues", err.Error())
	}

	return c.Redirect("/admin/issues")
}

// ============================================================================
// Borrow request processing
// ============================================================================

// ListBorrowRequests displays every borrow request, newest first.
//
// Template: admin/borrow_requests.html
func (h *AdminHandler) ListBorrowRequests(c *fiber.Ctx) error {
	requests, err := h.borrowService.ListAll(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin/borrow_requests", fiber.Map{
		"Title":    "Borrow Requests - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Requests": requests,
		"Error":    c.Query("error"),
	})
}

// ProcessBorrowRequest moves a request along its lifecycle. Approval makes
// the laptop unavailable; recording its return makes it available again.
//
// URL Param: id (request ID)
// Form Fields: status
func (h *AdminHandler) ProcessBorrowRequest(c *fiber.Ctx) error {
	requestID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/borrow-requests", "invalid request id")
	}

	status, err := models.ParseBorrowRequestStatus(c.FormValue("status"))
	if err != nil {
		return redirectWithError(c, "/admin/borrow-requests", err.Error())
	}

	actor := middleware.Actor(c)
	if err := h.borrowService.SetStatus(c.Context(), actor, requestID, status); err != nil {
		return redirectWithError(c, "/admin/borrow-requests", err.Error())
	}

	h.logger.SecurityEvent(security.EventBorrowProcessed, &actor.ID, "", c.IP(), c.Get("User-Agent"),
		map[string]interface{}{
			"request_id": requestID,
			"status":     string(status),
		})

	return c.Redirect("/admin/borrow-requests")
}

// ============================================================================
// Student accounts
// ============================================================================

// ListStudents displays every student account.
//
// Template: admin/students.html
func (h *AdminHandler) ListStudents(c *fiber.Ctx) error {
	students, err := h.userRepo.ListStudents(c.Context())
	if err != nil {
		return err
	}

	return c.Render("admin/students", fiber.Map{
		"Title":    "Students - Laboratory Management",
		"UserName": c.Locals("user_name"),
		"UserRole": c.Locals("user_role"),
		"Students": students,
		"Error":    c.Query("error"),
	})
}

// CreateStudent registers a student account.
//
// Form Fields: student_number, username, full_name, email, password
func (h *AdminHandler) CreateStudent(c *fiber.Ctx) error {
	fullName := h.validator.SanitizeString(c.FormValue("full_name"))
	email := strings.TrimSpace(c.FormValue("email"))
	password := c.FormValue("password")

	if err := h.validator.ValidateDisplayName("full name", fullName); err != nil {
		return redirectWithError(c, "/admin/students", err.Error())
	}
	if err := h.validator.ValidateEmail(email); err != nil {
		return redirectWithError(c, "/admin/students", err.Error())
	}
	if err := h.validator.ValidatePassword(password); err != nil {
		return redirectWithError(c, "/admin/students", err.Error())
	}

	user := &models.User{
		Username: h.validator.SanitizeString(c.FormValue("username")),
		FullName: fullName,
		Email:    email,
	}
	if sn := strings.TrimSpace(c.FormValue("student_number")); sn != "" {
		user.StudentNumber = &sn
	}

	if err := h.authService.RegisterStudent(c.Context(), user, password); err != nil {
		return redirectWithError(c, "/admin/students", "could not create student account")
	}

	return c.Redirect("/admin/students")
}

// DeleteStudent removes a student account along with their enrollments,
// assignments, reports, and borrow requests.
//
// URL Param: id (user ID)
func (h *AdminHandler) DeleteStudent(c *fiber.Ctx) error {
	userID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return redirectWithError(c, "/admin/students", "invalid user id")
	}

	if err := h.userRepo.Delete(c.Context(), userID); err != nil {
		return redirectWithError(c, "/admin/students", err.Error())
	}

	return c.Redirect("/admin/students")
}
