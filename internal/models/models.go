// Package models defines the domain entities and data transfer objects for the
// laboratory management system. It includes database models mapped to
// PostgreSQL tables, form DTOs for user input, and view models for template
// rendering.
package models

import "time"

// ============================================================================
// Domain Models (Database Entities)
// ============================================================================

// Actor is the authenticated identity an operation runs as. Handlers resolve
// it from the session and pass it explicitly into every service call; no
// service reads ambient login state.
type Actor struct {
	ID   int  // users.id of the acting account
	Role Role // resolved role, already validated at login
}

// User represents a system account with role-based access control.
// Students carry a student number; administrators do not.
//
// Database Table: users
// Security Note: PasswordHash must never appear in rendered pages or logs.
type User struct {
	ID            int       `db:"id"`             // Primary key, auto-increment
	StudentNumber *string   `db:"student_number"` // Unique, nil for admins
	Username      string    `db:"username"`       // Unique login name
	PasswordHash  string    `db:"password_hash"`  // bcrypt hashed password
	FullName      string    `db:"full_name"`      // Display name
	Email         string    `db:"email"`          // Unique, used for login
	Role          Role      `db:"role"`           // Admin or User
	CreatedAt     time.Time `db:"created_at"`
}

// Room represents a physical laboratory room.
// Deleting a room cascades to its equipment (ON DELETE CASCADE).
//
// Database Table: rooms
// Related: Equipment (one-to-many, owning), Subject (one-to-many)
type Room struct {
	ID        int       `db:"id"`
	RoomName  string    `db:"room_name"`
	CreatedAt time.Time `db:"created_at"`
}

// Equipment represents a PC or laptop tracked by the system.
// PCs belong to a room; laptops may be roomless (RoomID nil).
//
// Database Table: equipment
// Related: Room (many-to-one), PCAssignment, Maintenance, IssueReport, BorrowRequest
type Equipment struct {
	ID            int           `db:"id"`
	RoomID        *int          `db:"room_id"`        // Nil for unhoused laptops
	EquipmentName string        `db:"equipment_name"` // e.g. "PC-12", "Laptop-3"
	Status        string        `db:"status"`         // Free text, default "Operational"
	IsAvailable   bool          `db:"is_available"`   // Flipped by borrow approvals/returns
	EquipmentType EquipmentType `db:"equipment_type"` // PC or Laptop
}

// Subject represents a scheduled class occupying a room for a time window.
// The window is half-open: [StartTime, EndTime), with StartTime < EndTime
// enforced at creation.
//
// Database Table: subjects
// Related: Room (many-to-one), StudentSubject, PCAssignment
type Subject struct {
	ID          int       `db:"id"`
	SubjectCode string    `db:"subject_code"` // Unique, stored uppercase
	SubjectName string    `db:"subject_name"`
	RoomID      int       `db:"room_id"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
}

// Window returns the subject's scheduled interval.
func (s Subject) Window() (start, end time.Time) {
	return s.StartTime, s.EndTime
}

// StudentSubject is the enrollment join row between a student and a subject.
// Enrollment is replace-on-save per subject: the admin form deletes all prior
// rows for the subject before inserting the new selection.
//
// Database Table: student_subjects
type StudentSubject struct {
	ID        int `db:"id"`
	StudentID int `db:"student_id"`
	SubjectID int `db:"subject_id"`
}

// PCAssignment binds one student to one equipment item for one subject's
// window. Write-time invariant: no two assignments for the same equipment may
// reference subjects whose windows overlap.
//
// Database Table: pc_assignments
type PCAssignment struct {
	ID          int `db:"id"`
	SubjectID   int `db:"subject_id"`
	StudentID   int `db:"student_id"`
	EquipmentID int `db:"equipment_id"`
}

// IssueReport is a user-filed problem report against an equipment item.
//
// Database Table: issue_reports
// Related: Equipment (many-to-one), User (many-to-one)
type IssueReport struct {
	ID          int         `db:"id"`
	EquipmentID int         `db:"equipment_id"`
	UserID      int         `db:"user_id"`
	Description string      `db:"description"`
	IssueType   IssueType   `db:"issue_type"`
	Software    *string     `db:"software"` // Set for Software/Both issues
	Status      IssueStatus `db:"status"`   // Mutated only by admins
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   *time.Time  `db:"updated_at"`
}

// Maintenance is a service window recorded against an equipment item.
// A record with a current status (Scheduled / In Progress) marks the
// equipment as out of service; the record carries a point-in-time
// ScheduledDate rather than an interval.
//
// Database Table: maintenance
// Related: Equipment (many-to-one), User (reporter, many-to-one)
type Maintenance struct {
	ID            int               `db:"id"`
	EquipmentID   int               `db:"equipment_id"`
	ReportedBy    int               `db:"reported_by"` // Admin who recorded it
	Description   string            `db:"description"`
	Status        MaintenanceStatus `db:"status"`
	ScheduledDate time.Time         `db:"scheduled_date"`
	CompletedDate *time.Time        `db:"completed_date"`
	CreatedAt     time.Time         `db:"created_at"`
	UpdatedAt     *time.Time        `db:"updated_at"`
}

// CoversWindow reports whether this record flags the equipment as unusable
// during [start, end]. Current status plus the scheduled date falling inside
// the window (inclusive on both ends) is sufficient; the record has no end
// time of its own.
func (m Maintenance) CoversWindow(start, end time.Time) bool {
	if !m.Status.IsCurrent() {
		return false
	}
	return !m.ScheduledDate.Before(start) && !m.ScheduledDate.After(end)
}

// BorrowRequest is a student's request to borrow a laptop while their
// assigned PC is down for maintenance.
//
// Database Table: borrow_requests
// Related: User (requester), Equipment (laptop), User (processing admin)
type BorrowRequest struct {
	ID          int                 `db:"id"`
	UserID      int                 `db:"user_id"`
	EquipmentID int                 `db:"equipment_id"`
	RequestDate time.Time           `db:"request_date"`
	Status      BorrowRequestStatus `db:"status"`
	AdminID     *int                `db:"admin_id"` // Admin who processed it, nil while pending
}

// ============================================================================
// Data Transfer Objects (DTOs) - Form Input
// ============================================================================

// LoginForm represents user login credentials from the login form.
type LoginForm struct {
	Email    string
	Password string
}

// SubjectForm represents data from the subject creation form.
// Times arrive as datetime-local strings and are parsed before validation.
type SubjectForm struct {
	SubjectCode string // Uppercased before storage
	SubjectName string
	RoomID      int
	StartTime   string // "2006-01-02T15:04"
	EndTime     string
}

// AssignPCsForm carries the per-subject student to equipment mapping.
// Students absent from the map simply receive no assignment.
type AssignPCsForm struct {
	SubjectID   int
	Assignments map[int]int // student id -> equipment id
}

// IssueReportForm represents data from the issue reporting form.
type IssueReportForm struct {
	EquipmentID int
	Description string
	IssueType   string // Parsed to IssueType
	Software    string // Only meaningful for Software/Both
}

// MaintenanceForm represents data from the maintenance create/edit forms.
type MaintenanceForm struct {
	EquipmentID   int
	Description   string
	Status        string // Parsed to MaintenanceStatus
	ScheduledDate string // "2006-01-02T15:04"
	CompletedDate string // Optional
}

// ============================================================================
// View Models - Template Rendering
// ============================================================================

// EquipmentView is an equipment row enriched with its room name and current
// maintenance record for list pages.
type EquipmentView struct {
	Equipment
	RoomName           string       // Empty for roomless laptops
	CurrentMaintenance *Maintenance // Nil when none open
}

// AssignmentView is a PC assignment joined with its student, subject, and
// equipment for the admin dashboard table.
type AssignmentView struct {
	AssignmentID  int
	SubjectID     int
	SubjectCode   string
	StudentID     int
	StudentName   string
	EquipmentID   int
	EquipmentName string
	StartTime     time.Time
	EndTime       time.Time
}

// MaintenanceView is a maintenance record joined with its equipment name.
type MaintenanceView struct {
	Maintenance
	EquipmentName string
}

// IssueReportView is an issue report joined with user and equipment names.
type IssueReportView struct {
	IssueReport
	UserName      string
	EquipmentName string
}

// BorrowRequestView is a borrow request joined with requester and laptop
// names for the admin processing page.
type BorrowRequestView struct {
	BorrowRequest
	UserName      string
	EquipmentName string
}

// SubjectEventView is the JSON shape used by the calendar feed on the user
// dashboard.
type SubjectEventView struct {
	Title string `json:"title"`
	Start string `json:"start"`
	End   string `json:"end"`
}
