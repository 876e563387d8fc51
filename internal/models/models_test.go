// Package models_test provides unit tests for data model structures and the
// scheduling primitives they carry. These tests run without any database
// connection or external dependency.
package models_test

import (
	"testing"
	"time"

	"github.com/vrash12/laboratory-management/internal/models"
)

// TestOverlaps verifies the half-open window overlap test used by every
// conflict check in the system.
//
// Invariant under test: [aStart,aEnd) and [bStart,bEnd) overlap iff
// aStart < bEnd AND bStart < aEnd. Touching endpoints do not overlap.
func TestOverlaps(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	tests := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     time.Time
		want                           bool
	}{
		{"partial overlap", at(9, 0), at(10, 0), at(9, 30), at(10, 30), true},
		{"contained window", at(9, 0), at(12, 0), at(10, 0), at(11, 0), true},
		{"identical windows", at(9, 0), at(10, 0), at(9, 0), at(10, 0), true},
		{"disjoint windows", at(9, 0), at(10, 0), at(11, 0), at(12, 0), false},
		{"touching endpoints", at(9, 0), at(10, 0), at(10, 0), at(11, 0), false},
		{"touching endpoints reversed", at(10, 0), at(11, 0), at(9, 0), at(10, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := models.Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			if got != tt.want {
				t.Errorf("Overlaps(%v,%v,%v,%v) = %v, want %v",
					tt.aStart, tt.aEnd, tt.bStart, tt.bEnd, got, tt.want)
			}

			// The test must be symmetric in its two windows.
			mirrored := models.Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd)
			if mirrored != got {
				t.Errorf("Overlaps is not symmetric for %s", tt.name)
			}
		})
	}
}

// TestMaintenance_CoversWindow verifies the point-in-interval usability test:
// a current record whose scheduled date falls inside the subject window
// (inclusive bounds) flags the equipment as out of service.
func TestMaintenance_CoversWindow(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name      string
		status    models.MaintenanceStatus
		scheduled time.Time
		want      bool
	}{
		{"scheduled inside window", models.MaintenanceScheduled, start.Add(15 * time.Minute), true},
		{"in progress inside window", models.MaintenanceInProgress, start.Add(15 * time.Minute), true},
		{"exactly at window start", models.MaintenanceScheduled, start, true},
		{"exactly at window end", models.MaintenanceScheduled, end, true},
		{"before window", models.MaintenanceScheduled, start.Add(-time.Minute), false},
		{"after window", models.MaintenanceScheduled, end.Add(time.Minute), false},
		{"completed inside window", models.MaintenanceCompleted, start.Add(15 * time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.Maintenance{Status: tt.status, ScheduledDate: tt.scheduled}
			if got := m.CoversWindow(start, end); got != tt.want {
				t.Errorf("CoversWindow() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestBorrowRequestStatus_CanTransitionTo walks the full transition table.
// Only Pending->Approved, Pending->Denied and Approved->Returned are legal;
// Denied and Returned are terminal.
func TestBorrowRequestStatus_CanTransitionTo(t *testing.T) {
	all := []models.BorrowRequestStatus{
		models.BorrowPending,
		models.BorrowApproved,
		models.BorrowDenied,
		models.BorrowReturned,
	}

	legal := map[[2]models.BorrowRequestStatus]bool{
		{models.BorrowPending, models.BorrowApproved}:  true,
		{models.BorrowPending, models.BorrowDenied}:    true,
		{models.BorrowApproved, models.BorrowReturned}: true,
	}

	for _, from := range all {
		for _, to := range all {
			got := from.CanTransitionTo(to)
			want := legal[[2]models.BorrowRequestStatus{from, to}]
			if got != want {
				t.Errorf("CanTransitionTo(%s -> %s) = %v, want %v", from, to, got, want)
			}
		}
	}
}

// TestParseRole verifies role parsing rejects anything outside the closed set.
func TestParseRole(t *testing.T) {
	if r, err := models.ParseRole("Admin"); err != nil || r != models.RoleAdmin {
		t.Errorf("ParseRole(Admin) = %v, %v", r, err)
	}
	if r, err := models.ParseRole("User"); err != nil || r != models.RoleUser {
		t.Errorf("ParseRole(User) = %v, %v", r, err)
	}
	for _, bad := range []string{"", "admin", "Administrator", "root"} {
		if _, err := models.ParseRole(bad); err == nil {
			t.Errorf("ParseRole(%q) should fail", bad)
		}
	}
}

// TestParseEnums spot-checks the remaining closed enumerations.
func TestParseEnums(t *testing.T) {
	if _, err := models.ParseBorrowRequestStatus("Approved"); err != nil {
		t.Errorf("Approved should parse: %v", err)
	}
	if _, err := models.ParseBorrowRequestStatus("Lost"); err == nil {
		t.Error("Lost should not parse as a borrow status")
	}

	if _, err := models.ParseMaintenanceStatus("In Progress"); err != nil {
		t.Errorf("In Progress should parse: %v", err)
	}
	if _, err := models.ParseMaintenanceStatus("Cancelled"); err == nil {
		t.Error("Cancelled should not parse as a maintenance status")
	}

	if _, err := models.ParseIssueType("Both"); err != nil {
		t.Errorf("Both should parse: %v", err)
	}
	if _, err := models.ParseIssueType("Firmware"); err == nil {
		t.Error("Firmware should not parse as an issue type")
	}

	if _, err := models.ParseEquipmentType("Laptop"); err != nil {
		t.Errorf("Laptop should parse: %v", err)
	}
	if _, err := models.ParseEquipmentType("Tablet"); err == nil {
		t.Error("Tablet should not parse as an equipment type")
	}
}

// TestMaintenanceStatus_IsCurrent confirms which statuses mark an open
// service window.
func TestMaintenanceStatus_IsCurrent(t *testing.T) {
	if !models.MaintenanceScheduled.IsCurrent() {
		t.Error("Scheduled should be current")
	}
	if !models.MaintenanceInProgress.IsCurrent() {
		t.Error("In Progress should be current")
	}
	if models.MaintenanceCompleted.IsCurrent() {
		t.Error("Completed should not be current")
	}
}
