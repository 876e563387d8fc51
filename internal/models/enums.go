// Package models defines the domain entities and data transfer objects for the
// laboratory management system. This file declares the closed enumerations used
// across the data model. Every status that the application reasons about is a
// typed value with an explicit parse step; free text is confined to
// Equipment.Status where operators genuinely type arbitrary descriptions.
package models

import (
	"fmt"
	"time"
)

// Role identifies the access level of a user account.
// Stored in users.role as text, always one of the constants below.
type Role string

const (
	RoleAdmin Role = "Admin"
	RoleUser  Role = "User"
)

// ParseRole converts a stored or submitted role value into a Role.
// Unknown values are rejected rather than defaulted.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser:
		return RoleUser, nil
	default:
		return "", fmt.Errorf("invalid role %q", s)
	}
}

// IsAdmin reports whether the role grants administrative access.
// Written as an exhaustive switch so adding a role forces a decision here.
func (r Role) IsAdmin() bool {
	switch r {
	case RoleAdmin:
		return true
	case RoleUser:
		return false
	default:
		return false
	}
}

// EquipmentType distinguishes fixed room PCs from loanable laptops.
type EquipmentType string

const (
	EquipmentPC     EquipmentType = "PC"
	EquipmentLaptop EquipmentType = "Laptop"
)

// ParseEquipmentType validates a submitted equipment type value.
func ParseEquipmentType(s string) (EquipmentType, error) {
	switch EquipmentType(s) {
	case EquipmentPC:
		return EquipmentPC, nil
	case EquipmentLaptop:
		return EquipmentLaptop, nil
	default:
		return "", fmt.Errorf("invalid equipment type %q", s)
	}
}

// IssueType categorizes what part of a machine an issue report concerns.
type IssueType string

const (
	IssueHardware IssueType = "Hardware"
	IssueSoftware IssueType = "Software"
	IssueBoth     IssueType = "Both"
)

// ParseIssueType validates a submitted issue type value.
func ParseIssueType(s string) (IssueType, error) {
	switch IssueType(s) {
	case IssueHardware, IssueSoftware, IssueBoth:
		return IssueType(s), nil
	default:
		return "", fmt.Errorf("invalid issue type %q", s)
	}
}

// IssueStatus tracks an issue report through triage.
type IssueStatus string

const (
	IssuePending    IssueStatus = "Pending"
	IssueInProgress IssueStatus = "In Progress"
	IssueResolved   IssueStatus = "Resolved"
)

// ParseIssueStatus validates a submitted issue status value.
func ParseIssueStatus(s string) (IssueStatus, error) {
	switch IssueStatus(s) {
	case IssuePending, IssueInProgress, IssueResolved:
		return IssueStatus(s), nil
	default:
		return "", fmt.Errorf("invalid issue status %q", s)
	}
}

// MaintenanceStatus tracks a maintenance record's lifecycle.
// Scheduled and In Progress count as "current": equipment with a current
// record is treated as out of service for scheduling purposes.
type MaintenanceStatus string

const (
	MaintenanceScheduled  MaintenanceStatus = "Scheduled"
	MaintenanceInProgress MaintenanceStatus = "In Progress"
	MaintenanceCompleted  MaintenanceStatus = "Completed"
)

// ParseMaintenanceStatus validates a submitted maintenance status value.
func ParseMaintenanceStatus(s string) (MaintenanceStatus, error) {
	switch MaintenanceStatus(s) {
	case MaintenanceScheduled, MaintenanceInProgress, MaintenanceCompleted:
		return MaintenanceStatus(s), nil
	default:
		return "", fmt.Errorf("invalid maintenance status %q", s)
	}
}

// IsCurrent reports whether the status marks the record as an open
// service window (equipment unusable).
func (s MaintenanceStatus) IsCurrent() bool {
	return s == MaintenanceScheduled || s == MaintenanceInProgress
}

// BorrowRequestStatus is the state of a laptop borrow request.
//
// Legal transitions:
//
//	Pending  -> Approved | Denied
//	Approved -> Returned
//
// Denied and Returned are terminal.
type BorrowRequestStatus string

const (
	BorrowPending  BorrowRequestStatus = "Pending"
	BorrowApproved BorrowRequestStatus = "Approved"
	BorrowDenied   BorrowRequestStatus = "Denied"
	BorrowReturned BorrowRequestStatus = "Returned"
)

// ParseBorrowRequestStatus validates a submitted borrow request status value.
func ParseBorrowRequestStatus(s string) (BorrowRequestStatus, error) {
	switch BorrowRequestStatus(s) {
	case BorrowPending, BorrowApproved, BorrowDenied, BorrowReturned:
		return BorrowRequestStatus(s), nil
	default:
		return "", fmt.Errorf("invalid borrow request status %q", s)
	}
}

// CanTransitionTo reports whether moving from s to next is a legal
// lifecycle step. Exhaustive over the transition table above.
func (s BorrowRequestStatus) CanTransitionTo(next BorrowRequestStatus) bool {
	switch s {
	case BorrowPending:
		return next == BorrowApproved || next == BorrowDenied
	case BorrowApproved:
		return next == BorrowReturned
	case BorrowDenied, BorrowReturned:
		return false
	default:
		return false
	}
}

// EquipmentStatusOperational is the default free-text equipment status.
// Equipment.Status deliberately stays a string: operators record arbitrary
// condition notes there ("Operational", "Broken fan", ...).
const EquipmentStatusOperational = "Operational"

// Overlaps reports whether the half-open windows [aStart,aEnd) and
// [bStart,bEnd) intersect. This is the single overlap test used by every
// scheduling conflict check in the system.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}
