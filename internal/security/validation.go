// Package security provides input validation functionality.
// All validation methods return descriptive errors that are safe to show to
// users as flash messages.
package security

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// datetimeLocal is the layout produced by HTML datetime-local inputs,
// used by the subject and maintenance forms.
const datetimeLocal = "2006-01-02T15:04"

var subjectCodeRe = regexp.MustCompile(`^[A-Z0-9\-]{2,20}$`)

// ValidationService provides centralized input validation functions.
type ValidationService struct {
	config *SecurityConfig
}

// NewValidationService creates a new validation service with security configuration.
func NewValidationService(config *SecurityConfig) *ValidationService {
	return &ValidationService{
		config: config,
	}
}

// ValidateEmail validates email address format according to RFC 5322.
func (v *ValidationService) ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}

	if len(email) > 255 {
		return fmt.Errorf("email must be less than 255 characters")
	}

	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid email format")
	}

	return nil
}

// ValidatePassword validates password meets minimum security requirements:
// at least 8 characters with uppercase, lowercase, and a number.
func (v *ValidationService) ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}

	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}

	if len(password) > 128 {
		return fmt.Errorf("password must be less than 128 characters")
	}

	hasUpper := regexp.MustCompile(`[A-Z]`).MatchString(password)
	hasLower := regexp.MustCompile(`[a-z]`).MatchString(password)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(password)

	if !hasUpper {
		return fmt.Errorf("password must contain at least one uppercase letter")
	}

	if !hasLower {
		return fmt.Errorf("password must contain at least one lowercase letter")
	}

	if !hasNumber {
		return fmt.Errorf("password must contain at least one number")
	}

	return nil
}

// ValidateDisplayName validates room and equipment names: required,
// length-bounded, and limited to a safe character set.
func (v *ValidationService) ValidateDisplayName(fieldName, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%s is required", fieldName)
	}

	if utf8.RuneCountInString(name) > v.config.MaxNameLength {
		return fmt.Errorf("%s must be %d characters or less", fieldName, v.config.MaxNameLength)
	}

	if !regexp.MustCompile(`^[a-zA-Z0-9\s\-_.]+$`).MatchString(name) {
		return fmt.Errorf("%s can only contain letters, numbers, spaces, hyphens, underscores, and periods", fieldName)
	}

	return nil
}

// ValidateSubjectCode validates a subject code after it has been uppercased:
// 2-20 characters of letters, digits, and hyphens.
func (v *ValidationService) ValidateSubjectCode(code string) error {
	if code == "" {
		return fmt.Errorf("subject code is required")
	}

	if !subjectCodeRe.MatchString(code) {
		return fmt.Errorf("invalid subject code (expected 2-20 uppercase letters, digits, or hyphens)")
	}

	return nil
}

// ValidateDescription validates free-text descriptions for issues and
// maintenance records.
func (v *ValidationService) ValidateDescription(description string) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("description cannot be empty")
	}

	if len(description) > v.config.MaxDescriptionLength {
		return fmt.Errorf("description must be %d characters or less", v.config.MaxDescriptionLength)
	}

	return nil
}

// ParseDateTimeLocal parses an HTML datetime-local value.
func (v *ValidationService) ParseDateTimeLocal(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("date/time is required")
	}

	t, err := time.Parse(datetimeLocal, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date/time format")
	}

	return t, nil
}

// ParseTimeWindow parses a start/end datetime-local pair and enforces
// start < end.
func (v *ValidationService) ParseTimeWindow(start, end string) (time.Time, time.Time, error) {
	startTime, err := v.ParseDateTimeLocal(start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}

	endTime, err := v.ParseDateTimeLocal(end)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
	}

	if !startTime.Before(endTime) {
		return time.Time{}, time.Time{}, fmt.Errorf("start time must be before end time")
	}

	return startTime, endTime, nil
}

// SanitizeString removes control characters and normalizes whitespace.
func (v *ValidationService) SanitizeString(input string) string {
	input = regexp.MustCompile(`[\x00-\x08\x0B\x0C\x0E-\x1F\x7F]`).ReplaceAllString(input, "")
	return strings.TrimSpace(input)
}

// ValidateRequired checks that a required field is present and non-blank.
func (v *ValidationService) ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s is required", fieldName)
	}
	return nil
}

// ValidateLength validates string length is within bounds.
func (v *ValidationService) ValidateLength(fieldName string, value string, min, max int) error {
	length := utf8.RuneCountInString(value)

	if length < min {
		return fmt.Errorf("%s must be at least %d characters", fieldName, min)
	}

	if length > max {
		return fmt.Errorf("%s must be %d characters or less", fieldName, max)
	}

	return nil
}

// ValidateLaptopBatch validates bulk laptop creation parameters.
func (v *ValidationService) ValidateLaptopBatch(count, startingIndex int) error {
	if count < 1 {
		return fmt.Errorf("number of laptops must be at least 1")
	}

	if count > v.config.MaxBatchLaptops {
		return fmt.Errorf("cannot create more than %d laptops at once", v.config.MaxBatchLaptops)
	}

	if startingIndex < 1 {
		return fmt.Errorf("starting index must be at least 1")
	}

	return nil
}
