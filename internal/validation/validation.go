// Package validation contains the field-level acceptance rules applied to
// account and task input before anything is persisted. Validators are pure:
// they collect every violation into a list of human-readable messages and
// never touch the database.
package validation

import (
	"regexp"
	"strings"
	"time"

	"github.com/devarsh/task-manager-api/internal/constants"
	"github.com/devarsh/task-manager-api/internal/models"
)

var (
	emailRegex   = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)
	digitRegex   = regexp.MustCompile(`\d`)
	upperRegex   = regexp.MustCompile(`[A-Z]`)
	lowerRegex   = regexp.MustCompile(`[a-z]`)
	dueDateForms = []string{"2006-01-02", time.RFC3339}
)

// ValidateRegistration checks name, email and password for a new account.
func ValidateRegistration(name, email, password string) []string {
	var errs []string

	errs = append(errs, validateName(name)...)

	if email == "" {
		errs = append(errs, "Email is required")
	} else if !emailRegex.MatchString(email) {
		errs = append(errs, "Please enter a valid email address")
	}

	switch {
	case password == "":
		errs = append(errs, "Password is required")
	case len(password) < constants.MinPasswordLength:
		errs = append(errs, "Password must be at least 6 characters long")
	case len(password) > constants.MaxPasswordLength:
		errs = append(errs, "Password cannot exceed 128 characters")
	}

	if password != "" {
		if !upperRegex.MatchString(password) || !lowerRegex.MatchString(password) || !digitRegex.MatchString(password) {
			errs = append(errs, "Password must contain at least one uppercase letter, one lowercase letter, and one number")
		}
	}

	return errs
}

// ValidateLogin only checks presence. Credential correctness is the auth
// service's job and failures there stay deliberately generic.
func ValidateLogin(email, password string) []string {
	var errs []string
	if email == "" {
		errs = append(errs, "Email is required")
	}
	if password == "" {
		errs = append(errs, "Password is required")
	}
	return errs
}

// ValidateProfileUpdate applies the registration name/email rules, but only
// to fields actually present in the request.
func ValidateProfileUpdate(name, email *string) []string {
	var errs []string
	if name != nil {
		errs = append(errs, validateName(*name)...)
	}
	if email != nil && !emailRegex.MatchString(*email) {
		errs = append(errs, "Please enter a valid email address")
	}
	return errs
}

// ValidateTaskInput checks a task create/replace payload. The due date is
// validated as a string so an unparseable value is reported alongside the
// other violations instead of failing JSON binding first.
func ValidateTaskInput(title, description, dueDate, priority, status string) []string {
	var errs []string

	if strings.TrimSpace(title) == "" {
		errs = append(errs, "Task title is required")
	} else if len(title) > constants.MaxTitleLength {
		errs = append(errs, "Task title cannot exceed 200 characters")
	}

	if len(description) > constants.MaxDescriptionLength {
		errs = append(errs, "Task description cannot exceed 1000 characters")
	}

	if dueDate == "" {
		errs = append(errs, "Due date is required")
	} else if _, err := ParseDueDate(dueDate); err != nil {
		errs = append(errs, "Invalid due date format")
	}

	if priority == "" {
		errs = append(errs, "Priority is required")
	} else if !models.ValidPriority(models.TaskPriority(priority)) {
		errs = append(errs, "Priority must be one of: Low, Medium, High")
	}

	if status != "" && !models.ValidStatus(models.TaskStatus(status)) {
		errs = append(errs, "Status must be one of: Pending, In Progress, Completed")
	}

	return errs
}

// ParseDueDate parses a due date supplied as either a plain calendar date
// or an RFC 3339 timestamp.
func ParseDueDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dueDateForms {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func validateName(name string) []string {
	var errs []string
	if len(strings.TrimSpace(name)) < constants.MinNameLength {
		errs = append(errs, "Name must be at least 2 characters long")
	}
	if len(name) > constants.MaxNameLength {
		errs = append(errs, "Name cannot exceed 50 characters")
	}
	// The registration form blocks digits in names; the server enforces the
	// same rule so the two layers cannot drift apart.
	if digitRegex.MatchString(name) {
		errs = append(errs, "Name cannot contain numbers")
	}
	return errs
}
