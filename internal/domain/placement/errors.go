package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the application ledger and notification router. Callers
// match them with errors.Is; handlers translate them to HTTP statuses.
var (
	ErrDriveNotFound     = errors.New("drive not found")
	ErrProfileIncomplete = errors.New("profile incomplete")
	ErrAlreadyApplied    = errors.New("already applied to this drive")
	ErrEmptyMessage      = errors.New("notification message is empty")
	ErrProfileNotFound   = errors.New("profile not found")
)

// ValidationError reports a single profile field failing its rule.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ProfileValidationError wraps every failing field of a rejected save. The
// profile is not partially persisted when this is returned.
type ProfileValidationError struct {
	Fields []ValidationError
}

func (e *ProfileValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Error())
	}
	return "profile validation failed: " + strings.Join(parts, "; ")
}

// FailedCriterion names one eligibility rule a profile did not satisfy.
type FailedCriterion string

const (
	CriterionYear              FailedCriterion = "year"
	CriterionDepartment        FailedCriterion = "department"
	CriterionCGPA              FailedCriterion = "cgpa"
	CriterionProfileIncomplete FailedCriterion = "profile_incomplete"
)

// NotEligibleError carries every failing criterion, not just the first, so
// the caller can present a complete explanation.
type NotEligibleError struct {
	Reasons []FailedCriterion
}

func (e *NotEligibleError) Error() string {
	parts := make([]string, 0, len(e.Reasons))
	for _, r := range e.Reasons {
		parts = append(parts, string(r))
	}
	return "not eligible for drive: failed criteria " + strings.Join(parts, ", ")
}
