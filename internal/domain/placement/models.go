package domain

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Year is an academic year a student can be in.
type Year string

const (
	YearI   Year = "I"
	YearII  Year = "II"
	YearIII Year = "III"
	YearIV  Year = "IV"
)

// Department is one of the fixed department codes of the institution.
type Department string

const (
	DeptCSE   Department = "CSE"
	DeptIT    Department = "IT"
	DeptECE   Department = "ECE"
	DeptEEE   Department = "EEE"
	DeptMECH  Department = "MECH"
	DeptCIVIL Department = "CIVIL"
)

// Visibility controls whether a profile is shown to recruiters.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// DefaultResumeHosts are the document-hosting domains accepted for resume
// links when no override is configured.
var DefaultResumeHosts = []string{"drive.google.com", "docs.google.com"}

var (
	registerNumberPattern = regexp.MustCompile(`^[0-9]{12}$`)
	rollNumberPattern     = regexp.MustCompile(`^[0-9]{2}[A-Z]{2}[0-9]{3}$`)
)

// StudentProfile holds the placement profile a student maintains. Exactly one
// profile exists per student; saving overwrites the prior content.
type StudentProfile struct {
	StudentID      uuid.UUID  `json:"student_id" gorm:"type:uuid;primary_key"`
	Year           Year       `json:"year" gorm:"type:text;not null"`
	RegisterNumber string     `json:"register_number" gorm:"unique;not null"`
	RollNumber     string     `json:"roll_number" gorm:"not null"`
	Department     Department `json:"department" gorm:"type:text;not null"`
	CGPA           float64    `json:"cgpa" gorm:"not null"`
	ResumeLink     string     `json:"resume_link" gorm:"not null"`
	Skills         string     `json:"skills" gorm:"not null"`
	Certifications string     `json:"certifications"`
	Visibility     Visibility `json:"visibility" gorm:"type:text;not null;default:public"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// NormalizeRollNumber uppercases a roll number before validation, so inputs
// like "23cs157" are accepted as "23CS157".
func NormalizeRollNumber(roll string) string {
	return strings.ToUpper(strings.TrimSpace(roll))
}

// ValidYear reports whether y is one of the four academic years.
func ValidYear(y Year) bool {
	switch y {
	case YearI, YearII, YearIII, YearIV:
		return true
	}
	return false
}

// ValidDepartment reports whether d is one of the fixed department codes.
func ValidDepartment(d Department) bool {
	switch d {
	case DeptCSE, DeptIT, DeptECE, DeptEEE, DeptMECH, DeptCIVIL:
		return true
	}
	return false
}

// ValidResumeLink reports whether link parses as an http(s) URL whose host is
// one of the approved document-hosting domains.
func ValidResumeLink(link string, approvedHosts []string) bool {
	u, err := url.Parse(link)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, approved := range approvedHosts {
		if host == strings.ToLower(approved) {
			return true
		}
	}
	return false
}

// FieldErrors validates every profile field and returns one ValidationError
// per failing field. An empty result means the profile is complete.
func (p *StudentProfile) FieldErrors(resumeHosts []string) []ValidationError {
	var errs []ValidationError

	if !ValidYear(p.Year) {
		errs = append(errs, ValidationError{Field: "year", Reason: "must be one of I, II, III, IV"})
	}
	if !registerNumberPattern.MatchString(p.RegisterNumber) {
		errs = append(errs, ValidationError{Field: "register_number", Reason: "must be exactly 12 digits"})
	}
	if !rollNumberPattern.MatchString(p.RollNumber) {
		errs = append(errs, ValidationError{Field: "roll_number", Reason: "must be 2 digits, 2 letters, 3 digits (e.g. 23CS157)"})
	}
	if !ValidDepartment(p.Department) {
		errs = append(errs, ValidationError{Field: "department", Reason: "unknown department code"})
	}
	if p.CGPA < 0 || p.CGPA > 10 {
		errs = append(errs, ValidationError{Field: "cgpa", Reason: "must be between 0 and 10"})
	}
	if !ValidResumeLink(p.ResumeLink, resumeHosts) {
		errs = append(errs, ValidationError{Field: "resume_link", Reason: "must be hosted on an approved document domain"})
	}
	if strings.TrimSpace(p.Skills) == "" {
		errs = append(errs, ValidationError{Field: "skills", Reason: "is required"})
	}
	switch p.Visibility {
	case VisibilityPublic, VisibilityPrivate:
	default:
		errs = append(errs, ValidationError{Field: "visibility", Reason: "must be public or private"})
	}

	return errs
}

// IsComplete reports whether every required field is present and valid.
// Incomplete profiles cannot apply to any drive.
func (p *StudentProfile) IsComplete(resumeHosts []string) bool {
	return len(p.FieldErrors(resumeHosts)) == 0
}

// Drive is a placement or internship opportunity posted by the placement
// office. Drives are immutable once posted; there is no edit or delete.
type Drive struct {
	DriveID             int64        `json:"drive_id" gorm:"primary_key;autoIncrement"`
	Title               string       `json:"title" gorm:"not null"`
	Description         string       `json:"description" gorm:"not null"`
	RegistrationLink    string       `json:"registration_link" gorm:"not null"`
	Deadline            time.Time    `json:"deadline" gorm:"not null"`
	EligibleYears       []Year       `json:"eligible_years" gorm:"serializer:json;type:jsonb;not null"`
	EligibleDepartments []Department `json:"eligible_departments" gorm:"serializer:json;type:jsonb;not null"`
	MinCGPA             float64      `json:"min_cgpa" gorm:"not null"`
	PostedAt            time.Time    `json:"posted_at" gorm:"not null"`
	CreatedAt           time.Time    `json:"created_at" gorm:"autoCreateTime"`
}

// Application is the immutable record that a student applied to a drive. The
// profile is snapshotted at apply time; later profile edits never change it.
// At most one application exists per (student, drive) pair.
type Application struct {
	ApplicationID uuid.UUID      `json:"application_id" gorm:"type:uuid;primary_key"`
	StudentID     uuid.UUID      `json:"student_id" gorm:"type:uuid;not null;uniqueIndex:idx_applications_student_drive"`
	DriveID       int64          `json:"drive_id" gorm:"not null;uniqueIndex:idx_applications_student_drive"`
	DriveTitle    string         `json:"drive_title" gorm:"not null"`
	Profile       StudentProfile `json:"profile" gorm:"serializer:json;type:jsonb;not null"`
	AppliedAt     time.Time      `json:"applied_at" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// Notification is a message the placement office attaches to a drive. It is
// visible only to students with an application for that drive.
type Notification struct {
	NotificationID uuid.UUID `json:"notification_id" gorm:"type:uuid;primary_key"`
	DriveID        int64     `json:"drive_id" gorm:"not null;index"`
	DriveTitle     string    `json:"drive_title" gorm:"not null"`
	Message        string    `json:"message" gorm:"not null"`
	PostedAt       time.Time `json:"posted_at" gorm:"not null"`
	CreatedAt      time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// DriveSummary is the admin-facing aggregation for one drive with at least
// one applicant. Applicants appear in the order they were recorded.
type DriveSummary struct {
	DriveID        int64          `json:"drive_id"`
	Title          string         `json:"title"`
	ApplicantCount int            `json:"applicant_count"`
	Applicants     []*Application `json:"applicants"`
}

// ApplicantRow is one row of the per-drive applicant export.
type ApplicantRow struct {
	Serial         int     `json:"serial"`
	RegisterNumber string  `json:"register_number"`
	RollNumber     string  `json:"roll_number"`
	Year           Year    `json:"year"`
	Department     string  `json:"department"`
	CGPA           float64 `json:"cgpa"`
	ResumeLink     string  `json:"resume_link"`
	AppliedAt      string  `json:"applied_at"`
}

// ParticipationStats is the coarse reporting view across the whole office.
type ParticipationStats struct {
	TotalRegistered int          `json:"total_registered"`
	ProfilesByYear  map[Year]int `json:"profiles_by_year"`
	Applied         int          `json:"applied"`
	NotApplied      int          `json:"not_applied"`
	ApplicationRate float64      `json:"application_rate"`
}

// AppliedAtFormat is the human-readable timestamp used on applicant exports.
const AppliedAtFormat = "Jan 2, 2006 3:04 PM"
