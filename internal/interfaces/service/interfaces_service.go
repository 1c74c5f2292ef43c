package service

import (
	"context"

	domain "placehub/internal/domain/placement"
	"placehub/internal/domain/user"
	infrastructure "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// SaveProfileRequest carries the full profile form. Field validation happens
// in domain.StudentProfile.FieldErrors, which collects every failure
// (including the resume-host whitelist) instead of stopping at the first,
// so the request carries no validate tags.
type SaveProfileRequest struct {
	StudentID      uuid.UUID `json:"student_id"`
	Year           string    `json:"year"`
	RegisterNumber string    `json:"register_number"`
	RollNumber     string    `json:"roll_number"`
	Department     string    `json:"department"`
	CGPA           float64   `json:"cgpa"`
	ResumeLink     string    `json:"resume_link"`
	Skills         string    `json:"skills"`
	Certifications string    `json:"certifications"`
	Visibility     string    `json:"visibility"`
}

// PostDriveRequest is the admin form for publishing a drive.
type PostDriveRequest struct {
	Title               string   `json:"title" validate:"required"`
	Description         string   `json:"description" validate:"required"`
	RegistrationLink    string   `json:"registration_link" validate:"required,url"`
	Deadline            string   `json:"deadline" validate:"required"`
	EligibleYears       []string `json:"eligible_years" validate:"required,min=1,dive,oneof=I II III IV"`
	EligibleDepartments []string `json:"eligible_departments" validate:"required,min=1,dive,oneof=CSE IT ECE EEE MECH CIVIL"`
	MinCGPA             float64  `json:"min_cgpa" validate:"gte=0,lte=10"`
}

// ApplyRequest records that a student applied to a drive on the external
// portal. The ledger keeps at most one application per (student, drive).
type ApplyRequest struct {
	StudentID uuid.UUID `json:"student_id" validate:"required"`
	DriveID   int64     `json:"drive_id" validate:"required,gt=0"`
}

// PostNotificationRequest attaches an admin message to one drive.
type PostNotificationRequest struct {
	DriveID int64  `json:"drive_id" validate:"required,gt=0"`
	Message string `json:"message" validate:"required"`
}

// EligibleDrive pairs a drive with the student's standing against it.
type EligibleDrive struct {
	Drive   *domain.Drive `json:"drive"`
	Applied bool          `json:"applied"`
}

type ProfileService interface {
	SaveProfile(ctx context.Context, req *SaveProfileRequest) (*domain.StudentProfile, error)
	GetProfile(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error)
	IsComplete(profile *domain.StudentProfile) bool
}

type DriveService interface {
	PostDrive(ctx context.Context, req *PostDriveRequest) (*domain.Drive, error)
	ListDrives(ctx context.Context, order infrastructure.DriveOrder) ([]*domain.Drive, error)
	GetDrive(ctx context.Context, driveID int64) (*domain.Drive, error)
}

type ApplicationService interface {
	Apply(ctx context.Context, req *ApplyRequest) (*domain.Application, error)
	HasApplied(ctx context.Context, studentID uuid.UUID, driveID int64) (bool, error)
	ListApplicationsForDrive(ctx context.Context, driveID int64) ([]*domain.Application, error)
	GetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) ([]int64, error)
	ListEligibleDrives(ctx context.Context, studentID uuid.UUID) ([]*EligibleDrive, error)
	ProcessCacheSyncJob(ctx context.Context, job infrastructure.CacheSyncJob) error
}

type NotificationService interface {
	PostNotification(ctx context.Context, req *PostNotificationRequest) (*domain.Notification, error)
	ListNotificationsFor(ctx context.Context, studentID uuid.UUID) ([]*domain.Notification, error)
}

type ReportService interface {
	SummarizeByDrive(ctx context.Context) ([]*domain.DriveSummary, error)
	ExportApplicants(ctx context.Context, driveID int64) ([]domain.ApplicantRow, error)
	ParticipationStats(ctx context.Context) (*domain.ParticipationStats, error)
}

type UserService interface {
	Register(ctx context.Context, req *user.RegisterRequest) (*user.User, error)
	Authenticate(ctx context.Context, req *user.LoginRequest) (*user.AuthData, error)
	GetUser(ctx context.Context, id uuid.UUID) (*user.User, error)
}
