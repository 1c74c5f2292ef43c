package interfaces

import (
	"context"

	domain "placehub/internal/domain/placement"
	"placehub/internal/domain/user"

	"github.com/google/uuid"
)

// DriveOrder selects the sort order for catalog listings.
type DriveOrder string

const (
	OrderByDeadline   DriveOrder = "deadline"
	OrderByPostedDate DriveOrder = "posted_date"
)

type ProfileRepository interface {
	// Save overwrites the single profile row for the student; no history.
	Save(ctx context.Context, profile *domain.StudentProfile) error
	GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error)
	GetAll(ctx context.Context) ([]*domain.StudentProfile, error)
}

type DriveRepository interface {
	Create(ctx context.Context, drive *domain.Drive) error
	GetByID(ctx context.Context, driveID int64) (*domain.Drive, error)
	// List returns drives sorted per order: deadline ascending or posted
	// date descending.
	List(ctx context.Context, order DriveOrder) ([]*domain.Drive, error)
}

type ApplicationRepository interface {
	// CreateIfAbsent inserts the application unless one already exists for
	// the (student, drive) pair. The existence check and the insert are a
	// single atomic operation; a lost race returns domain.ErrAlreadyApplied.
	CreateIfAbsent(ctx context.Context, application *domain.Application) error
	GetByStudentAndDrive(ctx context.Context, studentID uuid.UUID, driveID int64) (*domain.Application, error)
	// GetByDriveID returns applications in the order they were recorded.
	GetByDriveID(ctx context.Context, driveID int64) ([]*domain.Application, error)
	GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*domain.Application, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *domain.Notification) error
	// GetByDriveIDs returns notifications for the given drives sorted by
	// posted date descending.
	GetByDriveIDs(ctx context.Context, driveIDs []int64) ([]*domain.Notification, error)
	GetAll(ctx context.Context) ([]*domain.Notification, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetByUsername(ctx context.Context, username string) (*user.User, error)
	GetByRegisterNumber(ctx context.Context, registerNumber string) (*user.User, error)
	Count(ctx context.Context) (int, error)
}

// ReportRepository is a read-only projection over the ledger and profile
// store. Implementations must read a consistent snapshot: no row may observe
// half-written state from a concurrent apply.
type ReportRepository interface {
	SummarizeByDrive(ctx context.Context) ([]*domain.DriveSummary, error)
	ExportApplicants(ctx context.Context, driveID int64) ([]domain.ApplicantRow, error)
	ParticipationStats(ctx context.Context) (*domain.ParticipationStats, error)
}
