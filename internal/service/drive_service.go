package service

import (
	"context"
	"fmt"
	"time"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"
	"placehub/pkg/validator"
)

var _ serviceInterfaces.DriveService = (*DriveService)(nil)

// DriveService publishes and lists placement drives. Drives are immutable
// once posted; there is no update or delete path.
type DriveService struct {
	driveRepo interfaces.DriveRepository
	watcher   *Watcher
}

// NewDriveService creates the drive catalog service. watcher may be nil when
// nothing observes catalog changes.
func NewDriveService(driveRepo interfaces.DriveRepository, watcher *Watcher) *DriveService {
	return &DriveService{
		driveRepo: driveRepo,
		watcher:   watcher,
	}
}

func (s *DriveService) PostDrive(ctx context.Context, req *serviceInterfaces.PostDriveRequest) (*domain.Drive, error) {
	if err := validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	deadline, err := time.Parse(time.RFC3339, req.Deadline)
	if err != nil {
		return nil, fmt.Errorf("invalid deadline: %w", err)
	}

	years := make([]domain.Year, 0, len(req.EligibleYears))
	for _, y := range req.EligibleYears {
		years = append(years, domain.Year(y))
	}
	departments := make([]domain.Department, 0, len(req.EligibleDepartments))
	for _, d := range req.EligibleDepartments {
		departments = append(departments, domain.Department(d))
	}

	drive := &domain.Drive{
		Title:               req.Title,
		Description:         req.Description,
		RegistrationLink:    req.RegistrationLink,
		Deadline:            deadline,
		EligibleYears:       years,
		EligibleDepartments: departments,
		MinCGPA:             req.MinCGPA,
		PostedAt:            time.Now(),
	}

	if err := s.driveRepo.Create(ctx, drive); err != nil {
		return nil, err
	}

	logger.Info("Posted drive %d: %s (deadline %s)", drive.DriveID, drive.Title, drive.Deadline.Format(time.RFC3339))

	if s.watcher != nil {
		s.watcher.DrivePosted(drive)
	}
	return drive, nil
}

func (s *DriveService) ListDrives(ctx context.Context, order interfaces.DriveOrder) ([]*domain.Drive, error) {
	return s.driveRepo.List(ctx, order)
}

func (s *DriveService) GetDrive(ctx context.Context, driveID int64) (*domain.Drive, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if drive == nil {
		return nil, domain.ErrDriveNotFound
	}
	return drive, nil
}
