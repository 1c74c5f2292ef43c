package service

import (
	"context"
	"encoding/json"
	"time"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"

	"github.com/google/uuid"
)

const (
	AppliedDrivesTTL  = 20 * time.Minute
	DriveSummariesTTL = 2 * time.Minute
)

var _ serviceInterfaces.ApplicationService = (*ApplicationService)(nil)
var _ interfaces.CacheSyncProcessor = (*ApplicationService)(nil)

// ApplicationService owns the application ledger. The ledger is the source
// of truth for "has this student applied"; the cached applied-drive sets are
// derived views that workers rebuild from it.
type ApplicationService struct {
	profileRepo     interfaces.ProfileRepository
	driveRepo       interfaces.DriveRepository
	applicationRepo interfaces.ApplicationRepository
	reportRepo      interfaces.ReportRepository
	cacheService    interfaces.CacheService
	queueService    interfaces.QueueService
	resumeHosts     []string
}

func NewApplicationService(
	profileRepo interfaces.ProfileRepository,
	driveRepo interfaces.DriveRepository,
	applicationRepo interfaces.ApplicationRepository,
	reportRepo interfaces.ReportRepository,
	cacheService interfaces.CacheService,
	queueService interfaces.QueueService,
	resumeHosts []string,
) *ApplicationService {
	if len(resumeHosts) == 0 {
		resumeHosts = domain.DefaultResumeHosts
	}
	return &ApplicationService{
		profileRepo:     profileRepo,
		driveRepo:       driveRepo,
		applicationRepo: applicationRepo,
		reportRepo:      reportRepo,
		cacheService:    cacheService,
		queueService:    queueService,
		resumeHosts:     resumeHosts,
	}
}

// Apply records one application in the ledger. Preconditions are checked in
// a fixed order: the drive must exist, the profile must be complete, the
// profile must satisfy every eligibility criterion, and no prior application
// may exist for the pair. The duplicate check happens at the insert itself,
// so two concurrent applies for the same pair produce exactly one row.
func (s *ApplicationService) Apply(ctx context.Context, req *serviceInterfaces.ApplyRequest) (*domain.Application, error) {
	drive, err := s.driveRepo.GetByID(ctx, req.DriveID)
	if err != nil {
		return nil, err
	}
	if drive == nil {
		return nil, domain.ErrDriveNotFound
	}

	profile, err := s.profileRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if profile == nil || !profile.IsComplete(s.resumeHosts) {
		return nil, domain.ErrProfileIncomplete
	}

	eligibility := domain.CheckEligibility(profile, drive, s.resumeHosts)
	if !eligibility.Eligible {
		return nil, &domain.NotEligibleError{Reasons: eligibility.Reasons}
	}

	application := &domain.Application{
		ApplicationID: uuid.New(),
		StudentID:     req.StudentID,
		DriveID:       drive.DriveID,
		DriveTitle:    drive.Title,
		Profile:       *profile,
		AppliedAt:     time.Now(),
	}

	if err := s.applicationRepo.CreateIfAbsent(ctx, application); err != nil {
		return nil, err
	}

	logger.Info("Student %s applied to drive %d (%s)", req.StudentID, drive.DriveID, drive.Title)

	// Cache upkeep is best effort; the ledger row is already durable.
	if err := s.cacheService.AddAppliedDriveID(ctx, req.StudentID, drive.DriveID); err != nil {
		logger.Warn("Failed to add drive %d to applied cache for %s: %v", drive.DriveID, req.StudentID, err)
	}
	s.enqueueSync(ctx, interfaces.CacheSyncJob{
		JobType:   interfaces.JobTypeSyncAppliedDrives,
		StudentID: req.StudentID,
		DriveID:   drive.DriveID,
		Timestamp: time.Now(),
	})
	s.enqueueSync(ctx, interfaces.CacheSyncJob{
		JobType:   interfaces.JobTypeRefreshSummaries,
		Timestamp: time.Now(),
	})

	return application, nil
}

// HasApplied consults the ledger, never the cache, so the answer is exact.
func (s *ApplicationService) HasApplied(ctx context.Context, studentID uuid.UUID, driveID int64) (bool, error) {
	existing, err := s.applicationRepo.GetByStudentAndDrive(ctx, studentID, driveID)
	if err != nil {
		return false, err
	}
	return existing != nil, nil
}

func (s *ApplicationService) ListApplicationsForDrive(ctx context.Context, driveID int64) ([]*domain.Application, error) {
	drive, err := s.driveRepo.GetByID(ctx, driveID)
	if err != nil {
		return nil, err
	}
	if drive == nil {
		return nil, domain.ErrDriveNotFound
	}
	return s.applicationRepo.GetByDriveID(ctx, driveID)
}

// GetAppliedDriveIDs serves the student's applied set from cache when
// present, falling back to the ledger and repopulating on a miss.
func (s *ApplicationService) GetAppliedDriveIDs(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	if driveIDs, err := s.cacheService.GetAppliedDriveIDs(ctx, studentID); err == nil {
		return driveIDs, nil
	}

	driveIDs, err := s.appliedDriveIDsFromLedger(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if err := s.cacheService.SetAppliedDriveIDs(ctx, studentID, driveIDs, AppliedDrivesTTL); err != nil {
		logger.Warn("Failed to rebuild applied cache for %s: %v", studentID, err)
	}
	return driveIDs, nil
}

// ListEligibleDrives returns the drives the student's current profile
// qualifies for, deadline-soonest first, each flagged with whether the
// student already applied. An incomplete or missing profile qualifies for
// nothing.
func (s *ApplicationService) ListEligibleDrives(ctx context.Context, studentID uuid.UUID) ([]*serviceInterfaces.EligibleDrive, error) {
	profile, err := s.profileRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	drives, err := s.driveRepo.List(ctx, interfaces.OrderByDeadline)
	if err != nil {
		return nil, err
	}

	appliedIDs, err := s.GetAppliedDriveIDs(ctx, studentID)
	if err != nil {
		return nil, err
	}
	applied := make(map[int64]struct{}, len(appliedIDs))
	for _, id := range appliedIDs {
		applied[id] = struct{}{}
	}

	out := make([]*serviceInterfaces.EligibleDrive, 0, len(drives))
	for _, drive := range drives {
		eligibility := domain.CheckEligibility(profile, drive, s.resumeHosts)
		if !eligibility.Eligible {
			continue
		}
		_, hasApplied := applied[drive.DriveID]
		out = append(out, &serviceInterfaces.EligibleDrive{
			Drive:   drive,
			Applied: hasApplied,
		})
	}
	return out, nil
}

// ProcessCacheSyncJob rebuilds one derived view from the source of truth.
func (s *ApplicationService) ProcessCacheSyncJob(ctx context.Context, job interfaces.CacheSyncJob) error {
	switch job.JobType {
	case interfaces.JobTypeSyncAppliedDrives:
		driveIDs, err := s.appliedDriveIDsFromLedger(ctx, job.StudentID)
		if err != nil {
			return err
		}
		return s.cacheService.SetAppliedDriveIDs(ctx, job.StudentID, driveIDs, AppliedDrivesTTL)

	case interfaces.JobTypeRefreshSummaries:
		summaries, err := s.reportRepo.SummarizeByDrive(ctx)
		if err != nil {
			return err
		}
		data, err := json.Marshal(summaries)
		if err != nil {
			return err
		}
		return s.cacheService.SetDriveSummaries(ctx, data, DriveSummariesTTL)

	default:
		logger.Warn("Unknown cache sync job type: %s", job.JobType)
		return nil
	}
}

func (s *ApplicationService) appliedDriveIDsFromLedger(ctx context.Context, studentID uuid.UUID) ([]int64, error) {
	applications, err := s.applicationRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	driveIDs := make([]int64, 0, len(applications))
	for _, app := range applications {
		driveIDs = append(driveIDs, app.DriveID)
	}
	return driveIDs, nil
}

func (s *ApplicationService) enqueueSync(ctx context.Context, job interfaces.CacheSyncJob) {
	if err := s.queueService.EnqueueCacheSync(ctx, job); err != nil {
		logger.Warn("Failed to enqueue %s job: %v", job.JobType, err)
	}
}
