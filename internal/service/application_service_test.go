package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	domain "placehub/internal/domain/placement"
	"placehub/internal/infrastructure/cache"
	"placehub/internal/infrastructure/queue"
	"placehub/internal/infrastructure/repository"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/google/uuid"
)

// testEnv wires the services over in-memory infrastructure.
type testEnv struct {
	profileRepo     interfaces.ProfileRepository
	driveRepo       interfaces.DriveRepository
	applicationRepo interfaces.ApplicationRepository
	userRepo        interfaces.UserRepository
	reportRepo      interfaces.ReportRepository
	cache           interfaces.CacheService
	queue           interfaces.QueueService

	profiles      *ProfileService
	drives        *DriveService
	applications  *ApplicationService
	notifications *NotificationService
	reports       *ReportService
	users         *UserService
}

func newTestEnv() *testEnv {
	env := &testEnv{}
	env.profileRepo = repository.NewMemoryProfileRepository()
	env.driveRepo = repository.NewMemoryDriveRepository()
	env.applicationRepo = repository.NewMemoryApplicationRepository()
	env.userRepo = repository.NewMemoryUserRepository()
	notificationRepo := repository.NewMemoryNotificationRepository()
	env.reportRepo = repository.NewMemoryReportRepository(env.userRepo, env.profileRepo, env.driveRepo, env.applicationRepo)
	env.cache = cache.NewMemoryCache()
	env.queue = queue.NewInMemoryQueue(100, 1)

	watcher := NewWatcher()
	env.profiles = NewProfileService(env.profileRepo, env.cache, nil)
	env.drives = NewDriveService(env.driveRepo, watcher)
	env.applications = NewApplicationService(
		env.profileRepo, env.driveRepo, env.applicationRepo, env.reportRepo,
		env.cache, env.queue, nil,
	)
	env.notifications = NewNotificationService(notificationRepo, env.applicationRepo, env.driveRepo, watcher)
	env.reports = NewReportService(env.reportRepo, env.cache)
	env.users = NewUserService(env.userRepo)
	return env
}

func completeProfile(studentID uuid.UUID) *domain.StudentProfile {
	return &domain.StudentProfile{
		StudentID:      studentID,
		Year:           domain.YearIII,
		RegisterNumber: "211521104001",
		RollNumber:     "21CS001",
		Department:     domain.DeptCSE,
		CGPA:           8.2,
		ResumeLink:     "https://drive.google.com/file/d/abc123",
		Skills:         "Go, SQL",
		Visibility:     domain.VisibilityPublic,
	}
}

func postTestDrive(t *testing.T, env *testEnv, minCGPA float64) *domain.Drive {
	t.Helper()

	drive, err := env.drives.PostDrive(context.Background(), &serviceInterfaces.PostDriveRequest{
		Title:               "Acme Campus Drive",
		Description:         "Software engineer openings",
		RegistrationLink:    "https://careers.acme.example/apply",
		Deadline:            time.Now().Add(14 * 24 * time.Hour).Format(time.RFC3339),
		EligibleYears:       []string{"III", "IV"},
		EligibleDepartments: []string{"CSE", "IT"},
		MinCGPA:             minCGPA,
	})
	if err != nil {
		t.Fatalf("Failed to post drive: %v", err)
	}
	return drive
}

func TestApplicationService_Apply(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	app, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	})
	if err != nil {
		t.Fatalf("Expected apply to succeed, got %v", err)
	}

	if app.DriveID != drive.DriveID {
		t.Errorf("Expected drive ID %d, got %d", drive.DriveID, app.DriveID)
	}
	if app.DriveTitle != drive.Title {
		t.Errorf("Expected drive title %q, got %q", drive.Title, app.DriveTitle)
	}
	if app.Profile.RegisterNumber != "211521104001" {
		t.Errorf("Expected snapshot register number 211521104001, got %s", app.Profile.RegisterNumber)
	}

	applied, err := env.applications.HasApplied(ctx, studentID, drive.DriveID)
	if err != nil {
		t.Fatalf("HasApplied failed: %v", err)
	}
	if !applied {
		t.Error("Expected HasApplied to be true after apply")
	}
}

func TestApplicationService_Apply_Duplicate(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	req := &serviceInterfaces.ApplyRequest{StudentID: studentID, DriveID: drive.DriveID}
	if _, err := env.applications.Apply(ctx, req); err != nil {
		t.Fatalf("First apply failed: %v", err)
	}

	_, err := env.applications.Apply(ctx, req)
	if !errors.Is(err, domain.ErrAlreadyApplied) {
		t.Fatalf("Expected ErrAlreadyApplied, got %v", err)
	}

	apps, err := env.applicationRepo.GetByDriveID(ctx, drive.DriveID)
	if err != nil {
		t.Fatalf("GetByDriveID failed: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("Expected exactly 1 ledger row, got %d", len(apps))
	}
}

func TestApplicationService_Apply_DriveNotFound(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	// No profile either; an unknown drive must win over the missing profile.
	_, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: uuid.New(),
		DriveID:   999,
	})
	if !errors.Is(err, domain.ErrDriveNotFound) {
		t.Fatalf("Expected ErrDriveNotFound, got %v", err)
	}
}

func TestApplicationService_Apply_ProfileIncomplete(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	drive := postTestDrive(t, env, 7.5)

	// Missing profile.
	_, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: uuid.New(),
		DriveID:   drive.DriveID,
	})
	if !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("Expected ErrProfileIncomplete for missing profile, got %v", err)
	}

	// Present but incomplete profile.
	studentID := uuid.New()
	profile := completeProfile(studentID)
	profile.ResumeLink = "https://evil.example.com/resume.pdf"
	if err := env.profileRepo.Save(ctx, profile); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	_, err = env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	})
	if !errors.Is(err, domain.ErrProfileIncomplete) {
		t.Fatalf("Expected ErrProfileIncomplete for invalid resume link, got %v", err)
	}
}

func TestApplicationService_Apply_NotEligible(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 9.0)

	_, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	})

	var notEligible *domain.NotEligibleError
	if !errors.As(err, &notEligible) {
		t.Fatalf("Expected NotEligibleError, got %v", err)
	}
	if len(notEligible.Reasons) != 1 || notEligible.Reasons[0] != domain.CriterionCGPA {
		t.Errorf("Expected reasons [cgpa], got %v", notEligible.Reasons)
	}
}

func TestApplicationService_SnapshotImmutable(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Edit the profile after applying.
	updated := completeProfile(studentID)
	updated.CGPA = 9.9
	updated.Skills = "Rust"
	if err := env.profileRepo.Save(ctx, updated); err != nil {
		t.Fatalf("Failed to update profile: %v", err)
	}

	stored, err := env.applicationRepo.GetByStudentAndDrive(ctx, studentID, drive.DriveID)
	if err != nil {
		t.Fatalf("GetByStudentAndDrive failed: %v", err)
	}
	if stored.Profile.CGPA != 8.2 {
		t.Errorf("Expected snapshot CGPA 8.2, got %v", stored.Profile.CGPA)
	}
	if stored.Profile.Skills != "Go, SQL" {
		t.Errorf("Expected snapshot skills unchanged, got %q", stored.Profile.Skills)
	}
}

func TestApplicationService_ConcurrentApplies(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	const attempts = 16
	var wg sync.WaitGroup
	results := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
				StudentID: studentID,
				DriveID:   drive.DriveID,
			})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else if !errors.Is(err, domain.ErrAlreadyApplied) {
			t.Errorf("Unexpected error from concurrent apply: %v", err)
		}
	}
	if succeeded != 1 {
		t.Errorf("Expected exactly 1 successful apply, got %d", succeeded)
	}

	apps, err := env.applicationRepo.GetByDriveID(ctx, drive.DriveID)
	if err != nil {
		t.Fatalf("GetByDriveID failed: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("Expected exactly 1 ledger row, got %d", len(apps))
	}
}

func TestApplicationService_ListEligibleDrives(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}

	eligible := postTestDrive(t, env, 7.5)
	postTestDrive(t, env, 9.5) // above the student's CGPA

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   eligible.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	drives, err := env.applications.ListEligibleDrives(ctx, studentID)
	if err != nil {
		t.Fatalf("ListEligibleDrives failed: %v", err)
	}
	if len(drives) != 1 {
		t.Fatalf("Expected 1 eligible drive, got %d", len(drives))
	}
	if drives[0].Drive.DriveID != eligible.DriveID {
		t.Errorf("Expected drive %d, got %d", eligible.DriveID, drives[0].Drive.DriveID)
	}
	if !drives[0].Applied {
		t.Error("Expected applied flag to be set")
	}
}

func TestApplicationService_ListEligibleDrives_NoProfile(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	postTestDrive(t, env, 0)

	drives, err := env.applications.ListEligibleDrives(ctx, uuid.New())
	if err != nil {
		t.Fatalf("ListEligibleDrives failed: %v", err)
	}
	if len(drives) != 0 {
		t.Errorf("Expected no eligible drives without a profile, got %d", len(drives))
	}
}

func TestApplicationService_CacheSyncJob(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Drop the cache entry, then let the sync job rebuild it from the ledger.
	if err := env.cache.InvalidateAppliedDriveIDs(ctx, studentID); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if err := env.applications.ProcessCacheSyncJob(ctx, interfaces.CacheSyncJob{
		JobType:   interfaces.JobTypeSyncAppliedDrives,
		StudentID: studentID,
		Timestamp: time.Now(),
	}); err != nil {
		t.Fatalf("ProcessCacheSyncJob failed: %v", err)
	}

	driveIDs, err := env.cache.GetAppliedDriveIDs(ctx, studentID)
	if err != nil {
		t.Fatalf("Expected rebuilt cache set, got miss: %v", err)
	}
	if len(driveIDs) != 1 || driveIDs[0] != drive.DriveID {
		t.Errorf("Expected cached set [%d], got %v", drive.DriveID, driveIDs)
	}
}

func TestApplicationService_AppliedIDsFallBackToLedger(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	studentID := uuid.New()

	if err := env.profileRepo.Save(ctx, completeProfile(studentID)); err != nil {
		t.Fatalf("Failed to save profile: %v", err)
	}
	drive := postTestDrive(t, env, 7.5)

	if _, err := env.applications.Apply(ctx, &serviceInterfaces.ApplyRequest{
		StudentID: studentID,
		DriveID:   drive.DriveID,
	}); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := env.cache.InvalidateAppliedDriveIDs(ctx, studentID); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}

	driveIDs, err := env.applications.GetAppliedDriveIDs(ctx, studentID)
	if err != nil {
		t.Fatalf("GetAppliedDriveIDs failed: %v", err)
	}
	if len(driveIDs) != 1 || driveIDs[0] != drive.DriveID {
		t.Errorf("Expected [%d] from ledger fallback, got %v", drive.DriveID, driveIDs)
	}
}
