package repository

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"

	domain "placehub/internal/domain/placement"
	"placehub/internal/domain/user"
	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
)

// In-memory implementations of every repository, used by tests and by the
// demo server mode. They honor the same contracts as the Postgres versions,
// including the atomic insert-if-absent on the application ledger.

type memoryProfileRepository struct {
	mu       sync.RWMutex
	profiles map[uuid.UUID]*domain.StudentProfile
}

func NewMemoryProfileRepository() interfaces.ProfileRepository {
	return &memoryProfileRepository{
		profiles: make(map[uuid.UUID]*domain.StudentProfile),
	}
}

func (r *memoryProfileRepository) Save(ctx context.Context, profile *domain.StudentProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *profile
	r.profiles[profile.StudentID] = &copied
	return nil
}

func (r *memoryProfileRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.profiles[studentID]
	if !ok {
		return nil, nil
	}
	copied := *profile
	return &copied, nil
}

func (r *memoryProfileRepository) GetAll(ctx context.Context) ([]*domain.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.StudentProfile, 0, len(r.profiles))
	for _, profile := range r.profiles {
		copied := *profile
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RegisterNumber < out[j].RegisterNumber
	})
	return out, nil
}

type memoryDriveRepository struct {
	mu     sync.RWMutex
	nextID int64
	drives map[int64]*domain.Drive
}

func NewMemoryDriveRepository() interfaces.DriveRepository {
	return &memoryDriveRepository{
		drives: make(map[int64]*domain.Drive),
	}
}

func (r *memoryDriveRepository) Create(ctx context.Context, drive *domain.Drive) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	drive.DriveID = r.nextID
	copied := *drive
	r.drives[drive.DriveID] = &copied
	return nil
}

func (r *memoryDriveRepository) GetByID(ctx context.Context, driveID int64) (*domain.Drive, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	drive, ok := r.drives[driveID]
	if !ok {
		return nil, nil
	}
	copied := *drive
	return &copied, nil
}

func (r *memoryDriveRepository) List(ctx context.Context, order interfaces.DriveOrder) ([]*domain.Drive, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Drive, 0, len(r.drives))
	for _, drive := range r.drives {
		copied := *drive
		out = append(out, &copied)
	}
	switch order {
	case interfaces.OrderByPostedDate:
		sort.Slice(out, func(i, j int) bool {
			if out[i].PostedAt.Equal(out[j].PostedAt) {
				return out[i].DriveID > out[j].DriveID
			}
			return out[i].PostedAt.After(out[j].PostedAt)
		})
	default:
		sort.Slice(out, func(i, j int) bool {
			if out[i].Deadline.Equal(out[j].Deadline) {
				return out[i].DriveID < out[j].DriveID
			}
			return out[i].Deadline.Before(out[j].Deadline)
		})
	}
	return out, nil
}

type memoryApplicationRepository struct {
	mu           sync.Mutex
	applications []*domain.Application
	pairs        map[string]struct{}
}

func NewMemoryApplicationRepository() interfaces.ApplicationRepository {
	return &memoryApplicationRepository{
		pairs: make(map[string]struct{}),
	}
}

func pairKey(studentID uuid.UUID, driveID int64) string {
	return studentID.String() + "/" + strconv.FormatInt(driveID, 10)
}

func (r *memoryApplicationRepository) CreateIfAbsent(ctx context.Context, application *domain.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(application.StudentID, application.DriveID)
	if _, exists := r.pairs[key]; exists {
		return domain.ErrAlreadyApplied
	}
	r.pairs[key] = struct{}{}
	copied := *application
	r.applications = append(r.applications, &copied)
	return nil
}

func (r *memoryApplicationRepository) GetByStudentAndDrive(ctx context.Context, studentID uuid.UUID, driveID int64) (*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, app := range r.applications {
		if app.StudentID == studentID && app.DriveID == driveID {
			copied := *app
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryApplicationRepository) GetByDriveID(ctx context.Context, driveID int64) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Application
	for _, app := range r.applications {
		if app.DriveID == driveID {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *memoryApplicationRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*domain.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*domain.Application
	for _, app := range r.applications {
		if app.StudentID == studentID {
			copied := *app
			out = append(out, &copied)
		}
	}
	return out, nil
}

type memoryNotificationRepository struct {
	mu            sync.RWMutex
	notifications []*domain.Notification
}

func NewMemoryNotificationRepository() interfaces.NotificationRepository {
	return &memoryNotificationRepository{}
}

func (r *memoryNotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	copied := *notification
	r.notifications = append(r.notifications, &copied)
	return nil
}

func (r *memoryNotificationRepository) GetByDriveIDs(ctx context.Context, driveIDs []int64) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	wanted := make(map[int64]struct{}, len(driveIDs))
	for _, id := range driveIDs {
		wanted[id] = struct{}{}
	}
	var out []*domain.Notification
	for _, n := range r.notifications {
		if _, ok := wanted[n.DriveID]; ok {
			copied := *n
			out = append(out, &copied)
		}
	}
	sortNotifications(out)
	return out, nil
}

func (r *memoryNotificationRepository) GetAll(ctx context.Context) ([]*domain.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Notification, 0, len(r.notifications))
	for _, n := range r.notifications {
		copied := *n
		out = append(out, &copied)
	}
	sortNotifications(out)
	return out, nil
}

func sortNotifications(list []*domain.Notification) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].PostedAt.After(list[j].PostedAt)
	})
}

type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*user.User
}

func NewMemoryUserRepository() interfaces.UserRepository {
	return &memoryUserRepository{
		users: make(map[uuid.UUID]*user.User),
	}
}

func (r *memoryUserRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return errors.New("username already taken")
		}
		if existing.RegisterNumber == u.RegisterNumber {
			return errors.New("register number already taken")
		}
	}
	copied := *u
	r.users[u.ID] = &copied
	return nil
}

func (r *memoryUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *memoryUserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) GetByRegisterNumber(ctx context.Context, registerNumber string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.RegisterNumber == registerNumber {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, u := range r.users {
		if u.Role == user.RoleStudent {
			count++
		}
	}
	return count, nil
}

// memoryReportRepository projects reports over the in-memory stores. Locking
// inside each underlying repository gives the same no-torn-reads guarantee
// the Postgres version gets from snapshot transactions.
type memoryReportRepository struct {
	users        interfaces.UserRepository
	profiles     interfaces.ProfileRepository
	drives       interfaces.DriveRepository
	applications interfaces.ApplicationRepository
}

func NewMemoryReportRepository(
	users interfaces.UserRepository,
	profiles interfaces.ProfileRepository,
	drives interfaces.DriveRepository,
	applications interfaces.ApplicationRepository,
) interfaces.ReportRepository {
	return &memoryReportRepository{
		users:        users,
		profiles:     profiles,
		drives:       drives,
		applications: applications,
	}
}

func (r *memoryReportRepository) SummarizeByDrive(ctx context.Context) ([]*domain.DriveSummary, error) {
	drives, err := r.drives.List(ctx, interfaces.OrderByPostedDate)
	if err != nil {
		return nil, err
	}

	var summaries []*domain.DriveSummary
	for _, drive := range drives {
		apps, err := r.applications.GetByDriveID(ctx, drive.DriveID)
		if err != nil {
			return nil, err
		}
		if len(apps) == 0 {
			continue
		}
		summaries = append(summaries, &domain.DriveSummary{
			DriveID:        drive.DriveID,
			Title:          drive.Title,
			ApplicantCount: len(apps),
			Applicants:     apps,
		})
	}
	return summaries, nil
}

func (r *memoryReportRepository) ExportApplicants(ctx context.Context, driveID int64) ([]domain.ApplicantRow, error) {
	apps, err := r.applications.GetByDriveID(ctx, driveID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ApplicantRow, 0, len(apps))
	for i, app := range apps {
		out = append(out, domain.ApplicantRow{
			Serial:         i + 1,
			RegisterNumber: app.Profile.RegisterNumber,
			RollNumber:     app.Profile.RollNumber,
			Year:           app.Profile.Year,
			Department:     string(app.Profile.Department),
			CGPA:           app.Profile.CGPA,
			ResumeLink:     app.Profile.ResumeLink,
			AppliedAt:      app.AppliedAt.Format(domain.AppliedAtFormat),
		})
	}
	return out, nil
}

func (r *memoryReportRepository) ParticipationStats(ctx context.Context) (*domain.ParticipationStats, error) {
	total, err := r.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	profiles, err := r.profiles.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	drives, err := r.drives.List(ctx, interfaces.OrderByDeadline)
	if err != nil {
		return nil, err
	}

	stats := &domain.ParticipationStats{
		TotalRegistered: total,
		ProfilesByYear:  make(map[domain.Year]int),
	}
	for _, profile := range profiles {
		stats.ProfilesByYear[profile.Year]++
	}

	applied := make(map[uuid.UUID]struct{})
	for _, drive := range drives {
		apps, err := r.applications.GetByDriveID(ctx, drive.DriveID)
		if err != nil {
			return nil, err
		}
		for _, app := range apps {
			applied[app.StudentID] = struct{}{}
		}
	}
	stats.Applied = len(applied)
	stats.NotApplied = stats.TotalRegistered - stats.Applied
	if stats.TotalRegistered > 0 {
		stats.ApplicationRate = float64(stats.Applied) / float64(stats.TotalRegistered)
	}
	return stats, nil
}
