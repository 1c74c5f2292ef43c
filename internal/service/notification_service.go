package service

import (
	"context"
	"strings"
	"time"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"

	"github.com/google/uuid"
)

var _ serviceInterfaces.NotificationService = (*NotificationService)(nil)

// NotificationService routes admin messages to applicants. A notification
// belongs to one drive and is visible only to students whose ledger holds an
// application for that drive.
type NotificationService struct {
	notificationRepo interfaces.NotificationRepository
	applicationRepo  interfaces.ApplicationRepository
	driveRepo        interfaces.DriveRepository
	watcher          *Watcher
}

// NewNotificationService creates the notification router. watcher may be nil
// when nothing observes posted notifications.
func NewNotificationService(
	notificationRepo interfaces.NotificationRepository,
	applicationRepo interfaces.ApplicationRepository,
	driveRepo interfaces.DriveRepository,
	watcher *Watcher,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		applicationRepo:  applicationRepo,
		driveRepo:        driveRepo,
		watcher:          watcher,
	}
}

func (s *NotificationService) PostNotification(ctx context.Context, req *serviceInterfaces.PostNotificationRequest) (*domain.Notification, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, domain.ErrEmptyMessage
	}

	drive, err := s.driveRepo.GetByID(ctx, req.DriveID)
	if err != nil {
		return nil, err
	}
	if drive == nil {
		return nil, domain.ErrDriveNotFound
	}

	notification := &domain.Notification{
		NotificationID: uuid.New(),
		DriveID:        drive.DriveID,
		DriveTitle:     drive.Title,
		Message:        req.Message,
		PostedAt:       time.Now(),
	}

	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		return nil, err
	}

	logger.Info("Posted notification for drive %d (%s)", drive.DriveID, drive.Title)

	if s.watcher != nil {
		s.watcher.NotificationPosted(notification)
	}
	return notification, nil
}

// ListNotificationsFor returns the notifications for every drive the student
// applied to, newest first. Targeting reads the ledger directly so a student
// sees a drive's notifications immediately after applying.
func (s *NotificationService) ListNotificationsFor(ctx context.Context, studentID uuid.UUID) ([]*domain.Notification, error) {
	applications, err := s.applicationRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(applications) == 0 {
		return []*domain.Notification{}, nil
	}

	driveIDs := make([]int64, 0, len(applications))
	for _, app := range applications {
		driveIDs = append(driveIDs, app.DriveID)
	}
	return s.notificationRepo.GetByDriveIDs(ctx, driveIDs)
}
