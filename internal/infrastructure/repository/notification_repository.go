package repository

import (
	"context"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// NotificationRepository persists drive notifications with GORM.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) interfaces.NotificationRepository {
	return &NotificationRepository{
		db: db,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *domain.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *NotificationRepository) GetByDriveIDs(ctx context.Context, driveIDs []int64) ([]*domain.Notification, error) {
	if len(driveIDs) == 0 {
		return []*domain.Notification{}, nil
	}

	var notifications []*domain.Notification
	err := r.db.WithContext(ctx).
		Where("drive_id IN ?", driveIDs).
		Order("posted_at DESC").
		Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationRepository) GetAll(ctx context.Context) ([]*domain.Notification, error) {
	var notifications []*domain.Notification
	err := r.db.WithContext(ctx).Order("posted_at DESC").Find(&notifications).Error
	if err != nil {
		return nil, err
	}
	return notifications, nil
}
