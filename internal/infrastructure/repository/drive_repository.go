package repository

import (
	"context"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"

	"gorm.io/gorm"
)

// DriveRepository persists placement drives with GORM. Drives are append
// only: there is no update or delete.
type DriveRepository struct {
	db *gorm.DB
}

func NewDriveRepository(db *gorm.DB) interfaces.DriveRepository {
	return &DriveRepository{
		db: db,
	}
}

func (r *DriveRepository) Create(ctx context.Context, drive *domain.Drive) error {
	return r.db.WithContext(ctx).Create(drive).Error
}

func (r *DriveRepository) GetByID(ctx context.Context, driveID int64) (*domain.Drive, error) {
	var drive domain.Drive
	err := r.db.WithContext(ctx).First(&drive, "drive_id = ?", driveID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &drive, nil
}

func (r *DriveRepository) List(ctx context.Context, order interfaces.DriveOrder) ([]*domain.Drive, error) {
	var drives []*domain.Drive

	query := r.db.WithContext(ctx)
	switch order {
	case interfaces.OrderByDeadline:
		query = query.Order("deadline ASC")
	default:
		query = query.Order("posted_at DESC")
	}

	if err := query.Find(&drives).Error; err != nil {
		return nil, err
	}
	return drives, nil
}
