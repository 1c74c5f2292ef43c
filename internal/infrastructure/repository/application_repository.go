package repository

import (
	"context"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ApplicationRepository persists the application ledger with GORM.
// Applications are append-only and never mutated or deleted.
type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) interfaces.ApplicationRepository {
	return &ApplicationRepository{
		db: db,
	}
}

// CreateIfAbsent inserts through ON CONFLICT DO NOTHING on the
// (student_id, drive_id) unique index. The existence check happens at write
// time inside the database, so two concurrent applies can never both insert;
// the loser sees zero affected rows and gets domain.ErrAlreadyApplied.
func (r *ApplicationRepository) CreateIfAbsent(ctx context.Context, application *domain.Application) error {
	result := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "drive_id"}},
		DoNothing: true,
	}).Create(application)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrAlreadyApplied
	}
	return nil
}

func (r *ApplicationRepository) GetByStudentAndDrive(ctx context.Context, studentID uuid.UUID, driveID int64) (*domain.Application, error) {
	var application domain.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ? AND drive_id = ?", studentID, driveID).
		First(&application).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &application, nil
}

// GetByDriveID returns applications in insertion order.
func (r *ApplicationRepository) GetByDriveID(ctx context.Context, driveID int64) ([]*domain.Application, error) {
	var applications []*domain.Application
	err := r.db.WithContext(ctx).
		Where("drive_id = ?", driveID).
		Order("applied_at ASC, application_id ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *ApplicationRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) ([]*domain.Application, error) {
	var applications []*domain.Application
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("applied_at ASC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}
