package repository

import (
	"context"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository persists student profiles with GORM. One row per
// student; saving overwrites prior content.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) interfaces.ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) Save(ctx context.Context, profile *domain.StudentProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}},
		UpdateAll: true,
	}).Create(profile).Error
}

func (r *ProfileRepository) GetByStudentID(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error) {
	var profile domain.StudentProfile
	err := r.db.WithContext(ctx).First(&profile, "student_id = ?", studentID).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) GetAll(ctx context.Context) ([]*domain.StudentProfile, error) {
	var profiles []*domain.StudentProfile
	err := r.db.WithContext(ctx).Order("created_at").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
