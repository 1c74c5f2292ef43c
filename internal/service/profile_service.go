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

const ProfileCacheTTL = 8 * time.Hour

var _ serviceInterfaces.ProfileService = (*ProfileService)(nil)

// ProfileService owns the single profile record each student maintains.
// Saving is all-or-nothing: every field is validated and the whole request
// is rejected if any field fails.
type ProfileService struct {
	profileRepo  interfaces.ProfileRepository
	cacheService interfaces.CacheService
	resumeHosts  []string
}

func NewProfileService(
	profileRepo interfaces.ProfileRepository,
	cacheService interfaces.CacheService,
	resumeHosts []string,
) *ProfileService {
	if len(resumeHosts) == 0 {
		resumeHosts = domain.DefaultResumeHosts
	}
	return &ProfileService{
		profileRepo:  profileRepo,
		cacheService: cacheService,
		resumeHosts:  resumeHosts,
	}
}

func (s *ProfileService) SaveProfile(ctx context.Context, req *serviceInterfaces.SaveProfileRequest) (*domain.StudentProfile, error) {
	visibility := domain.Visibility(req.Visibility)
	if req.Visibility == "" {
		visibility = domain.VisibilityPublic
	}

	profile := &domain.StudentProfile{
		StudentID:      req.StudentID,
		Year:           domain.Year(req.Year),
		RegisterNumber: req.RegisterNumber,
		RollNumber:     domain.NormalizeRollNumber(req.RollNumber),
		Department:     domain.Department(req.Department),
		CGPA:           req.CGPA,
		ResumeLink:     req.ResumeLink,
		Skills:         req.Skills,
		Certifications: req.Certifications,
		Visibility:     visibility,
	}

	if fieldErrs := profile.FieldErrors(s.resumeHosts); len(fieldErrs) > 0 {
		return nil, &domain.ProfileValidationError{Fields: fieldErrs}
	}

	if err := s.profileRepo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.cacheProfile(ctx, profile)

	logger.Info("Saved profile for student %s (register number %s)", profile.StudentID, profile.RegisterNumber)
	return profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, studentID uuid.UUID) (*domain.StudentProfile, error) {
	if data, err := s.cacheService.GetProfile(ctx, studentID); err == nil {
		var profile domain.StudentProfile
		if err := json.Unmarshal(data, &profile); err == nil {
			return &profile, nil
		}
		// Corrupted entry; fall through to the repository.
		if err := s.cacheService.InvalidateProfile(ctx, studentID); err != nil {
			logger.Warn("Failed to invalidate corrupted profile cache for %s: %v", studentID, err)
		}
	}

	profile, err := s.profileRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	s.cacheProfile(ctx, profile)
	return profile, nil
}

func (s *ProfileService) IsComplete(profile *domain.StudentProfile) bool {
	return profile != nil && profile.IsComplete(s.resumeHosts)
}

func (s *ProfileService) cacheProfile(ctx context.Context, profile *domain.StudentProfile) {
	data, err := json.Marshal(profile)
	if err != nil {
		return
	}
	if err := s.cacheService.SetProfile(ctx, profile.StudentID, data, ProfileCacheTTL); err != nil {
		logger.Warn("Failed to cache profile for %s: %v", profile.StudentID, err)
	}
}
