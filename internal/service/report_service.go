package service

import (
	"context"
	"encoding/json"

	domain "placehub/internal/domain/placement"
	interfaces "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"
)

var _ serviceInterfaces.ReportService = (*ReportService)(nil)

// ReportService serves the admin reporting views. Drive summaries are read
// through the cache because the dashboard polls them; exports and stats go
// straight to the snapshot queries.
type ReportService struct {
	reportRepo   interfaces.ReportRepository
	cacheService interfaces.CacheService
}

func NewReportService(
	reportRepo interfaces.ReportRepository,
	cacheService interfaces.CacheService,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		cacheService: cacheService,
	}
}

func (s *ReportService) SummarizeByDrive(ctx context.Context) ([]*domain.DriveSummary, error) {
	if data, err := s.cacheService.GetDriveSummaries(ctx); err == nil {
		var summaries []*domain.DriveSummary
		if err := json.Unmarshal(data, &summaries); err == nil {
			return summaries, nil
		}
	}

	summaries, err := s.reportRepo.SummarizeByDrive(ctx)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(summaries); err == nil {
		if err := s.cacheService.SetDriveSummaries(ctx, data, DriveSummariesTTL); err != nil {
			logger.Warn("Failed to cache drive summaries: %v", err)
		}
	}
	return summaries, nil
}

func (s *ReportService) ExportApplicants(ctx context.Context, driveID int64) ([]domain.ApplicantRow, error) {
	return s.reportRepo.ExportApplicants(ctx, driveID)
}

func (s *ReportService) ParticipationStats(ctx context.Context) (*domain.ParticipationStats, error) {
	return s.reportRepo.ParticipationStats(ctx)
}
