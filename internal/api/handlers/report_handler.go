package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	serviceInterfaces "placehub/internal/interfaces/service"
	"placehub/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ReportHandler handles admin reporting requests
type ReportHandler struct {
	reportService serviceInterfaces.ReportService
}

func NewReportHandler(reportService serviceInterfaces.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// SummarizeByDrive handles GET /reports/drives (admin only)
func (h *ReportHandler) SummarizeByDrive(c *gin.Context) {
	summaries, err := h.reportService.SummarizeByDrive(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    summaries,
	})
}

// ParticipationStats handles GET /reports/participation (admin only)
func (h *ReportHandler) ParticipationStats(c *gin.Context) {
	stats, err := h.reportService.ParticipationStats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    stats,
	})
}

// ExportApplicants handles GET /reports/drives/:id/applicants. With
// format=csv the applicant sheet is streamed as a CSV attachment.
func (h *ReportHandler) ExportApplicants(c *gin.Context) {
	driveID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid drive ID format",
		})
		return
	}

	rows, err := h.reportService.ExportApplicants(c.Request.Context(), driveID)
	if err != nil {
		respondError(c, err)
		return
	}

	if c.Query("format") != "csv" {
		c.JSON(http.StatusOK, APIResponse{
			Success: true,
			Data:    rows,
		})
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="drive_%d_applicants.csv"`, driveID))

	w := csv.NewWriter(c.Writer)
	if err := w.Write([]string{"S.No", "Register Number", "Roll Number", "Year", "Department", "CGPA", "Resume Link", "Applied At"}); err != nil {
		logger.Warn("Failed to write CSV header for drive %d: %v", driveID, err)
		return
	}
	for _, row := range rows {
		if err := w.Write([]string{
			strconv.Itoa(row.Serial),
			row.RegisterNumber,
			row.RollNumber,
			string(row.Year),
			row.Department,
			strconv.FormatFloat(row.CGPA, 'f', 2, 64),
			row.ResumeLink,
			row.AppliedAt,
		}); err != nil {
			logger.Warn("Failed to write CSV row for drive %d: %v", driveID, err)
			return
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		logger.Warn("Failed to flush CSV export for drive %d: %v", driveID, err)
	}
}
