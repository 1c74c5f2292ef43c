package handlers

import (
	"net/http"
	"strconv"

	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ApplicationHandler handles ledger requests
type ApplicationHandler struct {
	applicationService serviceInterfaces.ApplicationService
}

func NewApplicationHandler(applicationService serviceInterfaces.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{
		applicationService: applicationService,
	}
}

// Apply handles POST /applications
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req serviceInterfaces.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	application, err := h.applicationService.Apply(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Application recorded",
		Data:    application,
	})
}

// ListEligibleDrives handles GET /students/:id/eligible-drives
func (h *ApplicationHandler) ListEligibleDrives(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid student ID format",
		})
		return
	}

	drives, err := h.applicationService.ListEligibleDrives(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    drives,
	})
}

// GetAppliedDrives handles GET /students/:id/applied-drives
func (h *ApplicationHandler) GetAppliedDrives(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid student ID format",
		})
		return
	}

	driveIDs, err := h.applicationService.GetAppliedDriveIDs(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    driveIDs,
	})
}

// ListApplicationsForDrive handles GET /drives/:id/applications (admin only)
func (h *ApplicationHandler) ListApplicationsForDrive(c *gin.Context) {
	driveID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid drive ID format",
		})
		return
	}

	applications, err := h.applicationService.ListApplicationsForDrive(c.Request.Context(), driveID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    applications,
	})
}
