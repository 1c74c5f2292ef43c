package handlers

import (
	"net/http"
	"strconv"

	infrastructure "placehub/internal/interfaces/infrastructure"
	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/gin-gonic/gin"
)

// DriveHandler handles drive catalog requests
type DriveHandler struct {
	driveService serviceInterfaces.DriveService
}

func NewDriveHandler(driveService serviceInterfaces.DriveService) *DriveHandler {
	return &DriveHandler{
		driveService: driveService,
	}
}

// PostDrive handles POST /drives (admin only)
func (h *DriveHandler) PostDrive(c *gin.Context) {
	var req serviceInterfaces.PostDriveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	drive, err := h.driveService.PostDrive(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Drive posted successfully",
		Data:    drive,
	})
}

// ListDrives handles GET /drives. The order query selects deadline-soonest
// (default) or posted-date-newest, which the newsroom feed uses.
func (h *DriveHandler) ListDrives(c *gin.Context) {
	order := infrastructure.OrderByDeadline
	if c.Query("order") == string(infrastructure.OrderByPostedDate) {
		order = infrastructure.OrderByPostedDate
	}

	drives, err := h.driveService.ListDrives(c.Request.Context(), order)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    drives,
	})
}

// GetDrive handles GET /drives/:id
func (h *DriveHandler) GetDrive(c *gin.Context) {
	driveID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid drive ID format",
		})
		return
	}

	drive, err := h.driveService.GetDrive(c.Request.Context(), driveID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    drive,
	})
}
