package handlers

import (
	"net/http"

	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler handles student profile requests
type ProfileHandler struct {
	profileService serviceInterfaces.ProfileService
}

func NewProfileHandler(profileService serviceInterfaces.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
	}
}

// SaveProfile handles PUT /students/:id/profile
func (h *ProfileHandler) SaveProfile(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid student ID format",
		})
		return
	}

	var req serviceInterfaces.SaveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}
	req.StudentID = studentID

	profile, err := h.profileService.SaveProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Message: "Profile saved successfully",
		Data:    profile,
	})
}

// GetProfile handles GET /students/:id/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid student ID format",
		})
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    profile,
	})
}
