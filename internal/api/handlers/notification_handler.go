package handlers

import (
	"net/http"

	serviceInterfaces "placehub/internal/interfaces/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// NotificationHandler handles drive notification requests
type NotificationHandler struct {
	notificationService serviceInterfaces.NotificationService
}

func NewNotificationHandler(notificationService serviceInterfaces.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// PostNotification handles POST /notifications (admin only)
func (h *NotificationHandler) PostNotification(c *gin.Context) {
	var req serviceInterfaces.PostNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid request format",
			Errors:  err.Error(),
		})
		return
	}

	notification, err := h.notificationService.PostNotification(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, APIResponse{
		Success: true,
		Message: "Notification posted",
		Data:    notification,
	})
}

// ListNotifications handles GET /students/:id/notifications
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	studentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Invalid student ID format",
		})
		return
	}

	notifications, err := h.notificationService.ListNotificationsFor(c.Request.Context(), studentID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, APIResponse{
		Success: true,
		Data:    notifications,
	})
}
