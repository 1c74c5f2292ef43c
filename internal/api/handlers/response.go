package handlers

import (
	"errors"
	"net/http"

	domain "placehub/internal/domain/placement"
	"placehub/internal/service"
	"placehub/pkg/validator"

	"github.com/gin-gonic/gin"
	validatorlib "github.com/go-playground/validator/v10"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}

// respondError translates domain errors into HTTP statuses. Precondition
// failures on apply map to distinct statuses so the UI can show the right
// message without parsing text.
func respondError(c *gin.Context, err error) {
	var notEligible *domain.NotEligibleError
	var profileInvalid *domain.ProfileValidationError
	var fieldErrors validatorlib.ValidationErrors

	switch {
	case errors.Is(err, domain.ErrDriveNotFound),
		errors.Is(err, domain.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, APIResponse{
			Success: false,
			Message: err.Error(),
		})

	case errors.Is(err, domain.ErrAlreadyApplied):
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: err.Error(),
		})

	case errors.Is(err, domain.ErrProfileIncomplete):
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Message: "complete your profile before applying",
		})

	case errors.As(err, &notEligible):
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Message: "not eligible for this drive",
			Errors:  notEligible.Reasons,
		})

	case errors.As(err, &profileInvalid):
		c.JSON(http.StatusUnprocessableEntity, APIResponse{
			Success: false,
			Message: "profile validation failed",
			Errors:  profileInvalid.Fields,
		})

	case errors.Is(err, domain.ErrEmptyMessage):
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: err.Error(),
		})

	case errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrRegisterNumberUsed):
		c.JSON(http.StatusConflict, APIResponse{
			Success: false,
			Message: err.Error(),
		})

	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, APIResponse{
			Success: false,
			Message: err.Error(),
		})

	case errors.As(err, &fieldErrors):
		c.JSON(http.StatusBadRequest, APIResponse{
			Success: false,
			Message: "Validation failed",
			Errors:  validator.FormatValidationError(err),
		})

	default:
		c.JSON(http.StatusInternalServerError, APIResponse{
			Success: false,
			Message: err.Error(),
		})
	}
}
