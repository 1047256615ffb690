package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const (
	uploadFailedMessage     = "Failed to upload image. Please try again."
	uploadInProgressMessage = "Another ID upload is already in progress. Please try again shortly."
	internalErrorMessage    = "Something went wrong. Please try again."
)

// idVerificationResponse is the envelope every ID verification endpoint answers with.
type idVerificationResponse struct {
	Success bool                      `json:"success"`
	URL     string                    `json:"url,omitempty"`
	Status  domain.VerificationStatus `json:"status,omitempty"`
	Message string                    `json:"message"`
} // @name IDVerificationResponse

func errorResponse(c *gin.Context, status int, code ErrorCode) {
	c.AbortWithStatusJSON(status, getErrorStruct(code))
}

func validationErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		errorResponse(c, http.StatusBadRequest, InvalidRequestCode)
		return
	}

	out := make([]ValidationError, len(verr))
	for i, ferr := range verr {
		out[i] = ValidationError{ferr.Field(), msgForTag(ferr.Tag(), ferr.Param())}
	}
	response := ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
	}
	response.Errors = out
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, response)
}

func fieldErrorResponse(c *gin.Context, verr *domain.ValidationError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationErrorStruct{
		ErrorCode:    ValidationErrorCode,
		ErrorMessage: ValidationErrorMessage,
		Errors:       []ValidationError{{FieldKey: verr.Field, ErrorMessage: verr.Message}},
	})
}

// idVerificationErrorResponse maps verification failures to status codes. Only guard and
// validation messages reach the client verbatim.
func idVerificationErrorResponse(c *gin.Context, err error) {
	var (
		validationErr *domain.ValidationError
		guardErr      *domain.GuardError
	)

	switch {
	case errors.As(err, &validationErr):
		fieldErrorResponse(c, validationErr)
	case errors.As(err, &guardErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, idVerificationResponse{Message: guardErr.Message})
	case errors.Is(err, service.ErrUploadInProgress):
		c.AbortWithStatusJSON(http.StatusConflict, idVerificationResponse{Message: uploadInProgressMessage})
	case errors.Is(err, service.ErrUserNotFound):
		errorResponse(c, http.StatusNotFound, UserNotFoundCode)
	case errors.Is(err, service.ErrReviewerNotFound):
		errorResponse(c, http.StatusForbidden, ForbiddenCode)
	case errors.Is(err, service.ErrUploadFailed):
		c.AbortWithStatusJSON(http.StatusInternalServerError, idVerificationResponse{Message: uploadFailedMessage})
	default:
		logger.Error("id verification request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, idVerificationResponse{Message: internalErrorMessage})
	}
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "number":
		return "This field must be numeric"
	case "min":
		return fmt.Sprintf("Minimum length is %v", value)
	case "max":
		return fmt.Sprintf("Maximum length is %v", value)
	case "oneof":
		return fmt.Sprintf("Must be one of: %v", value)
	case "phonenumber":
		return "Phone number must be in international format, e.g. +15550001111"
	}
	return tag
}
