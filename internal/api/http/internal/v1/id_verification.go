package v1

import (
	"mime/multipart"
	"net/http"

	"github.com/gigmarket/backend/internal/domain"
	"github.com/gigmarket/backend/internal/service"
	"github.com/gigmarket/backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	frontUploadedMessage = "Front of ID uploaded successfully. Please upload the back of your ID."
	backUploadedMessage  = "ID uploaded successfully. Your verification is now under review."
	resubmittedMessage   = "ID resubmitted successfully. Your verification is now under review."
)

func (h *Handler) initIDVerificationRoutes(api *gin.RouterGroup) {
	idv := api.Group("/id-verification", h.userIdentityMiddleware)
	{
		idv.GET("", h.getIDVerification)
		idv.POST("/upload-front", h.uploadFrontID)
		idv.POST("/upload-back", h.uploadBackID)
		idv.POST("/resubmit", h.resubmitID)
	}
}

// @Summary Get ID verification
// @Tags ID Verification
// @Description Current state of the caller's ID verification, including image references
// @ModuleID getIDVerification
// @Produce  json
// @Success 200 {object} domain.IDVerificationView
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Security UserAuth
// @Router /id-verification [get]
func (h *Handler) getIDVerification(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	verification, err := h.services.IDVerifications.GetStatus(c.Request.Context(), userID)
	if err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, verification.View(true))
}

// @Summary Upload front of ID
// @Tags ID Verification
// @Description Stores the front image. The verification status does not change.
// @ModuleID uploadFrontID
// @Accept  multipart/form-data
// @Produce  json
// @Param front_id formData file true "Front of the ID document"
// @Success 200 {object} idVerificationResponse
// @Failure 400 {object} idVerificationResponse
// @Failure 409 {object} idVerificationResponse
// @Failure 422 {object} ValidationErrorStruct
// @Failure 500 {object} idVerificationResponse
// @Security UserAuth
// @Router /id-verification/upload-front [post]
func (h *Handler) uploadFrontID(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	file, closeFile := formImage(c, service.FieldFrontID)
	defer closeFile()

	result, err := h.services.IDVerifications.UploadFront(c.Request.Context(), userID, file)
	if err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, idVerificationResponse{
		Success: true,
		URL:     result.URL,
		Message: frontUploadedMessage,
	})
}

// @Summary Upload back of ID
// @Tags ID Verification
// @Description Stores the back image and submits the verification for review
// @ModuleID uploadBackID
// @Accept  multipart/form-data
// @Produce  json
// @Param back_id formData file true "Back of the ID document"
// @Success 200 {object} idVerificationResponse
// @Failure 400 {object} idVerificationResponse
// @Failure 409 {object} idVerificationResponse
// @Failure 422 {object} ValidationErrorStruct
// @Failure 500 {object} idVerificationResponse
// @Security UserAuth
// @Router /id-verification/upload-back [post]
func (h *Handler) uploadBackID(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	file, closeFile := formImage(c, service.FieldBackID)
	defer closeFile()

	result, err := h.services.IDVerifications.UploadBack(c.Request.Context(), userID, file)
	if err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, idVerificationResponse{
		Success: true,
		URL:     result.URL,
		Status:  result.Status,
		Message: backUploadedMessage,
	})
}

// @Summary Resubmit ID
// @Tags ID Verification
// @Description Replaces both images of a rejected verification and submits it for review again
// @ModuleID resubmitID
// @Accept  multipart/form-data
// @Produce  json
// @Param front_id formData file true "Front of the ID document"
// @Param back_id formData file true "Back of the ID document"
// @Success 200 {object} idVerificationResponse
// @Failure 400 {object} idVerificationResponse
// @Failure 409 {object} idVerificationResponse
// @Failure 422 {object} ValidationErrorStruct
// @Failure 500 {object} idVerificationResponse
// @Security UserAuth
// @Router /id-verification/resubmit [post]
func (h *Handler) resubmitID(c *gin.Context) {
	userID, err := h.getUserUUID(c)
	if err != nil {
		errorResponse(c, http.StatusUnauthorized, UnauthorizedCode)
		return
	}

	front, closeFront := formImage(c, service.FieldFrontID)
	defer closeFront()
	back, closeBack := formImage(c, service.FieldBackID)
	defer closeBack()

	if err := h.services.IDVerifications.Resubmit(c.Request.Context(), userID, front, back); err != nil {
		idVerificationErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, idVerificationResponse{
		Success: true,
		Status:  domain.VerificationStatusPending,
		Message: resubmittedMessage,
	})
}

// formImage opens a multipart file. A missing or unreadable part yields nil so the
// service reports it as a field validation error.
func formImage(c *gin.Context, field string) (*service.UploadFile, func()) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}
	}

	file, err := header.Open()
	if err != nil {
		logger.Warn("open uploaded file failed", zap.String("field", field), zap.Error(err))
		return nil, func() {}
	}

	upload := &service.UploadFile{
		Field:    field,
		Filename: header.Filename,
		Size:     header.Size,
		Content:  file,
	}

	return upload, func() { closeMultipart(file) }
}

func closeMultipart(file multipart.File) {
	if err := file.Close(); err != nil {
		logger.Warn("close uploaded file failed", zap.Error(err))
	}
}
